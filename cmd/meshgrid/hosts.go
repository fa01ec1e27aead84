package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/san-kum/meshgrid/internal/gui"
	"github.com/san-kum/meshgrid/internal/tui"
	"github.com/san-kum/meshgrid/internal/viz"
	"github.com/spf13/cobra"
)

func runTerminal(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !haveTerminal(cmd) {
		return nil
	}
	return viz.Run(cfg, newSimulation(cfg))
}

func newTcellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tcell",
		Short: "run the mesh on a raw tcell screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !haveTerminal(cmd) {
				return nil
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("tcell screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("tcell init: %w", err)
			}
			host := tui.New(screen, cfg, newSimulation(cfg))
			defer host.Close()
			return host.Run(cmd.Context())
		},
	}
}

func newWindowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "window",
		Short: "run the mesh in a raylib window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return gui.Run(cfg, newSimulation(cfg))
		},
	}
}
