package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/san-kum/meshgrid/internal/config"
	"github.com/san-kum/meshgrid/internal/mesh"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	debug      bool
	seed       int64
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newRootCmd registers every command. With no subcommand it starts the
// Bubble Tea host.
func newRootCmd() *cobra.Command {
	var logFile *os.File

	rootCmd := &cobra.Command{
		Use:           "meshgrid",
		Short:         "pointer-reactive particle mesh",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logFile = setupLogging(debug)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logFile != nil {
				logFile.Close()
			}
		},
		RunE: runTerminal,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "apply a named preset")
	pf.BoolVar(&debug, "debug", false, "write debug logs to "+logDir+"/"+logFileName)
	pf.Int64Var(&seed, "seed", 0, "random seed for particle radius and opacity (0 = time)")

	rootCmd.AddCommand(
		newTcellCmd(),
		newWindowCmd(),
		newRunCmd(),
		newSnapshotCmd(),
		newScenarioCmd(),
		newSweepCmd(),
		newTrialsCmd(),
		newPresetsCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

// loadConfig resolves --config, --preset and --seed into a validated Config.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if preset != "" {
		if err := config.ApplyPreset(cfg, preset); err != nil {
			return nil, err
		}
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSimulation(cfg *config.Config) *mesh.Simulation {
	var rnd mesh.RandSource
	if cfg.Seed != 0 {
		rnd = rand.New(rand.NewSource(cfg.Seed))
	}
	return mesh.New(cfg.MeshParams(), rnd)
}

// haveTerminal reports whether stdout can host a terminal surface. Without
// one the mesh stays inert: nothing is drawn and no error is returned.
func haveTerminal(cmd *cobra.Command) bool {
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return true
	}
	log.Printf("%s: stdout is not a terminal, nothing to draw on", cmd.Name())
	return false
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
