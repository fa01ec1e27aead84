package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/meshgrid/internal/automation"
	"github.com/san-kum/meshgrid/internal/config"
	"github.com/san-kum/meshgrid/internal/export"
	"github.com/san-kum/meshgrid/internal/mesh"
	"github.com/san-kum/meshgrid/internal/metrics"
	"github.com/san-kum/meshgrid/internal/render"
	"github.com/san-kum/meshgrid/internal/report"
	"github.com/san-kum/meshgrid/internal/sim"
	"github.com/spf13/cobra"
)

var errBadPointer = errors.New("pointer must be x,y")

func parsePointer(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", errBadPointer, s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %w", errBadPointer, s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %w", errBadPointer, s, err)
	}
	return x, y, nil
}

// prepare builds a sized simulation with the pointer placed.
func prepare(width, height float64, pointer string) (*config.Config, *mesh.Simulation, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	s := newSimulation(cfg)
	s.Resize(width, height)
	if pointer != "" {
		x, y, err := parsePointer(pointer)
		if err != nil {
			return nil, nil, err
		}
		s.SetPointer(x, y)
	}
	return cfg, s, nil
}

func newRunCmd() *cobra.Command {
	var (
		width, height float64
		frames        int
		pointer       string
		asJSON        bool
		plot          bool
		out           string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "run the mesh headless and report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if frames < 0 {
				return fmt.Errorf("frames must not be negative, got %d", frames)
			}
			cfg, s, err := prepare(width, height, pointer)
			if err != nil {
				return err
			}

			disp := metrics.NewDisplacement(frames)
			all := []sim.Metric{disp, metrics.NewDrawCalls(), metrics.NewFrameTime(), metrics.NewSettled(0.05)}
			sched := sim.New(s, render.New(cfg.RenderParams()), &render.Recorder{CountOnly: true})
			var last sim.FrameStats
			sched.AddObserver(sim.ObserverFunc(func(st sim.FrameStats) { last = st }))
			for _, m := range all {
				sched.AddObserver(m)
			}

			// Feed the loop a pre-filled clock so it runs as fast as it can.
			ticks := make(chan time.Time, frames)
			dt := sim.Interval(cfg.FPS)
			start := time.Now()
			for i := 0; i < frames; i++ {
				ticks <- start.Add(time.Duration(i) * dt)
			}
			close(ticks)
			if err := sched.Run(cmd.Context(), ticks); err != nil {
				return err
			}

			rep := report.Collect("run", s, last, all...)
			switch {
			case out != "":
				if err := report.ExportJSON(out, rep); err != nil {
					return err
				}
				printf(cmd, "wrote %s\n", out)
				return nil
			case asJSON:
				return report.WriteJSON(cmd.OutOrStdout(), rep)
			}

			if err := report.WriteSummary(cmd.OutOrStdout(), rep); err != nil {
				return err
			}
			if hist := disp.History(); plot && len(hist) > 1 {
				printf(cmd, "\n%s\n", asciigraph.Plot(hist,
					asciigraph.Height(10),
					asciigraph.Width(60),
					asciigraph.Caption("mean displacement per frame")))
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&width, "width", 1280, "viewport width")
	cmd.Flags().Float64Var(&height, "height", 720, "viewport height")
	cmd.Flags().IntVar(&frames, "frames", 120, "frames to run")
	cmd.Flags().StringVar(&pointer, "pointer", "", "pointer position x,y (default centre)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON report")
	cmd.Flags().BoolVar(&plot, "plot", false, "plot displacement")
	cmd.Flags().StringVar(&out, "out", "", "write the JSON report to a file")
	return cmd
}

func newSnapshotCmd() *cobra.Command {
	var (
		width, height float64
		frames        int
		pointer       string
		out           string
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render frames to a png, svg or gif file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, s, err := prepare(width, height, pointer)
			if err != nil {
				return err
			}
			st, err := export.Snapshot(out, s, render.New(cfg.RenderParams()), export.Options{
				Frames:     frames,
				FPS:        cfg.FPS,
				Background: cfg.BackgroundColor(),
			})
			if err != nil {
				return err
			}
			printf(cmd, "wrote %s (%d particles, %d lines)\n", out, st.Particles, st.Lines)
			return nil
		},
	}
	cmd.Flags().Float64Var(&width, "width", 1280, "viewport width")
	cmd.Flags().Float64Var(&height, "height", 720, "viewport height")
	cmd.Flags().IntVar(&frames, "frames", 60, "frames to run before capture (0 = initial lattice)")
	cmd.Flags().StringVar(&pointer, "pointer", "", "pointer position x,y (default centre)")
	cmd.Flags().StringVarP(&out, "out", "o", "mesh.png", "output file (.png, .svg or .gif)")
	return cmd
}

func newScenarioCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			sc, err := automation.LoadScenario(args[0])
			if err != nil {
				return err
			}
			reports, err := automation.RunScenario(cmd.Context(), sc, cfg)
			if err != nil {
				return err
			}
			if asJSON {
				return report.WriteJSON(cmd.OutOrStdout(), reports...)
			}
			if sc.Name != "" {
				printf(cmd, "%s\n\n", sc.Name)
			}
			return report.WriteSummary(cmd.OutOrStdout(), reports...)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON reports")
	return cmd
}

func newSweepCmd() *cobra.Command {
	sweep := automation.ParameterSweep{}
	var offset string
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one parameter and report displacement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dx, dy, err := parsePointer(offset)
			if err != nil {
				return err
			}
			sweep.Offset = [2]float64{dx, dy}
			sweep.Seed = cfg.Seed
			results, err := automation.RunSweep(cmd.Context(), &sweep, cfg)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "%s\tMEAN\tPEAK\tLINES\n", strings.ToUpper(sweep.ParamName))
			for _, r := range results {
				fmt.Fprintf(w, "%.4f\t%.3f\t%.3f\t%d\n", r.ParamValue, r.MeanDisplacement, r.PeakDisplacement, r.Lines)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&sweep.ParamName, "param", "repulsion", "parameter to sweep")
	cmd.Flags().Float64Var(&sweep.ParamMin, "min", 0.01, "first value")
	cmd.Flags().Float64Var(&sweep.ParamMax, "max", 0.1, "last value")
	cmd.Flags().IntVar(&sweep.NumSteps, "steps", 5, "number of values")
	cmd.Flags().IntVar(&sweep.Frames, "frames", 120, "frames per value")
	cmd.Flags().Float64Var(&sweep.Width, "width", 1280, "viewport width")
	cmd.Flags().Float64Var(&sweep.Height, "height", 720, "viewport height")
	cmd.Flags().StringVar(&offset, "offset", "40,0", "pointer offset from the centre, dx,dy")
	return cmd
}

func newTrialsCmd() *cobra.Command {
	mc := automation.MonteCarloConfig{}
	cmd := &cobra.Command{
		Use:   "trials",
		Short: "drop the pointer at random positions and check the mesh stays bounded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			mc.Seed = cfg.Seed
			results, err := automation.RunMonteCarlo(cmd.Context(), &mc, cfg)
			if err != nil {
				return err
			}
			stable, unstable := automation.MonteCarloStats(results)
			printf(cmd, "%d trials: %d stable, %d unstable\n", len(results), stable, unstable)
			return nil
		},
	}
	cmd.Flags().IntVar(&mc.NumTrials, "n", 20, "number of trials")
	cmd.Flags().IntVar(&mc.Frames, "frames", 120, "frames per trial")
	cmd.Flags().Float64Var(&mc.Width, "width", 1280, "viewport width")
	cmd.Flags().Float64Var(&mc.Height, "height", 720, "viewport height")
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCELL\tRADIUS\tREPULSION\tDAMPING\tPROXIMITY\tLINE ALPHA")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%g\t%g\n",
					name, p.CellSize, p.InfluenceRadius, p.Repulsion, p.Damping, p.Proximity, p.LineAlpha)
			}
			return w.Flush()
		},
	}
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "write the effective configuration to a YAML file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "meshgrid.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return fmt.Errorf("save %s: %w", path, err)
			}
			printf(cmd, "wrote %s\n", path)
			return nil
		},
	})
	return configCmd
}
