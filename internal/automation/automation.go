package automation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/san-kum/meshgrid/internal/config"
	"github.com/san-kum/meshgrid/internal/export"
	"github.com/san-kum/meshgrid/internal/mesh"
	"github.com/san-kum/meshgrid/internal/metrics"
	"github.com/san-kum/meshgrid/internal/render"
	"github.com/san-kum/meshgrid/internal/report"
	"github.com/san-kum/meshgrid/internal/sim"
	"gopkg.in/yaml.v3"
)

var ErrInvalidStep = errors.New("automation: invalid step")

// Scenario defines a scripted, headless run of the mesh.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Seed        int64          `yaml:"seed"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is applied in field order: preset, resize, pointer, frames,
// snapshot. Any of them may be omitted.
type ScenarioStep struct {
	Name     string    `yaml:"name"`
	Preset   string    `yaml:"preset"`
	Resize   []float64 `yaml:"resize"`
	Pointer  []float64 `yaml:"pointer"`
	Frames   int       `yaml:"frames"`
	Snapshot string    `yaml:"snapshot"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	for i, step := range scenario.Steps {
		if err := step.validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	return &scenario, nil
}

func (s ScenarioStep) validate() error {
	if s.Resize != nil && len(s.Resize) != 2 {
		return fmt.Errorf("%w: resize wants [w, h], got %v", ErrInvalidStep, s.Resize)
	}
	if s.Pointer != nil && len(s.Pointer) != 2 {
		return fmt.Errorf("%w: pointer wants [x, y], got %v", ErrInvalidStep, s.Pointer)
	}
	if s.Frames < 0 {
		return fmt.Errorf("%w: negative frames %d", ErrInvalidStep, s.Frames)
	}
	return nil
}

// runner holds the headless pipeline shared by every step of a scenario.
type runner struct {
	cfg      *config.Config
	sim      *mesh.Simulation
	renderer *render.Renderer
	sched    *sim.Scheduler
	metrics  []sim.Metric
	last     sim.FrameStats
	clock    time.Time
}

func newRunner(cfg *config.Config, seed int64) *runner {
	if seed == 0 {
		seed = cfg.Seed
	}
	var rnd mesh.RandSource
	if seed != 0 {
		rnd = rand.New(rand.NewSource(seed))
	}
	r := &runner{
		cfg: cfg,
		sim: mesh.New(cfg.MeshParams(), rnd),
		metrics: []sim.Metric{
			metrics.NewDisplacement(metrics.DefaultHistory),
			metrics.NewDrawCalls(),
			metrics.NewFrameTime(),
			metrics.NewSettled(0.05),
		},
		clock: time.Now(),
	}
	r.rebuildPipeline()
	return r
}

func (r *runner) rebuildPipeline() {
	r.renderer = render.New(r.cfg.RenderParams())
	r.sched = sim.New(r.sim, r.renderer, &render.Recorder{CountOnly: true})
	for _, m := range r.metrics {
		r.sched.AddObserver(m)
	}
}

func (r *runner) frames(ctx context.Context, n int) error {
	dt := sim.Interval(r.cfg.FPS)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.clock = r.clock.Add(dt)
		r.last = r.sched.Frame(r.clock)
	}
	return nil
}

// RunScenario executes all steps in a scenario against one simulation and
// returns a report per step.
func RunScenario(ctx context.Context, scenario *Scenario, cfg *config.Config) ([]report.Report, error) {
	results := make([]report.Report, 0, len(scenario.Steps))
	run := newRunner(cfg, scenario.Seed)

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}
		log.Printf("Running step %d/%d: %s", i+1, len(scenario.Steps), name)

		if err := step.validate(); err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		if step.Preset != "" {
			next := *run.cfg
			if err := config.ApplyPreset(&next, step.Preset); err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
			if err := run.sim.SetParams(next.MeshParams()); err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
			run.cfg = &next
			run.rebuildPipeline()
		}
		if step.Resize != nil {
			run.sim.Resize(step.Resize[0], step.Resize[1])
		}
		if step.Pointer != nil {
			run.sim.SetPointer(step.Pointer[0], step.Pointer[1])
		}
		if err := run.frames(ctx, step.Frames); err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		rep := report.Collect(name, run.sim, run.last, run.metrics...)
		if step.Snapshot != "" {
			_, err := export.Snapshot(step.Snapshot, run.sim, run.renderer, export.Options{
				FPS:        run.cfg.FPS,
				Background: run.cfg.BackgroundColor(),
			})
			if err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
			rep.Snapshot = step.Snapshot
		}
		results = append(results, rep)
	}

	return results, nil
}

// ParameterSweep runs the mesh across a range of values for one parameter
// with the pointer held at a fixed offset from the centre.
type ParameterSweep struct {
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Frames    int
	Width     float64
	Height    float64
	Offset    [2]float64
	Seed      int64
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue       float64
	MeanDisplacement float64
	PeakDisplacement float64
	Lines            int
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, cfg *config.Config) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep %s: need at least one step", sweep.ParamName)
	}
	results := make([]SweepResult, 0, sweep.NumSteps)

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		next := *cfg
		if err := SetParam(&next, sweep.ParamName, paramVal); err != nil {
			return nil, err
		}
		if err := next.Validate(); err != nil {
			return nil, fmt.Errorf("sweep %s=%.4f: %w", sweep.ParamName, paramVal, err)
		}

		run := newRunner(&next, sweep.Seed)
		run.sim.Resize(sweep.Width, sweep.Height)
		c := run.sim.Viewport().Center()
		run.sim.SetPointer(c.X+sweep.Offset[0], c.Y+sweep.Offset[1])
		if err := run.frames(ctx, sweep.Frames); err != nil {
			return nil, err
		}

		disp := run.metrics[0].(*metrics.Displacement)
		results = append(results, SweepResult{
			ParamValue:       paramVal,
			MeanDisplacement: disp.Value(),
			PeakDisplacement: disp.Peak(),
			Lines:            run.last.Lines,
		})

		log.Printf("Sweep %d/%d: %s=%.4f", i+1, sweep.NumSteps, sweep.ParamName, paramVal)
	}

	return results, nil
}

// SetParam sets a numeric configuration field by its YAML name.
func SetParam(cfg *config.Config, name string, v float64) error {
	switch name {
	case "cell_size":
		cfg.CellSize = v
	case "influence_radius":
		cfg.InfluenceRadius = v
	case "repulsion":
		cfg.Repulsion = v
	case "damping":
		cfg.Damping = v
	case "proximity":
		cfg.Proximity = v
	case "line_alpha":
		cfg.LineAlpha = v
	case "line_width":
		cfg.LineWidth = v
	default:
		return fmt.Errorf("%w: unknown parameter %q", config.ErrInvalidConfig, name)
	}
	return nil
}

// MonteCarloConfig defines randomised pointer trials
type MonteCarloConfig struct {
	NumTrials int
	Frames    int
	Width     float64
	Height    float64
	Seed      int64
}

// MonteCarloResult holds the outcome of one trial
type MonteCarloResult struct {
	TrialID          int
	Pointer          [2]float64
	MeanDisplacement float64
	Stable           bool // every particle finite and inside the padded viewport
}

// RunMonteCarlo drops the pointer at random positions and checks that the
// field stays bounded.
func RunMonteCarlo(ctx context.Context, mc *MonteCarloConfig, cfg *config.Config) ([]MonteCarloResult, error) {
	if mc.NumTrials < 1 {
		return nil, fmt.Errorf("trials: need at least one trial")
	}
	results := make([]MonteCarloResult, 0, mc.NumTrials)

	rng := rand.New(rand.NewSource(mc.Seed))
	if mc.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for trial := 0; trial < mc.NumTrials; trial++ {
		run := newRunner(cfg, rng.Int63())
		run.sim.Resize(mc.Width, mc.Height)
		ptr := [2]float64{rng.Float64() * mc.Width, rng.Float64() * mc.Height}
		run.sim.SetPointer(ptr[0], ptr[1])
		if err := run.frames(ctx, mc.Frames); err != nil {
			return nil, err
		}

		pad := cfg.CellSize + maxDisplacement(cfg)
		stable := true
		for _, p := range run.sim.Particles() {
			if math.IsNaN(p.Pos.X) || math.IsNaN(p.Pos.Y) ||
				p.Pos.X < -pad || p.Pos.X > mc.Width+pad ||
				p.Pos.Y < -pad || p.Pos.Y > mc.Height+pad {
				stable = false
				break
			}
		}

		results = append(results, MonteCarloResult{
			TrialID:          trial,
			Pointer:          ptr,
			MeanDisplacement: run.sim.MeanDisplacement(),
			Stable:           stable,
		})

		if (trial+1)%10 == 0 {
			log.Printf("Monte Carlo: %d/%d trials complete", trial+1, mc.NumTrials)
		}
	}

	return results, nil
}

// maxDisplacement bounds how far the pointer can hold a particle from its
// anchor: the strongest push repulsion*radius against the per-tick pull.
func maxDisplacement(cfg *config.Config) float64 {
	if cfg.Damping <= 0 {
		return math.Inf(1)
	}
	return cfg.Repulsion * cfg.InfluenceRadius / cfg.Damping
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
