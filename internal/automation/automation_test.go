package automation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/meshgrid/internal/config"
)

const scenarioYAML = `name: sweep-the-pointer
description: resize, push, settle
seed: 42
steps:
  - name: boot
    resize: [600, 360]
  - name: push
    pointer: [300, 180]
    frames: 30
  - name: storm
    preset: storm
    frames: 5
  - name: away
    pointer: [-1000, -1000]
    frames: 120
    snapshot: %s
`

func writeScenario(t *testing.T, snapshot string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	body := []byte(fmt.Sprintf(scenarioYAML, snapshot))
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAndRunScenario(t *testing.T) {
	snap := filepath.Join(t.TempDir(), "final.svg")
	sc, err := LoadScenario(writeScenario(t, snap))
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if sc.Name != "sweep-the-pointer" || len(sc.Steps) != 4 || sc.Seed != 42 {
		t.Fatalf("scenario = %+v", sc)
	}

	reports, err := RunScenario(context.Background(), sc, config.DefaultConfig())
	if err != nil {
		t.Fatalf("RunScenario: %v", err)
	}
	if len(reports) != 4 {
		t.Fatalf("got %d reports", len(reports))
	}

	boot := reports[0]
	if boot.Width != 600 || boot.Height != 360 || boot.Particles != 60 || boot.Frames != 0 {
		t.Errorf("boot = %+v", boot)
	}
	if boot.Pointer != [2]float64{300, 180} {
		t.Errorf("resize did not centre the pointer: %v", boot.Pointer)
	}

	push := reports[1]
	if push.Frames != 30 || push.Lines == 0 {
		t.Errorf("push = %+v", push)
	}

	if reports[2].Generation != boot.Generation+1 {
		t.Errorf("preset did not rebuild: generation %d -> %d", boot.Generation, reports[2].Generation)
	}

	away := reports[3]
	if away.Snapshot != snap {
		t.Errorf("snapshot = %q", away.Snapshot)
	}
	if _, err := os.Stat(snap); err != nil {
		t.Errorf("snapshot not written: %v", err)
	}
	if away.MeanDisplacement >= push.MeanDisplacement && push.MeanDisplacement > 0 {
		t.Errorf("mesh did not settle once the pointer left: %v >= %v", away.MeanDisplacement, push.MeanDisplacement)
	}
}

func TestLoadScenarioRejectsBadSteps(t *testing.T) {
	tests := []string{
		"steps:\n  - resize: [1]\n",
		"steps:\n  - pointer: [1, 2, 3]\n",
		"steps:\n  - frames: -1\n",
	}
	for _, body := range tests {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadScenario(path); !errors.Is(err, ErrInvalidStep) {
			t.Errorf("LoadScenario(%q) err = %v, want ErrInvalidStep", body, err)
		}
	}
}

func TestRunScenarioUnknownPreset(t *testing.T) {
	sc := &Scenario{Steps: []ScenarioStep{{Preset: "nope"}}}
	_, err := RunScenario(context.Background(), sc, config.DefaultConfig())
	if !errors.Is(err, config.ErrUnknownPreset) {
		t.Errorf("err = %v, want ErrUnknownPreset", err)
	}
}

func TestRunScenarioCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sc := &Scenario{Steps: []ScenarioStep{{Resize: []float64{300, 300}, Frames: 10}}}
	if _, err := RunScenario(ctx, sc, config.DefaultConfig()); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRunSweep(t *testing.T) {
	sweep := &ParameterSweep{
		ParamName: "repulsion",
		ParamMin:  0,
		ParamMax:  0.04,
		NumSteps:  3,
		Frames:    60,
		Width:     600,
		Height:    360,
		Offset:    [2]float64{10, 10},
		Seed:      1,
	}
	results, err := RunSweep(context.Background(), sweep, config.DefaultConfig())
	if err != nil {
		t.Fatalf("RunSweep: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].MeanDisplacement != 0 {
		t.Errorf("zero repulsion displaced the mesh: %v", results[0].MeanDisplacement)
	}
	if !(results[2].MeanDisplacement > results[1].MeanDisplacement) {
		t.Errorf("displacement not increasing with repulsion: %+v", results)
	}

	sweep.ParamName = "gravity"
	if _, err := RunSweep(context.Background(), sweep, config.DefaultConfig()); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("unknown param err = %v", err)
	}
}

func TestRunMonteCarlo(t *testing.T) {
	mc := &MonteCarloConfig{NumTrials: 5, Frames: 40, Width: 480, Height: 300, Seed: 9}
	results, err := RunMonteCarlo(context.Background(), mc, config.DefaultConfig())
	if err != nil {
		t.Fatalf("RunMonteCarlo: %v", err)
	}
	stable, unstable := MonteCarloStats(results)
	if stable != 5 || unstable != 0 {
		t.Errorf("stable/unstable = %d/%d", stable, unstable)
	}
}

func TestRunMonteCarloRejectsNoTrials(t *testing.T) {
	for _, n := range []int{0, -1} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			mc := &MonteCarloConfig{NumTrials: n, Frames: 10, Width: 480, Height: 300, Seed: 9}
			results, err := RunMonteCarlo(context.Background(), mc, config.DefaultConfig())
			if err == nil {
				t.Fatal("expected error for non-positive trial count")
			}
			if results != nil {
				t.Errorf("expected no results, got %d", len(results))
			}
		})
	}
}
