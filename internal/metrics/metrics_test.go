package metrics

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/meshgrid/internal/mesh"
	"github.com/san-kum/meshgrid/internal/render"
	"github.com/san-kum/meshgrid/internal/sim"
)

var (
	_ sim.Metric = (*Displacement)(nil)
	_ sim.Metric = (*DrawCalls)(nil)
	_ sim.Metric = (*FrameTime)(nil)
	_ sim.Metric = (*Settled)(nil)
)

func TestDisplacementHistory(t *testing.T) {
	d := NewDisplacement(3)
	for _, v := range []float64{1, 4, 2, 3} {
		d.OnFrame(sim.FrameStats{MeanDisplacement: v})
	}

	if diff := cmp.Diff([]float64{4, 2, 3}, d.History()); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
	if d.Value() != 3 {
		t.Errorf("expected latest 3, got %f", d.Value())
	}
	if d.Peak() != 4 {
		t.Errorf("expected peak 4, got %f", d.Peak())
	}

	d.Reset()
	if d.Value() != 0 || len(d.History()) != 0 || d.Peak() != 0 {
		t.Error("expected empty metric after reset")
	}
}

func TestDisplacementDefaultCapacity(t *testing.T) {
	d := NewDisplacement(0)
	for i := 0; i < DefaultHistory+10; i++ {
		d.OnFrame(sim.FrameStats{MeanDisplacement: float64(i)})
	}
	if n := len(d.History()); n != DefaultHistory {
		t.Errorf("expected %d samples, got %d", DefaultHistory, n)
	}
}

func TestDrawCalls(t *testing.T) {
	c := NewDrawCalls()
	if c.Value() != 0 {
		t.Error("expected zero before any frame")
	}
	c.OnFrame(sim.FrameStats{Circles: 10, Lines: 20})
	c.OnFrame(sim.FrameStats{Circles: 10, Lines: 40})

	if c.Value() != 30 {
		t.Errorf("expected 30 lines per frame, got %f", c.Value())
	}
	if c.Circles != 20 || c.Frames() != 2 {
		t.Errorf("unexpected totals %d circles over %d frames", c.Circles, c.Frames())
	}
}

func TestFrameTime(t *testing.T) {
	f := NewFrameTime()
	f.OnFrame(sim.FrameStats{Elapsed: 2 * time.Millisecond})
	f.OnFrame(sim.FrameStats{Elapsed: 4 * time.Millisecond})

	if math.Abs(f.Value()-3) > 1e-9 {
		t.Errorf("expected 3ms mean, got %f", f.Value())
	}
	if f.Max() != 4*time.Millisecond {
		t.Errorf("expected 4ms max, got %v", f.Max())
	}
	f.Reset()
	if f.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestSettledWithScheduler(t *testing.T) {
	s := mesh.New(mesh.DefaultParams(), rand.New(rand.NewSource(1)))
	s.Resize(600, 600)
	s.SetPointer(-1000, -1000)

	settled := NewSettled(0.01)
	sched := sim.New(s, render.New(render.DefaultParams()), &render.Recorder{CountOnly: true})
	sched.AddObserver(settled)

	for i := 0; i < 10; i++ {
		sched.Frame(time.Now())
	}
	if settled.Value() != 1 {
		t.Errorf("expected a mesh at rest to stay settled, got %f", settled.Value())
	}

	s.SetPointer(300, 310)
	sched.Frame(time.Now())
	if settled.Value() >= 1 {
		t.Errorf("expected pointer to unsettle the mesh, got %f", settled.Value())
	}
}
