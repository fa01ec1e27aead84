package metrics

import (
	"sync"

	"github.com/san-kum/meshgrid/internal/sim"
)

const DefaultHistory = 120

// Displacement tracks the mean distance of particles from their anchors.
// Value is the latest frame; History keeps a bounded window for plotting.
type Displacement struct {
	name     string
	capacity int

	mu      sync.Mutex
	history []float64
	last    float64
	peak    float64
}

func NewDisplacement(capacity int) *Displacement {
	if capacity <= 0 {
		capacity = DefaultHistory
	}
	return &Displacement{
		name:     "displacement",
		capacity: capacity,
		history:  make([]float64, 0, capacity),
	}
}

func (d *Displacement) Name() string { return d.name }

func (d *Displacement) OnFrame(st sim.FrameStats) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = st.MeanDisplacement
	if d.last > d.peak {
		d.peak = d.last
	}
	d.history = append(d.history, d.last)
	if len(d.history) > d.capacity {
		d.history = d.history[1:]
	}
}

func (d *Displacement) Value() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

func (d *Displacement) Peak() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.peak
}

// History returns a copy of the recorded window, oldest first.
func (d *Displacement) History() []float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]float64, len(d.history))
	copy(out, d.history)
	return out
}

func (d *Displacement) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.history = d.history[:0]
	d.last = 0
	d.peak = 0
}
