package metrics

import (
	"time"

	"github.com/san-kum/meshgrid/internal/sim"
)

// FrameTime averages the wall time spent inside a tick, in milliseconds.
type FrameTime struct {
	name    string
	total   time.Duration
	max     time.Duration
	samples int
}

func NewFrameTime() *FrameTime {
	return &FrameTime{name: "frame_ms"}
}

func (f *FrameTime) Name() string { return f.name }

func (f *FrameTime) OnFrame(st sim.FrameStats) {
	f.total += st.Elapsed
	if st.Elapsed > f.max {
		f.max = st.Elapsed
	}
	f.samples++
}

func (f *FrameTime) Value() float64 {
	if f.samples == 0 {
		return 0
	}
	return float64(f.total) / float64(f.samples) / float64(time.Millisecond)
}

func (f *FrameTime) Max() time.Duration { return f.max }

func (f *FrameTime) Reset() {
	f.total = 0
	f.max = 0
	f.samples = 0
}
