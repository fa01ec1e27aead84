package metrics

import "github.com/san-kum/meshgrid/internal/sim"

// DrawCalls averages connector lines per frame and keeps running totals.
type DrawCalls struct {
	name    string
	Circles int
	Lines   int
	samples int
}

func NewDrawCalls() *DrawCalls {
	return &DrawCalls{name: "lines_per_frame"}
}

func (c *DrawCalls) Name() string { return c.name }

func (c *DrawCalls) OnFrame(st sim.FrameStats) {
	c.Circles += st.Circles
	c.Lines += st.Lines
	c.samples++
}

func (c *DrawCalls) Frames() int { return c.samples }

func (c *DrawCalls) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.Lines) / float64(c.samples)
}

func (c *DrawCalls) Reset() {
	c.Circles = 0
	c.Lines = 0
	c.samples = 0
}
