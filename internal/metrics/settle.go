package metrics

import "github.com/san-kum/meshgrid/internal/sim"

// Settled is the fraction of frames whose mean displacement stayed under
// threshold. A mesh left alone away from the pointer tends to 1.
type Settled struct {
	name      string
	threshold float64
	settled   int
	samples   int
}

func NewSettled(threshold float64) *Settled {
	return &Settled{
		name:      "settled",
		threshold: threshold,
	}
}

func (s *Settled) Name() string { return s.name }

func (s *Settled) OnFrame(st sim.FrameStats) {
	s.samples++
	if st.MeanDisplacement < s.threshold {
		s.settled++
	}
}

func (s *Settled) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return float64(s.settled) / float64(s.samples)
}

func (s *Settled) Reset() {
	s.settled = 0
	s.samples = 0
}
