package sim

import "time"

// FrameStats describes one completed tick.
type FrameStats struct {
	Frame            uint64
	Time             time.Time
	Elapsed          time.Duration
	Particles        int
	Circles          int
	Lines            int
	MeanDisplacement float64
	Generation       uint64
}

// Observer is notified after every tick, on the ticking goroutine.
type Observer interface {
	OnFrame(st FrameStats)
}

// Metric is an Observer that folds frames into a single value.
type Metric interface {
	Observer
	Name() string
	Value() float64
	Reset()
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(FrameStats)

func (f ObserverFunc) OnFrame(st FrameStats) { f(st) }
