package sim

import (
	"time"

	"github.com/charmbracelet/harmonica"
)

const DefaultFPS = 60

// Interval converts a target frame rate into a tick period. Non-positive
// rates fall back to DefaultFPS.
func Interval(fps int) time.Duration {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Duration(harmonica.FPS(fps) * float64(time.Second))
}

// NewTicker returns a tick channel at the given frame rate and a func that
// stops it. The channel is never closed.
func NewTicker(fps int) (<-chan time.Time, func()) {
	t := time.NewTicker(Interval(fps))
	return t.C, t.Stop
}
