package render

import "gonum.org/v1/gonum/spatial/r2"

// Surface receives drawing commands in viewport units.
type Surface interface {
	Clear()
	FillCircle(c r2.Vec, radius float64, col Color)
	StrokeLine(a, b r2.Vec, col Color, width float64)
}

type Op int

const (
	OpClear Op = iota
	OpCircle
	OpLine
)

func (o Op) String() string {
	switch o {
	case OpClear:
		return "clear"
	case OpCircle:
		return "circle"
	case OpLine:
		return "line"
	}
	return "unknown"
}

// Command is one recorded drawing call. B is unused for circles; Radius and
// Width are set for circles and lines respectively.
type Command struct {
	Op     Op
	A, B   r2.Vec
	Radius float64
	Width  float64
	Color  Color
}

// Recorder is a Surface that keeps drawing commands since the last Clear.
// With CountOnly set it keeps the counters but not the commands.
type Recorder struct {
	CountOnly bool
	Commands  []Command

	Clears  int
	Circles int
	Lines   int
}

func (r *Recorder) Clear() {
	r.Clears++
	r.Commands = r.Commands[:0]
}

func (r *Recorder) FillCircle(c r2.Vec, radius float64, col Color) {
	r.Circles++
	if !r.CountOnly {
		r.Commands = append(r.Commands, Command{Op: OpCircle, A: c, Radius: radius, Color: col})
	}
}

func (r *Recorder) StrokeLine(a, b r2.Vec, col Color, width float64) {
	r.Lines++
	if !r.CountOnly {
		r.Commands = append(r.Commands, Command{Op: OpLine, A: a, B: b, Width: width, Color: col})
	}
}

// Calls is the total number of drawing calls seen, clears included.
func (r *Recorder) Calls() int {
	return r.Clears + r.Circles + r.Lines
}

func (r *Recorder) Reset() {
	*r = Recorder{CountOnly: r.CountOnly, Commands: r.Commands[:0]}
}
