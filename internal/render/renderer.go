package render

import (
	"github.com/san-kum/meshgrid/internal/mesh"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	DefaultProximity = 80.0
	DefaultLineAlpha = 0.03
	DefaultLineWidth = 0.5
	DefaultColor     = "#00d4ff"
)

// Params controls the connectivity pass.
type Params struct {
	Proximity float64
	LineAlpha float64
	LineWidth float64
	Color     Color
	// Dedupe draws each undirected pair once instead of from both ends.
	Dedupe bool
}

func DefaultParams() Params {
	return Params{
		Proximity: DefaultProximity,
		LineAlpha: DefaultLineAlpha,
		LineWidth: DefaultLineWidth,
		Color:     MustParseHex(DefaultColor),
	}
}

// LineAlpha is the stroke alpha for two particles d apart: LineAlpha at
// contact, falling linearly to 0 at the proximity threshold. Coincident
// particles get no line.
func LineAlpha(d float64, p Params) float64 {
	if !(d > 0 && d < p.Proximity) {
		return 0
	}
	return p.LineAlpha * (1 - d/p.Proximity)
}

// Stats counts the drawing calls of one frame.
type Stats struct {
	Circles int
	Lines   int
}

type Renderer struct {
	params Params
}

func New(p Params) *Renderer {
	return &Renderer{params: p}
}

func (r *Renderer) Params() Params { return r.params }

func (r *Renderer) SetDedupe(on bool) { r.params.Dedupe = on }

// Draw fills each particle's circle followed by its connector lines, in set
// order. The pass compares every pair, so its cost grows quadratically with
// the particle count.
func (r *Renderer) Draw(s Surface, ps []mesh.Particle) Stats {
	var st Stats
	if s == nil {
		return st
	}
	p := r.params
	for i := range ps {
		a := ps[i]
		s.FillCircle(a.Pos, a.Radius, p.Color.WithAlpha(a.Opacity))
		st.Circles++

		j := 0
		if p.Dedupe {
			j = i + 1
		}
		for ; j < len(ps); j++ {
			if j == i {
				continue
			}
			b := ps[j]
			d := r2.Norm(r2.Sub(a.Pos, b.Pos))
			alpha := LineAlpha(d, p)
			if alpha <= 0 {
				continue
			}
			s.StrokeLine(a.Pos, b.Pos, p.Color.WithAlpha(alpha), p.LineWidth)
			st.Lines++
		}
	}
	return st
}
