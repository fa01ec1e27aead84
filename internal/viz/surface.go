package viz

import (
	"math"

	"github.com/san-kum/meshgrid/internal/render"
	"gonum.org/v1/gonum/spatial/r2"
)

// BrailleSurface draws viewport units onto a Canvas, Scale units per dot.
// Alphas are multiplied by Gain so that faint connectors survive the
// coarse terminal resolution.
type BrailleSurface struct {
	Canvas *Canvas
	Scale  float64
	Gain   float64
}

func NewBrailleSurface(cols, rows int, scale, gain float64) *BrailleSurface {
	if !(scale > 0) {
		scale = 1
	}
	if !(gain > 0) {
		gain = 1
	}
	return &BrailleSurface{Canvas: NewCanvas(cols, rows), Scale: scale, Gain: gain}
}

// Viewport is the canvas extent in viewport units.
func (s *BrailleSurface) Viewport() (w, h float64) {
	dw, dh := s.Canvas.DotSize()
	return float64(dw) * s.Scale, float64(dh) * s.Scale
}

// CellCenter maps a terminal cell to viewport units.
func (s *BrailleSurface) CellCenter(col, row int) r2.Vec {
	return r2.Vec{
		X: (float64(col)*2 + 1) * s.Scale,
		Y: (float64(row)*4 + 2) * s.Scale,
	}
}

func (s *BrailleSurface) Clear() { s.Canvas.Clear() }

func (s *BrailleSurface) FillCircle(c r2.Vec, radius float64, col render.Color) {
	x, y := s.dot(c)
	rd := int(radius / s.Scale)
	alpha := col.A * s.Gain
	for dy := -rd; dy <= rd; dy++ {
		for dx := -rd; dx <= rd; dx++ {
			if dx*dx+dy*dy <= rd*rd {
				s.Canvas.Blend(x+dx, y+dy, alpha)
			}
		}
	}
}

func (s *BrailleSurface) StrokeLine(a, b r2.Vec, col render.Color, width float64) {
	x0, y0 := s.dot(a)
	x1, y1 := s.dot(b)
	s.Canvas.BlendLine(x0, y0, x1, y1, col.A*s.Gain)
}

func (s *BrailleSurface) dot(v r2.Vec) (int, int) {
	return int(math.Floor(v.X / s.Scale)), int(math.Floor(v.Y / s.Scale))
}
