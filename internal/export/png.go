package export

import (
	"image"
	"io"

	"github.com/fogleman/gg"
	"github.com/san-kum/meshgrid/internal/render"
	"gonum.org/v1/gonum/spatial/r2"
)

// PNGSurface rasterises draw commands with gg. Viewport units map 1:1 to
// pixels.
type PNGSurface struct {
	dc *gg.Context
	bg render.Color
}

func NewPNGSurface(width, height int, bg render.Color) *PNGSurface {
	return &PNGSurface{dc: gg.NewContext(width, height), bg: bg}
}

func (s *PNGSurface) Clear() {
	setColor(s.dc, s.bg.WithAlpha(1))
	s.dc.Clear()
}

func (s *PNGSurface) FillCircle(c r2.Vec, radius float64, col render.Color) {
	setColor(s.dc, col)
	s.dc.DrawCircle(c.X, c.Y, radius)
	s.dc.Fill()
}

func (s *PNGSurface) StrokeLine(a, b r2.Vec, col render.Color, width float64) {
	setColor(s.dc, col)
	s.dc.SetLineWidth(width)
	s.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	s.dc.Stroke()
}

// Image returns the backing image. It is overwritten by the next frame.
func (s *PNGSurface) Image() image.Image { return s.dc.Image() }

func (s *PNGSurface) SavePNG(path string) error { return s.dc.SavePNG(path) }

func (s *PNGSurface) EncodePNG(w io.Writer) error { return s.dc.EncodePNG(w) }

func setColor(dc *gg.Context, c render.Color) {
	dc.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, c.A)
}
