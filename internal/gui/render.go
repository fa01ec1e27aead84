package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/meshgrid/internal/render"
	"gonum.org/v1/gonum/spatial/r2"
)

// Surface draws into the current raylib frame. It must be used between
// BeginDrawing and EndDrawing on the window's thread.
type Surface struct {
	bg rl.Color
}

func NewSurface(bg render.Color) *Surface {
	return &Surface{bg: rlColor(bg)}
}

func (s *Surface) Clear() { rl.ClearBackground(s.bg) }

func (s *Surface) FillCircle(c r2.Vec, radius float64, col render.Color) {
	rl.DrawCircleV(vec(c), float32(radius), rlColor(col))
}

func (s *Surface) StrokeLine(a, b r2.Vec, col render.Color, width float64) {
	rl.DrawLineEx(vec(a), vec(b), float32(width), rlColor(col))
}

func vec(v r2.Vec) rl.Vector2 { return rl.NewVector2(float32(v.X), float32(v.Y)) }

func rlColor(c render.Color) rl.Color {
	n := c.NRGBA()
	return rl.NewColor(n.R, n.G, n.B, n.A)
}
