package tui

import (
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/san-kum/meshgrid/internal/mesh"
	"github.com/san-kum/meshgrid/internal/viz"
)

// screenSurface is a braille surface that tracks the screen size. A size
// change is applied at the start of a frame, so the canvas and the lattice
// are only ever swapped between frames.
type screenSurface struct {
	*viz.BrailleSurface
	screen     tcell.Screen
	sim        *mesh.Simulation
	cols, rows int
}

func (s *screenSurface) Clear() {
	w, h := s.screen.Size()
	h -= hudRows
	if h < 0 {
		h = 0
	}
	if w == s.cols && h == s.rows {
		s.BrailleSurface.Clear()
		return
	}
	s.cols, s.rows = w, h
	s.Canvas.Resize(w, h)
	vw, vh := s.Viewport()
	s.sim.Resize(vw, vh)
	log.Printf("tui: screen %dx%d, viewport %.0fx%.0f, %d particles", w, h, vw, vh, s.sim.Len())
}
