package tui

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/san-kum/meshgrid/internal/config"
	"github.com/san-kum/meshgrid/internal/mesh"
	"github.com/san-kum/meshgrid/internal/render"
	"github.com/san-kum/meshgrid/internal/sim"
	"github.com/san-kum/meshgrid/internal/viz"
)

const (
	hudRows     = 1
	paletteSize = 16
)

// Host drives the mesh on a raw tcell screen. The frame loop runs on the
// scheduler goroutine; input is polled on a second goroutine and only
// touches the Simulation, which is safe for concurrent use.
type Host struct {
	screen  tcell.Screen
	sim     *mesh.Simulation
	surface *screenSurface
	sched   *sim.Scheduler
	fps     int

	palette []tcell.Style
	hud     tcell.Style
	paused  tcell.Style
}

// New builds a Host on an initialised screen.
func New(screen tcell.Screen, cfg *config.Config, s *mesh.Simulation) *Host {
	theme := viz.GetTheme(cfg.Theme)
	bg := tcellColor(cfg.BackgroundColor())
	base := tcell.StyleDefault.Background(bg)

	ramp := theme.Ramp(paletteSize)
	palette := make([]tcell.Style, len(ramp))
	for i, c := range ramp {
		r, g, b := c.RGB255()
		palette[i] = base.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	}

	surf := &screenSurface{
		BrailleSurface: viz.NewBrailleSurface(0, 0, cfg.Terminal.Scale, cfg.Terminal.Gain),
		screen:         screen,
		sim:            s,
		cols:           -1,
		rows:           -1,
	}
	h := &Host{
		screen:  screen,
		sim:     s,
		surface: surf,
		fps:     cfg.FPS,
		palette: palette,
		hud:     palette[paletteSize/2],
		paused:  base.Foreground(tcell.ColorYellow),
	}
	h.sched = sim.New(s, render.New(cfg.RenderParams()), surf)
	h.sched.AddObserver(h)
	return h
}

// Scheduler exposes the frame loop, mainly for tests.
func (h *Host) Scheduler() *sim.Scheduler { return h.sched }

// Run owns the screen until ctx is cancelled or the user quits.
func (h *Host) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	h.screen.EnableMouse(tcell.MouseMotionEvents)
	h.screen.HideCursor()

	ticks, stopTicker := sim.NewTicker(h.fps)
	defer stopTicker()
	if err := h.sched.Start(ctx, ticks); err != nil {
		return err
	}
	defer h.sched.Stop()

	events := make(chan tcell.Event, 100)
	go h.poll(ctx, events)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !h.handleKey(ctx, ev, ticks) {
					return nil
				}
			case *tcell.EventMouse:
				x, y := ev.Position()
				at := h.surface.CellCenter(x, y)
				h.sim.SetPointer(at.X, at.Y)
			case *tcell.EventResize:
				// The surface picks up the new size on its next Clear.
				h.screen.Sync()
			}
		}
	}
}

// Close restores the terminal. It also unblocks the poll goroutine.
func (h *Host) Close() {
	h.sched.Stop()
	h.screen.Fini()
}

func (h *Host) poll(ctx context.Context, out chan<- tcell.Event) {
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func (h *Host) handleKey(ctx context.Context, ev *tcell.EventKey, ticks <-chan time.Time) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'r':
			h.sim.Reset()
		case ' ':
			if h.sched.Running() {
				h.sched.Stop()
				h.drawHUD(sim.FrameStats{Particles: h.sim.Len()}, true)
				h.screen.Show()
				return true
			}
			if err := h.sched.Start(ctx, ticks); err != nil {
				log.Printf("tui: resume: %v", err)
			}
		}
	}
	return true
}

// OnFrame copies the braille canvas to the screen and flushes it.
func (h *Host) OnFrame(st sim.FrameStats) {
	c := h.surface.Canvas
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r, peak := c.Cell(col, row)
			style := h.palette[0]
			if peak > 0 {
				style = h.palette[viz.Level(peak, paletteSize)]
			} else {
				r = ' '
			}
			h.screen.SetContent(col, row, r, nil, style)
		}
	}
	h.drawHUD(st, false)
	h.screen.Show()
}

func (h *Host) drawHUD(st sim.FrameStats, paused bool) {
	w, ht := h.screen.Size()
	if ht < hudRows {
		return
	}
	line := fmt.Sprintf(" meshgrid  %d particles  %d lines  gen %d  [space] pause  [r] reset  [q] quit",
		st.Particles, st.Lines, h.sim.Generation())
	style := h.hud
	if paused {
		line = " PAUSED" + line
		style = h.paused
	}
	y := ht - hudRows
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(line) {
			r = rune(line[x])
		}
		h.screen.SetContent(x, y, r, nil, style)
	}
}

func tcellColor(c render.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
