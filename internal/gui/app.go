package gui

import (
	"fmt"
	"log"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/meshgrid/internal/config"
	"github.com/san-kum/meshgrid/internal/mesh"
	"github.com/san-kum/meshgrid/internal/metrics"
	"github.com/san-kum/meshgrid/internal/render"
	"github.com/san-kum/meshgrid/internal/sim"
)

// HUD colours
var (
	ColSelect  = rl.NewColor(230, 241, 255, 255)
	ColText    = rl.NewColor(140, 150, 165, 255)
	ColTextDim = rl.NewColor(60, 70, 85, 255)
	ColAccent  = rl.NewColor(0, 212, 255, 255)
)

const (
	defaultWidth  = 1280
	defaultHeight = 720
)

type App struct {
	Sim       *mesh.Simulation
	Sched     *sim.Scheduler
	Surface   *Surface
	Disp      *metrics.Displacement
	Frame     *metrics.FrameTime
	Last      sim.FrameStats
	Running   bool
	ShowHUD   bool
	Font      rl.Font
	width     int
	height    int
	hasCursor bool
}

// initWindow opens a resizable window and caps the frame rate. The exit key
// is disabled so Q and Esc are handled by Update.
// openWindow and closeWindow are swapped out by tests that run without a
// display.
var (
	openWindow  = initWindow
	closeWindow = rl.CloseWindow
)

// initWindow reports false when no window could be created, e.g. with no
// display to attach to.
func initWindow(fps int) bool {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(defaultWidth, defaultHeight, "meshgrid")
	if !rl.IsWindowReady() {
		return false
	}
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
	return true
}

// loadFont loads Liberation Mono when it is installed and falls back to the
// raylib default font otherwise.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(cfg *config.Config, s *mesh.Simulation) *App {
	surf := NewSurface(cfg.BackgroundColor())
	a := &App{
		Sim:     s,
		Surface: surf,
		Disp:    metrics.NewDisplacement(metrics.DefaultHistory * 2),
		Frame:   metrics.NewFrameTime(),
		Running: true,
		ShowHUD: true,
		Font:    loadFont(),
	}
	a.Sched = sim.New(s, render.New(cfg.RenderParams()), surf)
	a.Sched.AddObserver(a.Disp)
	a.Sched.AddObserver(a.Frame)
	a.resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	return a
}

// Run opens the window and blocks until it is closed. raylib owns the
// refresh loop here, so the scheduler is driven one Frame per redraw.
// Without a display Run logs and returns nil having drawn nothing.
func Run(cfg *config.Config, s *mesh.Simulation) error {
	if !openWindow(cfg.FPS) {
		log.Printf("gui: no display, window not created")
		return nil
	}
	defer closeWindow()
	app := NewApp(cfg, s)
	defer rl.UnloadFont(app.Font)
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

func (a *App) resize(w, h int) {
	a.width, a.height = w, h
	a.Sim.Resize(float64(w), float64(h))
	log.Printf("gui: window %dx%d, %d particles", w, h, a.Sim.Len())
}

// Update handles input. It returns false when the user quits.
func (a *App) Update() bool {
	if rl.IsWindowResized() {
		a.resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	}

	if rl.IsCursorOnScreen() {
		d := rl.GetMouseDelta()
		if d.X != 0 || d.Y != 0 || !a.hasCursor {
			p := rl.GetMousePosition()
			a.Sim.SetPointer(float64(p.X), float64(p.Y))
			a.hasCursor = true
		}
	}

	switch {
	case rl.IsKeyPressed(rl.KeyQ), rl.IsKeyPressed(rl.KeyEscape):
		return false
	case rl.IsKeyPressed(rl.KeySpace):
		a.Running = !a.Running
	case rl.IsKeyPressed(rl.KeyR):
		a.Sim.Reset()
		a.Disp.Reset()
	case rl.IsKeyPressed(rl.KeyD):
		r := a.Sched.Renderer()
		r.SetDedupe(!r.Params().Dedupe)
	case rl.IsKeyPressed(rl.KeyH):
		a.ShowHUD = !a.ShowHUD
	}
	return true
}

func (a *App) Draw() {
	rl.BeginDrawing()
	if a.Running {
		a.Last = a.Sched.Frame(time.Now())
	} else {
		// Redraw the held frame without stepping.
		a.Surface.Clear()
		a.Sched.Renderer().Draw(a.Surface, a.Sim.Particles())
	}
	if a.ShowHUD {
		a.DrawHUD()
	}
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	a.drawText("meshgrid", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %d particles  %d lines", a.Last.Particles, a.Last.Lines), 160, 34, 16, ColText)

	status := "RUNNING"
	col := ColSelect
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, a.width-130, 30, 16, col)

	a.DrawTelemetry()

	a.drawText("[SPACE] PAUSE  [R] RESET  [D] DEDUPE  [H] HUD  [Q] QUIT", a.width-580, a.height-40, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS  %.2fms", int32(rl.GetFPS()), a.Frame.Value()), 30, a.height-40, 14, ColTextDim)
}

// DrawTelemetry plots the mean displacement history as a line strip.
func (a *App) DrawTelemetry() {
	hist := a.Disp.History()
	if len(hist) < 2 {
		return
	}

	rectX, rectY := 30, a.height-120
	width, height := 400, 60

	minVal, maxVal := hist[0], hist[0]
	for _, v := range hist {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(hist))
	for i, val := range hist {
		px := float32(rectX) + (float32(i)/float32(len(hist)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("disp %.2f", hist[len(hist)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
