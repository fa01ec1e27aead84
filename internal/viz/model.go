package viz

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/meshgrid/internal/config"
	"github.com/san-kum/meshgrid/internal/mesh"
	"github.com/san-kum/meshgrid/internal/metrics"
	"github.com/san-kum/meshgrid/internal/render"
	"github.com/san-kum/meshgrid/internal/sim"
)

const (
	headerRows   = 1
	footerRows   = 1
	statsWidth   = 36
	paletteSize  = 16
	graphWidth   = 26
	graphHeight  = 4
	defaultCols  = 80
	defaultRows  = 24
	settleCutoff = 0.05
)

type TickMsg time.Time

// Model is the Bubble Tea host for the mesh. The terminal area below the
// header and left of the stats panel is the drawing surface.
type Model struct {
	cfg       *config.Config
	sim       *mesh.Simulation
	renderer  *render.Renderer
	sched     *sim.Scheduler
	surface   *BrailleSurface
	disp      *metrics.Displacement
	calls     *metrics.DrawCalls
	frameTime *metrics.FrameTime
	settled   *metrics.Settled
	last      sim.FrameStats

	theme   Theme
	palette []lipgloss.Style
	keys    keyMap
	help    help.Model

	width, height int
	interval      time.Duration
	running       bool
	showStats     bool
}

// NewModel wires a Simulation to a braille surface sized for an 80x24
// terminal until the first WindowSizeMsg arrives.
func NewModel(cfg *config.Config, s *mesh.Simulation) Model {
	theme := GetTheme(cfg.Theme)
	m := Model{
		cfg:       cfg,
		sim:       s,
		renderer:  render.New(cfg.RenderParams()),
		surface:   NewBrailleSurface(0, 0, cfg.Terminal.Scale, cfg.Terminal.Gain),
		disp:      metrics.NewDisplacement(graphWidth * 4),
		calls:     metrics.NewDrawCalls(),
		frameTime: metrics.NewFrameTime(),
		settled:   metrics.NewSettled(settleCutoff),
		theme:     theme,
		palette:   theme.Palette(paletteSize),
		keys:      defaultKeyMap(),
		help:      help.New(),
		interval:  sim.Interval(cfg.FPS),
		running:   true,
		showStats: true,
	}
	m.sched = sim.New(s, m.renderer, m.surface)
	for _, o := range []sim.Metric{m.disp, m.calls, m.frameTime, m.settled} {
		m.sched.AddObserver(o)
	}
	m.resize(defaultCols, defaultRows)
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the mesh.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.MouseMsg:
		m.pointer(msg)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.running = !m.running
		case key.Matches(msg, m.keys.Reset):
			m.sim.Reset()
			for _, o := range []sim.Metric{m.disp, m.calls, m.frameTime, m.settled} {
				o.Reset()
			}
		case key.Matches(msg, m.keys.Theme):
			m.theme = NextTheme(m.theme)
			m.palette = m.theme.Palette(paletteSize)
		case key.Matches(msg, m.keys.Dedupe):
			m.renderer.SetDedupe(!m.renderer.Params().Dedupe)
		case key.Matches(msg, m.keys.Stats):
			m.showStats = !m.showStats
			m.resize(m.width, m.height)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	case TickMsg:
		if m.running {
			m.last = m.sched.Frame(time.Time(msg))
		}
		return m, m.tick()
	}
	return m, nil
}

// resize fits the canvas to the terminal and rebuilds the lattice. The
// rebuild happens on every size message, even an unchanged one.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	cols := width
	if m.showStats {
		cols -= statsWidth
	}
	rows := height - headerRows - footerRows
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	m.surface.Canvas.Resize(cols, rows)
	w, h := m.surface.Viewport()
	m.sim.Resize(w, h)
	log.Printf("viz: resized to %dx%d cells, viewport %.0fx%.0f, %d particles", cols, rows, w, h, m.sim.Len())
}

// pointer forwards mouse events that land on the canvas.
func (m *Model) pointer(msg tea.MouseMsg) {
	col, row := msg.X, msg.Y-headerRows
	if col < 0 || row < 0 || col >= m.surface.Canvas.Width || row >= m.surface.Canvas.Height {
		return
	}
	at := m.surface.CellCenter(col, row)
	m.sim.SetPointer(at.X, at.Y)
}

// View renders the TUI interface.
func (m Model) View() string {
	header := headerStyle.Foreground(m.theme.Mesh).Render("MESHGRID") +
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(fmt.Sprintf("  %d particles  %s", m.last.Particles, m.status()))

	canvas := m.canvasView()
	if m.showStats {
		canvas = lipgloss.JoinHorizontal(lipgloss.Top, canvas, m.statsView())
	}

	m.help.Styles.ShortKey = m.help.Styles.ShortKey.Foreground(m.theme.Accent)
	return header + "\n" + canvas + "\n" + m.help.View(m.keys)
}

func (m Model) status() string {
	if !m.running {
		return lipgloss.NewStyle().Foreground(m.theme.Warning).Render("PAUSED")
	}
	return "RUNNING"
}

// canvasView colours each run of equally bright cells with one style.
func (m Model) canvasView() string {
	c := m.surface.Canvas
	var b strings.Builder
	var run strings.Builder
	for row := 0; row < c.Height; row++ {
		lvl := -1
		for col := 0; col < c.Width; col++ {
			r, peak := c.Cell(col, row)
			next := 0
			if r != brailleBlank {
				next = Level(peak, paletteSize)
			}
			if next != lvl && run.Len() > 0 {
				b.WriteString(m.styleRun(lvl, run.String()))
				run.Reset()
			}
			lvl = next
			if r == brailleBlank {
				run.WriteByte(' ')
			} else {
				run.WriteRune(r)
			}
		}
		if run.Len() > 0 {
			b.WriteString(m.styleRun(lvl, run.String()))
			run.Reset()
		}
		if row < c.Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (m Model) styleRun(lvl int, s string) string {
	if lvl <= 0 {
		return s
	}
	return m.palette[lvl].Render(s)
}

func (m Model) statsView() string {
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)
	value := lipgloss.NewStyle().Foreground(m.theme.Text)
	row := func(label, v string) string {
		return labelStyle.Foreground(m.theme.Muted).Render(label) + value.Render(v) + "\n"
	}

	var s strings.Builder
	s.WriteString(GradientText("FIELD", m.theme.Mesh, m.theme.Accent) + "\n\n")
	if hist := m.disp.History(); len(hist) > 1 {
		chart := asciigraph.Plot(hist, asciigraph.Height(graphHeight), asciigraph.Width(graphWidth), asciigraph.Caption("displacement"))
		s.WriteString(lipgloss.NewStyle().Foreground(m.theme.Mesh).Render(chart) + "\n\n")
	}
	vp := m.sim.Viewport()
	ptr := m.sim.Pointer()
	s.WriteString(row("Viewport", fmt.Sprintf("%.0f x %.0f", vp.W, vp.H)))
	s.WriteString(row("Pointer", fmt.Sprintf("%.0f, %.0f", ptr.X, ptr.Y)))
	s.WriteString(row("Particles", fmt.Sprintf("%d", m.last.Particles)))
	s.WriteString(row("Lines", fmt.Sprintf("%d", m.last.Lines)))
	s.WriteString(row("Displace", fmt.Sprintf("%.2f", m.disp.Value())))
	s.WriteString(row("Frame", fmt.Sprintf("%.2fms", m.frameTime.Value())))
	s.WriteString(row("Grid gen", fmt.Sprintf("%d", m.sim.Generation())))
	s.WriteString(row("Theme", m.theme.Name))
	dedupe := "off"
	if m.renderer.Params().Dedupe {
		dedupe = "on"
	}
	s.WriteString(row("Dedupe", dedupe))
	s.WriteString("\n" + muted.Render("settled ") + ProgressBar(m.settled.Value(), 16))

	return statsStyle.BorderForeground(m.theme.Muted).Height(m.surface.Canvas.Height).Render(s.String())
}

// Run starts the Bubble Tea program on the alternate screen with
// all-motion mouse reporting.
func Run(cfg *config.Config, s *mesh.Simulation) error {
	p := tea.NewProgram(NewModel(cfg, s), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
