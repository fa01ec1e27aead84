package sim

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/san-kum/meshgrid/internal/mesh"
	"github.com/san-kum/meshgrid/internal/render"
)

var ErrAlreadyRunning = errors.New("sim: scheduler already running")

// Scheduler drives the step→draw cycle. Hosts that own their refresh loop
// call Frame directly; others hand Start a tick channel.
type Scheduler struct {
	sim       *mesh.Simulation
	renderer  *render.Renderer
	surface   render.Surface
	observers []Observer
	buf       []mesh.Particle
	frame     uint64

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// New returns a Scheduler. A nil surface makes it inert: Frame and Start do
// nothing.
func New(s *mesh.Simulation, r *render.Renderer, surface render.Surface) *Scheduler {
	return &Scheduler{
		sim:       s,
		renderer:  r,
		surface:   surface,
		observers: make([]Observer, 0),
	}
}

func (s *Scheduler) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Scheduler) Inert() bool { return s.surface == nil || s.sim == nil || s.renderer == nil }

func (s *Scheduler) Simulation() *mesh.Simulation { return s.sim }

func (s *Scheduler) Renderer() *render.Renderer { return s.renderer }

// Frame runs one tick: clear, step every particle, then draw the stepped
// snapshot and notify observers.
func (s *Scheduler) Frame(now time.Time) FrameStats {
	if s.Inert() {
		return FrameStats{}
	}
	start := time.Now()

	s.surface.Clear()
	s.sim.Step()
	s.buf = s.sim.Snapshot(s.buf)
	drawn := s.renderer.Draw(s.surface, s.buf)

	s.frame++
	st := FrameStats{
		Frame:            s.frame,
		Time:             now,
		Elapsed:          time.Since(start),
		Particles:        len(s.buf),
		Circles:          drawn.Circles,
		Lines:            drawn.Lines,
		MeanDisplacement: mesh.MeanDisplacement(s.buf),
		Generation:       s.sim.Generation(),
	}
	for _, o := range s.observers {
		o.OnFrame(st)
	}
	return st
}

// Run ticks on every value from ticks until ctx is done, ticks is closed or
// Stop is called. It blocks. An inert scheduler returns nil immediately.
func (s *Scheduler) Run(ctx context.Context, ticks <-chan time.Time) error {
	if s.Inert() {
		return nil
	}
	stop, done, err := s.begin()
	if err != nil {
		return err
	}
	defer s.end(done)
	return s.loop(ctx, ticks, stop)
}

// Start runs the loop on its own goroutine and returns at once.
func (s *Scheduler) Start(ctx context.Context, ticks <-chan time.Time) error {
	if s.Inert() {
		return nil
	}
	stop, done, err := s.begin()
	if err != nil {
		return err
	}
	go func() {
		defer s.end(done)
		s.loop(ctx, ticks, stop)
	}()
	return nil
}

// Stop ends a running loop and waits for it to exit. Safe to call more than
// once or on a scheduler that never started.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	stop, done := s.stop, s.done
	select {
	case <-stop:
	default:
		close(stop)
	}
	s.mu.Unlock()
	<-done
}

// Wait blocks until a started loop exits.
func (s *Scheduler) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) begin() (chan struct{}, chan struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil, nil, ErrAlreadyRunning
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	return s.stop, s.done, nil
}

func (s *Scheduler) end(done chan struct{}) {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
	close(done)
}

func (s *Scheduler) loop(ctx context.Context, ticks <-chan time.Time, stop <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		case now, ok := <-ticks:
			if !ok {
				return nil
			}
			s.Frame(now)
		}
	}
}
