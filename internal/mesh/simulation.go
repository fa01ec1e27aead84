package mesh

import (
	"math/rand"
	"sync"
	"time"

	"gonum.org/v1/gonum/spatial/r2"
)

// Simulation owns the particle set, the pointer and the viewport.
type Simulation struct {
	mu         sync.RWMutex
	params     Params
	rnd        RandSource
	viewport   Viewport
	pointer    r2.Vec
	particles  []Particle
	generation uint64
	steps      uint64
}

// New returns an empty Simulation. Call Resize to populate it. A nil rnd is
// replaced by a time-seeded source.
func New(params Params, rnd RandSource) *Simulation {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Simulation{
		params:    params,
		rnd:       rnd,
		particles: []Particle{},
	}
}

// Resize rebuilds the lattice for a w×h viewport and re-centres the pointer.
// The previous particles are dropped, not migrated.
func (s *Simulation) Resize(w, h float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rebuild(Viewport{W: w, H: h})
}

// Reset rebuilds the lattice for the current viewport.
func (s *Simulation) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rebuild(s.viewport)
}

// SetParams validates p, installs it and rebuilds the lattice.
func (s *Simulation) SetParams(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = p
	s.rebuild(s.viewport)
	return nil
}

// rebuild must be called with mu held.
func (s *Simulation) rebuild(vp Viewport) {
	next := NewGrid(vp, s.params, s.rnd)
	s.viewport = vp
	s.particles = next
	s.pointer = vp.Center()
	s.generation++
}

// SetPointer records the latest pointer position. No validation is done;
// off-surface coordinates simply repel nothing.
func (s *Simulation) SetPointer(x, y float64) {
	s.mu.Lock()
	s.pointer = r2.Vec{X: x, Y: y}
	s.mu.Unlock()
}

func (s *Simulation) Pointer() r2.Vec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pointer
}

func (s *Simulation) Viewport() Viewport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewport
}

func (s *Simulation) Params() Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params
}

// Generation increments every time the particle set is replaced.
func (s *Simulation) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Steps counts calls to Step since construction.
func (s *Simulation) Steps() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.steps
}

func (s *Simulation) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.particles)
}

// Step applies the force model to every particle in lattice order.
func (s *Simulation) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.particles {
		Apply(&s.particles[i], s.pointer, s.params)
	}
	s.steps++
}

// Snapshot copies the particle set into dst, reusing its capacity.
func (s *Simulation) Snapshot(dst []Particle) []Particle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(dst[:0], s.particles...)
}

// Particles returns a copy of the particle set.
func (s *Simulation) Particles() []Particle {
	return s.Snapshot(nil)
}

// MeanDisplacement averages |Pos-Base| over the set; 0 when empty.
func (s *Simulation) MeanDisplacement() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return MeanDisplacement(s.particles)
}

func MeanDisplacement(ps []Particle) float64 {
	if len(ps) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range ps {
		sum += p.Displacement()
	}
	return sum / float64(len(ps))
}
