package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	DefaultCellSize        = 60.0
	DefaultInfluenceRadius = 200.0
	DefaultRepulsion       = 0.02
	DefaultDamping         = 0.05
	DefaultRadiusMin       = 0.5
	DefaultRadiusMax       = 2.0
	DefaultOpacityMin      = 0.05
	DefaultOpacityMax      = 0.35

	// maxCells caps one lattice axis so absurd viewports cannot exhaust memory.
	maxCells = 4096
)

// Params tunes lattice layout and the force model.
type Params struct {
	CellSize        float64
	InfluenceRadius float64
	Repulsion       float64
	Damping         float64
	RadiusMin       float64
	RadiusMax       float64
	OpacityMin      float64
	OpacityMax      float64
}

func DefaultParams() Params {
	return Params{
		CellSize:        DefaultCellSize,
		InfluenceRadius: DefaultInfluenceRadius,
		Repulsion:       DefaultRepulsion,
		Damping:         DefaultDamping,
		RadiusMin:       DefaultRadiusMin,
		RadiusMax:       DefaultRadiusMax,
		OpacityMin:      DefaultOpacityMin,
		OpacityMax:      DefaultOpacityMax,
	}
}

// Validate reports the first parameter that would produce a degenerate or
// non-finite lattice. The returned error wraps ErrInvalidParams.
func (p Params) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"cell size", p.CellSize},
		{"influence radius", p.InfluenceRadius},
		{"radius min", p.RadiusMin},
		{"opacity min", p.OpacityMin},
	}
	for _, f := range positive {
		if !(f.v > 0) || math.IsInf(f.v, 0) {
			return &ParamError{Field: f.name, Value: f.v, Message: "must be positive and finite"}
		}
	}
	if p.Repulsion < 0 || math.IsNaN(p.Repulsion) {
		return &ParamError{Field: "repulsion", Value: p.Repulsion, Message: "must not be negative"}
	}
	if !(p.Damping >= 0 && p.Damping <= 1) {
		return &ParamError{Field: "damping", Value: p.Damping, Message: "must be within [0, 1]"}
	}
	if !(p.RadiusMax >= p.RadiusMin) || math.IsInf(p.RadiusMax, 0) {
		return &ParamError{Field: "radius max", Value: p.RadiusMax, Message: "must be finite and not below radius min"}
	}
	if !(p.OpacityMax >= p.OpacityMin && p.OpacityMax <= 1) {
		return &ParamError{Field: "opacity max", Value: p.OpacityMax, Message: "must be within [opacity min, 1]"}
	}
	return nil
}

// Particle is one lattice point. Base is fixed at creation; only Pos moves.
type Particle struct {
	Pos     r2.Vec
	Base    r2.Vec
	Radius  float64
	Opacity float64
}

// Displacement is the distance between the drawn position and the anchor.
func (p Particle) Displacement() float64 {
	return r2.Norm(r2.Sub(p.Pos, p.Base))
}

// Viewport is the drawing surface size in device-independent units.
type Viewport struct {
	W, H float64
}

func (v Viewport) Center() r2.Vec {
	return r2.Vec{X: v.W / 2, Y: v.H / 2}
}

// Dims returns the lattice columns and rows for the given cell size.
// Sizes smaller than one cell, negative sizes and NaN all yield zero.
func (v Viewport) Dims(cellSize float64) (cols, rows int) {
	return cells(v.W, cellSize), cells(v.H, cellSize)
}

func cells(extent, cellSize float64) int {
	if !(cellSize > 0) {
		return 0
	}
	n := extent / cellSize
	if !(n >= 1) || math.IsInf(n, 0) {
		return 0
	}
	if n > maxCells {
		return maxCells
	}
	return int(math.Floor(n))
}

// RandSource supplies uniform values in [0, 1). *math/rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}
