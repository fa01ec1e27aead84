package mesh

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/spatial/r2"
)

type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func TestNewGridCount(t *testing.T) {
	tests := []struct {
		name     string
		w, h     float64
		expected int
	}{
		{"wide", 1200, 600, 200},
		{"exact cells", 120, 60, 2},
		{"fractional", 179.9, 119.9, 2},
		{"single cell", 60, 60, 1},
		{"too narrow", 59.9, 600, 0},
		{"too short", 1200, 59.9, 0},
		{"zero", 0, 0, 0},
		{"negative", -600, 600, 0},
		{"nan", math.NaN(), 600, 0},
		{"inf", math.Inf(1), 600, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := NewGrid(Viewport{W: tt.w, H: tt.h}, DefaultParams(), constSource(0.5))
			if len(ps) != tt.expected {
				t.Errorf("expected %d particles, got %d", tt.expected, len(ps))
			}
			if ps == nil {
				t.Error("expected empty slice, got nil")
			}
		})
	}
}

func TestNewGridLayout(t *testing.T) {
	ps := NewGrid(Viewport{W: 130, H: 70}, DefaultParams(), constSource(0))

	// 2 cols of 65, 1 row of 70
	want := []Particle{
		{Pos: r2.Vec{X: 32.5, Y: 35}, Base: r2.Vec{X: 32.5, Y: 35}, Radius: DefaultRadiusMin, Opacity: DefaultOpacityMin},
		{Pos: r2.Vec{X: 97.5, Y: 35}, Base: r2.Vec{X: 97.5, Y: 35}, Radius: DefaultRadiusMin, Opacity: DefaultOpacityMin},
	}
	if diff := cmp.Diff(want, ps); diff != "" {
		t.Errorf("layout mismatch (-want +got):\n%s", diff)
	}
}

func TestNewGridColumnMajorOrder(t *testing.T) {
	ps := NewGrid(Viewport{W: 180, H: 120}, DefaultParams(), constSource(0.5))
	if len(ps) != 6 {
		t.Fatalf("expected 6 particles, got %d", len(ps))
	}
	// i outer, j inner
	if ps[0].Base.X != ps[1].Base.X {
		t.Errorf("expected first two particles to share a column, got x=%f and x=%f", ps[0].Base.X, ps[1].Base.X)
	}
	if ps[1].Base.Y <= ps[0].Base.Y {
		t.Errorf("expected rows to increase within a column")
	}
	if ps[2].Base.X <= ps[1].Base.X {
		t.Errorf("expected third particle to start the next column")
	}
}

func TestNewGridAttributeBounds(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	p := DefaultParams()
	ps := NewGrid(Viewport{W: 1920, H: 1080}, p, rnd)

	distinct := make(map[float64]bool)
	for i, pt := range ps {
		if pt.Radius < p.RadiusMin || pt.Radius > p.RadiusMax {
			t.Fatalf("particle %d radius %f out of [%f, %f]", i, pt.Radius, p.RadiusMin, p.RadiusMax)
		}
		if pt.Opacity < p.OpacityMin || pt.Opacity > p.OpacityMax {
			t.Fatalf("particle %d opacity %f out of [%f, %f]", i, pt.Opacity, p.OpacityMin, p.OpacityMax)
		}
		if pt.Pos != pt.Base {
			t.Fatalf("particle %d created away from its anchor", i)
		}
		distinct[pt.Radius] = true
	}
	if len(distinct) < 2 {
		t.Error("expected randomized radii")
	}
}

func TestViewportDims(t *testing.T) {
	cols, rows := Viewport{W: 1200, H: 600}.Dims(60)
	if cols != 20 || rows != 10 {
		t.Errorf("expected 20x10, got %dx%d", cols, rows)
	}
	cols, rows = Viewport{W: 1200, H: 600}.Dims(0)
	if cols != 0 || rows != 0 {
		t.Errorf("expected 0x0 for zero cell size, got %dx%d", cols, rows)
	}
	cols, _ = Viewport{W: 1e300, H: 600}.Dims(60)
	if cols != maxCells {
		t.Errorf("expected cap %d, got %d", maxCells, cols)
	}
	cols, rows = Viewport{W: 1e9, H: 120}.Dims(60)
	if cols != maxCells || rows != 2 {
		t.Errorf("expected %dx2 for a capped axis, got %dx%d", maxCells, cols, rows)
	}
}
