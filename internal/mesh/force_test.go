package mesh

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestRepulsionMagnitude(t *testing.T) {
	p := DefaultParams()

	if m := RepulsionMagnitude(p.InfluenceRadius, p); m != 0 {
		t.Errorf("expected 0 at influence radius, got %f", m)
	}
	if m := RepulsionMagnitude(p.InfluenceRadius+1, p); m != 0 {
		t.Errorf("expected 0 beyond influence radius, got %f", m)
	}
	if m := RepulsionMagnitude(0, p); m != 0 {
		t.Errorf("expected 0 at zero distance, got %f", m)
	}
	if m := RepulsionMagnitude(math.NaN(), p); m != 0 {
		t.Errorf("expected 0 for NaN distance, got %f", m)
	}

	prev := 0.0
	for dist := p.InfluenceRadius - 1; dist > 0; dist -= 1 {
		m := RepulsionMagnitude(dist, p)
		if m <= prev {
			t.Fatalf("expected magnitude to grow as distance shrinks: %f at %f, prev %f", m, dist, prev)
		}
		prev = m
	}
	if m := RepulsionMagnitude(1e-9, p); math.Abs(m-1) > 1e-9 {
		t.Errorf("expected magnitude near 1 next to the pointer, got %f", m)
	}
}

func TestApplyRepulsionThenHoming(t *testing.T) {
	p := DefaultParams()
	pt := Particle{Pos: r2.Vec{X: 100, Y: 100}, Base: r2.Vec{X: 100, Y: 100}}
	pointer := r2.Vec{X: 200, Y: 100}

	Apply(&pt, pointer, p)

	// dist 100 → force 0.5; x -= 100*0.5*0.02 = 1 → 99; homing: 99 + (100-99)*0.05
	want := 99 + 0.05
	if math.Abs(pt.Pos.X-want) > 1e-12 {
		t.Errorf("expected x=%f, got %f", want, pt.Pos.X)
	}
	if pt.Pos.Y != 100 {
		t.Errorf("expected y unchanged, got %f", pt.Pos.Y)
	}
	if pt.Base != (r2.Vec{X: 100, Y: 100}) {
		t.Errorf("base moved to %v", pt.Base)
	}
}

func TestApplyCoincidentPointer(t *testing.T) {
	p := DefaultParams()
	pt := Particle{Pos: r2.Vec{X: 50, Y: 50}, Base: r2.Vec{X: 40, Y: 50}}

	Apply(&pt, pt.Pos, p)

	if math.IsNaN(pt.Pos.X) || math.IsNaN(pt.Pos.Y) {
		t.Fatalf("non-finite position %v", pt.Pos)
	}
	// homing only
	if want := 50 + (40-50)*p.Damping; math.Abs(pt.Pos.X-want) > 1e-12 {
		t.Errorf("expected x=%f, got %f", want, pt.Pos.X)
	}
}

func TestApplyConvergesWithoutOvershoot(t *testing.T) {
	p := DefaultParams()
	base := r2.Vec{X: 300, Y: 300}
	pt := Particle{Pos: r2.Vec{X: 330, Y: 260}, Base: base}
	pointer := r2.Vec{X: 0, Y: 0} // >= 200 from base and from every position visited

	prev := pt.Displacement()
	for i := 0; i < 500; i++ {
		Apply(&pt, pointer, p)
		d := pt.Displacement()
		if d > prev {
			t.Fatalf("step %d: distance grew from %f to %f", i, prev, d)
		}
		if pt.Pos.X < base.X {
			t.Fatalf("step %d: overshot anchor on x (%f < %f)", i, pt.Pos.X, base.X)
		}
		prev = d
	}
	if prev > 0.01 {
		t.Errorf("expected convergence within 0.01, got %f", prev)
	}
}

func TestApplyGeometricDecay(t *testing.T) {
	p := DefaultParams()
	pt := Particle{Pos: r2.Vec{X: 10, Y: 0}, Base: r2.Vec{}}
	far := r2.Vec{X: 1e6, Y: 1e6}

	Apply(&pt, far, p)

	if want := 10 * (1 - p.Damping); math.Abs(pt.Pos.X-want) > 1e-12 {
		t.Errorf("expected %f after one frame, got %f", want, pt.Pos.X)
	}
}
