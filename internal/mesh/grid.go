package mesh

import "gonum.org/v1/gonum/spatial/r2"

// NewGrid lays out cols*rows particles at lattice cell centres, column by
// column. Radius and opacity are drawn independently from rnd within the
// bounds in p. A viewport smaller than one cell on either axis yields an
// empty set.
func NewGrid(vp Viewport, p Params, rnd RandSource) []Particle {
	cols, rows := vp.Dims(p.CellSize)
	if cols == 0 || rows == 0 {
		return []Particle{}
	}

	stepX := vp.W / float64(cols)
	stepY := vp.H / float64(rows)

	particles := make([]Particle, 0, cols*rows)
	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			at := r2.Vec{
				X: (float64(i) + 0.5) * stepX,
				Y: (float64(j) + 0.5) * stepY,
			}
			particles = append(particles, Particle{
				Pos:     at,
				Base:    at,
				Radius:  lerp(p.RadiusMin, p.RadiusMax, rnd.Float64()),
				Opacity: lerp(p.OpacityMin, p.OpacityMax, rnd.Float64()),
			})
		}
	}
	return particles
}

func lerp(lo, hi, t float64) float64 {
	return lo + t*(hi-lo)
}
