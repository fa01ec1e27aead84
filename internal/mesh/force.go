package mesh

import "gonum.org/v1/gonum/spatial/r2"

// RepulsionMagnitude is the linear falloff of the pointer's push: 1 at the
// pointer, 0 at the influence radius. Zero, non-finite and out-of-range
// distances give 0, since a zero distance has no direction to push along.
func RepulsionMagnitude(dist float64, p Params) float64 {
	if !(dist > 0 && dist < p.InfluenceRadius) {
		return 0
	}
	return (p.InfluenceRadius - dist) / p.InfluenceRadius
}

// Apply advances one particle by one frame: repulsion away from the pointer,
// then homing toward the anchor. Both act on the same position, so homing
// partly undoes this frame's repulsion.
func Apply(pt *Particle, pointer r2.Vec, p Params) {
	d := r2.Sub(pointer, pt.Pos)
	if f := RepulsionMagnitude(r2.Norm(d), p); f > 0 {
		pt.Pos = r2.Sub(pt.Pos, r2.Scale(f*p.Repulsion, d))
	}
	pt.Pos = r2.Add(pt.Pos, r2.Scale(p.Damping, r2.Sub(pt.Base, pt.Pos)))
}
