// Package mesh provides the particle lattice behind the meshgrid animation.
//
// The package owns every piece of mutable animation state:
//
//   - [Particle]: one lattice point with a drawn position and a fixed anchor
//   - [NewGrid]: builds the lattice for a viewport
//   - [Apply]: per-frame repulsion from the pointer followed by homing
//   - [Simulation]: the particle set, pointer and viewport behind one lock
//
// # Example
//
//	s := mesh.New(mesh.DefaultParams(), rand.New(rand.NewSource(1)))
//	s.Resize(1200, 600) // 200 particles, pointer at (600, 300)
//	s.SetPointer(100, 80)
//	s.Step()
//
// # Thread Safety
//
// A Simulation may be fed pointer and resize events from a goroutine other
// than the one stepping it. A resize builds the new particle set off to the
// side and swaps it in, so a step never observes a partially rebuilt set.
package mesh
