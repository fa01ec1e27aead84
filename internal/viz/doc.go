// Package viz hosts the particle mesh in a terminal using Bubble Tea.
//
// The mesh is drawn on a [Canvas] of braille cells, each holding a 2x4 grid
// of dots. [BrailleSurface] maps viewport units onto those dots so the same
// renderer that drives the window and image hosts can draw here too.
//
// # Key Bindings
//
//	Space - Pause/Resume the frame loop
//	R     - Rebuild the lattice
//	T     - Cycle color themes
//	D     - Toggle connector de-duplication
//	S     - Toggle the stats panel
//	?     - Show full help
//	Q     - Quit
package viz
