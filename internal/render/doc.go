// Package render draws a particle set as filled circles joined by
// distance-faded connector lines.
//
// Drawing goes through the [Surface] interface, which hosts implement for
// their backing medium (braille terminal canvas, tcell screen, raylib window,
// gg raster). [Recorder] is an in-memory Surface used for headless runs and
// export.
package render
