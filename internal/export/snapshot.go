package export

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/san-kum/meshgrid/internal/mesh"
	"github.com/san-kum/meshgrid/internal/render"
	"github.com/san-kum/meshgrid/internal/sim"
)

var (
	ErrUnknownFormat = errors.New("export: unknown format")
	ErrEmptyViewport = errors.New("export: empty viewport")
	ErrNoFrames      = errors.New("export: no frames")
)

type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
	FormatGIF Format = "gif"
)

// FormatOf picks the output format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".svg":
		return FormatSVG, nil
	case ".gif":
		return FormatGIF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

type Options struct {
	Frames     int
	FPS        int
	Background render.Color
}

// Snapshot runs opts.Frames ticks of s and writes the result to path. PNG
// and SVG keep the last frame; GIF keeps every frame. With Frames == 0 the
// current particle set is drawn once without stepping. The viewport must
// already be sized.
func Snapshot(path string, s *mesh.Simulation, r *render.Renderer, opts Options) (sim.FrameStats, error) {
	format, err := FormatOf(path)
	if err != nil {
		return sim.FrameStats{}, err
	}
	vp := s.Viewport()
	w, h := int(math.Ceil(vp.W)), int(math.Ceil(vp.H))
	if w <= 0 || h <= 0 {
		return sim.FrameStats{}, fmt.Errorf("%w: %vx%v", ErrEmptyViewport, vp.W, vp.H)
	}

	var (
		surface render.Surface
		write   func() error
		anim    *GIF
		img     *PNGSurface
	)
	switch format {
	case FormatSVG:
		rec := &render.Recorder{}
		surface = rec
		write = func() error {
			return os.WriteFile(path, []byte(SVG(rec, vp.W, vp.H, opts.Background)), 0o644)
		}
	case FormatPNG:
		img = NewPNGSurface(w, h, opts.Background)
		surface = img
		write = func() error { return img.SavePNG(path) }
	case FormatGIF:
		img = NewPNGSurface(w, h, opts.Background)
		anim = NewGIF(opts.Background, r.Params().Color, opts.FPS)
		surface = img
		write = func() error { return anim.Save(path) }
	}

	sched := sim.New(s, r, surface)
	if anim != nil {
		sched.AddObserver(sim.ObserverFunc(func(sim.FrameStats) { anim.AddFrame(img.Image()) }))
	}

	var last sim.FrameStats
	if opts.Frames <= 0 {
		surface.Clear()
		ps := s.Particles()
		drawn := r.Draw(surface, ps)
		last = sim.FrameStats{
			Time:             time.Now(),
			Particles:        len(ps),
			Circles:          drawn.Circles,
			Lines:            drawn.Lines,
			MeanDisplacement: mesh.MeanDisplacement(ps),
			Generation:       s.Generation(),
		}
		if anim != nil {
			anim.AddFrame(img.Image())
		}
	} else {
		dt := sim.Interval(opts.FPS)
		now := time.Now()
		for i := 0; i < opts.Frames; i++ {
			last = sched.Frame(now.Add(time.Duration(i) * dt))
		}
	}

	if err := write(); err != nil {
		return last, fmt.Errorf("export %s: %w", path, err)
	}
	return last, nil
}
