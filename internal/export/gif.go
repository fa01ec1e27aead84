package export

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/meshgrid/internal/render"
)

const paletteSize = 256

// GIF accumulates frames for an animated GIF. Frames are quantised to a
// ramp running from the background to the mesh colour.
type GIF struct {
	palette color.Palette
	delay   int
	anim    gif.GIF
}

// NewGIF builds the palette and sets the per-frame delay from fps.
func NewGIF(bg, fg render.Color, fps int) *GIF {
	if fps <= 0 {
		fps = 30
	}
	delay := 100 / fps
	if delay < 2 {
		// Most decoders clamp smaller delays to 10.
		delay = 2
	}
	return &GIF{palette: Ramp(bg, fg, paletteSize), delay: delay}
}

// Ramp blends from bg to fg in n RGB steps.
func Ramp(bg, fg render.Color, n int) color.Palette {
	if n < 2 {
		n = 2
	}
	from := colorful.Color{R: float64(bg.R) / 255, G: float64(bg.G) / 255, B: float64(bg.B) / 255}
	to := colorful.Color{R: float64(fg.R) / 255, G: float64(fg.G) / 255, B: float64(fg.B) / 255}
	p := make(color.Palette, n)
	for i := range p {
		r, g, b := from.BlendRgb(to, float64(i)/float64(n-1)).Clamped().RGB255()
		p[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return p
}

// AddFrame quantises img onto the palette.
func (g *GIF) AddFrame(img image.Image) {
	b := img.Bounds()
	frame := image.NewPaletted(b, g.palette)
	draw.Draw(frame, b, img, b.Min, draw.Src)
	g.anim.Image = append(g.anim.Image, frame)
	g.anim.Delay = append(g.anim.Delay, g.delay)
}

func (g *GIF) Len() int { return len(g.anim.Image) }

func (g *GIF) Encode(w io.Writer) error {
	if len(g.anim.Image) == 0 {
		return ErrNoFrames
	}
	return gif.EncodeAll(w, &g.anim)
}

func (g *GIF) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := g.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
