package viz

import (
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a braille dot grid where every dot carries an intensity in
// [0, 1]. Width and Height are in cells; the dot grid is Width*2 x Height*4.
type Canvas struct {
	Width, Height int
	dots          []float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the grid and clears it.
func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.Width, c.Height = w, h
	n := w * 2 * h * 4
	if cap(c.dots) >= n {
		c.dots = c.dots[:n]
		c.Clear()
		return
	}
	c.dots = make([]float64, n)
}

// DotSize is the grid size in sub-pixels.
func (c *Canvas) DotSize() (int, int) {
	return c.Width * 2, c.Height * 4
}

func (c *Canvas) index(x, y int) int {
	if x < 0 || y < 0 {
		return -1
	}
	dw, dh := c.DotSize()
	if x >= dw || y >= dh {
		return -1
	}
	return y*dw + x
}

// Set lights a dot at full intensity.
func (c *Canvas) Set(x, y int) {
	if i := c.index(x, y); i >= 0 {
		c.dots[i] = 1
	}
}

// Unset clears a dot
func (c *Canvas) Unset(x, y int) {
	if i := c.index(x, y); i >= 0 {
		c.dots[i] = 0
	}
}

// Blend composites alpha over a dot (source-over on a single channel).
func (c *Canvas) Blend(x, y int, alpha float64) {
	if !(alpha > 0) {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	if i := c.index(x, y); i >= 0 {
		c.dots[i] += alpha * (1 - c.dots[i])
	}
}

func (c *Canvas) At(x, y int) float64 {
	if i := c.index(x, y); i >= 0 {
		return c.dots[i]
	}
	return 0
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.dots {
		c.dots[i] = 0
	}
}

// DrawLine draws a full-intensity line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	c.BlendLine(x0, y0, x1, y1, 1)
}

// BlendLine composites alpha along a Bresenham line.
func (c *Canvas) BlendLine(x0, y0, x1, y1 int, alpha float64) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Blend(x0, y0, alpha)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Cell returns the braille rune for a cell and the brightest dot in it.
func (c *Canvas) Cell(col, row int) (rune, float64) {
	r := rune(brailleBlank)
	peak := 0.0
	for subY := 0; subY < 4; subY++ {
		for subX := 0; subX < 2; subX++ {
			v := c.At(col*2+subX, row*4+subY)
			if v <= 0 {
				continue
			}
			r |= rune(pixelMap[subY][subX])
			if v > peak {
				peak = v
			}
		}
	}
	return r, peak
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r, _ := c.Cell(col, row)
			b.WriteRune(r)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
