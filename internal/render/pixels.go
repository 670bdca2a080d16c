// Package render rasterizes dot snapshots into RGBA pixel buffers that the
// ebiten front end uploads and the tests inspect directly.
package render

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"dotlab/internal/material"
	"dotlab/internal/sims/dots"
)

var (
	// Background is the arena colour behind the dots.
	Background = color.RGBA{R: 12, G: 12, B: 18, A: 255}
	// SelectionRing outlines the selected dot.
	SelectionRing = color.RGBA{R: 255, G: 255, B: 255, A: 255}

	glowTint = colorful.Color{R: 1, G: 0.95, B: 0.8}
)

// Canvas is an RGBA pixel buffer sized to the arena, four bytes per pixel.
type Canvas struct {
	W, H int
	Pix  []byte
}

// NewCanvas allocates a w×h canvas.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the buffer when the dimensions change.
func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.W, c.H = w, h
	if need := w * h * 4; cap(c.Pix) >= need {
		c.Pix = c.Pix[:need]
	} else {
		c.Pix = make([]byte, need)
	}
}

// Clear fills every pixel with col.
func (c *Canvas) Clear(col color.RGBA) {
	for base := 0; base+3 < len(c.Pix); base += 4 {
		c.Pix[base+0] = col.R
		c.Pix[base+1] = col.G
		c.Pix[base+2] = col.B
		c.Pix[base+3] = col.A
	}
}

// At returns the pixel at (x, y), or transparent black outside the canvas.
func (c *Canvas) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= c.W || y >= c.H {
		return color.RGBA{}
	}
	base := (y*c.W + x) * 4
	return color.RGBA{R: c.Pix[base], G: c.Pix[base+1], B: c.Pix[base+2], A: c.Pix[base+3]}
}

func (c *Canvas) set(x, y int, col color.RGBA) {
	if x < 0 || y < 0 || x >= c.W || y >= c.H {
		return
	}
	base := (y*c.W + x) * 4
	c.Pix[base+0] = col.R
	c.Pix[base+1] = col.G
	c.Pix[base+2] = col.B
	c.Pix[base+3] = col.A
}

// Draw clears the canvas and paints every dot as a filled disc of the given
// radius. The selected dot also gets a ring.
func (c *Canvas) Draw(views []dots.DotView, radius float64) {
	c.Clear(Background)
	if radius < 0.5 {
		radius = 0.5
	}
	for i := range views {
		v := &views[i]
		c.disc(v.X, v.Y, radius, DotColor(*v))
	}
	for i := range views {
		if views[i].Selected {
			c.ring(views[i].X, views[i].Y, radius+1, radius+2.5, SelectionRing)
		}
	}
}

func (c *Canvas) disc(cx, cy, r float64, col color.RGBA) {
	c.ring(cx, cy, -1, r, col)
}

// ring paints pixels whose centre lies in (inner, outer] from (cx, cy).
func (c *Canvas) ring(cx, cy, inner, outer float64, col color.RGBA) {
	x0 := int(math.Floor(cx - outer))
	x1 := int(math.Ceil(cx + outer))
	y0 := int(math.Floor(cy - outer))
	y1 := int(math.Ceil(cy + outer))
	in2 := inner * inner
	if inner < 0 {
		in2 = -1
	}
	out2 := outer * outer
	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - cy
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			d := dx*dx + dy*dy
			if d > in2 && d <= out2 {
				c.set(x, y, col)
			}
		}
	}
}

// DotColor returns the display colour of a dot: its material colour,
// brightened toward warm white while it glows and faded into the background
// while it is a gas.
func DotColor(v dots.DotView) color.RGBA {
	base := colorful.Color{R: float64(v.R) / 255, G: float64(v.G) / 255, B: float64(v.B) / 255}
	if v.Luminescence > 0 {
		base = base.BlendRgb(glowTint, math.Min(1, v.Luminescence)*0.7)
	}
	if v.Phase == material.Gas {
		bg := colorful.Color{R: float64(Background.R) / 255, G: float64(Background.G) / 255, B: float64(Background.B) / 255}
		base = base.BlendRgb(bg, 0.45)
	}
	r, g, b := base.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
