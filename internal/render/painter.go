//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"dotlab/internal/sims/dots"
)

// Painter rasterizes dot views into a Canvas and uploads it to an ebiten
// image each frame.
type Painter struct {
	canvas *Canvas
	img    *ebiten.Image
}

// NewPainter allocates a painter for a w×h arena.
func NewPainter(w, h int) *Painter {
	return &Painter{canvas: NewCanvas(w, h), img: ebiten.NewImage(w, h)}
}

// Blit draws views into dst scaled by scale.
func (p *Painter) Blit(dst *ebiten.Image, views []dots.DotView, radius float64, scale int) {
	p.canvas.Draw(views, radius)
	p.img.WritePixels(p.canvas.Pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(p.img, op)
}

// Size returns the dimensions of the underlying image.
func (p *Painter) Size() (int, int) { return p.canvas.W, p.canvas.H }
