package dots

import "dotlab/internal/material"

// DotView is the read-only per-particle data a renderer needs.
type DotView struct {
	ID           uint64         `json:"id"`
	Name         string         `json:"name"`
	X            float64        `json:"x"`
	Y            float64        `json:"y"`
	VX           float64        `json:"vx"`
	VY           float64        `json:"vy"`
	R            uint8          `json:"r"`
	G            uint8          `json:"g"`
	B            uint8          `json:"b"`
	Luminescence float64        `json:"lum"`
	Temperature  float64        `json:"temp"`
	Phase        material.Phase `json:"phase"`
	Glowing      bool           `json:"glow,omitempty"`
	Selected     bool           `json:"sel,omitempty"`
}

// Snapshot appends a view of every live particle to dst.
func (w *World) Snapshot(dst []DotView) []DotView {
	for i := range w.particles {
		p := &w.particles[i]
		r, g, b := p.Material.RGB()
		dst = append(dst, DotView{
			ID:           p.ID,
			Name:         p.Name,
			X:            p.X,
			Y:            p.Y,
			VX:           p.VX,
			VY:           p.VY,
			R:            r,
			G:            g,
			B:            b,
			Luminescence: p.Material.Luminescence,
			Temperature:  p.Material.Temperature,
			Phase:        p.Material.Phase,
			Glowing:      p.Glowing,
			Selected:     p.Selected,
		})
	}
	return dst
}

// Radius reports the particle radius used for drawing and collisions.
func (w *World) Radius() float64 { return w.cfg.Params.Radius }
