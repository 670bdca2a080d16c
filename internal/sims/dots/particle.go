package dots

import "dotlab/internal/material"

// Particle is one simulated dot. Times are simulation seconds.
type Particle struct {
	ID   uint64
	Name string

	X, Y   float64
	VX, VY float64

	Material material.Params
	DNA      material.DNA

	Reactions        int
	LastReaction     float64
	LastDecayCheck   float64
	LastHeatExchange float64

	Selected  bool
	Glowing   bool
	GlowSince float64
}

func (p *Particle) speedSq() float64 { return p.VX*p.VX + p.VY*p.VY }

// adopt replaces the particle's material with d.
func (p *Particle) adopt(d material.DNA) {
	p.DNA = d
	p.Material = material.Decode(d)
	p.Name = material.Name(d)
	p.Glowing = false
	p.Reactions++
}
