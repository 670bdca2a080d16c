package dots

import "dotlab/internal/material"

// integrate advances positions, applies phase-specific boundary rules and
// damping, and reports whether every condensed particle rests on the floor
// with no gas present.
func (w *World) integrate(dt float64) bool {
	params := &w.cfg.Params
	r := params.Radius
	maxX := float64(w.cfg.Width) - r
	maxY := float64(w.cfg.Height) - r
	rest := params.Gravity * dt * 2
	stop := params.StopVelocity
	allStopped := true

	for i := range w.particles {
		p := &w.particles[i]
		m := &p.Material
		p.X += p.VX * dt
		p.Y += p.VY * dt
		e := m.Elasticity * params.Restitution

		switch m.Phase {
		case material.Solid:
			if p.Y >= maxY {
				p.Y = maxY
				impact := p.VY
				p.VY *= -e
				p.VX *= max(0, 1-m.Viscosity*0.7)
				if impact > rest && m.Viscosity < 0.5 {
					p.VX += w.rng.Centered() * (1 - m.Viscosity) * 1.5
				}
				settle(p, rest)
			}
			if p.Y <= r {
				p.Y = r
				w.wallJitter(&p.VX, m.Viscosity)
				p.VY *= -e
			}
			w.sideWalls(p, r, maxX, -e, true)
		case material.Liquid:
			if p.Y >= maxY {
				p.Y = maxY
				impact := p.VY
				p.VY *= -e * (1 - m.Viscosity)
				if impact > rest && m.Viscosity < 0.7 {
					p.VX += w.rng.Centered() * (1 - m.Viscosity) * 2
				}
				settle(p, rest)
			}
			if p.Y <= r {
				p.Y = r
				w.wallJitter(&p.VX, m.Viscosity)
				p.VY *= -e
			}
			w.sideWalls(p, r, maxX, -e, true)
		case material.Gas:
			if p.Y >= maxY {
				p.Y = maxY
				p.VY *= -e * 0.1
			}
			if p.Y <= r {
				p.Y = r
				p.VY *= -e * 0.1
			}
			w.sideWalls(p, r, maxX, -e*0.3, false)
		}

		p.VX *= params.Damping
		p.VY *= params.Damping

		if m.Phase == material.Gas || p.speedSq() >= stop*stop || p.Y < maxY-1 {
			allStopped = false
		}
	}
	return allStopped
}

// settle zeroes a floor rebound too small to lift the particle against one
// tick of gravity, so resting particles come to a stop.
func settle(p *Particle, rest float64) {
	if p.VY < 0 && -p.VY < rest {
		p.VY = 0
	}
}

func (w *World) sideWalls(p *Particle, r, maxX, bounce float64, jitter bool) {
	hit := false
	if p.X >= maxX {
		p.X = maxX
		hit = true
	}
	if p.X <= r {
		p.X = r
		hit = true
	}
	if !hit {
		return
	}
	if jitter {
		w.wallJitter(&p.VY, p.Material.Viscosity)
	}
	p.VX *= bounce
}

// wallJitter adds a little variation along a wall for runny materials.
func (w *World) wallJitter(v *float64, viscosity float64) {
	if viscosity >= 0.6 {
		return
	}
	*v += w.rng.Centered() * (1 - viscosity) * 0.3 * 0.3
}
