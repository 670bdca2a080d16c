package dots

import (
	"math"
	"slices"

	"dotlab/internal/material"
)

const minDistSq = 1e-6

// updateStates runs the per-particle pass: afterglow, phase ladder, decay,
// explosion triggers and forces. Blasts are propagated against the
// pre-removal population, then every marked particle is removed. It reports
// whether anything was removed.
func (w *World) updateStates(dt float64) bool {
	w.blasts = w.blasts[:0]
	w.blastSrc = w.blastSrc[:0]
	w.removals = w.removals[:0]

	for i := range w.particles {
		p := &w.particles[i]
		if w.updateGlow(p) {
			// A particle leaving its afterglow sits out every other
			// transition this tick.
			w.applyForces(p, dt)
			continue
		}
		if w.updatePhase(p, dt) {
			w.removals = append(w.removals, i)
			w.stats.Decays++
			w.log.Debugf("particle %d (%s) decayed", p.ID, p.Name)
			continue
		}
		// Stationary means at rest after the previous integration, before
		// this tick's gravity.
		if blast, ok := w.checkExplosion(p); ok {
			w.removals = append(w.removals, i)
			w.blasts = append(w.blasts, blast)
			w.blastSrc = append(w.blastSrc, i)
			continue
		}
		w.applyForces(p, dt)
	}

	for k, blast := range w.blasts {
		w.propagate(blast, w.blastSrc[k], dt)
		w.stats.Explosions++
		w.log.Debugf("particle %d exploded at (%.1f, %.1f) radius %.1f", blast.Source, blast.X, blast.Y, blast.Radius)
		if w.onExplosion != nil {
			w.onExplosion(blast)
		}
	}

	if len(w.removals) == 0 {
		return false
	}
	w.removeIndices(w.removals)
	return true
}

func (w *World) applyForces(p *Particle, dt float64) {
	params := &w.cfg.Params
	switch p.Material.Phase {
	case material.Solid, material.Liquid:
		p.VY += params.Gravity * dt
	case material.Gas:
		buoyancy := (params.GasReferenceDensity - p.Material.Density) * params.Gravity
		p.VY -= buoyancy * dt
		diffusion := (1 - p.Material.Viscosity) * params.GasDiffusion
		p.VX += w.rng.Centered() * diffusion * dt
		p.VY += w.rng.Centered() * diffusion * dt
	}
}

// updateGlow ends an afterglow that has outlived its duration and reports
// whether it did.
func (w *World) updateGlow(p *Particle) bool {
	if !p.Glowing || w.now-p.GlowSince < w.cfg.Params.GlowDuration {
		return false
	}
	p.Glowing = false
	p.Material.Phase = material.Solid
	p.Material.Temperature = 0
	p.Material.Luminescence = 0
	return true
}

// updatePhase moves the particle at most one rung on the phase ladder. It
// reports true when a bottom-rung solid has decayed and must be removed.
func (w *World) updatePhase(p *Particle, dt float64) bool {
	m := &p.Material
	params := &w.cfg.Params
	switch {
	case m.Temperature > m.HeatCapacityHigh:
		m.HeatConductivity += params.ConductivityRamp * dt
		if m.HeatConductivity <= 1 {
			return false
		}
		if m.Volatility < 0.5 {
			m.HeatConductivity = 1
			return false
		}
		if next, ok := m.Phase.Up(); ok {
			m.Phase = next
		} else if !p.Glowing {
			p.Glowing = true
			p.GlowSince = w.now
			m.Luminescence = 1
		}
		m.HeatCapacityHigh = 0.05 + 0.95*w.rng.Float64()
		m.Temperature = m.HeatCapacityHigh * w.rng.Float64()
		m.HeatConductivity = w.rng.Float64()
	case m.Temperature < m.LowThreshold():
		if prev, ok := m.Phase.Down(); ok {
			m.Phase = prev
			m.HeatCapacityLow = 0.05 + 0.95*w.rng.Float64()
			m.Temperature = -m.HeatCapacityLow * w.rng.Float64()
			m.HeatConductivity = w.rng.Float64()
			return false
		}
		if w.now-p.LastDecayCheck < params.DecayInterval {
			return false
		}
		p.LastDecayCheck = w.now
		return w.rng.Chance(params.DecayChance)
	}
	return false
}

func (w *World) checkExplosion(p *Particle) (Explosion, bool) {
	params := &w.cfg.Params
	m := &p.Material
	stop := params.StopVelocity
	if p.speedSq() >= stop*stop {
		return Explosion{}, false
	}
	if m.EntropyBias < params.ExplosionEntropy || m.Volatility < params.ExplosionVolatility {
		return Explosion{}, false
	}
	if !w.rng.Chance(m.HeatConductivity * params.ExplosionChance) {
		return Explosion{}, false
	}
	hc := m.HeatConductivity
	return Explosion{
		X:      p.X,
		Y:      p.Y,
		Radius: params.ExplosionRadiusBase + params.ExplosionRadiusScale*hc,
		Force:  params.ExplosionForceBase + params.ExplosionForceScale*hc,
		Heat:   params.ExplosionHeatScale * hc,
		Source: p.ID,
	}, true
}

// propagate pushes every other particle in range outward with linear
// falloff and heats it.
func (w *World) propagate(b Explosion, src int, dt float64) {
	for j := range w.particles {
		if j == src {
			continue
		}
		q := &w.particles[j]
		dx := q.X - b.X
		dy := q.Y - b.Y
		d2 := dx*dx + dy*dy
		if d2 <= minDistSq || d2 >= b.Radius*b.Radius {
			continue
		}
		d := math.Sqrt(d2)
		falloff := 1 - d/b.Radius
		q.VX += dx / d * b.Force * falloff * dt
		q.VY += dy / d * b.Force * falloff * dt
		q.Material.Temperature = material.ClampTemperature(q.Material.Temperature + b.Heat*falloff*0.5)
	}
	w.stopped = false
}

// removeIndices deletes the listed slots, highest first, so earlier indices
// stay valid. idx is sorted and deduplicated in place.
func (w *World) removeIndices(idx []int) int {
	slices.Sort(idx)
	idx = slices.Compact(idx)
	removed := 0
	for k := len(idx) - 1; k >= 0; k-- {
		i := idx[k]
		if i < 0 || i >= len(w.particles) {
			continue
		}
		w.particles = slices.Delete(w.particles, i, i+1)
		removed++
	}
	return removed
}
