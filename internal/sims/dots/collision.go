package dots

import (
	"math"

	"dotlab/internal/material"
	"dotlab/internal/reaction"
)

// pairKind groups a collision by the phases involved.
type pairKind uint8

const (
	solidSolid pairKind = iota
	liquidLiquid
	solidLiquid
	gasGas
	gasCondensed
)

func classifyPair(a, b material.Phase) pairKind {
	switch {
	case a == material.Gas && b == material.Gas:
		return gasGas
	case a == material.Gas || b == material.Gas:
		return gasCondensed
	case a == material.Solid && b == material.Solid:
		return solidSolid
	case a == material.Liquid && b == material.Liquid:
		return liquidLiquid
	default:
		return solidLiquid
	}
}

func (w *World) resolveCollisions(dt float64) {
	w.pairs = w.grid.Pairs(w.pairs[:0])
	for _, pair := range w.pairs {
		w.resolvePair(pair.I, pair.J, dt)
	}
}

// resolvePair separates an overlapping pair, may emit a reaction event, and
// applies the phase-specific response. The normal points from i to j.
func (w *World) resolvePair(i, j int, dt float64) {
	a := &w.particles[i]
	b := &w.particles[j]
	dx := b.X - a.X
	dy := b.Y - a.Y
	d2 := dx*dx + dy*dy
	minDist := 2 * w.cfg.Params.Radius
	if d2 <= minDistSq || d2 >= minDist*minDist {
		return
	}
	d := math.Sqrt(d2)
	nx := dx / d
	ny := dy / d

	half := (minDist - d) * 0.5
	a.X -= nx * half
	a.Y -= ny * half
	b.X += nx * half
	b.Y += ny * half

	if w.reactionReady(a) && w.reactionReady(b) {
		ev := reaction.Event{
			A: reaction.Contact{Index: i, ID: a.ID, DNA: a.DNA},
			B: reaction.Contact{Index: j, ID: b.ID, DNA: b.DNA},
		}
		if w.pipeline.Submit(ev) {
			a.LastReaction = w.now
			b.LastReaction = w.now
		}
	}

	switch classifyPair(a.Material.Phase, b.Material.Phase) {
	case solidSolid, liquidLiquid:
		w.detailedCollision(a, b, nx, ny, dt)
	case solidLiquid:
		solid, liquid, sx, sy := a, b, nx, ny
		if a.Material.Phase == material.Liquid {
			solid, liquid, sx, sy = b, a, -nx, -ny
		}
		if solid.Material.Density > liquid.Material.Density && solid.Material.Viscosity > liquid.Material.Viscosity {
			bounceOff(liquid, sx, sy, liquid.Material.Elasticity*w.cfg.Params.Restitution)
		} else {
			w.detailedCollision(a, b, nx, ny, dt)
		}
	case gasGas:
		w.gasCollision(a, b, nx, ny)
	case gasCondensed:
		if a.Material.Phase == material.Gas {
			w.displaceGas(a, b, nx, ny)
		} else {
			w.displaceGas(b, a, -nx, -ny)
		}
	}
}

// reactionReady reports whether p has waited out its cooldown, which grows
// exponentially with every reaction it has taken part in.
func (w *World) reactionReady(p *Particle) bool {
	params := &w.cfg.Params
	wait := params.ReactionInitialWait * math.Exp(params.ReactionDecay*float64(p.Reactions))
	return w.now-p.LastReaction >= wait
}

// bounceOff reflects p's velocity if it moves against normal (nx, ny),
// which points from the obstacle toward p.
func bounceOff(p *Particle, nx, ny, e float64) {
	vn := p.VX*nx + p.VY*ny
	if vn >= 0 {
		return
	}
	p.VX -= (1 + e) * vn * nx
	p.VY -= (1 + e) * vn * ny
}

// impulse exchanges momentum along the normal between masses m1 and m2.
func impulse(a, b *Particle, nx, ny, m1, m2, e float64) {
	total := m1 + m2
	if total < 1e-9 {
		return
	}
	v1n := a.VX*nx + a.VY*ny
	v2n := b.VX*nx + b.VY*ny
	v1 := (m1*v1n + m2*v2n - m2*e*(v1n-v2n)) / total
	v2 := (m1*v1n + m2*v2n + m1*e*(v1n-v2n)) / total
	a.VX += (v1 - v1n) * nx
	a.VY += (v1 - v1n) * ny
	b.VX += (v2 - v2n) * nx
	b.VY += (v2 - v2n) * ny
}

func (w *World) detailedCollision(a, b *Particle, nx, ny, dt float64) {
	ma, mb := &a.Material, &b.Material
	e := (ma.Elasticity + mb.Elasticity) / 2 * w.cfg.Params.Restitution
	m1 := ma.Density * (1 + ma.Hardness)
	m2 := mb.Density * (1 + mb.Hardness)
	impulse(a, b, nx, ny, m1, m2, e)

	// The denser particle sinks below the lighter one.
	if diff := ma.Density - mb.Density; math.Abs(diff) > 0.1 {
		push := math.Abs(diff) * 5 * dt
		if a.Y < b.Y && diff > 0 {
			a.VY += push
			b.VY -= push
		} else if b.Y < a.Y && diff < 0 {
			b.VY += push
			a.VY -= push
		}
	}

	if ma.Phase == mb.Phase {
		w.exchangeHeat(a, b)
		w.cohere(a, b)
	}

	switch {
	case ma.Phase == material.Liquid && mb.Phase == material.Liquid:
		liquidSpread(a, b, ny, dt)
		w.liquidAccumulate(a, b, nx, ny, dt)
	case ma.Phase == material.Solid && mb.Phase == material.Solid:
		solidSpread(a, b, nx, ny, dt)
	}
}

func (w *World) gasCollision(a, b *Particle, nx, ny float64) {
	e := (a.Material.Elasticity + b.Material.Elasticity) / 2 * w.cfg.Params.Restitution
	impulse(a, b, nx, ny, a.Material.Density, b.Material.Density, e)
	w.exchangeHeat(a, b)
}

// displaceGas reflects the gas particle off other. (nx, ny) points from the
// gas toward other; other is left untouched.
func (w *World) displaceGas(gas, other *Particle, nx, ny float64) {
	e := (gas.Material.Elasticity + other.Material.Elasticity) / 2 * w.cfg.Params.Restitution
	bounceOff(gas, -nx, -ny, e)
}

// exchangeHeat moves heat from the hotter particle to the colder one, at
// most once per heat interval per particle.
func (w *World) exchangeHeat(a, b *Particle) {
	interval := w.cfg.Params.HeatInterval
	if w.now-a.LastHeatExchange < interval || w.now-b.LastHeatExchange < interval {
		return
	}
	ma, mb := &a.Material, &b.Material
	avgCond := (ma.HeatConductivity + mb.HeatConductivity) / 2
	transfer := clamp((ma.Temperature-mb.Temperature)*avgCond*w.cfg.Params.HeatTransfer, -1, 1)
	ma.Temperature = material.ClampTemperature(ma.Temperature - transfer)
	mb.Temperature = material.ClampTemperature(mb.Temperature + transfer)
	a.LastHeatExchange = w.now
	b.LastHeatExchange = w.now
}

// cohere pulls a same-phase pair toward a rest distance of 1.5 radii.
func (w *World) cohere(a, b *Particle) {
	avg := (a.Material.Cohesion + b.Material.Cohesion) / 2
	if avg <= 0.01 {
		return
	}
	r := w.cfg.Params.Radius
	dx := b.X - a.X
	dy := b.Y - a.Y
	d := math.Sqrt(dx*dx + dy*dy)
	if d <= 1e-6 || d >= r*4 {
		return
	}
	force := (d - r*1.5) * avg * 0.01
	fx := dx / d * force
	fy := dy / d * force
	m1 := a.Material.Density
	m2 := b.Material.Density
	total := m1 + m2
	if total <= 1e-6 {
		return
	}
	a.VX += fx * (m2 / total)
	a.VY += fy * (m2 / total)
	b.VX -= fx * (m1 / total)
	b.VY -= fy * (m1 / total)
}

// liquidSpread pushes runny liquids sideways when they stack vertically.
func liquidSpread(a, b *Particle, ny, dt float64) {
	avgVisc := (a.Material.Viscosity + b.Material.Viscosity) / 2
	if avgVisc >= 0.5 || math.Abs(ny) <= 0.8 {
		return
	}
	pushApart(a, b, (1-avgVisc)*10*dt)
}

// liquidAccumulate spreads liquids pooling on the floor and adds a small
// downward pressure.
func (w *World) liquidAccumulate(a, b *Particle, nx, ny, dt float64) {
	floor := float64(w.cfg.Height) - w.cfg.Params.Radius - 5
	if a.Y < floor && b.Y < floor {
		return
	}
	avgVisc := (a.Material.Viscosity + b.Material.Viscosity) / 2
	avgHard := (a.Material.Hardness + b.Material.Hardness) / 2
	if math.Abs(nx) > math.Abs(ny) {
		pushApart(a, b, (1-avgVisc)*(1-avgHard)*0.5*dt*10)
	}
	pressure := avgVisc * 0.1 * dt * 5
	a.VY += pressure
	b.VY += pressure
}

// solidSpread applies tangential friction, a slight sideways slump for soft
// solids, and vertical pressure that helps piles settle.
func solidSpread(a, b *Particle, nx, ny, dt float64) {
	avgVisc := (a.Material.Viscosity + b.Material.Viscosity) / 2
	avgHard := (a.Material.Hardness + b.Material.Hardness) / 2

	tx, ty := -ny, nx
	vRel := (b.VX-a.VX)*tx + (b.VY-a.VY)*ty
	friction := vRel * avgVisc * 0.5
	m1 := a.Material.Density
	m2 := b.Material.Density
	if total := m1 + m2; total > 1e-6 {
		a.VX += friction * (m2 / total) * tx
		a.VY += friction * (m2 / total) * ty
		b.VX -= friction * (m1 / total) * tx
		b.VY -= friction * (m1 / total) * ty
	}

	if avgVisc < 0.8 && avgHard < 0.5 && math.Abs(ny) > 0.8 {
		pushApart(a, b, (1-avgVisc)*(1-avgHard)*0.01*dt)
	}

	pressure := avgVisc * 0.05 * dt
	a.VY += pressure
	b.VY += pressure
}

// pushApart nudges the pair horizontally away from each other.
func pushApart(a, b *Particle, force float64) {
	if a.X < b.X {
		a.VX -= force
		b.VX += force
	} else {
		a.VX += force
		b.VX -= force
	}
}
