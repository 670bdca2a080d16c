package ui

import (
	"fmt"

	"dotlab/internal/core"
	"dotlab/internal/sims/dots"
)

type selectionProvider interface {
	Selected() (dots.Particle, bool)
}

// InspectLines describes the selected dot of sim, or returns nil when the
// sim has no selection.
func InspectLines(sim core.Sim) []string {
	provider, ok := sim.(selectionProvider)
	if !ok {
		return nil
	}
	p, ok := provider.Selected()
	if !ok {
		return nil
	}
	m := p.Material
	lines := []string{
		fmt.Sprintf("%s #%d", p.Name, p.ID),
		fmt.Sprintf("phase %s  temp %.2f", m.Phase, m.Temperature),
		fmt.Sprintf("density %.2f  visc %.2f", m.Density, m.Viscosity),
		fmt.Sprintf("hard %.2f  elastic %.2f", m.Hardness, m.Elasticity),
		fmt.Sprintf("cohesion %.2f  cond %.2f", m.Cohesion, m.HeatConductivity),
		fmt.Sprintf("melt %.2f  freeze %.2f", m.HeatCapacityHigh, m.LowThreshold()),
		fmt.Sprintf("entropy %.2f  volatile %.2f", m.EntropyBias, m.Volatility),
		fmt.Sprintf("reactions %d", p.Reactions),
	}
	if p.Glowing {
		lines = append(lines, fmt.Sprintf("glowing %.2f", m.Luminescence))
	}
	return lines
}

type statsProvider interface {
	Stats() dots.Stats
}

// StatsLines summarises the reaction counters of sim, or returns nil when it
// keeps none.
func StatsLines(sim core.Sim) []string {
	provider, ok := sim.(statsProvider)
	if !ok {
		return nil
	}
	s := provider.Stats()
	return []string{
		fmt.Sprintf("dots %d  ticks %d", s.Live, s.Ticks),
		fmt.Sprintf("changed %d  vanished %d", s.Changed, s.Vanished),
		fmt.Sprintf("blasts %d  decays %d", s.Explosions, s.Decays),
		fmt.Sprintf("dropped %d  stale %d", s.Dropped, s.Stale),
	}
}
