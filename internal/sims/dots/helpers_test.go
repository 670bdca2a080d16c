package dots

import (
	"testing"

	"dotlab/internal/material"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 100
	cfg.Height = 80
	cfg.Seed = 7
	cfg.Params.Lanes = 2
	return cfg
}

func testWorld(t *testing.T, cfg Config) *World {
	t.Helper()
	w := NewWithConfig(cfg)
	// Pointers returned by place stay valid while the slice does not grow.
	w.particles = make([]Particle, 0, 64)
	t.Cleanup(w.Close)
	return w
}

// inert is a material that neither changes phase, explodes, nor coheres.
func inert(phase material.Phase) material.Params {
	p := material.Default()
	p.Phase = phase
	p.Temperature = 0
	p.HeatCapacityHigh = 0.5
	p.HeatCapacityLow = 0.5
	p.EntropyBias = 0
	p.Volatility = 0
	p.Cohesion = 0
	return p
}

// place spawns a particle and overrides its decoded material with p.
func place(t *testing.T, w *World, x, y float64, p material.Params, seed uint64) *Particle {
	t.Helper()
	if _, ok := w.Spawn(x, y, material.Encode(p, seed)); !ok {
		t.Fatalf("spawn at (%.1f, %.1f) refused", x, y)
	}
	dot := &w.particles[len(w.particles)-1]
	dot.Material = p
	return dot
}

func floorY(w *World) float64 { return float64(w.cfg.Height) - w.cfg.Params.Radius }
