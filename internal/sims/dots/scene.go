package dots

import (
	"dotlab/internal/material"

	perlin "github.com/aquilax/go-perlin"
)

const sceneFamilies = 4

// Scatter spawns up to n particles across the upper two thirds of the arena.
// A noise field decides which of a handful of material families each spot
// receives, so neighbours tend to share a material. It returns how many
// particles were placed.
func (w *World) Scatter(n int) int {
	if n <= 0 {
		return 0
	}
	families := make([]material.DNA, sceneFamilies)
	for i := range families {
		families[i] = material.Random(w.rng)
	}
	noise := perlin.NewPerlin(2, 2, 3, int64(w.rng.Uint64()>>1))

	width := float64(w.cfg.Width)
	height := float64(w.cfg.Height)
	placed := 0
	for attempt := 0; attempt < n*4 && placed < n; attempt++ {
		x := w.rng.Range(0, width)
		y := w.rng.Range(0, height*2/3)
		v := noise.Noise2D(x/width*3, y/height*3)
		idx := int((v + 1) / 2 * sceneFamilies)
		if idx < 0 {
			idx = 0
		} else if idx >= sceneFamilies {
			idx = sceneFamilies - 1
		}
		if _, ok := w.Spawn(x, y, families[idx]); ok {
			placed++
		}
	}
	return placed
}
