package dots

import "dotlab/internal/reaction"

// applyReactions drains whatever the pipeline has finished and applies it.
// Changes land first; vanished particles are removed afterwards, highest
// index first. Results whose slot no longer holds the original particle are
// dropped. It returns the number of results applied.
func (w *World) applyReactions() int {
	w.results = w.pipeline.Drain(w.results[:0])
	return w.applyResults(w.results)
}

func (w *World) applyResults(results []reaction.Result) int {
	if len(results) == 0 {
		return 0
	}
	applied := 0
	w.removals = w.removals[:0]
	for _, r := range results {
		if r.Index < 0 || r.Index >= len(w.particles) || w.particles[r.Index].ID != r.ID {
			w.stats.Stale++
			continue
		}
		switch r.Kind {
		case reaction.Change:
			w.particles[r.Index].adopt(r.DNA)
			w.stats.Changed++
		case reaction.Vanish:
			w.removals = append(w.removals, r.Index)
		}
		applied++
	}
	if len(w.removals) > 0 {
		w.stats.Vanished += uint64(w.removeIndices(w.removals))
	}
	return applied
}
