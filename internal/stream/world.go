package stream

import (
	"dotlab/internal/material"
	"dotlab/internal/sims/dots"
)

// Target is the part of the engine commands act on.
type Target interface {
	Spawn(x, y float64, d material.DNA) (uint64, bool)
	RandomMaterial() material.DNA
	SelectNearest(x, y float64) (uint64, bool)
	Clear()
	Reset(seed int64)
}

// Apply performs cmd on t. It must run on the goroutine that steps t.
func Apply(t Target, cmd Command) {
	switch cmd.Op {
	case "spawn":
		t.Spawn(cmd.X, cmd.Y, t.RandomMaterial())
	case "select":
		t.SelectNearest(cmd.X, cmd.Y)
	case "clear":
		t.Clear()
	case "reset":
		t.Reset(cmd.Seed)
	}
}

// SnapshotFrame builds a full frame from w, reusing buf for the dot views.
func SnapshotFrame(w *dots.World, buf []dots.DotView) (Frame, []dots.DotView) {
	buf = w.Snapshot(buf[:0])
	stats := w.Stats()
	return Frame{Type: "frame", Time: w.Now(), Stats: &stats, Dots: buf}, buf
}

// BlastFrame wraps an explosion for broadcast.
func BlastFrame(now float64, e dots.Explosion) Frame {
	return Frame{Type: "explosion", Time: now, Blast: &e}
}
