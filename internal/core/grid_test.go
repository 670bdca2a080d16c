package core

import (
	"slices"
	"testing"

	prng "dotlab/pkg/core"
)

func scatter(n int, w, h float64, seed int64) [][2]float64 {
	rng := prng.NewRNG(seed)
	pts := make([][2]float64, n)
	for i := range pts {
		pts[i] = [2]float64{rng.Range(-5, w+5), rng.Range(-5, h+5)}
	}
	return pts
}

func TestRebuildCoversEveryIndexOnce(t *testing.T) {
	pts := scatter(500, 200, 120, 11)
	g := NewSpatialGrid(200, 120, 3)
	g.Rebuild(len(pts), func(i int) (float64, float64) { return pts[i][0], pts[i][1] })

	var seen []int
	for cy := 0; cy < g.Rows(); cy++ {
		for cx := 0; cx < g.Cols(); cx++ {
			seen = append(seen, g.Cell(cx, cy)...)
		}
	}
	slices.Sort(seen)
	if len(seen) != len(pts) {
		t.Fatalf("expected %d indices across buckets, got %d", len(pts), len(seen))
	}
	for i, v := range seen {
		if v != i {
			t.Fatalf("bucket union mismatch at %d: got %d", i, v)
		}
	}
}

func TestRebuildDiscardsPreviousContents(t *testing.T) {
	g := NewSpatialGrid(30, 30, 3)
	g.Rebuild(10, func(i int) (float64, float64) { return float64(i), 1 })
	g.Rebuild(2, func(i int) (float64, float64) { return 29, 29 })
	total := 0
	for cy := 0; cy < g.Rows(); cy++ {
		for cx := 0; cx < g.Cols(); cx++ {
			total += len(g.Cell(cx, cy))
		}
	}
	if total != 2 {
		t.Fatalf("expected 2 entries after rebuild, got %d", total)
	}
}

func TestPairsUniqueAndOrdered(t *testing.T) {
	pts := scatter(400, 90, 90, 5)
	g := NewSpatialGrid(90, 90, 3)
	g.Rebuild(len(pts), func(i int) (float64, float64) { return pts[i][0], pts[i][1] })

	pairs := g.Pairs(nil)
	seen := make(map[Pair]bool, len(pairs))
	for _, p := range pairs {
		if p.I >= p.J {
			t.Fatalf("pair %v is not ordered", p)
		}
		if seen[p] {
			t.Fatalf("pair %v emitted twice", p)
		}
		seen[p] = true
	}
}

func TestPairsFindsCloseNeighbours(t *testing.T) {
	pts := scatter(300, 60, 60, 9)
	g := NewSpatialGrid(60, 60, 3)
	g.Rebuild(len(pts), func(i int) (float64, float64) { return pts[i][0], pts[i][1] })
	seen := map[Pair]bool{}
	for _, p := range g.Pairs(nil) {
		seen[p] = true
	}
	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			dx := pts[i][0] - pts[j][0]
			dy := pts[i][1] - pts[j][1]
			if dx*dx+dy*dy < 9 && !seen[Pair{I: i, J: j}] {
				t.Fatalf("pair (%d,%d) within one cell distance was not emitted", i, j)
			}
		}
	}
}

func TestEmptyGridYieldsNoPairs(t *testing.T) {
	g := NewSpatialGrid(10, 10, 2)
	g.Rebuild(0, nil)
	if got := g.Pairs(nil); len(got) != 0 {
		t.Fatalf("expected no pairs, got %d", len(got))
	}
}

func TestCellCoordClamps(t *testing.T) {
	g := NewSpatialGrid(10, 10, 2)
	if cx, cy := g.CellCoord(-4, -4); cx != 0 || cy != 0 {
		t.Fatalf("negative position should clamp to origin cell, got (%d,%d)", cx, cy)
	}
	if cx, cy := g.CellCoord(100, 100); cx != g.Cols()-1 || cy != g.Rows()-1 {
		t.Fatalf("far position should clamp to last cell, got (%d,%d)", cx, cy)
	}
}
