package core

// Pair names two particle indices that share a neighbourhood. I < J always.
type Pair struct {
	I, J int
}

// SpatialGrid is a uniform-cell broad-phase index over particle positions.
// It is rebuilt wholesale every tick and never patched incrementally.
type SpatialGrid struct {
	cellSize   float64
	cols, rows int
	buckets    [][]int
	cellOf     []int
}

// NewSpatialGrid allocates a grid covering a width x height arena.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		buckets:  make([][]int, cols*rows),
	}
}

// Cols reports the number of cell columns.
func (g *SpatialGrid) Cols() int { return g.cols }

// Rows reports the number of cell rows.
func (g *SpatialGrid) Rows() int { return g.rows }

// CellCoord maps a position to its cell using truncated division. Positions
// outside the arena are clamped onto the border cells so every particle lands
// somewhere.
func (g *SpatialGrid) CellCoord(x, y float64) (int, int) {
	cx := int(x / g.cellSize)
	cy := int(y / g.cellSize)
	if cx < 0 {
		cx = 0
	} else if cx >= g.cols {
		cx = g.cols - 1
	}
	if cy < 0 {
		cy = 0
	} else if cy >= g.rows {
		cy = g.rows - 1
	}
	return cx, cy
}

// Index returns the linear bucket index for cell coordinates (cx, cy).
func (g *SpatialGrid) Index(cx, cy int) int { return cy*g.cols + cx }

// Cell returns the particle indices stored in cell (cx, cy).
func (g *SpatialGrid) Cell(cx, cy int) []int {
	if cx < 0 || cy < 0 || cx >= g.cols || cy >= g.rows {
		return nil
	}
	return g.buckets[g.Index(cx, cy)]
}

// Clear empties every bucket while keeping their capacity.
func (g *SpatialGrid) Clear() {
	for i := range g.buckets {
		g.buckets[i] = g.buckets[i][:0]
	}
	g.cellOf = g.cellOf[:0]
}

// Rebuild clears the grid and inserts indices 0..n-1 at the positions reported
// by pos.
func (g *SpatialGrid) Rebuild(n int, pos func(i int) (float64, float64)) {
	g.Clear()
	if cap(g.cellOf) < n {
		g.cellOf = make([]int, 0, n)
	}
	for i := 0; i < n; i++ {
		x, y := pos(i)
		cx, cy := g.CellCoord(x, y)
		idx := g.Index(cx, cy)
		g.buckets[idx] = append(g.buckets[idx], i)
		g.cellOf = append(g.cellOf, idx)
	}
}

// Len reports how many indices the last Rebuild inserted.
func (g *SpatialGrid) Len() int { return len(g.cellOf) }

// Pairs appends every candidate pair (i, j) with i < j whose cells are equal
// or adjacent. Each unordered pair appears at most once.
func (g *SpatialGrid) Pairs(dst []Pair) []Pair {
	for i, idx := range g.cellOf {
		cx := idx % g.cols
		cy := idx / g.cols
		for dy := -1; dy <= 1; dy++ {
			ny := cy + dy
			if ny < 0 || ny >= g.rows {
				continue
			}
			for dx := -1; dx <= 1; dx++ {
				nx := cx + dx
				if nx < 0 || nx >= g.cols {
					continue
				}
				for _, j := range g.buckets[g.Index(nx, ny)] {
					if i < j {
						dst = append(dst, Pair{I: i, J: j})
					}
				}
			}
		}
	}
	return dst
}
