// Package grid sizes the pixel grid from the viewport
package grid

// Grid is the pixel layout for one viewport size.
// Cells are indexed row-major: index = row*Columns + col.
type Grid struct {
	Columns    int
	Rows       int
	TotalCells int
}

// Compute fits as many cells of size cellSize, separated by gap, into the viewport.
// Degenerate input (tiny viewport, non-positive pitch) yields the zero grid.
func Compute(viewportWidth, viewportHeight, cellSize, gap int) Grid {
	pitch := cellSize + gap
	if cellSize <= 0 || pitch <= 0 || viewportWidth <= 0 || viewportHeight <= 0 {
		return Grid{}
	}

	cols := viewportWidth / pitch
	rows := viewportHeight / pitch
	return Grid{
		Columns:    cols,
		Rows:       rows,
		TotalCells: cols * rows,
	}
}

// Empty reports whether the grid has nothing to schedule
func (g Grid) Empty() bool {
	return g.TotalCells <= 0
}

// Index returns the cell index at (col, row), or -1 when out of bounds
func (g Grid) Index(col, row int) int {
	if col < 0 || row < 0 || col >= g.Columns || row >= g.Rows {
		return -1
	}
	return row*g.Columns + col
}
