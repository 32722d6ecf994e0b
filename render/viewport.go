package render

import (
	"github.com/lixenwraith/pixel-timer/constants"
	"github.com/lixenwraith/pixel-timer/grid"
)

// Viewport converts a terminal size to grid units: one unit is ColumnsPerUnit
// columns wide and one row tall, minus the rows kept for the hint bar
func Viewport(screenWidth, screenHeight int) (width, height int) {
	width = screenWidth / constants.ColumnsPerUnit
	height = screenHeight - constants.ReservedRows
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return width, height
}

// cellRect returns the screen rectangle of the cell at (col, row), relative to the grid origin
func cellRect(col, row, cellSize, gap int) (x, y, w, h int) {
	pitch := cellSize + gap
	return col * pitch * constants.ColumnsPerUnit, row * pitch,
		cellSize * constants.ColumnsPerUnit, cellSize
}

// gridExtent returns the grid's size in screen columns and rows
func gridExtent(g grid.Grid, cellSize, gap int) (w, h int) {
	if g.Empty() {
		return 0, 0
	}
	pitch := cellSize + gap
	w = (g.Columns*pitch - gap) * constants.ColumnsPerUnit
	h = g.Rows*pitch - gap
	return w, h
}
