package constants

import "time"

const (
	// DefaultFPS is the default rendering frame rate
	DefaultFPS = 60

	// MaxFPS bounds the configurable frame rate
	MaxFPS = 240
)

// Grid Sizer
const (
	// DefaultCellSize is the side of one pixel block in grid units
	DefaultCellSize = 1

	// DefaultCellGap is the spacing between pixel blocks in grid units
	DefaultCellGap = 1

	// ColumnsPerUnit is the number of terminal columns in one horizontal grid unit.
	// Terminal glyphs are roughly twice as tall as wide.
	ColumnsPerUnit = 2

	// ReservedRows is the screen rows below the grid kept for the hint bar
	ReservedRows = 1

	// ResizeDebounce is the quiescence period before a resize rebuilds the grid
	ResizeDebounce = 200 * time.Millisecond
)
