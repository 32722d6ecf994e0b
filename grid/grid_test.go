package grid

import "testing"

func TestCompute(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		cellSize, gap int
		expected      Grid
	}{
		{
			name:     "Exact fit",
			width:    90, height: 45, cellSize: 6, gap: 3,
			expected: Grid{Columns: 10, Rows: 5, TotalCells: 50},
		},
		{
			name:     "Remainder is dropped",
			width:    98, height: 50, cellSize: 6, gap: 3,
			expected: Grid{Columns: 10, Rows: 5, TotalCells: 50},
		},
		{
			name:     "Terminal defaults",
			width:    40, height: 23, cellSize: 1, gap: 1,
			expected: Grid{Columns: 20, Rows: 11, TotalCells: 220},
		},
		{
			name:     "No gap",
			width:    7, height: 3, cellSize: 1, gap: 0,
			expected: Grid{Columns: 7, Rows: 3, TotalCells: 21},
		},
		{
			name:     "Viewport smaller than one cell",
			width:    5, height: 100, cellSize: 6, gap: 3,
			expected: Grid{Columns: 0, Rows: 11, TotalCells: 0},
		},
		{
			name:     "Zero viewport",
			width:    0, height: 0, cellSize: 1, gap: 1,
			expected: Grid{},
		},
		{
			name:     "Zero cell size",
			width:    80, height: 24, cellSize: 0, gap: 0,
			expected: Grid{},
		},
		{
			name:     "Negative viewport",
			width:    -10, height: 24, cellSize: 1, gap: 1,
			expected: Grid{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.width, tt.height, tt.cellSize, tt.gap)
			if got != tt.expected {
				t.Errorf("Compute(%d, %d, %d, %d) = %+v, expected %+v",
					tt.width, tt.height, tt.cellSize, tt.gap, got, tt.expected)
			}
			if got.TotalCells != got.Columns*got.Rows {
				t.Errorf("TotalCells %d != Columns*Rows %d", got.TotalCells, got.Columns*got.Rows)
			}
			if got.Empty() != (got.TotalCells == 0) {
				t.Errorf("Empty() = %v for %d cells", got.Empty(), got.TotalCells)
			}
		})
	}
}

func TestGrid_IndexRowMajor(t *testing.T) {
	g := Compute(10, 4, 1, 1) // 5x2

	seen := make(map[int]bool, g.TotalCells)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Columns; col++ {
			i := g.Index(col, row)
			if i < 0 || i >= g.TotalCells || seen[i] {
				t.Fatalf("Index(%d, %d) = %d not a fresh in-range index", col, row, i)
			}
			seen[i] = true
		}
	}

	// Second row starts after the first full row
	if g.Index(0, 1) != 5 {
		t.Errorf("Expected (0,1) at index 5, got %d", g.Index(0, 1))
	}

	if g.Index(5, 0) != -1 || g.Index(0, 2) != -1 || g.Index(-1, 0) != -1 {
		t.Error("Expected -1 for out-of-bounds coordinates")
	}
	if (Grid{}).Index(0, 0) != -1 {
		t.Error("Expected -1 on empty grid")
	}
}
