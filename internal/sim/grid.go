package sim

// Grid is a fixed-size board of element ids.
// Cells are stored in row-major order: index = y*W + x.
type Grid struct {
	W     int         // Width of the grid
	H     int         // Height of the grid
	Cells []ElementID // Flat array of cells, length W*H
}

// NewGrid creates an all-empty grid with the given dimensions.
func NewGrid(w, h int) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Grid{
		W:     w,
		H:     h,
		Cells: make([]ElementID, w*h),
	}
}

// Index converts a coordinate to a flat array index.
func (g *Grid) Index(x, y int) int {
	return y*g.W + x
}

// InBounds returns true if (x, y) lies within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Get returns the cell at (x, y), or Empty when out of bounds.
func (g *Grid) Get(x, y int) ElementID {
	if !g.InBounds(x, y) {
		return Empty
	}
	return g.Cells[g.Index(x, y)]
}

// Set writes id at (x, y). Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, id ElementID) {
	if g.InBounds(x, y) {
		g.Cells[g.Index(x, y)] = id
	}
}

// Clear empties the grid.
func (g *Grid) Clear() {
	clear(g.Cells)
}

// FillRect fills the inclusive rectangle spanned by two corners,
// clipped to the grid.
func (g *Grid) FillRect(x0, y0, x1, y1 int, id ElementID) {
	startX, endX := max(0, min(x0, x1)), min(g.W-1, max(x0, x1))
	startY, endY := max(0, min(y0, y1)), min(g.H-1, max(y0, y1))
	for y := startY; y <= endY; y++ {
		for x := startX; x <= endX; x++ {
			g.Cells[g.Index(x, y)] = id
		}
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]ElementID, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{
		W:     g.W,
		H:     g.H,
		Cells: cells,
	}
}

// SameSize reports whether two grids have identical dimensions.
func (g *Grid) SameSize(other *Grid) bool {
	return g.W == other.W && g.H == other.H && len(g.Cells) == len(other.Cells)
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if !g.SameSize(other) {
		return false
	}
	for i, id := range g.Cells {
		if id != other.Cells[i] {
			return false
		}
	}
	return true
}
