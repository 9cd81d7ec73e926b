package sim

// MaxBrushRadius is the largest radius offered by the host UI.
const MaxBrushRadius = 20

// ApplyBrush paints a filled disc of id centered on (cx, cy).
// Radii below 1 are treated as 1. Cells outside the grid are skipped,
// so the center may lie off the board.
func ApplyBrush(g *Grid, cx, cy, radius int, id ElementID) {
	r := max(1, radius)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			x, y := cx+dx, cy+dy
			if g.InBounds(x, y) {
				g.Cells[g.Index(x, y)] = id
			}
		}
	}
}

// ClampBrush restricts a brush radius to [1, MaxBrushRadius].
func ClampBrush(radius int) int {
	return min(max(radius, 1), MaxBrushRadius)
}
