package sim

// CountParticles returns the number of non-empty cells in g.
func CountParticles(g *Grid) int {
	count := 0
	for _, id := range g.Cells {
		if id != Empty {
			count++
		}
	}
	return count
}

// Census counts cells per element id, excluding empty cells.
func Census(g *Grid) map[ElementID]int {
	counts := make(map[ElementID]int)
	for _, id := range g.Cells {
		if id != Empty {
			counts[id]++
		}
	}
	return counts
}
