package sim

import "fmt"

// Transition probabilities for the per-kind rules.
const (
	SeedSproutChance  = 0.4
	PlantGrowChance   = 0.3
	FireBurnOutChance = 0.04
	SteamFadeChance   = 0.02
)

// neighbors lists the 8-connected offsets in scan order:
// down, up, right, left, then the four diagonals.
var neighbors = [8][2]int{
	{0, 1},
	{0, -1},
	{1, 0},
	{-1, 0},
	{1, 1},
	{-1, 1},
	{1, -1},
	{-1, -1},
}

// stepper carries the buffers of one tick.
// Rules sense src and write only to dst.
type stepper struct {
	src, dst *Grid
	rng      Rand
}

// rule updates the particle at (x, y). The cell at idx is empty in dst
// when a rule is invoked.
type rule func(s *stepper, x, y, idx int, id ElementID)

var rules = [kindCount]rule{
	KindUnknown:  stay,
	KindStatic:   stay,
	KindGranular: fall,
	KindFluid:    flow,
	KindPlant:    grow,
	KindFire:     burn,
	KindGas:      rise,
}

// Step advances src by one tick, writing the result into dst.
// It returns dst and the number of non-empty source cells.
//
// Rows are scanned bottom to top and each row left to right, so a particle
// that falls into a lower row is never visited twice in one tick.
// src and dst must be distinct grids of identical size.
func Step(src, dst *Grid, rng Rand) (*Grid, int) {
	if src == dst || !src.SameSize(dst) {
		panic(fmt.Sprintf("sim: invalid step buffers (%dx%d -> %dx%d)", src.W, src.H, dst.W, dst.H))
	}

	dst.Clear()
	s := stepper{src: src, dst: dst, rng: rng}
	particles := 0

	for y := src.H - 1; y >= 0; y-- {
		for x := 0; x < src.W; x++ {
			idx := y*src.W + x
			id := src.Cells[idx]
			if id == Empty {
				continue
			}
			particles++

			// Something already moved or spread into this cell.
			if dst.Cells[idx] != Empty {
				continue
			}

			rules[kinds[id]](&s, x, y, idx, id)
		}
	}

	return dst, particles
}

// free reports whether (x, y) is in bounds and empty in both buffers.
func (s *stepper) free(x, y int) bool {
	if !s.src.InBounds(x, y) {
		return false
	}
	i := s.src.Index(x, y)
	return s.src.Cells[i] == Empty && s.dst.Cells[i] == Empty
}

// tryMove places id at (x, y) when that cell is free.
func (s *stepper) tryMove(x, y int, id ElementID) bool {
	if !s.free(x, y) {
		return false
	}
	s.dst.Cells[s.dst.Index(x, y)] = id
	return true
}

// touches reports whether any in-bounds neighbor in src satisfies match.
func (s *stepper) touches(x, y int, match func(ElementID) bool) bool {
	for _, n := range neighbors {
		nx, ny := x+n[0], y+n[1]
		if s.src.InBounds(nx, ny) && match(s.src.Cells[s.src.Index(nx, ny)]) {
			return true
		}
	}
	return false
}

func stay(s *stepper, _, _, idx int, id ElementID) {
	s.dst.Cells[idx] = id
}

// fall moves granular particles: straight down, else one randomly chosen
// diagonal. Seeds that stay put may sprout next to water or soil.
func fall(s *stepper, x, y, idx int, id ElementID) {
	if s.tryMove(x, y+1, id) {
		return
	}
	if s.tryMove(x+coin(s.rng), y+1, id) {
		return
	}

	if id == Seed && s.touches(x, y, isMoistOrSoil) && chance(s.rng, SeedSproutChance) {
		s.dst.Cells[idx] = Plant
		return
	}
	s.dst.Cells[idx] = id
}

// flow moves water: down, else sideways one cell, else sideways two cells
// in the same direction.
func flow(s *stepper, x, y, idx int, id ElementID) {
	if s.tryMove(x, y+1, id) {
		return
	}
	dir := coin(s.rng)
	if s.tryMove(x+dir, y, id) {
		return
	}
	if s.tryMove(x+2*dir, y, id) {
		return
	}
	s.dst.Cells[idx] = id
}

// grow handles plants: the first fire neighbor ignites the plant,
// water neighbors may spread it onto a diagonal. A plant that spread
// leaves its own cell empty.
func grow(s *stepper, x, y, idx int, id ElementID) {
	spread := false
	for _, n := range neighbors {
		nx, ny := x+n[0], y+n[1]
		if !s.src.InBounds(nx, ny) {
			continue
		}
		switch s.src.Cells[s.src.Index(nx, ny)] {
		case Fire:
			s.dst.Cells[idx] = Fire
			return
		case Water:
			if chance(s.rng, PlantGrowChance) {
				tx := x + coin(s.rng)
				ty := y + coin(s.rng)
				if s.tryMove(tx, ty, Plant) {
					spread = true
				}
			}
		}
	}
	if !spread {
		s.dst.Cells[idx] = id
	}
}

// burn handles fire: water quenches it into steam, otherwise it ignites
// flammable neighbors, may burn out, and rises when it survives.
func burn(s *stepper, x, y, idx int, id ElementID) {
	if s.touches(x, y, isWater) {
		if s.dst.Cells[idx] == Empty {
			s.dst.Cells[idx] = Steam
		}
		return
	}

	for _, n := range neighbors {
		nx, ny := x+n[0], y+n[1]
		if !s.src.InBounds(nx, ny) {
			continue
		}
		ni := s.src.Index(nx, ny)
		if isKindling(s.src.Cells[ni]) && s.dst.Cells[ni] == Empty {
			s.dst.Cells[ni] = Fire
		}
	}

	if chance(s.rng, FireBurnOutChance) {
		return
	}
	if s.tryMove(x, y-1, id) {
		return
	}
	s.dst.Cells[idx] = id
}

// rise handles steam: it may condense away, otherwise drifts up or
// diagonally up.
func rise(s *stepper, x, y, idx int, id ElementID) {
	if chance(s.rng, SteamFadeChance) {
		return
	}
	if s.tryMove(x, y-1, id) {
		return
	}
	if s.tryMove(x+coin(s.rng), y-1, id) {
		return
	}
	s.dst.Cells[idx] = id
}

func isWater(id ElementID) bool {
	return id == Water
}

func isMoistOrSoil(id ElementID) bool {
	return id == Water || id == Soil
}

func isKindling(id ElementID) bool {
	return id == Plant || id == Wood || id == Seed
}
