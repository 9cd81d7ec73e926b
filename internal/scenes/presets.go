package scenes

import (
	"math"

	"github.com/vovakirdan/tui-sand/internal/sim"
)

func init() {
	register(preset{
		id:          "garden-homestead",
		title:       "Garden Homestead",
		description: "Tilled soil rows, a pond, a wooden fence and seeds ready to sprout",
		build:       buildGarden,
	})
	register(preset{
		id:          "river-delta",
		title:       "River Delta",
		description: "A winding river over sandbanks with scattered reeds and rocks",
		build:       buildDelta,
	})
	register(preset{
		id:          "desert-dunes",
		title:       "Desert Dunes",
		description: "Rolling dunes, buried stones and a few stray embers",
		build:       buildDunes,
	})
	register(preset{
		id:          "volcanic-ridge",
		title:       "Volcanic Ridge",
		description: "A stone ridge venting fire and steam",
		build:       buildVolcano,
	})
	register(preset{
		id:          "rainforest-edge",
		title:       "Rainforest Edge",
		description: "Dense canopy over wet soil, full of seeds",
		build:       buildRainforest,
	})
	register(preset{
		id:          DefaultPreset,
		title:       "Blank Slate",
		description: "An empty grid",
		build:       func(*sim.Grid, sim.Rand) {},
	})
}

func buildGarden(g *sim.Grid, rng sim.Rand) {
	w, h := g.W, g.H
	base := int(float64(h) * 0.72)
	band(g, base, h-base, sim.Soil)
	for _, off := range []int{4, 10, 16} {
		band(g, base-off, 2, sim.Soil)
	}

	// pond
	g.FillRect(int(float64(w)*0.1), base-2, int(float64(w)*0.4), base, sim.Water)

	// fence
	for x := int(float64(w) * 0.55); x < int(float64(w)*0.9); x++ {
		y := base - 6
		if x%3 == 0 {
			y--
		}
		g.Set(x, y, sim.Wood)
	}

	for x := int(float64(w) * 0.15); x < int(float64(w)*0.85); x += 3 {
		y := base - 5
		if x%6 == 0 {
			y--
		}
		g.Set(x, y, sim.Seed)
	}

	sprinkle(g, rng, int(float64(w)*0.2), sim.Plant)
}

func buildDelta(g *sim.Grid, rng sim.Rand) {
	w, h := g.W, g.H
	ground := int(float64(h) * 0.78)
	g.FillRect(0, ground, w, h-1, sim.Sand)

	river := ground - 4
	for x := 0; x < w; x++ {
		y := river + int(math.Floor(5*math.Sin(float64(x)/7)))
		g.Set(x, y, sim.Water)
		g.Set(x, y+1, sim.Water)
	}

	sprinkle(g, rng, int(float64(w)*0.25), sim.Plant)
	sprinkle(g, rng, int(float64(w)*0.15), sim.Stone)
}

func buildDunes(g *sim.Grid, rng sim.Rand) {
	w, h := g.W, g.H
	base := int(float64(h) * 0.68)
	noise := terrain(rng)
	for x := 0; x < w; x++ {
		fx := float64(x)
		swell := 10*math.Sin(fx/8) + 4*math.Sin(fx/3)
		ripple := 6 * (noise(fx/24) - 0.5)
		top := base + int(math.Floor(swell+ripple))
		for y := max(0, top); y < h; y++ {
			g.Set(x, y, sim.Sand)
		}
	}

	sprinkle(g, rng, int(float64(w)*0.12), sim.Stone)
	sprinkle(g, rng, int(float64(w)*0.06), sim.Fire)
}

func buildVolcano(g *sim.Grid, rng sim.Rand) {
	w, h := g.W, g.H
	ridge := int(float64(h) * 0.6)
	g.FillRect(0, ridge, w, h-1, sim.Stone)

	for x := int(float64(w) * 0.2); x < int(float64(w)*0.8); x += 5 {
		vent := ridge - 2 - int(math.Floor(2*math.Sin(float64(x)/5)))
		g.Set(x, vent, sim.Fire)
		g.Set(x, vent-1, sim.Steam)
	}

	sprinkle(g, rng, int(float64(w)*0.06), sim.Fire)
	sprinkle(g, rng, int(float64(w)*0.05), sim.Steam)
}

func buildRainforest(g *sim.Grid, rng sim.Rand) {
	w, h := g.W, g.H
	ground := int(float64(h) * 0.7)
	g.FillRect(0, ground, w, h-1, sim.Soil)

	// Canopy clusters where the noise runs high.
	noise := terrain(rng)
	planted := 0
	want := int(float64(w) * 0.7)
	for tries := 0; planted < want && tries < want*8; tries++ {
		x, y := intn(rng, w), intn(rng, max(1, ground))
		if noise(float64(x)/16) < 0.45 {
			continue
		}
		g.Set(x, y, sim.Plant)
		planted++
	}

	sprinkle(g, rng, int(float64(w)*0.35), sim.Water)
	sprinkle(g, rng, int(float64(w)*0.15), sim.Seed)
}
