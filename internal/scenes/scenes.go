// Package scenes provides the built-in starting scenes for the sandbox.
// Importing the package registers every preset with the registry.
package scenes

import (
	"github.com/aquilax/go-perlin"

	"github.com/vovakirdan/tui-sand/internal/registry"
	"github.com/vovakirdan/tui-sand/internal/sim"
)

// DefaultPreset is the preset used when none is requested.
const DefaultPreset = "blank-slate"

// Terrain noise parameters: smoothing, frequency and octaves.
const (
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = int32(3)
)

// preset is the common implementation behind every built-in scene.
type preset struct {
	id          string
	title       string
	description string
	build       func(g *sim.Grid, rng sim.Rand)
}

func (p preset) ID() string          { return p.id }
func (p preset) Title() string       { return p.title }
func (p preset) Description() string { return p.description }

// Build returns a new grid of w by h cells populated by the preset.
func (p preset) Build(w, h int, rng sim.Rand) *sim.Grid {
	g := sim.NewGrid(w, h)
	if w > 0 && h > 0 {
		p.build(g, rng)
	}
	return g
}

func register(p preset) {
	registry.Register(p.id, func() registry.Preset { return p })
}

// intn returns a value in [0, n) drawn from rng.
func intn(rng sim.Rand, n int) int {
	if n <= 0 {
		return 0
	}
	v := int(rng.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

// sprinkle drops count particles of id at random cells, overwriting
// whatever is there.
func sprinkle(g *sim.Grid, rng sim.Rand, count int, id sim.ElementID) {
	for i := 0; i < count; i++ {
		g.Set(intn(rng, g.W), intn(rng, g.H), id)
	}
}

// band fills thickness+1 full-width rows starting at y, clipped to the grid.
func band(g *sim.Grid, y, thickness int, id sim.ElementID) {
	g.FillRect(0, y, g.W, min(g.H-1, y+thickness), id)
}

// terrain returns a 1D noise source in [0, 1] seeded from rng.
func terrain(rng sim.Rand) func(x float64) float64 {
	seed := int64(rng.Float64() * (1 << 31))
	p := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed)
	return func(x float64) float64 {
		return (p.Noise1D(x) + 1) / 2
	}
}

// RandomFill scatters sand, water, stone, plant and fire over the grid.
// Each cell rolls once; cells that roll below every threshold keep their
// current contents.
func RandomFill(g *sim.Grid, rng sim.Rand) {
	for i := range g.Cells {
		roll := rng.Float64()
		switch {
		case roll > 0.92:
			g.Cells[i] = sim.Sand
		case roll > 0.88:
			g.Cells[i] = sim.Water
		case roll > 0.86:
			g.Cells[i] = sim.Stone
		case roll > 0.845:
			g.Cells[i] = sim.Plant
		case roll > 0.84:
			g.Cells[i] = sim.Fire
		}
	}
}
