package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-sand/internal/sim"
)

func TestStepSingleSandFalls(t *testing.T) {
	g := sim.NewGrid(5, 5)
	g.Set(2, 0, sim.Sand)

	next, particles := step(g, sim.NewRand(1))

	assert.Equal(t, 1, particles)
	assert.Equal(t, sim.Sand, next.Get(2, 1))
	assert.Equal(t, 1, sim.CountParticles(next))
}

func TestStepBrushedSandConserved(t *testing.T) {
	g := sim.NewGrid(5, 5)
	sim.ApplyBrush(g, 2, 0, 1, sim.Sand)
	require.Equal(t, 4, sim.CountParticles(g))

	next, particles := step(g, sim.NewRand(3))

	assert.Equal(t, 4, particles)
	assert.Equal(t, 4, sim.CountParticles(next))
	assert.Equal(t, sim.Sand, next.Get(2, 2), "bottom of the disc falls straight down")
}

func TestStepFireNextToWaterBecomesSteam(t *testing.T) {
	g := rows(t,
		"...",
		".f.",
		".w.",
	)

	next, particles := step(g, sim.NewRand(9))

	assert.Equal(t, 2, particles)
	assert.Equal(t, sim.Steam, next.Get(1, 1))
}

func TestStepStaticNeverMoves(t *testing.T) {
	g := rows(t,
		"#..#",
		".#..",
		"....",
		"##.#",
	)
	want := g.Clone()
	rng := sim.NewRand(11)

	cur, scratch := g, sim.NewGrid(g.W, g.H)
	for i := 0; i < 50; i++ {
		next, particles := sim.Step(cur, scratch, rng)
		require.Equal(t, 6, particles)
		cur, scratch = next, cur
	}
	assert.True(t, want.Equal(cur))
}

func TestStepSandSettles(t *testing.T) {
	const w, h = 12, 10
	g := sim.NewGrid(w, h)
	rng := sim.NewRand(21)
	for y := 0; y < 4; y++ {
		for x := 0; x < w; x++ {
			if rng.Float64() < 0.6 {
				g.Set(x, y, sim.Sand)
			}
		}
	}
	g.FillRect(3, 7, 5, 7, sim.Stone)
	sand := sim.Census(g)[sim.Sand]

	arena := sim.NewArena(w, h)
	require.NoError(t, arena.Replace(g))
	for i := 0; i < 200; i++ {
		arena.Tick(rng)
	}

	final := arena.Current()
	assert.Equal(t, sand, sim.Census(final)[sim.Sand], "sand is conserved")
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if final.Get(x, y) != sim.Sand || y == h-1 {
				continue
			}
			assert.NotEqual(t, sim.Empty, final.Get(x, y+1), "sand at (%d,%d) is floating", x, y)
		}
	}
}

func TestStepGranularDiagonal(t *testing.T) {
	g := rows(t,
		".s.",
		".#.",
	)
	next, _ := step(g, &scripted{vals: []float64{0.9}})
	assert.Equal(t, sim.Sand, next.Get(2, 1))

	next, _ = step(g, &scripted{vals: []float64{0.1}})
	assert.Equal(t, sim.Sand, next.Get(0, 1))
}

func TestStepGranularTriesOneSideOnly(t *testing.T) {
	g := rows(t,
		".s.",
		".##",
	)
	// Coin picks the blocked right side; the open left side is not tried.
	next, _ := step(g, &scripted{vals: []float64{0.9}})
	assert.Equal(t, sim.Sand, next.Get(1, 0))
	assert.Equal(t, sim.Empty, next.Get(0, 1))
}

func TestStepWaterSpreads(t *testing.T) {
	cases := []struct {
		name  string
		row   string
		coin  float64
		wantX int
	}{
		{"right one", "..w..", 0.9, 3},
		{"left one", "..w..", 0.1, 1},
		{"jumps to two", "..w#.", 0.9, 4},
		{"blocked both", "..w##", 0.9, 2},
		{"edge", "....w", 0.9, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := rows(t, tc.row)
			next, _ := step(g, &scripted{vals: []float64{tc.coin}})
			assert.Equal(t, sim.Water, next.Get(tc.wantX, 0))
			assert.Equal(t, 1, sim.Census(next)[sim.Water])
		})
	}
}

func TestStepWaterFallsFirst(t *testing.T) {
	g := rows(t,
		".w.",
		"...",
	)
	next, _ := step(g, &scripted{})
	assert.Equal(t, sim.Water, next.Get(1, 1))
}

func TestStepSeedSprouts(t *testing.T) {
	g := rows(t,
		".e.",
		"ooo",
	)
	next, _ := step(g, &scripted{vals: []float64{0.9, 0.1}})
	assert.Equal(t, sim.Plant, next.Get(1, 0))

	next, _ = step(g, &scripted{vals: []float64{0.9, 0.9}})
	assert.Equal(t, sim.Seed, next.Get(1, 0))
}

func TestStepSeedFallsBeforeSprouting(t *testing.T) {
	g := rows(t,
		"we.",
		"...",
	)
	next, _ := step(g, &scripted{vals: []float64{0.1, 0.1, 0.1}})
	assert.Equal(t, sim.Seed, next.Get(1, 1))
}

func TestStepPlantIgnites(t *testing.T) {
	g := rows(t,
		".f.",
		".p.",
		"...",
	)
	next, _ := step(g, &scripted{})
	assert.Equal(t, sim.Fire, next.Get(1, 1))
	assert.Equal(t, sim.Fire, next.Get(1, 0))
}

func TestStepPlantGrowsNearWater(t *testing.T) {
	g := rows(t,
		"...",
		".p.",
		"#w#",
	)
	// water coin, grow roll, diagonal x, diagonal y
	next, _ := step(g, &scripted{vals: []float64{0.9, 0.1, 0.9, 0.1}})

	assert.Equal(t, sim.Empty, next.Get(1, 1), "plant leaves its cell when it spreads")
	assert.Equal(t, sim.Plant, next.Get(2, 0), "plant moves to the up-right diagonal")
	assert.Equal(t, sim.Water, next.Get(1, 2))
	assert.Equal(t, 1, sim.Census(next)[sim.Plant])
}

func TestStepPlantSpreadsThenIgnites(t *testing.T) {
	g := rows(t,
		"f..",
		".p.",
		"#w#",
	)
	// water coin, grow roll, diagonal x, diagonal y; the fire only rolls
	// its burn-out chance.
	next, _ := step(g, &scripted{vals: []float64{0.9, 0.1, 0.9, 0.1}})

	assert.Equal(t, sim.Plant, next.Get(2, 0), "water below spreads the plant first")
	assert.Equal(t, sim.Fire, next.Get(1, 1), "fire later in the scan still ignites it")
	assert.Equal(t, sim.Fire, next.Get(0, 0))
}

func TestStepPlantGrowthBlocked(t *testing.T) {
	g := rows(t,
		"...",
		".p.",
		"#w#",
	)
	// Diagonal down-right is stone.
	next, _ := step(g, &scripted{vals: []float64{0.9, 0.1, 0.9, 0.9}})
	assert.Equal(t, 1, sim.Census(next)[sim.Plant])
}

func TestStepFireIgnitesKindlingAbove(t *testing.T) {
	g := rows(t,
		"ddd",
		".f.",
		"...",
	)
	next, _ := step(g, &scripted{})
	assert.Equal(t, sim.Fire, next.Get(0, 0))
	assert.Equal(t, sim.Fire, next.Get(1, 0))
	assert.Equal(t, sim.Fire, next.Get(2, 0))
	assert.Equal(t, sim.Fire, next.Get(1, 1), "fire stays when it cannot rise")
}

func TestStepFireRisesAndBurnsOut(t *testing.T) {
	g := rows(t,
		"...",
		".f.",
		"...",
	)
	next, _ := step(g, &scripted{vals: []float64{0.5}})
	assert.Equal(t, sim.Fire, next.Get(1, 0))

	next, _ = step(g, &scripted{vals: []float64{0.01}})
	assert.Equal(t, 0, sim.CountParticles(next))
}

func TestStepWaterQuenchesBeforeIgniting(t *testing.T) {
	g := rows(t,
		"d.#",
		"#fw",
		"###",
	)
	next, _ := step(g, &scripted{vals: []float64{0.9}})
	assert.Equal(t, sim.Steam, next.Get(1, 1))
	assert.Equal(t, sim.Wood, next.Get(0, 0), "quenched fire ignites nothing")
}

func TestStepSteam(t *testing.T) {
	g := rows(t,
		"...",
		"...",
		".~.",
	)
	next, _ := step(g, &scripted{vals: []float64{0.5}})
	assert.Equal(t, sim.Steam, next.Get(1, 1))

	next, _ = step(g, &scripted{vals: []float64{0.01}})
	assert.Equal(t, 0, sim.CountParticles(next))

	capped := rows(t,
		".#.",
		".~.",
	)
	next, _ = step(capped, &scripted{vals: []float64{0.5, 0.9}})
	assert.Equal(t, sim.Steam, next.Get(2, 0))

	trapped := rows(t,
		"###",
		".~.",
	)
	next, _ = step(trapped, &scripted{vals: []float64{0.5, 0.9}})
	assert.Equal(t, sim.Steam, next.Get(1, 1))
}

func TestStepPreservesUnknownIDs(t *testing.T) {
	g := sim.NewGrid(3, 3)
	g.Set(1, 0, sim.ElementID(77))

	next, particles := step(g, sim.NewRand(5))
	assert.Equal(t, 1, particles)
	assert.Equal(t, sim.ElementID(77), next.Get(1, 0))
}

func TestStepClearsDestination(t *testing.T) {
	g := sim.NewGrid(3, 3)
	dst := sim.NewGrid(3, 3)
	dst.FillRect(0, 0, dst.W-1, dst.H-1, sim.Stone)

	next, particles := sim.Step(g, dst, sim.NewRand(1))
	assert.Same(t, dst, next)
	assert.Equal(t, 0, particles)
	assert.Equal(t, 0, sim.CountParticles(next))
}

func TestStepRejectsBadBuffers(t *testing.T) {
	g := sim.NewGrid(3, 3)
	assert.Panics(t, func() { sim.Step(g, g, sim.NewRand(1)) })
	assert.Panics(t, func() { sim.Step(g, sim.NewGrid(3, 4), sim.NewRand(1)) })
}

func TestStepDeterministic(t *testing.T) {
	build := func() *sim.Arena {
		a := sim.NewArena(24, 16)
		g := a.Current()
		sim.ApplyBrush(g, 5, 3, 3, sim.Sand)
		sim.ApplyBrush(g, 15, 2, 2, sim.Water)
		sim.ApplyBrush(g, 12, 12, 2, sim.Plant)
		sim.ApplyBrush(g, 12, 9, 1, sim.Fire)
		g.FillRect(0, 15, 23, 15, sim.Stone)
		return a
	}

	a, b := build(), build()
	ra, rb := sim.NewRand(12345), sim.NewRand(12345)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Tick(ra), b.Tick(rb), "tick %d", i)
	}
	assert.True(t, a.Current().Equal(b.Current()))
}

func TestStepCountMatchesCensus(t *testing.T) {
	a := sim.NewArena(20, 20)
	g := a.Current()
	sim.ApplyBrush(g, 10, 5, 4, sim.Water)
	sim.ApplyBrush(g, 4, 15, 3, sim.Plant)
	sim.ApplyBrush(g, 4, 11, 1, sim.Fire)
	rng := sim.NewRand(77)

	for i := 0; i < 40; i++ {
		before := sim.CountParticles(a.Current())
		require.Equal(t, before, a.Tick(rng), "tick %d", i)
	}
}
