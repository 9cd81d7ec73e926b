package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-sand/internal/sim"
)

// scripted returns queued values in order, then 0.5 forever.
type scripted struct {
	vals []float64
}

func (s *scripted) Float64() float64 {
	if len(s.vals) == 0 {
		return 0.5
	}
	v := s.vals[0]
	s.vals = s.vals[1:]
	return v
}

func rows(t *testing.T, lines ...string) *sim.Grid {
	t.Helper()
	legend := map[byte]sim.ElementID{
		'.': sim.Empty, 's': sim.Sand, 'w': sim.Water, '#': sim.Stone,
		'p': sim.Plant, 'f': sim.Fire, 'o': sim.Soil, 'd': sim.Wood,
		'e': sim.Seed, '~': sim.Steam,
	}
	g := sim.NewGrid(len(lines[0]), len(lines))
	for y, line := range lines {
		require.Len(t, line, g.W, "row %d", y)
		for x := 0; x < len(line); x++ {
			id, ok := legend[line[x]]
			require.True(t, ok, "unknown legend %q", line[x])
			g.Set(x, y, id)
		}
	}
	return g
}

func step(g *sim.Grid, rng sim.Rand) (*sim.Grid, int) {
	return sim.Step(g, sim.NewGrid(g.W, g.H), rng)
}

func TestElementTable(t *testing.T) {
	empty, ok := sim.Lookup(0)
	require.True(t, ok)
	assert.Equal(t, "empty", empty.Key)
	assert.Equal(t, sim.Empty, empty.ID)

	for _, e := range sim.All() {
		got, ok := sim.Lookup(e.ID)
		require.True(t, ok)
		assert.Equal(t, e, got)

		byKey, ok := sim.ByKey(e.Key)
		require.True(t, ok, e.Key)
		assert.Equal(t, e.ID, byKey.ID)
	}

	_, ok = sim.Lookup(200)
	assert.False(t, ok)
	assert.Equal(t, sim.KindUnknown, sim.KindOf(200))
	assert.Equal(t, "unknown(200)", sim.ElementID(200).String())
}

func TestPaletteEndsWithEmpty(t *testing.T) {
	p := sim.Palette()
	require.NotEmpty(t, p)
	assert.Equal(t, sim.Empty, p[len(p)-1])
	assert.Equal(t, sim.Sand, p[0])

	seen := make(map[sim.ElementID]bool)
	for _, id := range p {
		assert.False(t, seen[id], "duplicate %v", id)
		seen[id] = true
	}
}

func TestStaticKinds(t *testing.T) {
	for _, id := range []sim.ElementID{sim.Stone, sim.Soil, sim.Wood} {
		assert.Equal(t, sim.KindStatic, sim.KindOf(id), id.String())
	}
}

func TestCountParticles(t *testing.T) {
	g := rows(t,
		"s..#",
		".w..",
		"....",
		"pf~e",
	)
	assert.Equal(t, 7, sim.CountParticles(g))
	assert.Equal(t, 0, sim.CountParticles(sim.NewGrid(4, 4)))

	census := sim.Census(g)
	assert.Equal(t, 1, census[sim.Sand])
	assert.Equal(t, 1, census[sim.Fire])
	assert.NotContains(t, census, sim.Empty)
}
