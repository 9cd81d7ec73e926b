package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tui-sand/internal/sim"
)

func TestBrushRadiusOneIsPlus(t *testing.T) {
	g := sim.NewGrid(5, 5)
	sim.ApplyBrush(g, 2, 2, 1, sim.Sand)

	want := rows(t,
		".....",
		"..s..",
		".sss.",
		"..s..",
		".....",
	)
	assert.True(t, want.Equal(g))
	assert.Equal(t, 5, sim.CountParticles(g))
}

func TestBrushClampsRadius(t *testing.T) {
	a := sim.NewGrid(5, 5)
	b := sim.NewGrid(5, 5)
	sim.ApplyBrush(a, 2, 2, 0, sim.Water)
	sim.ApplyBrush(b, 2, 2, 1, sim.Water)
	assert.True(t, a.Equal(b))

	sim.ApplyBrush(a, 2, 2, -4, sim.Water)
	assert.True(t, a.Equal(b))
}

func TestBrushClipsAtBoundary(t *testing.T) {
	g := sim.NewGrid(5, 5)
	assert.NotPanics(t, func() {
		sim.ApplyBrush(g, 0, 0, 2, sim.Stone)
	})

	want := rows(t,
		"###..",
		"##...",
		"#....",
		".....",
		".....",
	)
	assert.True(t, want.Equal(g))
}

func TestBrushOffGrid(t *testing.T) {
	g := sim.NewGrid(4, 4)
	sim.ApplyBrush(g, -10, -10, 3, sim.Sand)
	assert.Equal(t, 0, sim.CountParticles(g))

	sim.ApplyBrush(g, -1, 1, 1, sim.Sand)
	assert.Equal(t, sim.Sand, g.Get(0, 1))
	assert.Equal(t, 1, sim.CountParticles(g))
}

func TestBrushIdempotent(t *testing.T) {
	g := sim.NewGrid(9, 9)
	sim.ApplyBrush(g, 4, 4, 3, sim.Plant)
	once := g.Clone()
	sim.ApplyBrush(g, 4, 4, 3, sim.Plant)
	assert.True(t, once.Equal(g))
}

func TestBrushEraser(t *testing.T) {
	g := sim.NewGrid(5, 5)
	g.FillRect(0, 0, g.W-1, g.H-1, sim.Sand)
	sim.ApplyBrush(g, 2, 2, 1, sim.Empty)
	assert.Equal(t, 20, sim.CountParticles(g))
}

func TestClampBrush(t *testing.T) {
	assert.Equal(t, 1, sim.ClampBrush(0))
	assert.Equal(t, 7, sim.ClampBrush(7))
	assert.Equal(t, sim.MaxBrushRadius, sim.ClampBrush(99))
}
