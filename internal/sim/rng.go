package sim

import "math/rand/v2"

// Rand is the randomness source consumed by the step engine.
// *rand.Rand satisfies it; tests may supply scripted sources.
type Rand interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
}

// NewRand creates a deterministic PCG-backed generator for the given seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0x5a4d))
}

// coin returns +1 or -1 with equal probability.
func coin(rng Rand) int {
	if rng.Float64() > 0.5 {
		return 1
	}
	return -1
}

// chance reports true with probability p.
func chance(rng Rand, p float64) bool {
	return rng.Float64() < p
}
