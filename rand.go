package blobmc

import "math/rand/v2"

// PRNG is the entropy source every movetype, movemap, and the configuration's
// random-monomer picker draw from. One instance is threaded through
// explicitly so runs are seed-reproducible; nothing in this package reaches
// for the global math/rand state.
type PRNG interface {
	// UniformReal returns a real in the open interval (0, 1).
	UniformReal() float64
	// UniformInt returns an integer in [lo, hi], inclusive on both ends.
	UniformInt(lo, hi int) int
}

// DefaultPRNG wraps math/rand/v2's PCG source, the standard deterministic,
// seedable generator in the modern standard library.
type DefaultPRNG struct {
	r *rand.Rand
}

// NewDefaultPRNG seeds a PRNG deterministically from a single uint64.
func NewDefaultPRNG(seed uint64) *DefaultPRNG {
	return &DefaultPRNG{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *DefaultPRNG) UniformReal() float64 {
	for {
		v := p.r.Float64()
		if v > 0 {
			return v
		}
	}
}

func (p *DefaultPRNG) UniformInt(lo, hi int) int {
	if hi < lo {
		panic("blobmc: UniformInt called with hi < lo")
	}
	return lo + p.r.IntN(hi-lo+1)
}
