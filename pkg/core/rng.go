package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Bool returns a random boolean value.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}

// Chance returns true with probability p.
func (r *RNG) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	return r.r.Float64() < p
}

// Int64n returns a random int64 in [0, n).
func (r *RNG) Int64n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	return r.r.Int64N(n)
}

// Scatter calls live for every cell of a w x h box whose top-left corner is
// (left, top), each chosen independently with probability density.
func (r *RNG) Scatter(left, top int64, w, h int, density float64, live func(x, y int64)) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if r.Chance(density) {
				live(left+int64(x), top+int64(y))
			}
		}
	}
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
