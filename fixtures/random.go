// Package fixtures generates deterministic synthetic data for tests and
// benchmarks: uniform and normal random vectors, labelled datasets, the files
// they are stored in and brute-force ground truth for nearest neighbor queries.
package fixtures

import (
	"fmt"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/rand"
)

// NewGenerator returns a PCG-backed generator seeded with seed.
// Generators are not safe for concurrent use; give each goroutine its own.
func NewGenerator(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// RandomVector returns size values drawn uniformly from [0, 1) with seed 0.
func RandomVector[T constraints.Float, L constraints.Integer](size L) []T {
	return RandomVectorSeed[T](size, 0)
}

// RandomVectorSeed returns size values drawn uniformly from [0, 1).
// The same (size, seed) pair always yields the same values. Each call owns
// its generator, so concurrent calls never interfere.
func RandomVectorSeed[T constraints.Float, L constraints.Integer](size L, seed uint64) []T {
	if size < 0 {
		panic(fmt.Sprintf("fixtures: negative vector size %d", size))
	}
	gen := NewGenerator(seed)
	v := make([]T, int(size))
	for i := range v {
		v[i] = uniform[T](gen.Float64)
	}
	return v
}

// uniform draws one value from [0, 1) in T from next, which yields float64
// values in [0, 1). A draw close to 1 can round up to 1.0 in a narrower type;
// such draws are rejected.
func uniform[T constraints.Float](next func() float64) T {
	for {
		x := T(next())
		if x < 1 {
			return x
		}
	}
}
