package fixtures

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/rand"
)

// NormalVector draws dim values from N(mean, stdDev^2) using generator.
func NormalVector[T constraints.Float](generator *rand.Rand, dim int, stdDev T, mean T) (vector []T) {
	vector = make([]T, dim)
	for i := range vector {
		vector[i] = T(generator.NormFloat64())*stdDev + mean
	}
	return
}

// NormalVectors draws count vectors of dimension dim from the same generator.
func NormalVectors[T constraints.Float](
	generator *rand.Rand,
	dim int,
	count int,
	stdDev T,
	mean T,
) [][]T {
	vectors := make([][]T, count)
	for i := range count {
		vectors[i] = NormalVector(generator, dim, stdDev, mean)
	}
	return vectors
}
