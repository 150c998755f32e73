package fixtures

import (
	"fmt"

	"golang.org/x/exp/rand"
)

type Vector []float32

type DataRow struct {
	Id     int64
	Vector Vector
	Word   string
}

type DataSource interface {
	GetDataSet() ([]DataRow, error)
}

// Distribution names the distribution vector components are drawn from.
type Distribution string

const (
	Uniform Distribution = "uniform"
	Normal  Distribution = "normal"
)

// querySeedMix derives the query stream seed from the dataset seed so that
// queries never replay the dataset's own vectors.
const querySeedMix = 0x9e3779b97f4a7c15

// DataGenerator produces Size rows of Dim-dimensional vectors. Rows are drawn
// in id order from a single generator seeded with Seed, so the first row of a
// uniform dataset equals RandomVectorSeed[float32](Dim, Seed).
type DataGenerator struct {
	Size         int
	Dim          int
	Seed         uint64
	Distribution Distribution // empty means Uniform
	Mean         float32      // Normal only
	StdDev       float32      // Normal only
}

func (g DataGenerator) validate() error {
	if g.Size < 0 {
		return fmt.Errorf("invalid size %d: must not be negative", g.Size)
	}
	if g.Dim < 0 {
		return fmt.Errorf("invalid dim %d: must not be negative", g.Dim)
	}
	switch g.Distribution {
	case "", Uniform, Normal:
		return nil
	default:
		return fmt.Errorf("unknown distribution %q", g.Distribution)
	}
}

func (g DataGenerator) vector(generator *rand.Rand) Vector {
	if g.Distribution == Normal {
		return NormalVector(generator, g.Dim, g.StdDev, g.Mean)
	}
	v := make(Vector, g.Dim)
	for i := range v {
		v[i] = uniform[float32](generator.Float64)
	}
	return v
}

func (g DataGenerator) GetDataSet() ([]DataRow, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	generator := NewGenerator(g.Seed)
	rows := make([]DataRow, g.Size)
	for i := range rows {
		rows[i] = DataRow{
			Id:     int64(i),
			Vector: g.vector(generator),
			Word:   fmt.Sprintf("row-%d", i),
		}
	}
	return rows, nil
}

// Queries draws n query vectors from the generator's distribution using a
// seed derived from, but distinct from, the dataset seed.
func (g DataGenerator) Queries(n int) ([]Vector, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("invalid query count %d: must not be negative", n)
	}
	generator := NewGenerator(g.Seed ^ querySeedMix)
	queries := make([]Vector, n)
	for i := range queries {
		queries[i] = g.vector(generator)
	}
	return queries, nil
}
