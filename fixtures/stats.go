package fixtures

import (
	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the values of a generated fixture.
type Summary struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64 // sample standard deviation, 0 for fewer than two values
}

func Summarize[T constraints.Float](values []T) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	xs := make([]float64, len(values))
	for i, v := range values {
		xs[i] = float64(v)
	}
	s := Summary{
		Count: len(xs),
		Min:   floats.Min(xs),
		Max:   floats.Max(xs),
	}
	if len(xs) < 2 {
		s.Mean = xs[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(xs, nil)
	return s
}

// SummarizeRows summarizes every vector component of rows together.
func SummarizeRows(rows []DataRow) Summary {
	var n int
	for _, row := range rows {
		n += len(row.Vector)
	}
	values := make([]float32, 0, n)
	for _, row := range rows {
		values = append(values, row.Vector...)
	}
	return Summarize(values)
}

// InUnitInterval reports whether every value lies in [0, 1).
func InUnitInterval[T constraints.Float](values []T) bool {
	for _, v := range values {
		if !(v >= 0 && v < 1) {
			return false
		}
	}
	return true
}
