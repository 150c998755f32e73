package fixtures

import (
	"math"
	"testing"
)

func TestSummarize_Empty(t *testing.T) {
	if s := Summarize([]float64{}); s != (Summary{}) {
		t.Errorf("Expected zero summary, got %+v", s)
	}
}

func TestSummarize_SingleValue(t *testing.T) {
	s := Summarize([]float32{0.25})

	if s.Count != 1 || s.Min != 0.25 || s.Max != 0.25 || s.Mean != 0.25 || s.StdDev != 0 {
		t.Errorf("Unexpected summary %+v", s)
	}
}

func TestSummarize_KnownValues(t *testing.T) {
	s := Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	if s.Count != 8 || s.Min != 2 || s.Max != 9 || s.Mean != 5 {
		t.Errorf("Unexpected summary %+v", s)
	}
	// sample standard deviation
	want := math.Sqrt(32.0 / 7.0)
	if math.Abs(s.StdDev-want) > 1e-12 {
		t.Errorf("Expected stddev %f, got %f", want, s.StdDev)
	}
}

func TestSummarizeRows_AllComponents(t *testing.T) {
	rows := []DataRow{
		{Vector: Vector{0, 1}},
		{Vector: Vector{2}},
	}

	s := SummarizeRows(rows)
	if s.Count != 3 || s.Min != 0 || s.Max != 2 || s.Mean != 1 {
		t.Errorf("Unexpected summary %+v", s)
	}
}

func TestInUnitInterval(t *testing.T) {
	if !InUnitInterval([]float64{0, 0.5, 0.999}) {
		t.Error("Expected values in [0, 1) to pass")
	}
	if InUnitInterval([]float64{0.5, 1}) {
		t.Error("Expected 1 to fail")
	}
	if InUnitInterval([]float64{-0.1}) {
		t.Error("Expected negative value to fail")
	}
	if InUnitInterval([]float64{math.NaN()}) {
		t.Error("Expected NaN to fail")
	}
	if !InUnitInterval([]float32{}) {
		t.Error("Expected empty slice to pass")
	}
}
