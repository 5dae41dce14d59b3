package analysis

import (
	"math"
	"testing"
)

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculateStatistics(t *testing.T) {
	s := CalculateStatistics([]float64{10, 20, 30})

	if s.Count != 3 {
		t.Errorf("Count = %d, want 3", s.Count)
	}
	if !floatEquals(s.Mean, 20) {
		t.Errorf("Mean = %v, want 20", s.Mean)
	}
	if !floatEquals(s.Std, 10) {
		t.Errorf("Std = %v, want 10", s.Std)
	}
	if !floatEquals(s.Median, 20) {
		t.Errorf("Median = %v, want 20", s.Median)
	}
	if !floatEquals(s.Min, 10) || !floatEquals(s.Max, 30) {
		t.Errorf("Min/Max = %v/%v, want 10/30", s.Min, s.Max)
	}
	if !floatEquals(s.Range, 20) {
		t.Errorf("Range = %v, want 20", s.Range)
	}
}

func TestCalculateStatisticsFiltersInfinities(t *testing.T) {
	s := CalculateStatistics([]float64{10, math.Inf(1), 30, math.NaN()})

	if s.Count != 2 {
		t.Fatalf("Count = %d, want 2", s.Count)
	}
	if !floatEquals(s.Mean, 20) {
		t.Errorf("Mean = %v, want 20", s.Mean)
	}
}

func TestCalculateStatisticsEmpty(t *testing.T) {
	for _, values := range [][]float64{nil, {}, {math.Inf(1), math.Inf(1)}} {
		s := CalculateStatistics(values)
		if s.Count != 0 {
			t.Errorf("CalculateStatistics(%v).Count = %d, want 0", values, s.Count)
		}
		if s.Mean != 0 || s.Std != 0 || s.Median != 0 {
			t.Errorf("CalculateStatistics(%v) carries aggregates for empty sample", values)
		}
	}
}

func TestCalculateStatisticsSingleValue(t *testing.T) {
	s := CalculateStatistics([]float64{42})

	if s.Count != 1 {
		t.Fatalf("Count = %d, want 1", s.Count)
	}
	if !floatEquals(s.Std, 0) {
		t.Errorf("Std = %v, want 0 for single value", s.Std)
	}
	if !floatEquals(s.Median, 42) || !floatEquals(s.Range, 0) {
		t.Errorf("Median/Range = %v/%v, want 42/0", s.Median, s.Range)
	}
}

func TestMedianEvenSample(t *testing.T) {
	s := CalculateStatistics([]float64{4, 1, 3, 2})

	if !floatEquals(s.Median, 2.5) {
		t.Errorf("Median = %v, want 2.5", s.Median)
	}
}
