// Package analysis implements the post-hoc examination of benchmark output:
// descriptive statistics over metric samples, head-to-head comparison of
// solver solutions, and feasibility validation of solutions against their
// instances.
package analysis

import (
	"math"
	"sort"
)

// Stats holds descriptive statistics of a metric sample. A sample with no
// finite values yields the zero Stats with Count 0 and no other fields.
type Stats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean,omitempty"`
	Min    float64 `json:"min,omitempty"`
	Max    float64 `json:"max,omitempty"`
	Std    float64 `json:"std,omitempty"`
	Median float64 `json:"median,omitempty"`
	Range  float64 `json:"range,omitempty"`
}

// CalculateStatistics computes descriptive statistics over values. Infinite
// and NaN entries (failure sentinels) are dropped before computing; if
// nothing survives, the result carries Count 0 only.
//
// Std is the sample standard deviation (n-1 denominator), 0 for a single
// value.
func CalculateStatistics(values []float64) Stats {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsInf(v, 0) && !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return Stats{Count: 0}
	}

	n := len(finite)
	sum := 0.0
	minV, maxV := finite[0], finite[0]
	for _, v := range finite {
		sum += v
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	mean := sum / float64(n)

	std := 0.0
	if n > 1 {
		ss := 0.0
		for _, v := range finite {
			d := v - mean
			ss += d * d
		}
		std = math.Sqrt(ss / float64(n-1))
	}

	return Stats{
		Count:  n,
		Mean:   mean,
		Min:    minV,
		Max:    maxV,
		Std:    std,
		Median: median(finite),
		Range:  maxV - minV,
	}
}

// median returns the middle value of the sample, averaging the two central
// values for even sizes. The input slice is not modified.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
