package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// DepthRatio is the proportion of above-basic proficiency relative to basic
// proficiency, rounded to 2 decimals. A zero denominator means "no depth
// signal" and yields 0, never a fault.
func DepthRatio(basic, above float64) float64 {
	if basic <= 0 {
		return 0
	}
	ratio := above / basic
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return 0
	}
	return math.Round(ratio*100) / 100
}

// RangeGrowth is the percent change from a start value to an end value. A
// zero or missing start, or a non-finite result, yields 0.
func RangeGrowth(start, end float64) float64 {
	if start == 0 {
		return 0
	}
	growth := (end - start) / start * 100
	if math.IsNaN(growth) || math.IsInf(growth, 0) {
		return 0
	}
	return growth
}

// SequentialGrowth returns the percent change of each point's value relative
// to the immediately preceding point. The first observed year and any
// non-finite result yield 0. Points must be sorted by year.
func SequentialGrowth(points []TrendPoint) []float64 {
	growth := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		growth[i] = RangeGrowth(points[i-1].Value, points[i].Value)
	}
	return growth
}

// mean is the undefined-average-safe mean: an empty tier or cohort reports 0
// so the response shape stays stable.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}
