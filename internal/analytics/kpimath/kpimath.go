// internal/analytics/kpimath/kpimath.go
package kpimath

import "math"

// Round1 rounds to one decimal place; used for percentages and averages.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// RoundWhole rounds to whole units; used for currency-like totals.
func RoundWhole(v float64) float64 {
	return math.Round(v)
}

// Percent returns part/total*100, or 0 when total is zero.
func Percent(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}

// Improvement returns the percentage change of current over baseline, or 0
// when the baseline is zero.
func Improvement(current, baseline float64) float64 {
	if baseline == 0 {
		return 0
	}
	return (current - baseline) / baseline * 100
}

// SafeDiv returns a/b, or 0 when b is zero.
func SafeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
