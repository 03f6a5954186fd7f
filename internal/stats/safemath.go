package stats

import "math"

// This file centralizes the numeric guard rails used across the analytics
// pipeline. Every clamp and divide-by-zero guard lives here so the safety
// net is auditable in one place.

// ClampNonNeg returns v clamped to zero when negative.
func ClampNonNeg(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// ClampNonNegInt returns v clamped to zero when negative.
func ClampNonNegInt(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

// Clamp bounds v to the [lo, hi] interval.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SafeDiv returns a/b, or 0 when b is zero.
func SafeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// PercentChange returns the percentage change from previous to current.
// Rising from zero reports +100, zero on both sides reports 0, so callers
// never see NaN or Inf.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}

// Round2 rounds to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round4 rounds to 4 decimal places.
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
