package trend

import "math"

// rSquared returns the coefficient of determination of an ordinary
// least-squares line fit over values indexed 0..n-1. A flat or too-short
// series returns 0.
func rSquared(values []float64) float64 {
	n := float64(len(values))
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	denom := n*sumX2 - sumX*sumX
	if denom == 0 {
		return 0
	}
	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	mean := sumY / n
	var ssTot, ssRes float64
	for i, y := range values {
		fit := slope*float64(i) + intercept
		ssTot += (y - mean) * (y - mean)
		ssRes += (y - fit) * (y - fit)
	}
	if ssTot == 0 {
		return 0
	}

	r2 := 1 - ssRes/ssTot
	if r2 < 0 {
		return 0
	}
	return r2
}

// consistency returns the fraction of consecutive first-differences whose
// signs match, a measure of how steadily the series moves in one direction.
// Series shorter than 3 points return the neutral 0.5.
func consistency(values []float64) float64 {
	if len(values) < 3 {
		return 0.5
	}

	diffs := make([]float64, 0, len(values)-1)
	for i := 1; i < len(values); i++ {
		diffs = append(diffs, values[i]-values[i-1])
	}

	matching := 0
	for i := 1; i < len(diffs); i++ {
		if sameSign(diffs[i], diffs[i-1]) {
			matching++
		}
	}
	return float64(matching) / float64(len(diffs)-1)
}

func sameSign(a, b float64) bool {
	if a == 0 && b == 0 {
		return true
	}
	return (a > 0 && b > 0) || (a < 0 && b < 0)
}

// movingAverage returns the simple moving average of values with the given
// window, producing a series shorter by window-1. A window larger than the
// series (or < 1) returns a copy of the input.
func movingAverage(values []float64, window int) []float64 {
	if window < 1 || window > len(values) {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}

	out := make([]float64, 0, len(values)-window+1)
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out = append(out, sum/float64(window))
		}
	}
	return out
}

// meanStdDev returns the mean and population standard deviation of values.
func meanStdDev(values []float64) (mean, stddev float64) {
	n := float64(len(values))
	if n == 0 {
		return 0, 0
	}
	for _, v := range values {
		mean += v
	}
	mean /= n

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= n

	return mean, math.Sqrt(variance)
}
