// Package mathutil provides small numeric helpers shared by the scoring code.
package mathutil

import "math"

// Min calculates the minimum of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}

	return b
}

// Max calculates the maximum of two integers.
func Max(a, b int) int {
	if a < b {
		return b
	}

	return a
}

// Clamp limits v to the inclusive range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Round2 rounds v to two decimal places, matching report precision.
func Round2(v float64) float64 {
	const shift = 100

	return math.Round(v*shift) / shift
}

// SafeRatio returns num/den, or 0 when den is zero.
// Degenerate inputs must yield a defined zero, never NaN or Inf.
func SafeRatio(num, den float64) float64 {
	if den == 0 {
		return 0
	}

	return num / den
}
