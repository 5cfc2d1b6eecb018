package optics

import (
	"fmt"
	"math"
	"strconv"
)

// ParallelFormula is reported for θ = 0.
const ParallelFormula = "Parallel mirrors: infinite images"

// maxTheoretical bounds N for pathologically small angles.
const maxTheoretical = math.MaxInt32

// TheoreticalCount returns the classical image count for mirrors at theta
// degrees together with its display formula. exact is false when theta does
// not divide 360 and the formula is only an approximation.
func TheoreticalCount(theta float64) (n int, formula string, exact bool) {
	if theta == 0 {
		return 0, ParallelFormula, false
	}

	label := FormatDegrees(theta)
	if divides360(theta) {
		n = int(math.Round(360/theta)) - 1
		return n, fmt.Sprintf("N = 360°/%s° - 1 = %d", label, n), true
	}

	ratio := math.Floor(360 / theta)
	switch {
	case math.IsNaN(ratio), ratio < 0:
		n = 0
	case ratio > maxTheoretical:
		n = maxTheoretical
	default:
		n = int(ratio)
	}
	return n, fmt.Sprintf("N ≈ 360°/%s° ≈ %d", label, n), false
}

// divisorTolerance absorbs the float error in 360/theta for fractional
// divisors such as 22.5 or 11.25.
const divisorTolerance = 1e-9

// divides360 reports whether 360/theta is a whole number, fractional theta
// included.
func divides360(theta float64) bool {
	if theta <= 0 || theta > 360 {
		return false
	}
	ratio := 360 / theta
	return math.Abs(ratio-math.Round(ratio)) < divisorTolerance
}

// FormatDegrees prints an angle in its shortest decimal form (60, 47.5).
func FormatDegrees(deg float64) string {
	return strconv.FormatFloat(deg, 'f', -1, 64)
}
