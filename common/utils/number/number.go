package number

import (
	"math"
	"strconv"
)

// Epsilon below which two floats are considered equal by the geometry code.
var Epsilon float64 = 0.000001

func IsZero(f float64) bool {
	return math.Abs(f) < Epsilon
}

func Equals(a, b float64) bool {
	return IsZero(a - b)
}

func FloatToStr(f float64, prec int) string {
	return strconv.FormatFloat(f, 'f', prec, 64)
}

// Round snaps a coordinate to the nearest integer; vertex keys rely on
// every coordinate having gone through this before use.
func Round(f float64) float64 {
	return math.Round(f)
}

func Clamp(f, min, max float64) float64 {
	if f < min {
		return min
	}

	if f > max {
		return max
	}

	return f
}
