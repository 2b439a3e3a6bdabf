package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// floatAlmostEqual reports whether a and b differ by no more than epsilon. Used throughout the
// package, and by callers comparing poses/orientations for test purposes, in place of exact
// floating point equality.
func floatAlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

// R3VectorAlmostEqual reports whether two vectors are within epsilon of each other,
// component-wise.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return r3AlmostEqual(a, b, epsilon)
}

// Float64AlmostEqual reports whether a and b differ by no more than epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return floatAlmostEqual(a, b, epsilon)
}
