// Package ik implements numerical inverse kinematics: a shared iteration skeleton plus four
// solver-specific step rules (DLS, Jacobian pseudoinverse, Jacobian transpose, SDLS) that turn a
// 6-D Cartesian pose error into a joint increment.
package ik

import (
	"math"

	"github.com/a-price/robotKin/spatialmath"
)

// Metric scores how far a current pose is from a goal pose. Solvers use it only for their
// convergence check; the step rule itself always works from the raw 6-D PoseDelta.
type Metric func(current, goal spatialmath.Pose) float64

// NewSquaredNormMetric returns a Metric equal to the squared Euclidean norm of the 6-D pose
// delta between current and goal -- the default convergence metric used by Engine.
func NewSquaredNormMetric() Metric {
	return func(current, goal spatialmath.Pose) float64 {
		return squaredNorm(spatialmath.PoseDelta(current, goal))
	}
}

// NewBasicMetric returns a Metric equal to the Euclidean norm (not squared) of the 6-D pose
// delta, useful when a caller wants a tolerance expressed in the same units as the error itself.
func NewBasicMetric() Metric {
	return func(current, goal spatialmath.Pose) float64 {
		return math.Sqrt(squaredNorm(spatialmath.PoseDelta(current, goal)))
	}
}

// NewWeightedSquaredNormMetric returns a Metric like NewSquaredNormMetric but with each of the
// six error components scaled by weights before summing, letting a caller de-emphasize
// orientation error relative to position error or vice versa.
func NewWeightedSquaredNormMetric(weights [6]float64) Metric {
	return func(current, goal spatialmath.Pose) float64 {
		delta := spatialmath.PoseDelta(current, goal)
		var sum float64
		for i, d := range delta {
			sum += weights[i] * d * d
		}
		return sum
	}
}

func squaredNorm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return sum
}
