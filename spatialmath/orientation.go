package spatialmath

import (
	"gonum.org/v1/gonum/num/quat"
)

// Orientation is an interface used to express the different parameterizations of the
// orientation of a rigid body or a frame of reference in 3D Euclidean space. The kinematic
// model only ever needs axis-angle and quaternion forms, so this stays deliberately small
// rather than also carrying Euler-angle or orientation-vector forms.
type Orientation interface {
	AxisAngles() *R4AA
	Quaternion() quat.Number
}

// NewZeroOrientation returns an orientation which signifies no rotation.
func NewZeroOrientation() Orientation {
	return &R4AA{Theta: 0, RX: 0, RY: 0, RZ: 1}
}

// OrientationAlmostEqual reports whether two orientations represent approximately the same
// rotation, accounting for the quaternion double-cover (q and -q are the same rotation).
func OrientationAlmostEqual(o1, o2 Orientation, epsilon float64) bool {
	q1, q2 := o1.Quaternion(), o2.Quaternion()
	return quatAlmostEqual(q1, q2, epsilon) || quatAlmostEqual(q1, quat.Scale(-1, q2), epsilon)
}

// OrientationBetween returns the orientation representing the rotation that takes o1 to o2,
// i.e. o2 = between * o1.
func OrientationBetween(o1, o2 Orientation) Orientation {
	q := quat.Mul(o2.Quaternion(), quat.Conj(o1.Quaternion()))
	return QuatToR4AA(q)
}

func quatAlmostEqual(a, b quat.Number, epsilon float64) bool {
	return floatAlmostEqual(a.Real, b.Real, epsilon) &&
		floatAlmostEqual(a.Imag, b.Imag, epsilon) &&
		floatAlmostEqual(a.Jmag, b.Jmag, epsilon) &&
		floatAlmostEqual(a.Kmag, b.Kmag, epsilon)
}
