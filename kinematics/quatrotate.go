package kinematics

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// rotateVector rotates v by the unit quaternion q: q * (0,v) * conj(q), read off the imaginary
// part. Used to carry joint axes and Jacobian columns from a frame's local coordinates into
// world (or another reference frame's) coordinates.
func rotateVector(q quat.Number, v r3.Vector) r3.Vector {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	rotated := quat.Mul(quat.Mul(q, p), quat.Conj(q))
	return r3.Vector{X: rotated.Imag, Y: rotated.Jmag, Z: rotated.Kmag}
}
