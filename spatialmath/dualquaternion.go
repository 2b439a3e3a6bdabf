// Package spatialmath defines spatial mathematical operations: rigid transforms (poses) in
// SE(3), their composition and inverse, axis-angle orientation, and the 6-D pose error used
// throughout the IK engine.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/dualquat"
	"gonum.org/v1/gonum/num/quat"
)

// Pose represents a rigid transform: a rotation composed with a translation, expressed
// relative to some parent coordinate system. It is the SE(3) element passed between Frame,
// Joint, Linkage and Robot, and the type IK targets and tool offsets are given in.
type Pose interface {
	Point() r3.Vector
	Orientation() Orientation
	// dq returns the underlying dual quaternion representation, used internally to compose
	// and invert poses without round-tripping through exported accessors.
	dq() dualquat.Number
}

// pose is the concrete Pose implementation, backed by a unit dual quaternion. A unit dual
// quaternion q = real + eps*dual encodes a rotation (real, a unit quaternion) and a
// translation (recoverable as 2 * dual * conj(real)).
type pose struct {
	q dualquat.Number
}

// NewZeroPose returns a Pose with no translation or rotation, i.e. SE(3) identity.
func NewZeroPose() Pose {
	return &pose{dualquat.Number{Real: quat.Number{Real: 1}}}
}

// NewPoseFromPoint returns a Pose which is a pure translation, with no rotation.
func NewPoseFromPoint(pt r3.Vector) Pose {
	return NewPose(pt, NewZeroOrientation())
}

// NewPoseFromOrientation returns a Pose which is a pure rotation, with no translation.
func NewPoseFromOrientation(o Orientation) Pose {
	return NewPose(r3.Vector{}, o)
}

// NewPose builds a Pose from a translation and an orientation.
func NewPose(pt r3.Vector, o Orientation) Pose {
	if o == nil {
		o = NewZeroOrientation()
	}
	real := o.Quaternion()
	real = quat.Scale(1/quatNorm(real), real)
	dual := quat.Scale(0.5, quat.Mul(quat.Number{Imag: pt.X, Jmag: pt.Y, Kmag: pt.Z}, real))
	return &pose{dualquat.Number{Real: real, Dual: dual}}
}

func quatNorm(q quat.Number) float64 {
	return math.Sqrt(q.Real*q.Real + q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
}

func (p *pose) dq() dualquat.Number {
	return p.q
}

// Point returns the translation component of the pose.
func (p *pose) Point() r3.Vector {
	t := quat.Scale(2, quat.Mul(p.q.Dual, quat.Conj(p.q.Real)))
	return r3.Vector{X: t.Imag, Y: t.Jmag, Z: t.Kmag}
}

// Orientation returns the rotation component of the pose.
func (p *pose) Orientation() Orientation {
	return QuatToR4AA(p.q.Real)
}

// Compose returns the pose that results from nesting `second` inside `first`: if `second` is
// a frame's local pose and `first` is the pose of the frame it is anchored to (relative to some
// outer frame), Compose(first, second) is `second`'s pose in that outer frame. This is the
// operation used to walk a chain of local transforms down to a world pose.
func Compose(first, second Pose) Pose {
	return &pose{dualquat.Mul(first.dq(), second.dq())}
}

// Invert returns the inverse of a pose: composing a pose with its inverse yields identity.
func Invert(p Pose) Pose {
	return &pose{dualquat.ConjQuat(p.dq())}
}

// PoseBetween returns the pose of `to` expressed in the frame of `from`, i.e.
// Invert(from) composed with `to`.
func PoseBetween(from, to Pose) Pose {
	return Compose(Invert(from), to)
}

// PoseAlmostEqual reports whether two poses are approximately equal in both translation and
// orientation.
func PoseAlmostEqual(a, b Pose, epsilon float64) bool {
	return r3AlmostEqual(a.Point(), b.Point(), epsilon) && OrientationAlmostEqual(a.Orientation(), b.Orientation(), epsilon)
}

// PoseDelta returns the 6-D pose error used by the IK engine: the first three components are
// the translation difference (to - from), the last three are the shortest-arc rotation vector
// (axis scaled by angle, angle in [0, pi]) that rotates `from`'s orientation onto `to`'s. Both
// halves are expressed in the coordinate frame the two poses share (normally world).
func PoseDelta(from, to Pose) []float64 {
	tFrom, tTo := from.Point(), to.Point()
	rotBetween := quat.Mul(to.dq().Real, quat.Conj(from.dq().Real))
	rv := QuatToR4AA(rotBetween).ToR3()
	return []float64{
		tTo.X - tFrom.X,
		tTo.Y - tFrom.Y,
		tTo.Z - tFrom.Z,
		rv.X,
		rv.Y,
		rv.Z,
	}
}

func r3AlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return floatAlmostEqual(a.X, b.X, epsilon) && floatAlmostEqual(a.Y, b.Y, epsilon) && floatAlmostEqual(a.Z, b.Z, epsilon)
}
