package spatialmath

import (
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

func TestOrientationAlmostEqualDoubleCover(t *testing.T) {
	o1 := &R4AA{Theta: 1.1, RX: 0, RY: 0, RZ: 1}
	q := o1.Quaternion()
	o2 := &r4aaFromQuat{q: quat.Scale(-1, q)}

	test.That(t, OrientationAlmostEqual(o1, o2, 1e-9), test.ShouldBeTrue)
}

func TestOrientationBetweenIdentity(t *testing.T) {
	o := &R4AA{Theta: 0.8, RX: 1, RY: 0, RZ: 0}
	between := OrientationBetween(o, o)
	test.That(t, between.AxisAngles().Theta, test.ShouldAlmostEqual, 0.0)
}

// r4aaFromQuat is a tiny local Orientation wrapper for tests that need an orientation built
// directly from a quaternion value, mirroring r4aaOrientation in package kinematics.
type r4aaFromQuat struct {
	q quat.Number
}

func (o *r4aaFromQuat) AxisAngles() *R4AA       { return QuatToR4AA(o.q) }
func (o *r4aaFromQuat) Quaternion() quat.Number { return o.q }
