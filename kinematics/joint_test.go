package kinematics

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/a-price/robotKin/spatialmath"
)

func TestRevoluteJointQuarterTurn(t *testing.T) {
	j := NewJoint("j1", Revolute, r3.Vector{Z: 1}, spatialmath.NewZeroPose(), nil, -math.Pi, math.Pi, 0, r3.Vector{})
	j.SetValue(math.Pi / 2)

	out := j.OutputPose()
	rv := out.Orientation().AxisAngles().ToR3()
	test.That(t, rv.Norm(), test.ShouldAlmostEqual, math.Pi/2)
}

func TestRevoluteJointClampsToLimits(t *testing.T) {
	j := NewJoint("j1", Revolute, r3.Vector{Z: 1}, spatialmath.NewZeroPose(), nil, -1, 1, 0, r3.Vector{})
	j.SetValue(5)
	test.That(t, j.Value(), test.ShouldAlmostEqual, 1.0)

	j.SetValue(-5)
	test.That(t, j.Value(), test.ShouldAlmostEqual, -1.0)
}

func TestContinuousJointDoesNotClamp(t *testing.T) {
	j := NewJoint("j1", Continuous, r3.Vector{Z: 1}, spatialmath.NewZeroPose(), nil, -1, 1, 0, r3.Vector{})
	j.SetValue(50)
	test.That(t, j.Value(), test.ShouldAlmostEqual, 50.0)
}

func TestPrismaticJointTranslates(t *testing.T) {
	j := NewJoint("j1", Prismatic, r3.Vector{X: 1}, spatialmath.NewZeroPose(), nil, 0, 10, 0, r3.Vector{})
	j.SetValue(3)
	test.That(t, j.OutputPose().Point().X, test.ShouldAlmostEqual, 3.0)
}

func TestFixedJointHasNoDoF(t *testing.T) {
	j := NewJoint("j1", Fixed, r3.Vector{}, spatialmath.NewZeroPose(), nil, 0, 0, 2, r3.Vector{})
	test.That(t, j.DoF(), test.ShouldEqual, 0)
	test.That(t, j.OutputPose().Point().Norm(), test.ShouldAlmostEqual, 0.0)
}

func TestPlanarJointOccupiesThreeDoF(t *testing.T) {
	j := NewJoint("j1", Planar, r3.Vector{Z: 1}, spatialmath.NewZeroPose(), nil, 0, 0, 0, r3.Vector{})
	test.That(t, j.DoF(), test.ShouldEqual, 3)
	j.SetValues([]float64{1, 2, 0})
	p := j.OutputPose().Point()
	test.That(t, p.Z, test.ShouldAlmostEqual, 0.0)
}

func TestFloatingJointOccupiesSixDoF(t *testing.T) {
	j := NewJoint("j1", Floating, r3.Vector{}, spatialmath.NewZeroPose(), nil, 0, 0, 0, r3.Vector{})
	test.That(t, j.DoF(), test.ShouldEqual, 6)
	j.SetValues([]float64{1, 2, 3, 0, 0, 0})
	p := j.OutputPose().Point()
	test.That(t, p.X, test.ShouldAlmostEqual, 1.0)
	test.That(t, p.Y, test.ShouldAlmostEqual, 2.0)
	test.That(t, p.Z, test.ShouldAlmostEqual, 3.0)
}

func TestZeroAxisDefaultsRatherThanPanics(t *testing.T) {
	test.That(t, func() {
		NewJoint("j1", Revolute, r3.Vector{}, spatialmath.NewZeroPose(), nil, -1, 1, 0, r3.Vector{})
	}, test.ShouldNotPanic)
}
