package ik

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/a-price/robotKin/kinematics"
	"github.com/a-price/robotKin/spatialmath"
)

// twoLinkPlanarArm mirrors the fixture in package kinematics's own tests: a single linkage of
// two revolute joints about Z, each offset 1 unit along X, with a tool 1 unit past the elbow.
// Fully extended, the tool reaches (3, 0, 0); its maximum reach is 3, minimum (folded) reach 1.
func twoLinkPlanarArm(t *testing.T) (*kinematics.Robot, *kinematics.Linkage) {
	t.Helper()
	r := kinematics.NewRobot("arm", nil, nil)

	j1 := kinematics.NewJoint("shoulder", kinematics.Revolute, r3.Vector{Z: 1},
		spatialmath.NewPoseFromPoint(r3.Vector{X: 1}), nil, -math.Pi, math.Pi, 1, r3.Vector{})
	j2 := kinematics.NewJoint("elbow", kinematics.Revolute, r3.Vector{Z: 1},
		spatialmath.NewPoseFromPoint(r3.Vector{X: 1}), j1, -math.Pi, math.Pi, 1, r3.Vector{})

	linkage := kinematics.NewLinkage("arm", []kinematics.Joint{j1, j2}, spatialmath.NewPoseFromPoint(r3.Vector{X: 1}))
	test.That(t, r.AddLinkage("", linkage), test.ShouldBeNil)
	test.That(t, r.Finalize(), test.ShouldBeNil)
	return r, linkage
}

func TestDLSSolverReachesTarget(t *testing.T) {
	robot, linkage := twoLinkPlanarArm(t)

	solver := NewDLSSolver(robot, DefaultDLSConfig(), nil)
	target := spatialmath.NewPoseFromPoint(r3.Vector{X: 2, Y: 1, Z: 0})

	jointValues := []float64{0.1, 0.1}
	status, err := SolveLinkage(robot, solver, linkage.Name(), jointValues, target, nil)

	test.That(t, err, test.ShouldBeNil)
	test.That(t, status, test.ShouldEqual, StatusSolved)

	robot.Refresh()
	reached := linkage.Tool().WorldPose().Point()
	test.That(t, reached.X, test.ShouldAlmostEqual, 2.0, 1e-2)
	test.That(t, reached.Y, test.ShouldAlmostEqual, 1.0, 1e-2)
}

func TestDLSSolverUnreachableDiverges(t *testing.T) {
	robot, linkage := twoLinkPlanarArm(t)

	cfg := DefaultDLSConfig()
	cfg.MaxIterations = 25
	solver := NewDLSSolver(robot, cfg, nil)

	// max reach is 3; 100 is far outside the workspace.
	target := spatialmath.NewPoseFromPoint(r3.Vector{X: 100, Y: 0, Z: 0})
	jointValues := []float64{0, 0}
	status, err := SolveLinkage(robot, solver, linkage.Name(), jointValues, target, nil)

	test.That(t, err, test.ShouldBeNil)
	test.That(t, status, test.ShouldNotEqual, StatusSolved)
}

func TestSolveLinkageUnknownNameIsInvalid(t *testing.T) {
	robot, _ := twoLinkPlanarArm(t)
	solver := NewDLSSolver(robot, DefaultDLSConfig(), nil)

	jointValues := []float64{0, 0}
	_, err := SolveLinkage(robot, solver, "no-such-linkage", jointValues, spatialmath.NewZeroPose(), nil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, jointValues[0], test.ShouldAlmostEqual, 0.0)
}

func TestPinvAndJTransposeAndSDLSAlsoConverge(t *testing.T) {
	target := spatialmath.NewPoseFromPoint(r3.Vector{X: 1.8, Y: 0.6, Z: 0})

	t.Run("pinv", func(t *testing.T) {
		robot, linkage := twoLinkPlanarArm(t)
		solver := NewPinvSolver(robot, DefaultPinvConfig(), nil)
		jointValues := []float64{0.2, 0.2}
		status, err := SolveLinkage(robot, solver, linkage.Name(), jointValues, target, nil)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, status, test.ShouldEqual, StatusSolved)
	})

	t.Run("jtranspose", func(t *testing.T) {
		robot, linkage := twoLinkPlanarArm(t)
		cfg := DefaultJTransposeConfig()
		cfg.MaxIterations = 500
		solver := NewJTransposeSolver(robot, cfg, nil)
		jointValues := []float64{0.2, 0.2}
		status, err := SolveLinkage(robot, solver, linkage.Name(), jointValues, target, nil)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, status, test.ShouldEqual, StatusSolved)
	})

	t.Run("sdls", func(t *testing.T) {
		robot, linkage := twoLinkPlanarArm(t)
		solver := NewSDLSSolver(robot, DefaultSDLSConfig(), nil)
		jointValues := []float64{0.2, 0.2}
		status, err := SolveLinkage(robot, solver, linkage.Name(), jointValues, target, nil)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, status, test.ShouldEqual, StatusSolved)
	})
}
