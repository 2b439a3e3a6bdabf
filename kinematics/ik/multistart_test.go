package ik

import (
	"context"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/a-price/robotKin/kinematics"
	"github.com/a-price/robotKin/spatialmath"
)

// buildAttempt constructs an independent robot clone and returns an Attempt that seeds jointValues
// and runs a DLSSolver against it, exercising RunMultiStart's per-worker isolation requirement.
func buildAttempt(seed []float64, target spatialmath.Pose) Attempt {
	return func(ctx context.Context) ([]float64, Status, error) {
		robot := kinematics.NewRobot("arm", nil, nil)
		j1 := kinematics.NewJoint("shoulder", kinematics.Revolute, r3.Vector{Z: 1},
			spatialmath.NewPoseFromPoint(r3.Vector{X: 1}), nil, -math.Pi, math.Pi, 1, r3.Vector{})
		j2 := kinematics.NewJoint("elbow", kinematics.Revolute, r3.Vector{Z: 1},
			spatialmath.NewPoseFromPoint(r3.Vector{X: 1}), j1, -math.Pi, math.Pi, 1, r3.Vector{})
		linkage := kinematics.NewLinkage("arm", []kinematics.Joint{j1, j2}, spatialmath.NewPoseFromPoint(r3.Vector{X: 1}))
		if err := robot.AddLinkage("", linkage); err != nil {
			return nil, StatusNoSolution, err
		}
		if err := robot.Finalize(); err != nil {
			return nil, StatusNoSolution, err
		}

		solver := NewDLSSolver(robot, DefaultDLSConfig(), nil)
		values := append([]float64(nil), seed...)
		status, err := SolveLinkage(robot, solver, linkage.Name(), values, target, nil)
		return values, status, err
	}
}

func TestRunMultiStartReturnsFirstConverged(t *testing.T) {
	target := spatialmath.NewPoseFromPoint(r3.Vector{X: 2, Y: 1, Z: 0})
	attempts := []Attempt{
		buildAttempt([]float64{0.1, 0.1}, target),
		buildAttempt([]float64{-0.2, 0.3}, target),
		buildAttempt([]float64{1.0, -1.0}, target),
	}

	result, err := RunMultiStart(context.Background(), attempts)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, result.Status, test.ShouldEqual, StatusSolved)
	test.That(t, len(result.JointValues), test.ShouldEqual, 2)
}

func TestRunMultiStartNoAttemptsErrors(t *testing.T) {
	_, err := RunMultiStart(context.Background(), nil)
	test.That(t, err, test.ShouldNotBeNil)
}
