package ik

import (
	"github.com/a-price/robotKin/kinematics"
	"github.com/a-price/robotKin/spatialmath"
)

// Solver is satisfied by DLSSolver, PinvSolver, JTransposeSolver and SDLSSolver: the chain-level
// entry point every solver shares once its StepRule is fixed.
type Solver interface {
	Solve(jointIDs []int, jointValues []float64, endEffector kinematics.Frame, toolOffset, target spatialmath.Pose) (Status, error)
}

// SolveLinkage resolves linkageName on robot, collects its joint ids in chain order, composes
// toolOffset onto the linkage's own declared tool transform (so a caller's offset is expressed
// relative to the linkage's tool frame), and delegates to solver using the distal joint as the end
// effector Frame -- not the tool Frame itself, since the tool's own local pose is already folded
// into the composed offset and using the tool Frame as endEffector would apply it twice. On an
// unknown linkage name it returns ErrInvalidLinkage and leaves jointValues untouched.
func SolveLinkage(robot *kinematics.Robot, solver Solver, linkageName string, jointValues []float64, target, toolOffset spatialmath.Pose) (Status, error) {
	linkage, err := robot.LinkageByName(linkageName)
	if err != nil {
		return StatusNoSolution, err
	}
	if toolOffset == nil {
		toolOffset = spatialmath.NewZeroPose()
	}
	distal := linkage.Joint(linkage.NumJoints() - 1)
	composedOffset := spatialmath.Compose(linkage.Tool().LocalPose(), toolOffset)
	return solver.Solve(linkage.JointIDs(), jointValues, distal, composedOffset, target)
}
