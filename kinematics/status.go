package kinematics

import "github.com/pkg/errors"

// Status is a result code with the same values as ik.Status. Nothing in this package returns it:
// the IK engine returns ik.Status, and the Robot's name/index resolution returns the sentinel
// errors below.
type Status int

const (
	// StatusSolved indicates a solve converged within tolerance.
	StatusSolved Status = iota
	// StatusDiverged indicates the iteration cap was reached without converging.
	StatusDiverged
	// StatusNoSolution indicates a structural failure: a NaN appeared in a computed joint
	// step, or the error norm grew for NoSolutionWindow consecutive iterations.
	StatusNoSolution
	// StatusSolverNotReady is reserved for a solver that has been intentionally disabled.
	StatusSolverNotReady
)

func (s Status) String() string {
	switch s {
	case StatusSolved:
		return "solved"
	case StatusDiverged:
		return "diverged"
	case StatusNoSolution:
		return "no_solution"
	case StatusSolverNotReady:
		return "solver_not_ready"
	default:
		return "unknown"
	}
}

// Sentinel errors returned when a name or index does not resolve; they are returned
// synchronously and leave all outputs untouched.
var (
	// ErrInvalidJoint is returned when a joint name or id does not resolve, or a joint
	// subset passed to Jacobian/IK names the same joint twice.
	ErrInvalidJoint = errors.New("invalid_joint")
	// ErrInvalidLinkage is returned when a linkage name or index does not resolve.
	ErrInvalidLinkage = errors.New("invalid_linkage")
	// ErrInvalidScope is returned by mass/COM queries given an empty or unknown scope.
	ErrInvalidScope = errors.New("invalid_scope")
	// ErrZeroMass is returned by CenterOfMass when the total mass of the scope is zero.
	ErrZeroMass = errors.New("zero_mass")
	// ErrCyclicTopology is returned by Finalize when the parent-index graph contains a cycle.
	ErrCyclicTopology = errors.New("cyclic_topology")
)

// InvalidName is the sentinel name a loader boundary (kinematics/urdf) gives a linkage or joint
// it could not construct from malformed input: any entity whose Name() == InvalidName signals
// upstream parse failure, and is the documented channel back into the usual
// ErrInvalidLinkage/ErrInvalidJoint resolution errors.
const InvalidName = "invalid"
