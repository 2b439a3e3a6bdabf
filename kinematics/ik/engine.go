package ik

import (
	"math"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/a-price/robotKin/kinematics"
	"github.com/a-price/robotKin/spatialmath"
)

// errJointValueLength is returned when the caller's jointValues slice does not match the total
// DoF implied by jointIDs.
var errJointValueLength = errors.New("ik: joint value slice length does not match joint DoF")

// StepRule turns a Jacobian and the current 6-D pose error into a joint increment of the same
// length as the Jacobian's column count. The four solvers (DLSSolver, PinvSolver,
// JTransposeSolver, SDLSSolver) differ only in this function; everything else lives in Engine.
// A false second return means the rule recognized a structural failure and the engine should
// stop immediately with StatusNoSolution.
type StepRule func(J *mat.Dense, errVec []float64, cfg SolverConfig) (dq []float64, ok bool)

// Engine is the shared iteration skeleton every solver wraps: push joint values into the robot,
// refresh, compute the 6-D Cartesian error against a target, ask its StepRule for an increment,
// apply it, and repeat until convergence, divergence, or a structural failure.
type Engine struct {
	Robot  *kinematics.Robot
	Config SolverConfig
	Metric Metric
	Log    golog.Logger

	rule StepRule
}

func newEngine(robot *kinematics.Robot, cfg SolverConfig, rule StepRule, log golog.Logger) *Engine {
	if log == nil {
		log = golog.NewTestLogger(nil)
	}
	return &Engine{Robot: robot, Config: cfg, Metric: NewSquaredNormMetric(), Log: log, rule: rule}
}

// Solve drives jointValues (mutated in place; its length must equal the sum of DoF over
// jointIDs, in order) so that endEffector's world pose composed with toolOffset reaches target,
// within e.Config's tolerance and iteration cap. A nil toolOffset is treated as identity.
func (e *Engine) Solve(jointIDs []int, jointValues []float64, endEffector kinematics.Frame, toolOffset, target spatialmath.Pose) (Status, error) {
	if toolOffset == nil {
		toolOffset = spatialmath.NewZeroPose()
	}
	if err := pushValues(e.Robot, jointIDs, jointValues); err != nil {
		return StatusNoSolution, err
	}

	prevNorm := math.Inf(1)
	worsening := 0

	for iter := 0; iter < e.Config.MaxIterations; iter++ {
		e.Robot.Refresh()

		current := spatialmath.Compose(endEffector.WorldPose(), toolOffset)
		errVec := spatialmath.PoseDelta(current, target)
		norm := e.Metric(current, target)

		// e.Metric is squared-norm valued (NewSquaredNormMetric) but Config.Tolerance is a plain
		// norm (an angle in radians, a position error), so the two must be squared against each
		// other here rather than compared directly.
		if norm <= e.Config.Tolerance*e.Config.Tolerance {
			return StatusSolved, nil
		}

		if norm > prevNorm {
			worsening++
			if e.Config.NoSolutionWindow > 0 && worsening >= e.Config.NoSolutionWindow {
				e.Log.Warnw("ik: error norm increasing, stopping", "iteration", iter, "norm", norm)
				return StatusNoSolution, nil
			}
		} else {
			worsening = 0
		}
		prevNorm = norm

		J, err := e.Robot.Jacobian(jointIDs, current.Point(), kinematics.WorldFrame())
		if err != nil {
			return StatusNoSolution, err
		}

		dq, ok := e.rule(J, errVec, e.Config)
		if !ok {
			return StatusNoSolution, nil
		}
		if len(dq) != len(jointValues) {
			return StatusNoSolution, errJointValueLength
		}
		for _, d := range dq {
			if math.IsNaN(d) || math.IsInf(d, 0) {
				e.Log.Warnw("ik: non-finite joint step")
				return StatusNoSolution, nil
			}
		}

		for i := range jointValues {
			jointValues[i] += dq[i]
		}
		if err := pushValues(e.Robot, jointIDs, jointValues); err != nil {
			return StatusNoSolution, err
		}
	}

	return StatusDiverged, nil
}

// pushValues distributes jointValues across jointIDs' joints, DoF(i) values per joint in order.
func pushValues(robot *kinematics.Robot, jointIDs []int, values []float64) error {
	offset := 0
	for _, id := range jointIDs {
		j, err := robot.JointByIndex(id)
		if err != nil {
			return err
		}
		n := j.DoF()
		if offset+n > len(values) {
			return errJointValueLength
		}
		j.SetValues(values[offset : offset+n])
		offset += n
	}
	if offset != len(values) {
		return errJointValueLength
	}
	return nil
}
