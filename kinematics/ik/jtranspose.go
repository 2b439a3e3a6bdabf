package ik

import (
	"github.com/edaniels/golog"
	"gonum.org/v1/gonum/mat"

	"github.com/a-price/robotKin/kinematics"
	"github.com/a-price/robotKin/spatialmath"
)

// JTransposeSolver computes Delta q = alpha * Jt * err, where gamma = J Jt err and
// alpha = (err.gamma)/(gamma.gamma) is the step size that minimizes the error along the
// transpose direction. cfg.TransScale and cfg.RotScale independently scale the translation and
// rotation halves of err before the rule runs.
type JTransposeSolver struct {
	engine *Engine
}

// NewJTransposeSolver constructs a JTransposeSolver over robot using cfg.
func NewJTransposeSolver(robot *kinematics.Robot, cfg SolverConfig, log golog.Logger) *JTransposeSolver {
	s := &JTransposeSolver{}
	s.engine = newEngine(robot, cfg, s.step, log)
	return s
}

// Solve drives jointValues toward target, see Engine.Solve.
func (s *JTransposeSolver) Solve(jointIDs []int, jointValues []float64, endEffector kinematics.Frame, toolOffset, target spatialmath.Pose) (Status, error) {
	return s.engine.Solve(jointIDs, jointValues, endEffector, toolOffset, target)
}

func (s *JTransposeSolver) step(J *mat.Dense, errVec []float64, cfg SolverConfig) ([]float64, bool) {
	scaled := make([]float64, len(errVec))
	for i, e := range errVec {
		if i < 3 {
			scaled[i] = e * cfg.TransScale
		} else {
			scaled[i] = e * cfg.RotScale
		}
	}

	rows, cols := J.Dims()
	errV := mat.NewVecDense(rows, scaled)

	jt := mat.NewDense(cols, rows, nil)
	jt.CloneFrom(J.T())

	jtErr := mat.NewVecDense(cols, nil)
	jtErr.MulVec(jt, errV)

	gamma := mat.NewVecDense(rows, nil)
	gamma.MulVec(J, jtErr)

	num := mat.Dot(errV, gamma)
	den := mat.Dot(gamma, gamma)
	if den == 0 {
		return nil, false
	}
	alpha := num / den

	dq := mat.NewVecDense(cols, nil)
	dq.ScaleVec(alpha, jtErr)
	return vecToSlice(dq), true
}
