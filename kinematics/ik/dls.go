package ik

import (
	"github.com/edaniels/golog"
	"gonum.org/v1/gonum/mat"

	"github.com/a-price/robotKin/kinematics"
	"github.com/a-price/robotKin/spatialmath"
)

// DLSSolver is the damped least-squares solver: the production solver, numerically stable
// through Jacobian singularities because it solves the square, always-well-conditioned system
// (J Jt + lambda^2 I) f = err rather than inverting J directly.
type DLSSolver struct {
	engine *Engine
}

// NewDLSSolver constructs a DLSSolver over robot using cfg.
func NewDLSSolver(robot *kinematics.Robot, cfg SolverConfig, log golog.Logger) *DLSSolver {
	s := &DLSSolver{}
	s.engine = newEngine(robot, cfg, s.step, log)
	return s
}

// Solve drives jointValues toward target, see Engine.Solve.
func (s *DLSSolver) Solve(jointIDs []int, jointValues []float64, endEffector kinematics.Frame, toolOffset, target spatialmath.Pose) (Status, error) {
	return s.engine.Solve(jointIDs, jointValues, endEffector, toolOffset, target)
}

func (s *DLSSolver) step(J *mat.Dense, errVec []float64, cfg SolverConfig) ([]float64, bool) {
	rows, cols := J.Dims()

	jt := mat.NewDense(cols, rows, nil)
	jt.CloneFrom(J.T())

	jjt := mat.NewDense(rows, rows, nil)
	jjt.Mul(J, jt)
	for i := 0; i < rows; i++ {
		jjt.Set(i, i, jjt.At(i, i)+cfg.Damping*cfg.Damping)
	}

	var qr mat.QR
	qr.Factorize(jjt)

	b := mat.NewVecDense(rows, append([]float64(nil), errVec...))
	f := mat.NewVecDense(rows, nil)
	if err := qr.SolveVecTo(f, false, b); err != nil {
		return nil, false
	}

	dq := mat.NewVecDense(cols, nil)
	dq.MulVec(jt, f)
	return vecToSlice(dq), true
}
