package ik

import (
	"github.com/edaniels/golog"
	"gonum.org/v1/gonum/mat"

	"github.com/a-price/robotKin/kinematics"
	"github.com/a-price/robotKin/spatialmath"
)

// PinvSolver computes Delta q = J+ * err via the Moore-Penrose pseudoinverse of J, singular
// values below cfg.PinvEpsilon mapped to zero rather than their reciprocal, optionally clamping
// the resulting step by cfg.DeltaMax.
type PinvSolver struct {
	engine *Engine
}

// NewPinvSolver constructs a PinvSolver over robot using cfg.
func NewPinvSolver(robot *kinematics.Robot, cfg SolverConfig, log golog.Logger) *PinvSolver {
	s := &PinvSolver{}
	s.engine = newEngine(robot, cfg, s.step, log)
	return s
}

// Solve drives jointValues toward target, see Engine.Solve.
func (s *PinvSolver) Solve(jointIDs []int, jointValues []float64, endEffector kinematics.Frame, toolOffset, target spatialmath.Pose) (Status, error) {
	return s.engine.Solve(jointIDs, jointValues, endEffector, toolOffset, target)
}

func (s *PinvSolver) step(J *mat.Dense, errVec []float64, cfg SolverConfig) ([]float64, bool) {
	pinv, ok := pseudoInverse(J, cfg.PinvEpsilon)
	if !ok {
		return nil, false
	}
	rows, _ := pinv.Dims()

	b := mat.NewVecDense(len(errVec), append([]float64(nil), errVec...))
	dq := mat.NewVecDense(rows, nil)
	dq.MulVec(pinv, b)

	out := vecToSlice(dq)
	clampNorm(out, cfg.DeltaMax)
	return out, true
}

// pseudoInverse computes the Moore-Penrose pseudoinverse of a 6xK Jacobian via SVD, V Sigma+ Ut,
// mapping singular values below epsilon to zero instead of their reciprocal.
//
// The tall/wide flip decision is made once, here, on J's input shape -- never on a partially
// computed SVD intermediate -- since gonum's SVD expects its input to have at least as many rows
// as columns.
func pseudoInverse(J *mat.Dense, epsilon float64) (*mat.Dense, bool) {
	rows, cols := J.Dims()
	flip := cols > rows

	a := J
	if flip {
		at := mat.NewDense(cols, rows, nil)
		at.CloneFrom(J.T())
		a = at
	}

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, false
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	values := svd.Values(nil)

	if flip {
		u, v = v, u
	}

	_, r := u.Dims()
	sigmaPlus := mat.NewDense(r, r, nil)
	for i := 0; i < r && i < len(values); i++ {
		if values[i] > epsilon {
			sigmaPlus.Set(i, i, 1/values[i])
		}
	}

	vRows, _ := v.Dims()
	uRows, _ := u.Dims()

	tmp := mat.NewDense(vRows, r, nil)
	tmp.Mul(&v, sigmaPlus)

	pinv := mat.NewDense(vRows, uRows, nil)
	pinv.Mul(tmp, u.T())
	return pinv, true
}
