package ik

import (
	"math"

	"github.com/edaniels/golog"
	"gonum.org/v1/gonum/mat"

	"github.com/a-price/robotKin/kinematics"
	"github.com/a-price/robotKin/spatialmath"
)

// SDLSSolver is selectively damped least-squares: it treats each singular direction of J
// independently, damping a joint-space step along direction i in proportion to how much of that
// direction's available range of motion would be consumed reaching the target, rather than
// applying one damping factor across the whole step as DLSSolver does.
type SDLSSolver struct {
	engine *Engine
}

// NewSDLSSolver constructs an SDLSSolver over robot using cfg.
func NewSDLSSolver(robot *kinematics.Robot, cfg SolverConfig, log golog.Logger) *SDLSSolver {
	s := &SDLSSolver{}
	s.engine = newEngine(robot, cfg, s.step, log)
	return s
}

// Solve drives jointValues toward target, see Engine.Solve.
func (s *SDLSSolver) Solve(jointIDs []int, jointValues []float64, endEffector kinematics.Frame, toolOffset, target spatialmath.Pose) (Status, error) {
	return s.engine.Solve(jointIDs, jointValues, endEffector, toolOffset, target)
}

func (s *SDLSSolver) step(J *mat.Dense, errVec []float64, cfg SolverConfig) ([]float64, bool) {
	rows, cols := J.Dims()

	var svd mat.SVD
	if !svd.Factorize(J, mat.SVDThin) {
		return nil, false
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	values := svd.Values(nil)

	dq := make([]float64, cols)

	for i, sigma := range values {
		if sigma < 1e-12 {
			continue
		}

		var alpha float64
		for k := 0; k < rows; k++ {
			alpha += u.At(k, i) * errVec[k]
		}

		var transSq, rotSq float64
		for k := 0; k < 3 && k < rows; k++ {
			transSq += u.At(k, i) * u.At(k, i)
		}
		for k := 3; k < 6 && k < rows; k++ {
			rotSq += u.At(k, i) * u.At(k, i)
		}
		n := math.Sqrt(transSq) + math.Sqrt(rotSq)

		var m float64
		for k := 0; k < rows; k++ {
			var rowSum float64
			for j := 0; j < cols; j++ {
				rowSum += math.Abs(v.At(j, i)) * math.Abs(J.At(k, j))
			}
			m += rowSum
		}
		m /= sigma

		gamma := cfg.GammaMax
		if m > 0 {
			if ratio := n / m; ratio < 1 {
				gamma *= ratio
			}
		}

		phiScale := alpha / sigma
		for j := 0; j < cols; j++ {
			phi := phiScale * v.At(j, i)
			if phi > gamma {
				phi = gamma
			} else if phi < -gamma {
				phi = -gamma
			}
			dq[j] += phi
		}
	}

	clampMaxAbs(dq, cfg.GammaMax)
	return dq, true
}
