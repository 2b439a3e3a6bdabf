package ik

import (
	"math"

	"github.com/a-price/robotKin/utils"
)

// SolverConfig collects every tunable knob for the solver family as an explicit value passed to
// each Solve call, rather than package-level mutable state. Fields not used by a given solver
// are simply ignored by it.
type SolverConfig struct {
	// Tolerance is the convergence threshold on the plain (not squared) pose error norm -- an
	// angle in radians for the rotation half, a distance for the translation half. Engine.Solve
	// squares it before comparing against its squared-norm metric.
	Tolerance float64
	// MaxIterations caps the iteration loop; exceeding it without converging yields
	// StatusDiverged.
	MaxIterations int

	// Damping is DLSSolver's lambda; the solver adds lambda^2 to the diagonal of J Jt.
	Damping float64

	// PinvEpsilon is PinvSolver's singular-value cutoff: singular values below it map to zero
	// instead of their reciprocal.
	PinvEpsilon float64
	// DeltaMax optionally clamps the norm of PinvSolver's computed step; zero disables
	// clamping.
	DeltaMax float64

	// TransScale and RotScale independently scale the translation and rotation halves of the
	// error JTransposeSolver works from.
	TransScale float64
	RotScale   float64

	// GammaMax bounds the per-iteration joint step SDLSSolver may take.
	GammaMax float64

	// NoSolutionWindow is the number of consecutive iterations the error norm may strictly
	// increase before the engine reports StatusNoSolution instead of continuing to iterate.
	NoSolutionWindow int
}

// DefaultDLSConfig returns the tuned defaults for DLSSolver, the production solver.
func DefaultDLSConfig() SolverConfig {
	c := defaultConfig()
	c.Tolerance = 1e-3
	c.Damping = 0.05
	return c
}

// DefaultPinvConfig returns the tuned defaults for PinvSolver.
func DefaultPinvConfig() SolverConfig {
	c := defaultConfig()
	c.Tolerance = oneDegreeTolerance
	c.PinvEpsilon = 1e-10
	return c
}

// DefaultJTransposeConfig returns the tuned defaults for JTransposeSolver.
func DefaultJTransposeConfig() SolverConfig {
	c := defaultConfig()
	c.Tolerance = oneDegreeTolerance
	c.TransScale = 1
	c.RotScale = 1
	return c
}

// DefaultSDLSConfig returns the tuned defaults for SDLSSolver.
func DefaultSDLSConfig() SolverConfig {
	c := defaultConfig()
	c.Tolerance = oneDegreeTolerance
	c.GammaMax = math.Pi / 4
	return c
}

// oneDegreeTolerance is the convergence tolerance used by every solver but DLS: one degree of
// rotation error, expressed in radians.
var oneDegreeTolerance = utils.DegToRad(1)

func defaultConfig() SolverConfig {
	return SolverConfig{
		Tolerance:        1e-3,
		MaxIterations:    100,
		Damping:          0.05,
		PinvEpsilon:      1e-10,
		GammaMax:         math.Pi / 4,
		NoSolutionWindow: 5,
	}
}
