package ik

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// errNoAttempts is returned when RunMultiStart is called with no attempts to run.
var errNoAttempts = errors.New("ik: RunMultiStart called with no attempts")

// Attempt is one independent IK solve, typically closing over its own Robot clone, seed joint
// values and solver instance so it can run concurrently with other attempts without touching
// shared state -- a single Robot is not goroutine-safe (it has no internal locking), so
// every Attempt must own its slice of the kinematic model.
type Attempt func(ctx context.Context) (jointValues []float64, status Status, err error)

// MultiStartResult is RunMultiStart's return value.
type MultiStartResult struct {
	JointValues []float64
	Status      Status
}

// RunMultiStart launches one goroutine per attempt over differently-seeded initial guesses and
// returns as soon as the first converges (StatusSolved), cancelling the rest via the derived
// context. If none converge before every attempt finishes, it returns the first non-converged
// result encountered and every attempt's error combined with go.uber.org/multierr. This is the
// one place in the library that spawns goroutines; Engine.Solve and SolveLinkage alone never do.
func RunMultiStart(ctx context.Context, attempts []Attempt) (MultiStartResult, error) {
	if len(attempts) == 0 {
		return MultiStartResult{Status: StatusNoSolution}, errNoAttempts
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		values []float64
		status Status
		err    error
	}
	results := make(chan outcome, len(attempts))

	var wg sync.WaitGroup
	for _, attempt := range attempts {
		attempt := attempt
		wg.Add(1)
		go func() {
			defer wg.Done()
			values, status, err := attempt(runCtx)
			results <- outcome{values, status, err}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var combinedErr error
	var fallback outcome
	haveFallback := false

	for res := range results {
		if res.err != nil {
			combinedErr = multierr.Append(combinedErr, res.err)
		}
		if res.status == StatusSolved {
			cancel()
			return MultiStartResult{JointValues: res.values, Status: StatusSolved}, combinedErr
		}
		if !haveFallback {
			fallback = res
			haveFallback = true
		}
	}

	return MultiStartResult{JointValues: fallback.values, Status: fallback.status}, combinedErr
}
