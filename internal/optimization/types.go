// Package optimization defines the shared types and the cooperative
// suggest/report protocol implemented by the optimization engines.
package optimization

import (
	"context"
)

// ObjectiveFunc evaluates a candidate point given in domain coordinates.
type ObjectiveFunc func(x []float64) (float64, error)

// Suggester is the cooperative optimization protocol: the engine proposes
// one point at a time and the caller reports the observed value back. The
// engine never evaluates the objective itself, so evaluation can be
// expensive, asynchronous, or externally scheduled.
type Suggester interface {
	// NextSuggestion returns the domain coordinates of the next point to
	// evaluate. Calling it again before Report returns the same point.
	NextSuggestion() []float64

	// Report feeds back the value observed at the last suggestion and
	// returns the best value and coordinates found so far.
	Report(value float64) (float64, []float64)
}

// Solution is a point of the search domain together with its observed value.
type Solution struct {
	Parameters []float64
	Value      float64
}

// Evaluation records a single objective evaluation.
type Evaluation struct {
	Iteration int
	Solution  *Solution
}

// Run drives a Suggester against the given objective for a fixed number of
// evaluations and returns the best solution found. The bootstrap evaluations
// of the engine count toward the total. The context is checked between
// evaluations so long-running objectives can be abandoned cleanly.
func Run(ctx context.Context, opt Suggester, objective ObjectiveFunc, evaluations int) (*Solution, error) {
	if objective == nil {
		return nil, NewError("objective function is required").WithOperation("Run")
	}
	if evaluations < 1 {
		return nil, NewErrorf("evaluations must be positive, got %d", evaluations).WithOperation("Run")
	}

	var best Solution
	for i := 0; i < evaluations; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		x := opt.NextSuggestion()
		value, err := objective(x)
		if err != nil {
			return nil, WrapErrorf(err, "evaluating objective at iteration %d", i).WithOperation("Run")
		}

		bestValue, bestCoords := opt.Report(value)
		best = Solution{Parameters: bestCoords, Value: bestValue}
	}

	return &best, nil
}
