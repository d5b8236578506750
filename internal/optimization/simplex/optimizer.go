package simplex

import (
	"math"

	"github.com/simplexopt/simplexopt/internal/optimization"
)

// defaultExplorationDepth is the effective depth used when the caller does
// not tune it. It corresponds to SetExplorationDepth(5).
const defaultExplorationDepth = 6.0

// Optimizer drives a simplex-partitioning search over a bounded continuous
// domain through the cooperative suggest/report protocol: NextSuggestion
// returns the next point to evaluate and Report feeds the observed value
// back, returning the best found so far. The optimizer never evaluates the
// objective itself and is strictly single-threaded; a single instance must
// not be shared between goroutines without external locking.
//
// The search runs in two phases. During bootstrap the dim+1 corners of the
// initial simplex are suggested one by one. Once all corners are evaluated
// the simplex enters a priority queue and steady state begins: the top
// simplex is popped, its centroid suggested, and on report it is split into
// children that re-enter the queue.
type Optimizer struct {
	space            *SearchSpace
	queue            *queue
	explorationDepth float64
	minimize         bool

	// bestPoint holds the maximal observed value; minValue the minimal one.
	// Their difference is the live range that queued scores are stamped with.
	bestPoint *Point
	minValue  float64

	// Bootstrap phase: the initial simplex being evaluated corner by corner
	// and the index of the next corner awaiting a value.
	inProgress    *Simplex
	inProgressIdx int

	// Steady state: the popped simplex whose centroid is the pending
	// suggestion, and the range snapshot it was popped under.
	pending      *Simplex
	pendingRange float64

	history []optimization.Evaluation
}

// New creates an optimizer for the given per-dimension (lower, upper) bounds.
// When minimize is true, reported values are negated on ingress and results
// negated back on egress, so the engine itself always maximizes.
func New(bounds [][2]float64, minimize bool) (*Optimizer, error) {
	space, err := NewSearchSpace(bounds)
	if err != nil {
		return nil, err
	}

	initial := space.InitialSimplex()
	return &Optimizer{
		space:            space,
		queue:            newQueue(),
		explorationDepth: defaultExplorationDepth,
		minimize:         minimize,
		bestPoint:        initial.Corners[0],
		inProgress:       initial,
	}, nil
}

// SetExplorationDepth tunes the exploitation/exploration trade-off. Depth 0
// behaves close to uniform grid refinement; larger values focus the search on
// refining the best-known region. The effective depth used internally is
// depth+1. Scores already cached in the queue are not recomputed, so changing
// the depth mid-run degrades the quality of queued priorities without
// invalidating them; set it before the first suggestion.
func (o *Optimizer) SetExplorationDepth(depth int) *Optimizer {
	o.explorationDepth = float64(depth + 1)
	return o
}

// NextSuggestion returns the domain coordinates of the next point to
// evaluate. During bootstrap these are the corners of the initial simplex;
// afterwards, the centroid of the most promising queued simplex. Calling it
// again before Report returns the same pending suggestion.
func (o *Optimizer) NextSuggestion() []float64 {
	if o.inProgress != nil {
		return o.space.ToDomain(o.inProgress.Corners[o.inProgressIdx].Coordinates)
	}
	if o.pending != nil {
		return o.space.ToDomain(o.pending.Center)
	}

	currentRange := o.bestPoint.Value - o.minValue

	top, ok := o.queue.pop()
	if !ok {
		panic("simplex: priority queue empty in steady state")
	}

	// Lazy rescoring: a simplex scored under an outdated range is restamped,
	// rescored and reinserted before the next candidate is considered. Each
	// queued simplex needs this at most once per range change, so the loop is
	// bounded by the queue length at entry.
	for n, max := 0, o.queue.len(); top.difference != currentRange && n < max; n++ {
		top.difference = currentRange
		o.queue.push(top, o.clampScore(top.Score(o.explorationDepth)))

		top, ok = o.queue.pop()
		if !ok {
			panic("simplex: priority queue empty in steady state")
		}
	}

	o.pending = top
	o.pendingRange = currentRange
	return o.space.ToDomain(top.Center)
}

// Report feeds back the objective value observed at the last suggestion and
// returns the best value and domain coordinates seen so far. If no suggestion
// is pending, one is materialized internally first, so a stray Report cannot
// desynchronize the state machine.
func (o *Optimizer) Report(value float64) (float64, []float64) {
	if o.minimize {
		value = -value
	}

	if o.inProgress != nil {
		o.reportCorner(value)
		return o.best()
	}

	if o.pending == nil {
		o.NextSuggestion()
	}
	parent := o.pending
	currentRange := o.pendingRange
	o.pending = nil

	newPoint := &Point{Coordinates: parent.Center, Value: value}
	o.record(newPoint)

	// The children are scored under the range snapshot and trackers that
	// their parent was popped with; the trackers advance afterwards and the
	// lazy rescoring loop repairs the difference on the next pop.
	for _, child := range parent.Split(newPoint, currentRange) {
		o.queue.push(child, o.clampScore(child.Score(o.explorationDepth)))
	}

	if value > o.bestPoint.Value {
		o.bestPoint = newPoint
	} else if value < o.minValue {
		o.minValue = value
	}

	return o.best()
}

// reportCorner fills in the value of the bootstrap corner awaiting one and
// advances the corner pointer; the last corner finalizes the bootstrap phase.
func (o *Optimizer) reportCorner(value float64) {
	corner := o.inProgress.Corners[o.inProgressIdx]
	evaluated := &Point{Coordinates: corner.Coordinates, Value: value}
	o.inProgress.Corners[o.inProgressIdx] = evaluated
	o.record(evaluated)

	if o.inProgressIdx == 0 || value > o.bestPoint.Value {
		o.bestPoint = evaluated
	}
	if o.inProgressIdx == 0 || value < o.minValue {
		o.minValue = value
	}

	o.inProgressIdx++
	if o.inProgressIdx < len(o.inProgress.Corners) {
		return
	}

	// All corners evaluated: stamp the simplex with the fresh range so its
	// score is not considered stale on the first pop, and enter steady state.
	o.inProgress.difference = o.bestPoint.Value - o.minValue
	o.queue.push(o.inProgress, 0)
	o.inProgress = nil
}

// clampScore caps runaway potential-optimality estimates to the observed
// value range so a simplex can neither monopolize the queue nor be starved
// out of it.
func (o *Optimizer) clampScore(raw float64) float64 {
	if math.IsNaN(raw) {
		return o.minValue
	}
	if raw > o.bestPoint.Value {
		return o.bestPoint.Value
	}
	if raw < o.minValue {
		return o.minValue
	}
	return raw
}

func (o *Optimizer) best() (float64, []float64) {
	return o.signed(o.bestPoint.Value), o.space.ToDomain(o.bestPoint.Coordinates)
}

func (o *Optimizer) signed(value float64) float64 {
	if o.minimize {
		return -value
	}
	return value
}

func (o *Optimizer) record(p *Point) {
	o.history = append(o.history, optimization.Evaluation{
		Iteration: len(o.history),
		Solution: &optimization.Solution{
			Parameters: o.space.ToDomain(p.Coordinates),
			Value:      o.signed(p.Value),
		},
	})
}

// BestSolution returns the best evaluation seen so far in domain terms,
// or nil before the first report.
func (o *Optimizer) BestSolution() *optimization.Solution {
	if len(o.history) == 0 {
		return nil
	}
	value, coords := o.best()
	return &optimization.Solution{Parameters: coords, Value: value}
}

// History returns every evaluation reported so far, in order.
func (o *Optimizer) History() []optimization.Evaluation {
	return o.history
}

// Dimensions returns the dimensionality of the search domain.
func (o *Optimizer) Dimensions() int {
	return o.space.Dimensions()
}

// QueueLen returns the number of simplices currently queued.
func (o *Optimizer) QueueLen() int {
	return o.queue.len()
}

// ExplorationDepth returns the effective exploration depth in use.
func (o *Optimizer) ExplorationDepth() float64 {
	return o.explorationDepth
}

// Minimizing reports whether the optimizer was configured to minimize.
func (o *Optimizer) Minimizing() bool {
	return o.minimize
}
