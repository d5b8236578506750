package simplex

import (
	"math"

	"github.com/simplexopt/simplexopt/internal/optimization"
)

// SearchSpace translates between the internal unit coordinates used for
// queueing and splitting and the caller-visible domain bounds. The mapping is
// a pure per-dimension affine transform: the internal origin maps to the
// lower bounds and a unit offset along an axis maps to that dimension's
// upper bound.
type SearchSpace struct {
	bounds [][2]float64
}

// NewSearchSpace validates the per-dimension (lower, upper) bounds and builds
// the mapper. Every interval must be finite with lower strictly below upper,
// and at least one dimension is required.
func NewSearchSpace(bounds [][2]float64) (*SearchSpace, error) {
	if len(bounds) == 0 {
		return nil, optimization.NewError("at least one dimension is required").
			WithOperation("NewSearchSpace").
			WithComponent("simplex")
	}
	for i, b := range bounds {
		if math.IsInf(b[0], 0) || math.IsInf(b[1], 0) {
			return nil, optimization.NewErrorf("dimension %d: bounds must be finite, got [%v, %v]", i, b[0], b[1]).
				WithOperation("NewSearchSpace").
				WithComponent("simplex")
		}
		if !(b[0] < b[1]) {
			return nil, optimization.NewErrorf("dimension %d: lower bound %v must be strictly below upper bound %v", i, b[0], b[1]).
				WithOperation("NewSearchSpace").
				WithComponent("simplex")
		}
	}

	copied := make([][2]float64, len(bounds))
	copy(copied, bounds)
	return &SearchSpace{bounds: copied}, nil
}

// Dimensions returns the dimensionality of the domain.
func (s *SearchSpace) Dimensions() int {
	return len(s.bounds)
}

// ToDomain maps internal unit coordinates to domain coordinates. It is the
// exact inverse of the normalization used to build the initial simplex.
func (s *SearchSpace) ToDomain(coords []float64) []float64 {
	out := make([]float64, len(coords))
	for i, c := range coords {
		lo, hi := s.bounds[i][0], s.bounds[i][1]
		out[i] = lo + c*(hi-lo)
	}
	return out
}

// InitialSimplex builds the canonical starting simplex covering the unit
// domain: one corner at the origin and one corner offset along each axis.
// Corner values are NaN placeholders until the caller evaluates them.
func (s *SearchSpace) InitialSimplex() *Simplex {
	dim := len(s.bounds)
	corners := make([]*Point, dim+1)
	corners[0] = &Point{Coordinates: make([]float64, dim), Value: math.NaN()}
	for i := 0; i < dim; i++ {
		coords := make([]float64, dim)
		coords[i] = 1
		corners[i+1] = &Point{Coordinates: coords, Value: math.NaN()}
	}
	return newSimplex(corners, 1, 0)
}
