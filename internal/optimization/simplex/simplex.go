// Package simplex implements a derivative-free global optimizer that
// recursively partitions the search domain into simplices, in the manner of
// the DIRECT family of Lipschitzian optimization algorithms. Regions are
// ranked by a potential-optimality score trading off the values already
// observed at their corners against the volume still unexplored inside them.
package simplex

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Simplex is a region of the unit domain delimited by dim+1 affinely
// independent corners. Corner points are shared by pointer with the sibling
// simplices produced by the same split.
type Simplex struct {
	// Corners of the simplex, dim+1 of them.
	Corners []*Point
	// Center is the centroid of the corners, precomputed at construction.
	// It is the point evaluated when the simplex is selected for splitting.
	Center []float64

	// ratio is the fraction of the total domain volume this simplex covers.
	ratio float64
	// difference is the global best-min value range that was in effect when
	// this simplex was last scored. Comparing it against the live range
	// detects a stale score in O(1).
	difference float64
}

func newSimplex(corners []*Point, ratio, difference float64) *Simplex {
	center := make([]float64, len(corners[0].Coordinates))
	for _, c := range corners {
		floats.Add(center, c.Coordinates)
	}
	floats.Scale(1/float64(len(corners)), center)

	return &Simplex{
		Corners:    corners,
		Center:     center,
		ratio:      ratio,
		difference: difference,
	}
}

// Ratio returns the fraction of the domain volume covered by this simplex.
func (s *Simplex) Ratio() float64 {
	return s.ratio
}

// Score estimates how good the best point inside this simplex could be.
// The exploitation term interpolates the corner values at the centroid,
// weighting each corner by the inverse of its distance to the center; the
// exploration term grows with the covered volume fraction, scaled by the
// value range stamped on the simplex. A larger explorationDepth flattens the
// volume term toward 1, biasing the search toward refining the best-known
// region; explorationDepth 1 weights volume linearly, which behaves close to
// uniform grid refinement.
func (s *Simplex) Score(explorationDepth float64) float64 {
	exploration := s.difference * math.Pow(s.ratio, 1/explorationDepth)

	totalWeight := 0.0
	interpolated := 0.0
	for _, c := range s.Corners {
		d := floats.Distance(c.Coordinates, s.Center, 2)
		if d == 0 {
			// A corner sitting on the centroid makes its value exact there.
			return c.Value + exploration
		}
		w := 1 / d
		totalWeight += w
		interpolated += w * c.Value
	}

	return interpolated/totalWeight + exploration
}

// Split partitions the simplex around a freshly evaluated centroid point.
// Each child replaces exactly one corner with newPoint and keeps the
// remaining corners, so the children cover the parent exactly and every
// original corner survives as a shared reference in exactly one child. Each
// child inherits a share of the parent's volume ratio proportional to the
// distance between the replaced corner and newPoint, and is stamped with
// currentRange as the range its first score will be computed under. A corner
// coincident with newPoint yields no child.
func (s *Simplex) Split(newPoint *Point, currentRange float64) []*Simplex {
	distances := make([]float64, len(s.Corners))
	total := 0.0
	for i, c := range s.Corners {
		distances[i] = floats.Distance(c.Coordinates, newPoint.Coordinates, 2)
		total += distances[i]
	}

	children := make([]*Simplex, 0, len(s.Corners))
	for i := range s.Corners {
		if distances[i] == 0 {
			continue
		}
		corners := make([]*Point, len(s.Corners))
		copy(corners, s.Corners)
		corners[i] = newPoint
		children = append(children, newSimplex(corners, s.ratio*distances[i]/total, currentRange))
	}
	return children
}
