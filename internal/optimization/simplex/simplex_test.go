package simplex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitTriangle(values [3]float64) *Simplex {
	corners := []*Point{
		{Coordinates: []float64{0, 0}, Value: values[0]},
		{Coordinates: []float64{1, 0}, Value: values[1]},
		{Coordinates: []float64{0, 1}, Value: values[2]},
	}
	return newSimplex(corners, 1, 0)
}

func TestScoreMonotoneInVolume(t *testing.T) {
	corners := []*Point{
		{Coordinates: []float64{0, 0}, Value: 1},
		{Coordinates: []float64{1, 0}, Value: 2},
		{Coordinates: []float64{0, 1}, Value: 3},
	}

	large := newSimplex(corners, 0.5, 4)
	small := newSimplex(corners, 0.1, 4)

	for _, depth := range []float64{1, 2, 6, 20} {
		assert.Greater(t, large.Score(depth), small.Score(depth),
			"a larger region must outrank a smaller one with identical corners (depth %v)", depth)
	}
}

func TestScoreMonotoneInCornerValues(t *testing.T) {
	low := unitTriangle([3]float64{1, 2, 3})
	high := unitTriangle([3]float64{1, 2, 5})
	low.difference, high.difference = 4, 4

	assert.Greater(t, high.Score(6), low.Score(6))
}

func TestScoreDepthFlattensExploration(t *testing.T) {
	corners := []*Point{
		{Coordinates: []float64{0, 0}, Value: 1},
		{Coordinates: []float64{1, 0}, Value: 1},
		{Coordinates: []float64{0, 1}, Value: 1},
	}
	s := newSimplex(corners, 0.25, 10)

	// With identical corner values the exploitation term is constant, so the
	// score difference is purely the exploration bonus: ratio^(1/depth) grows
	// toward 1 as depth grows.
	shallow := s.Score(1)
	deep := s.Score(100)
	assert.Less(t, shallow, deep)
	assert.InDelta(t, 1+10*0.25, shallow, 1e-12)
}

func TestSplitAroundCentroid(t *testing.T) {
	parent := unitTriangle([3]float64{1, 2, 3})
	center := &Point{Coordinates: parent.Center, Value: 5}

	children := parent.Split(center, 4)
	require.Len(t, children, 3)

	ratioSum := 0.0
	cornerUse := map[*Point]int{}
	for _, child := range children {
		require.Len(t, child.Corners, 3)
		assert.Equal(t, 4.0, child.difference, "children are stamped with the supplied range")

		shared := false
		for _, c := range child.Corners {
			if c == center {
				shared = true
				continue
			}
			cornerUse[c]++
		}
		assert.True(t, shared, "every child shares the new centroid point")
		ratioSum += child.Ratio()
	}

	// The children partition the parent: volume shares sum to the parent's
	// ratio, and each original corner is kept by every child but the one that
	// replaced it.
	assert.InDelta(t, parent.Ratio(), ratioSum, 1e-12)
	require.Len(t, cornerUse, 3)
	for _, n := range cornerUse {
		assert.Equal(t, 2, n)
	}
}

func TestSplitSkipsCoincidentCorner(t *testing.T) {
	parent := unitTriangle([3]float64{1, 2, 3})
	coincident := &Point{Coordinates: []float64{0, 0}, Value: 9}

	children := parent.Split(coincident, 4)
	assert.Len(t, children, 2, "a corner coincident with the new point yields no child")
}

func TestCentroidPrecomputed(t *testing.T) {
	s := unitTriangle([3]float64{0, 0, 0})
	assert.InDelta(t, 1.0/3, s.Center[0], 1e-12)
	assert.InDelta(t, 1.0/3, s.Center[1], 1e-12)
}
