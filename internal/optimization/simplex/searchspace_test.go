package simplex

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSearchSpaceValidation(t *testing.T) {
	tests := []struct {
		name    string
		bounds  [][2]float64
		wantErr bool
	}{
		{
			name:    "valid bounds",
			bounds:  [][2]float64{{-10, 10}, {-20, 20}},
			wantErr: false,
		},
		{
			name:    "single dimension",
			bounds:  [][2]float64{{0, 1}},
			wantErr: false,
		},
		{
			name:    "empty bounds",
			bounds:  nil,
			wantErr: true,
		},
		{
			name:    "inverted interval",
			bounds:  [][2]float64{{10, -10}},
			wantErr: true,
		},
		{
			name:    "degenerate interval",
			bounds:  [][2]float64{{3, 3}},
			wantErr: true,
		},
		{
			name:    "nan bound",
			bounds:  [][2]float64{{math.NaN(), 1}},
			wantErr: true,
		},
		{
			name:    "infinite bound",
			bounds:  [][2]float64{{0, math.Inf(1)}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			space, err := NewSearchSpace(tt.bounds)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, space)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.bounds), space.Dimensions())
		})
	}
}

func TestToDomain(t *testing.T) {
	space, err := NewSearchSpace([][2]float64{{-10, 10}, {-20, 20}})
	require.NoError(t, err)

	tests := []struct {
		name     string
		internal []float64
		want     []float64
	}{
		{"origin maps to lower bounds", []float64{0, 0}, []float64{-10, -20}},
		{"unit offsets map to upper bounds", []float64{1, 1}, []float64{10, 20}},
		{"midpoint maps to domain center", []float64{0.5, 0.5}, []float64{0, 0}},
		{"mixed", []float64{1, 0}, []float64{10, -20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := space.ToDomain(tt.internal)
			require.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.InDelta(t, tt.want[i], got[i], 1e-12)
			}
		})
	}
}

func TestInitialSimplex(t *testing.T) {
	space, err := NewSearchSpace([][2]float64{{-10, 10}, {-20, 20}, {0, 5}})
	require.NoError(t, err)

	s := space.InitialSimplex()
	require.Len(t, s.Corners, 4)

	// One corner at the origin, one unit offset per axis.
	assert.Equal(t, []float64{0, 0, 0}, s.Corners[0].Coordinates)
	for i := 1; i < len(s.Corners); i++ {
		for j, c := range s.Corners[i].Coordinates {
			if j == i-1 {
				assert.Equal(t, 1.0, c)
			} else {
				assert.Equal(t, 0.0, c)
			}
		}
		assert.True(t, math.IsNaN(s.Corners[i].Value), "corner values start as placeholders")
	}

	// The centroid is the mean of the corners and covers the whole domain.
	for _, c := range s.Center {
		assert.InDelta(t, 0.25, c, 1e-12)
	}
	assert.Equal(t, 1.0, s.Ratio())
}
