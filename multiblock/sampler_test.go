package multiblock

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func increments(v []float64) (d []float64) {
	d = make([]float64, len(v)-1)
	for i := range d {
		d[i] = v[i+1] - v[i]
	}
	return
}

func TestSampler(t *testing.T) {
	{ // Uniform
		s, err := NewSampler(4, 1, false)
		require.NoError(t, err)
		assert.Equal(t, 5, s.Len())
		assert.InDeltaSlice(t, []float64{0, 0.25, 0.5, 0.75, 1}, s.Values(), 1.e-15)
	}
	{ // Geometric growth, 6 divisions
		for _, ratio := range []float64{1.2, 0.7} {
			s, err := NewSampler(6, ratio, false)
			require.NoError(t, err)
			v := s.Values()
			require.Len(t, v, 7)
			assert.Equal(t, 0., v[0])
			assert.Equal(t, 1., v[6])
			d := increments(v)
			assert.InDelta(t, 1., floats.Sum(d), 1.e-14)
			for i := 1; i < len(d); i++ {
				if ratio > 1 {
					assert.Greater(t, d[i], d[i-1])
				} else {
					assert.Less(t, d[i], d[i-1])
				}
				assert.InDelta(t, ratio, d[i]/d[i-1], 1.e-12)
			}
		}
	}
	{ // Mirrored, even count grows to the middle and shrinks back
		s, err := NewSampler(6, 1.5, true)
		require.NoError(t, err)
		d := increments(s.Values())
		base := 1 / 9.5
		assert.InDeltaSlice(t, []float64{base, 1.5 * base, 2.25 * base, 2.25 * base, 1.5 * base, base}, d, 1.e-14)
	}
	{ // Mirrored, odd count puts the ratio times its neighbors in the middle
		s, err := NewSampler(5, 2, true)
		require.NoError(t, err)
		d := increments(s.Values())
		assert.InDeltaSlice(t, []float64{0.1, 0.2, 0.4, 0.2, 0.1}, d, 1.e-14)
	}
	{ // A single mirrored division
		s, err := NewSampler(1, 3, true)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 1}, s.Values())
	}
}

func TestSamplerAdvanceReset(t *testing.T) {
	s, err := NewSampler(3, 2, false)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Index())
	assert.InDelta(t, 1./7, s.Increment(), 1.e-15)
	assert.True(t, s.Advance())
	assert.True(t, s.Advance())
	assert.Equal(t, 2, s.Index())
	assert.InDelta(t, 3./7, s.Value(), 1.e-15)
	assert.InDelta(t, 4./7, s.Increment(), 1.e-15)
	assert.True(t, s.Advance())
	assert.Equal(t, 1., s.Value())
	assert.Equal(t, 0., s.Increment())
	assert.False(t, s.Advance())
	assert.Equal(t, 3, s.Index())

	s.Reset()
	assert.Equal(t, 0, s.Index())
	assert.Equal(t, 0., s.Value())
	first := s.Values()
	assert.Equal(t, first, s.Values())
}

func TestSamplerErrors(t *testing.T) {
	for _, tc := range []struct {
		n     int
		ratio float64
	}{
		{0, 1}, {-2, 1}, {3, 0}, {3, -1}, {3, math.NaN()},
	} {
		_, err := NewSampler(tc.n, tc.ratio, false)
		assert.True(t, errors.Is(err, ErrConfig), "n=%d ratio=%g", tc.n, tc.ratio)
	}
}

func TestGridValues(t *testing.T) {
	v, err := gridValues(2, 1, false, 2)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.25, 0.5, 0.75, 1}, v, 1.e-15)

	v, err = gridValues(2, 3, false, 2)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.125, 0.25, 0.625, 1}, v, 1.e-15)

	v, err = gridValues(3, 1, false, 1)
	require.NoError(t, err)
	assert.Len(t, v, 4)
}

func TestBuildError(t *testing.T) {
	err := error(newError(TopologyError, "face", 4, "edge %d is not resolved", 2))
	assert.Equal(t, "topology error: face 4: edge 2 is not resolved", err.Error())
	assert.True(t, errors.Is(err, ErrTopology))
	assert.False(t, errors.Is(err, ErrConfig))

	var be *BuildError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, 4, be.Index)

	err = newError(PreconditionError, "mesh", -1, "topology has not been built")
	assert.Equal(t, "precondition violation: mesh: topology has not been built", err.Error())
	assert.True(t, errors.Is(err, ErrPrecondition))
}

func TestAllocator(t *testing.T) {
	a := newAllocator(2)
	for i := 0; i < 2; i++ {
		idx, err := a.allocate()
		require.NoError(t, err)
		assert.Equal(t, i, idx)
	}
	assert.Equal(t, 0, a.remaining())
	idx, err := a.allocate()
	assert.Equal(t, -1, idx)
	assert.True(t, errors.Is(err, ErrPrecondition))
}
