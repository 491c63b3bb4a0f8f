package multiblock

import (
	"github.com/notargets/gomesh/utils"
)

/*
Sampler walks the N+1 parametric positions 0 = r0 < r1 < ... < rN = 1 of a biased subdivision.
Successive increments grow by the bias ratio. A mirrored sampler grows the increments up to the middle of the
range and shrinks them symmetrically afterwards; for an odd count the middle increment is the ratio times its
neighbors.
*/
type Sampler struct {
	n        int
	ratio    float64
	mirrored bool

	j  int     // index of the current position
	r  float64 // current position
	dr float64 // current increment
	f  float64 // current growth factor
}

func NewSampler(n int, ratio float64, mirrored bool) (s *Sampler, err error) {
	if n < 1 {
		return nil, newError(ConfigError, "sampler", -1, "division count must be >= 1, have %d", n)
	}
	if !(ratio > 0) {
		return nil, newError(ConfigError, "sampler", -1, "bias ratio must be > 0, have %g", ratio)
	}
	s = &Sampler{
		n:        n,
		ratio:    ratio,
		mirrored: mirrored && n > 1,
	}
	s.Reset()
	return
}

// Reset restarts the sequence at position 0
func (s *Sampler) Reset() {
	var (
		f  = s.ratio
		gr float64
	)
	if s.mirrored {
		gr = 2
		if s.n%2 == 1 {
			gr += f
		}
		for i := 0; i < s.n/2-1; i++ {
			gr = f*gr + 2
		}
	} else {
		gr = utils.GeometricSum(f, s.n)
	}
	s.j, s.r, s.dr, s.f = 0, 0, 1/gr, f
}

// Advance moves to the next position, returning false once the last position has been reached
func (s *Sampler) Advance() bool {
	if s.j >= s.n {
		return false
	}
	s.r += s.dr
	s.dr *= s.f
	if s.mirrored && s.j == s.n/2-1 {
		if s.n%2 == 0 {
			s.dr /= s.f
		}
		s.f = 1 / s.f
	}
	s.j++
	if s.j == s.n {
		// Remove round off so the range closes exactly
		s.r, s.dr = 1, 0
	}
	return true
}

// Value returns the current position
func (s *Sampler) Value() float64 { return s.r }

// Increment returns the step from the current position to the next, zero at the end
func (s *Sampler) Increment() float64 { return s.dr }

// Index returns the index of the current position
func (s *Sampler) Index() int { return s.j }

// Len returns the number of positions, N+1
func (s *Sampler) Len() int { return s.n + 1 }

// Values returns all positions, leaving the sampler reset
func (s *Sampler) Values() (v []float64) {
	s.Reset()
	v = make([]float64, 0, s.Len())
	v = append(v, s.Value())
	for s.Advance() {
		v = append(v, s.Value())
	}
	s.Reset()
	return
}

/*
gridValues returns the parametric positions of a grid line with n divisions. For quadratic elements the grid is
refined to 2n intervals with the odd entries at the midpoint of the neighboring linear positions.
*/
func gridValues(n int, ratio float64, mirrored bool, step int) (v []float64, err error) {
	var s *Sampler
	if s, err = NewSampler(n, ratio, mirrored); err != nil {
		return
	}
	lin := s.Values()
	if step == 1 {
		return lin, nil
	}
	v = make([]float64, 2*n+1)
	for j := 0; j < n; j++ {
		v[2*j] = lin[j]
		v[2*j+1] = 0.5 * (lin[j] + lin[j+1])
	}
	v[2*n] = 1
	return
}
