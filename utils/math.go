package utils

import (
	"math"
)

func POW(x float64, pp int) (y float64) {
	var (
		p       = pp
		flipped bool
	)
	if pp > 8 || pp < -8 {
		goto MATHPOW
	}

	if p < 0 {
		p = -pp
		flipped = true
	}
	switch p {
	case 0:
		y = 1
	case 1:
		y = x
	case 2:
		y = x * x
	case 3:
		y = x * x * x
	case 4:
		y = x * x
		y = y * y
	case 5:
		y = x * x
		y = y * y * x
	case 6:
		y = x * x
		y = y * y * y
	case 7:
		y = x * x
		y = y * y * y * x
	case 8:
		y = x * x
		y = y * y * y * y
	}
	if flipped {
		y = 1. / y
	}
	return

MATHPOW:
	y = math.Pow(x, float64(p))
	return
}

// GeometricSum returns 1 + r + r^2 + ... + r^(n-1)
func GeometricSum(r float64, n int) (sum float64) {
	if n <= 0 {
		return 0
	}
	if math.Abs(r-1) < NODETOL {
		return float64(n)
	}
	sum = (1 - POW(r, n)) / (1 - r)
	return
}

// Lerp blends two scalars, t = 0 returns a
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}
