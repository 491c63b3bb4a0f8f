package utils

import "gonum.org/v1/gonum/spatial/r3"

const (
	NODETOL = 1.e-12
	// GEOMTOL is the coincidence tolerance used when comparing user supplied positions
	GEOMTOL = 1.e-9
)

// Coincident reports whether two points are the same to within GEOMTOL, scaled by their magnitude
func Coincident(a, b r3.Vec) bool {
	scale := 1. + r3.Norm(a) + r3.Norm(b)
	return r3.Norm(r3.Sub(a, b)) <= GEOMTOL*scale
}
