package multiblock

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// EdgePosition evaluates edge e at parametric position r, measured from e.N[0]. The end points are returned exactly.
func (s *Skeleton) EdgePosition(e int, r float64) r3.Vec {
	var (
		E    = &s.Edges[e]
		a, b = s.Nodes[E.N[0]].X, s.Nodes[E.N[1]].X
	)
	switch {
	case r <= 0:
		return a
	case r >= 1:
		return b
	}
	return curveOf(E).point(s, a, b, r)
}

// faceEdgePosition evaluates local edge le of a face at position u measured along the face loop
func (s *Skeleton) faceEdgePosition(F *Face, le int, u float64) r3.Vec {
	if F.EWind[le] < 0 {
		u = 1 - u
	}
	return s.EdgePosition(F.E[le], u)
}

func (s *Skeleton) faceCorners(F *Face) (c [4]r3.Vec) {
	for i, n := range F.N {
		c[i] = s.Nodes[n].X
	}
	return
}

/*
FacePosition evaluates face f at (u,v), with u running N0->N1 and v running N0->N3. The point is the transfinite
blend of the four boundary curves, projected onto the face's sphere or surface of revolution when it has one.
*/
func (s *Skeleton) FacePosition(f int, u, v float64) (p r3.Vec, err error) {
	if err = s.requireBuilt(); err != nil {
		return
	}
	if f < 0 || f >= len(s.Faces) {
		return p, newError(ConfigError, "face", f, "index out of range")
	}
	var (
		F = &s.Faces[f]
		c = s.faceCorners(F)
	)
	if corner, ok := quadCorner(u, v); ok {
		return c[corner], nil
	}
	e := [4]r3.Vec{
		s.faceEdgePosition(F, 0, u),
		s.faceEdgePosition(F, 1, v),
		s.faceEdgePosition(F, 2, 1-u),
		s.faceEdgePosition(F, 3, 1-v),
	}
	return blendFace(F, c, e, u, v), nil
}

// blendFace is the Coons patch of the boundary points e and corners c followed by the surface projection
func blendFace(F *Face, c, e [4]r3.Vec, r, s float64) r3.Vec {
	var (
		N1 = (1 - r) * (1 - s)
		N2 = r * (1 - s)
		N3 = r * s
		N4 = (1 - r) * s
	)
	p := r3.Add(
		r3.Add(r3.Scale(1-s, e[0]), r3.Scale(r, e[1])),
		r3.Add(r3.Scale(s, e[2]), r3.Scale(1-r, e[3])),
	)
	bilinear := r3.Add(
		r3.Add(r3.Scale(N1, c[0]), r3.Scale(N2, c[1])),
		r3.Add(r3.Scale(N3, c[2]), r3.Scale(N4, c[3])),
	)
	p = r3.Sub(p, bilinear)
	if F.Surf == nil {
		return p
	}
	return F.Surf.project(p, e, r, s)
}

/*
BlockPosition evaluates block b at (u,v,w) along its local x, y and z axes. The point blends the six face surfaces
in pairs along each axis and removes the trilinear corner blend counted twice, which reproduces any trilinear
block exactly.
*/
func (s *Skeleton) BlockPosition(b int, u, v, w float64) (p r3.Vec, err error) {
	if err = s.requireBuilt(); err != nil {
		return
	}
	if b < 0 || b >= len(s.Blocks) {
		return p, newError(ConfigError, "block", b, "index out of range")
	}
	var (
		B      = &s.Blocks[b]
		c      = s.blockCorners(B)
		frames [6]faceFrame
		fv     [6]r3.Vec
	)
	if corner, ok := hexCorner(u, v, w); ok {
		return c[corner], nil
	}
	for lf := 0; lf < 6; lf++ {
		if frames[lf], err = s.blockFaceFrame(b, lf); err != nil {
			return
		}
	}
	uv := blockFaceParams(u, v, w)
	for lf := 0; lf < 6; lf++ {
		fu, fw := frames[lf].param(uv[lf][0], uv[lf][1])
		if fv[lf], err = s.FacePosition(B.Face[lf], fu, fw); err != nil {
			return
		}
	}
	return blendBlock(c, fv, u, v, w), nil
}

// blockFaceParams maps block coordinates to the in-plane coordinates of each local block face
func blockFaceParams(r, s, t float64) [6][2]float64 {
	return [6][2]float64{
		{r, t},
		{s, t},
		{1 - r, t},
		{1 - s, t},
		{r, 1 - s},
		{r, s},
	}
}

func (s *Skeleton) blockCorners(B *Block) (c [8]r3.Vec) {
	for i, n := range B.N {
		c[i] = s.Nodes[n].X
	}
	return
}

// blendBlock blends the face points fv, indexed by local block face, with the corners c
func blendBlock(c [8]r3.Vec, fv [6]r3.Vec, r, s, t float64) r3.Vec {
	N := [8]float64{
		(1 - r) * (1 - s) * (1 - t),
		r * (1 - s) * (1 - t),
		r * s * (1 - t),
		(1 - r) * s * (1 - t),
		(1 - r) * (1 - s) * t,
		r * (1 - s) * t,
		r * s * t,
		(1 - r) * s * t,
	}
	var trilinear r3.Vec
	for i := range c {
		trilinear = r3.Add(trilinear, r3.Scale(N[i], c[i]))
	}
	p := r3.Add(r3.Scale(1-t, fv[4]), r3.Scale(1-s, fv[0]))
	p = r3.Add(p, r3.Scale(1-r, fv[3]))
	p = r3.Add(p, r3.Scale(t, fv[5]))
	p = r3.Add(p, r3.Scale(s, fv[2]))
	p = r3.Add(p, r3.Scale(r, fv[1]))
	return r3.Scale(0.5, r3.Sub(p, trilinear))
}

func quadCorner(r, s float64) (corner int, ok bool) {
	switch {
	case r == 0 && s == 0:
		return 0, true
	case r == 1 && s == 0:
		return 1, true
	case r == 1 && s == 1:
		return 2, true
	case r == 0 && s == 1:
		return 3, true
	}
	return -1, false
}

func hexCorner(r, s, t float64) (corner int, ok bool) {
	if t != 0 && t != 1 {
		return -1, false
	}
	if corner, ok = quadCorner(r, s); ok && t == 1 {
		corner += 4
	}
	return
}
