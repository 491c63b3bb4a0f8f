package multiblock

/*
faceFrame maps the coordinates (a,b) of a block's local face, a running along the block loop N0->N1 and b along
N0->N3, onto the grid (i,j) of the shared skeleton face, which may start at any of its 4 corners and run either
way round. The origin is a corner of the unit square, the axes are unit steps along the face grid.
*/
type faceFrame struct {
	ox, oy int
	ax, ay int
	bx, by int
}

var (
	squareX = [4]int{0, 1, 1, 0}
	squareY = [4]int{0, 0, 1, 1}
)

func (ff faceFrame) index(a, b, mx, my int) (i, j int) {
	i = ff.ox*mx + ff.ax*a + ff.bx*b
	j = ff.oy*my + ff.ay*a + ff.by*b
	return
}

func (ff faceFrame) param(a, b float64) (u, v float64) {
	u = float64(ff.ox) + float64(ff.ax)*a + float64(ff.bx)*b
	v = float64(ff.oy) + float64(ff.ay)*a + float64(ff.by)*b
	return
}

// swapped reports whether the block face's first axis runs along the face's second direction
func (ff faceFrame) swapped() bool { return ff.ax == 0 }

// blockFaceFrame locates the block's local face lf inside the skeleton face it references
func (s *Skeleton) blockFaceFrame(b, lf int) (ff faceFrame, err error) {
	var (
		B    = &s.Blocks[b]
		loop = B.localFace(lf)
		l    = -1
		m    int
	)
	if B.Face[lf] < 0 || B.Face[lf] >= len(s.Faces) {
		return ff, newError(PreconditionError, "block", b, "local face %d is not resolved", lf)
	}
	F := &s.Faces[B.Face[lf]]
	for i, n := range F.N {
		if n == loop[0] {
			l = i
		}
	}
	switch {
	case l < 0:
		return ff, newError(TopologyError, "block", b, "face %d does not contain local face %d", B.Face[lf], lf)
	case F.N[(l+1)%4] == loop[1] && F.N[(l+3)%4] == loop[3]:
		m = 1
	case F.N[(l+3)%4] == loop[1] && F.N[(l+1)%4] == loop[3]:
		m = 3
	default:
		return ff, newError(TopologyError, "block", b, "face %d is not a rotation of local face %d", B.Face[lf], lf)
	}
	la, lb := (l+m)%4, (l+3*m)%4
	ff = faceFrame{
		ox: squareX[l], oy: squareY[l],
		ax: squareX[la] - squareX[l], ay: squareY[la] - squareY[l],
		bx: squareX[lb] - squareX[l], by: squareY[lb] - squareY[l],
	}
	return
}

// edgeNode returns the output node at grid position p of edge e, p = 0 and p = m being its end nodes
func (g *generator) edgeNode(e, p int) int {
	var (
		E = &g.s.Edges[e]
		m = E.NX * g.step
	)
	switch {
	case p < 0 || p > m:
		return -1
	case p == 0:
		return g.corner[E.N[0]]
	case p == m:
		return g.corner[E.N[1]]
	}
	if g.edgeNodes[e] == nil {
		return -1
	}
	return g.edgeNodes[e][p-1]
}

// faceEdgeNode returns the node at position p along local edge le of face f, counted in the face loop direction
func (g *generator) faceEdgeNode(f, le, p int) int {
	F := &g.s.Faces[f]
	if F.EWind[le] < 0 {
		p = F.dim(le)*g.step - p
	}
	return g.edgeNode(F.E[le], p)
}

// faceNode returns the node at grid point (i,j) of face f, resolving its border through the face's edges
func (g *generator) faceNode(f, i, j int) int {
	var (
		F  = &g.s.Faces[f]
		mx = F.NX * g.step
		my = F.NY * g.step
	)
	switch {
	case i < 0 || i > mx || j < 0 || j > my:
		return -1
	case i == 0:
		return g.faceEdgeNode(f, 3, my-j)
	case i == mx:
		return g.faceEdgeNode(f, 1, j)
	case j == 0:
		return g.faceEdgeNode(f, 0, i)
	case j == my:
		return g.faceEdgeNode(f, 2, mx-i)
	}
	if g.faceNodes[f] == nil {
		return -1
	}
	return g.faceNodes[f][(j-1)*(mx-1)+(i-1)]
}

// blockFaceNode returns the node at (a,b) of local face lf of block b
func (g *generator) blockFaceNode(b, lf, a, c int) int {
	var (
		B    = &g.s.Blocks[b]
		f    = B.Face[lf]
		F    = &g.s.Faces[f]
		i, j = B.frame[lf].index(a, c, F.NX*g.step, F.NY*g.step)
	)
	return g.faceNode(f, i, j)
}

// blockNode returns the node at grid point (i,j,k) of block b, resolving its border through the block's faces
func (g *generator) blockNode(b, i, j, k int) int {
	var (
		B  = &g.s.Blocks[b]
		mx = B.NX * g.step
		my = B.NY * g.step
		mz = B.NZ * g.step
	)
	switch {
	case i < 0 || i > mx || j < 0 || j > my || k < 0 || k > mz:
		return -1
	case i == 0:
		return g.blockFaceNode(b, 3, my-j, k)
	case i == mx:
		return g.blockFaceNode(b, 1, j, k)
	case j == 0:
		return g.blockFaceNode(b, 0, i, k)
	case j == my:
		return g.blockFaceNode(b, 2, mx-i, k)
	case k == 0:
		return g.blockFaceNode(b, 4, i, my-j)
	case k == mz:
		return g.blockFaceNode(b, 5, i, j)
	}
	if g.blockNodes[b] == nil {
		return -1
	}
	return g.blockNodes[b][((k-1)*(my-1)+(j-1))*(mx-1)+(i-1)]
}
