package multiblock

import (
	"github.com/notargets/gomesh/types"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

/*
blockFaceTable gives, for each local block face, the local corner nodes as a loop seen from outside, which block
axes run along the loop's first (N0->N1) and second (N0->N3) directions, and whether that axis runs backwards.
*/
var blockFaceTable = [6]struct {
	nodes    [4]int
	axes     [2]int // 0:x, 1:y, 2:z
	reversed [2]bool
}{
	{[4]int{0, 1, 5, 4}, [2]int{0, 2}, [2]bool{false, false}},
	{[4]int{1, 2, 6, 5}, [2]int{1, 2}, [2]bool{false, false}},
	{[4]int{2, 3, 7, 6}, [2]int{0, 2}, [2]bool{true, false}},
	{[4]int{3, 0, 4, 7}, [2]int{1, 2}, [2]bool{true, false}},
	{[4]int{3, 2, 1, 0}, [2]int{0, 1}, [2]bool{false, true}},
	{[4]int{4, 5, 6, 7}, [2]int{0, 1}, [2]bool{false, false}},
}

// blockEdgeTable lists the local corner nodes of the 12 block edges
var blockEdgeTable = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

func (b *Block) dims() [3]int                { return [3]int{b.NX, b.NY, b.NZ} }
func (b *Block) bias() ([3]float64, [3]bool) { return [3]float64{b.GX, b.GY, b.GZ}, [3]bool{b.BX, b.BY, b.BZ} }

// localFace returns the global node loop of local face lf
func (b *Block) localFace(lf int) (nodes [4]int) {
	for i, ln := range blockFaceTable[lf].nodes {
		nodes[i] = b.N[ln]
	}
	return
}

// BuildTopology infers the faces, edges and neighbor links of the skeleton from its blocks
func (s *Skeleton) BuildTopology() (err error) {
	s.built = false
	if len(s.Blocks) == 0 {
		return newError(PreconditionError, "mesh", -1, "skeleton has no blocks")
	}
	s.FindBlockNeighbours()
	if err = s.BuildMBFaces(); err != nil {
		return
	}
	s.FindFaceNeighbours()
	if err = s.BuildMBEdges(); err != nil {
		return
	}
	if err = s.updateMB(); err != nil {
		return
	}
	if err = s.checkBlockFaces(); err != nil {
		return
	}
	s.built = true
	s.logger().Debug("skeleton topology built",
		zap.Int("nodes", len(s.Nodes)),
		zap.Int("edges", len(s.Edges)),
		zap.Int("faces", len(s.Faces)),
		zap.Int("blocks", len(s.Blocks)))
	return
}

// FindBlockNeighbours links blocks that expose the same node set as one of their faces
func (s *Skeleton) FindBlockNeighbours() {
	// node to block table
	NBT := make([][]int, len(s.Nodes))
	for b := range s.Blocks {
		B := &s.Blocks[b]
		for i := range B.Nbr {
			B.Nbr[i] = -1
		}
		for _, n := range B.N {
			NBT[n] = append(NBT[n], b)
		}
	}
	for b := range s.Blocks {
		B := &s.Blocks[b]
		for lf := 0; lf < 6; lf++ {
			if B.Nbr[lf] >= 0 {
				continue
			}
			loop := B.localFace(lf)
			key := types.NewFaceKey(loop[:])
			for _, b2 := range NBT[loop[0]] {
				if b2 == b {
					continue
				}
				B2 := &s.Blocks[b2]
				for lf2 := 0; lf2 < 6; lf2++ {
					loop2 := B2.localFace(lf2)
					if B2.Nbr[lf2] < 0 && types.NewFaceKey(loop2[:]) == key {
						B.Nbr[lf] = b2
						B2.Nbr[lf2] = b
						break
					}
				}
				if B.Nbr[lf] >= 0 {
					break
				}
			}
		}
	}
}

// BuildMBFaces creates one face per boundary block face and one per shared pair of block faces
func (s *Skeleton) BuildMBFaces() (err error) {
	s.Faces = s.Faces[:0]
	for b := range s.Blocks {
		B := &s.Blocks[b]
		for lf := 0; lf < 6; lf++ {
			nb := B.Nbr[lf]
			if nb >= 0 && nb < b {
				// the neighbor already emitted the shared face
				B2 := &s.Blocks[nb]
				loop := B.localFace(lf)
				key := types.NewFaceKey(loop[:])
				B.Face[lf] = -1
				for lf2 := 0; lf2 < 6; lf2++ {
					loop2 := B2.localFace(lf2)
					if B2.Nbr[lf2] == b && types.NewFaceKey(loop2[:]) == key {
						f := B2.Face[lf2]
						B.Face[lf] = f
						s.Faces[f].Block[1] = b
						break
					}
				}
				if B.Face[lf] < 0 {
					return newError(TopologyError, "block", b, "neighbor %d does not share local face %d", nb, lf)
				}
				continue
			}
			var (
				tab       = blockFaceTable[lf]
				dims      = B.dims()
				g, mirror = B.bias()
				F         = Face{
					N:     B.localFace(lf),
					NX:    dims[tab.axes[0]],
					NY:    dims[tab.axes[1]],
					GX:    g[tab.axes[0]],
					GY:    g[tab.axes[1]],
					BX:    mirror[tab.axes[0]],
					BY:    mirror[tab.axes[1]],
					Block: [2]int{b, -1},
					Nbr:   [4]int{-1, -1, -1, -1},
					E:     [4]int{-1, -1, -1, -1},
					GID:   -1,
					SID:   -1,
					Surf:  Flat{},
				}
			)
			// A reversed axis inverts the bias unless the pattern is symmetric
			if tab.reversed[0] && !F.BX {
				F.GX = 1 / F.GX
			}
			if tab.reversed[1] && !F.BY {
				F.GY = 1 / F.GY
			}
			s.Faces = append(s.Faces, F)
			B.Face[lf] = len(s.Faces) - 1
		}
	}
	return
}

// FindFaceNeighbours links each boundary face to the boundary faces sharing its edges
func (s *Skeleton) FindFaceNeighbours() {
	// node to boundary face table
	NFT := make([][]int, len(s.Nodes))
	for f := range s.Faces {
		F := &s.Faces[f]
		F.Nbr = [4]int{-1, -1, -1, -1}
		if F.Block[1] >= 0 {
			continue
		}
		for _, n := range F.N {
			NFT[n] = append(NFT[n], f)
		}
	}
	for f := range s.Faces {
		F := &s.Faces[f]
		if F.Block[1] >= 0 {
			continue
		}
		for le := 0; le < 4; le++ {
			n0, n1 := F.N[le], F.N[(le+1)%4]
			for _, f2 := range NFT[n0] {
				if f2 != f && s.Faces[f2].hasEdge(n0, n1) {
					F.Nbr[le] = f2
					break
				}
			}
		}
	}
}

// hasEdge reports whether n0 and n1 are consecutive in the face loop
func (f *Face) hasEdge(n0, n1 int) bool {
	for i := 0; i < 4; i++ {
		a, b := f.N[i], f.N[(i+1)%4]
		if (a == n0 && b == n1) || (a == n1 && b == n0) {
			return true
		}
	}
	return false
}

// dim returns the division count along local edge le
func (f *Face) dim(le int) int {
	if le%2 == 0 {
		return f.NX
	}
	return f.NY
}

// BuildMBEdges creates the unique edges of all faces and resolves the 12 edges of every block
func (s *Skeleton) BuildMBEdges() (err error) {
	s.Edges = s.Edges[:0]
	edgeMap := make(map[types.EdgeKey]int)
	for f := range s.Faces {
		F := &s.Faces[f]
		for le := 0; le < 4; le++ {
			n0, n1 := F.N[le], F.N[(le+1)%4]
			key := types.NewEdgeKey([2]int{n0, n1})
			if e, ok := edgeMap[key]; ok {
				F.E[le] = e
				continue
			}
			E := Edge{
				N:     [2]int{n0, n1},
				Curve: Line{},
				GID:   -1,
			}
			switch le {
			case 0:
				E.NX, E.G, E.Mirror = F.NX, F.GX, F.BX
			case 1:
				E.NX, E.G, E.Mirror = F.NY, F.GY, F.BY
			case 2:
				E.NX, E.G, E.Mirror = F.NX, invertBias(F.GX, F.BX), F.BX
			case 3:
				E.NX, E.G, E.Mirror = F.NY, invertBias(F.GY, F.BY), F.BY
			}
			s.Edges = append(s.Edges, E)
			edgeMap[key] = len(s.Edges) - 1
			F.E[le] = len(s.Edges) - 1
		}
	}
	for b := range s.Blocks {
		B := &s.Blocks[b]
		for i, le := range blockEdgeTable {
			e, ok := edgeMap[types.NewEdgeKey([2]int{B.N[le[0]], B.N[le[1]]})]
			if !ok {
				return newError(TopologyError, "block", b, "edge %d has no matching face edge", i)
			}
			B.Edge[i] = e
		}
	}
	return
}

func invertBias(g float64, mirror bool) float64 {
	if mirror {
		return g
	}
	return 1 / g
}

/*
UpdateMB recomputes the winding of each face edge relative to the face loop and the derived surface of each face.
A face whose four edges are three-point arcs about the same center becomes a sphere; a face whose opposite edges
0,2 or 1,3 are both z-arcs becomes a surface of revolution.
*/
func (s *Skeleton) UpdateMB() (err error) {
	if err = s.requireBuilt(); err != nil {
		return
	}
	return s.updateMB()
}

func (s *Skeleton) updateMB() (err error) {
	for f := range s.Faces {
		F := &s.Faces[f]
		for le := 0; le < 4; le++ {
			e := F.E[le]
			if e < 0 || e >= len(s.Edges) {
				return newError(TopologyError, "face", f, "edge %d is not resolved", le)
			}
			n0, n1 := F.N[le], F.N[(le+1)%4]
			E := &s.Edges[e]
			switch {
			case E.N[0] == n0 && E.N[1] == n1:
				F.EWind[le] = 1
			case E.N[0] == n1 && E.N[1] == n0:
				F.EWind[le] = -1
			default:
				return newError(TopologyError, "face", f, "edge %d does not join nodes %d and %d", e, n0, n1)
			}
		}
		F.Surf = s.deriveSurface(F)
	}
	return
}

func (s *Skeleton) deriveSurface(F *Face) Surface {
	var kinds [4]CurveKind
	for le := 0; le < 4; le++ {
		kinds[le] = curveOf(&s.Edges[F.E[le]]).Kind()
	}
	if kinds[0] == CurveArc3P && kinds[1] == CurveArc3P && kinds[2] == CurveArc3P && kinds[3] == CurveArc3P {
		center := s.Edges[F.E[0]].Curve.(Arc3P).Center
		same := true
		for le := 1; le < 4; le++ {
			if s.Edges[F.E[le]].Curve.(Arc3P).Center != center {
				same = false
			}
		}
		if same && center >= 0 && center < len(s.Nodes) {
			c := s.Nodes[center].X
			var R float64
			for _, n := range F.N {
				R += r3.Norm(r3.Sub(s.Nodes[n].X, c))
			}
			return Sphere{Center: c, Radius: R / 4}
		}
	}
	switch {
	case kinds[0] == CurveZArc && kinds[2] == CurveZArc:
		return Revolve{ArcsAlongR: true}
	case kinds[1] == CurveZArc && kinds[3] == CurveZArc:
		return Revolve{ArcsAlongR: false}
	}
	return Flat{}
}

func curveOf(e *Edge) Curve {
	if e.Curve == nil {
		return Line{}
	}
	return e.Curve
}
