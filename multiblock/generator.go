package multiblock

import (
	"errors"

	"github.com/notargets/gomesh/mesh"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// Result holds the generated mesh and the node grids of every skeleton entity
type Result struct {
	Mesh *mesh.Mesh
	Kind mesh.ElementType

	gen *generator
}

type generator struct {
	s     *Skeleton
	kind  mesh.ElementType
	step  int
	alloc *allocator
	mesh  *mesh.Mesh
	log   *zap.Logger

	corner     []int   // output node of each skeleton node, -1 for shape nodes
	edgeNodes  [][]int // interior nodes of each edge, in edge direction
	faceNodes  [][]int // interior grid of each face, -1 where the element kind has no node
	blockNodes [][]int // interior grid of each block, -1 where the element kind has no node
}

/*
BuildMesh generates a conforming hexahedral mesh of the skeleton. The kind selects 8, 20 or 27 node elements.
The topology must have been built; tessellation and curves may be changed in between, they are validated here.
*/
func (s *Skeleton) BuildMesh(kind mesh.ElementType) (res *Result, err error) {
	switch kind {
	case mesh.Hex8, mesh.Hex20, mesh.Hex27:
	default:
		return nil, newError(ConfigError, "mesh", -1, "unsupported element kind %s", kind)
	}
	if err = s.requireBuilt(); err != nil {
		return
	}
	if err = s.validate(); err != nil {
		return
	}

	g := &generator{
		s:          s,
		kind:       kind,
		step:       gridStep(kind),
		log:        s.logger(),
		corner:     make([]int, len(s.Nodes)),
		edgeNodes:  make([][]int, len(s.Edges)),
		faceNodes:  make([][]int, len(s.Faces)),
		blockNodes: make([][]int, len(s.Blocks)),
	}
	capacity := g.countNodes()
	g.alloc = newAllocator(capacity)
	g.mesh = mesh.NewMesh(capacity)
	g.log.Debug("allocated output nodes", zap.Int("nodes", capacity), zap.Stringer("kind", kind))

	stages := []struct {
		name string
		run  func() error
	}{
		{"nodes", g.buildNodes},
		{"edges", g.buildEdges},
		{"faces", g.buildFaces},
		{"elements", g.buildElements},
	}
	for _, st := range stages {
		if err = st.run(); err != nil {
			return nil, err
		}
		g.log.Debug("stage complete", zap.String("stage", st.name))
	}
	if g.alloc.remaining() != 0 {
		return nil, newError(PreconditionError, "mesh", -1, "%d of %d nodes were never generated",
			g.alloc.remaining(), capacity)
	}
	g.mesh.BuildConnectivity()
	if err = checkOrphans(g.mesh); err != nil {
		return nil, err
	}

	g.log.Info("mesh generated",
		zap.Stringer("kind", kind),
		zap.Int("nodes", g.mesh.NumVertices),
		zap.Int("elements", g.mesh.NumElements),
		zap.Int("boundaryFaces", len(g.mesh.BoundaryFaces)),
		zap.Int("boundaryEdges", len(g.mesh.BoundaryEdges)))
	return &Result{Mesh: g.mesh, Kind: kind, gen: g}, nil
}

// checkOrphans requires every output node to be a vertex of some volume element
func checkOrphans(m *mesh.Mesh) error {
	if orphans := m.OrphanNodes(); len(orphans) != 0 {
		return newError(PreconditionError, "mesh", -1, "%d nodes belong to no element, first is %d",
			len(orphans), orphans[0])
	}
	return nil
}

// checkBlockFaces resolves each block's face frames and requires every block to agree with its faces on divisions
func (s *Skeleton) checkBlockFaces() (err error) {
	for b := range s.Blocks {
		B := &s.Blocks[b]
		dims := B.dims()
		for lf := 0; lf < 6; lf++ {
			if B.frame[lf], err = s.blockFaceFrame(b, lf); err != nil {
				return
			}
			var (
				F      = &s.Faces[B.Face[lf]]
				tab    = blockFaceTable[lf]
				na, nb = dims[tab.axes[0]], dims[tab.axes[1]]
				fa, fb = F.NX, F.NY
			)
			if B.frame[lf].swapped() {
				fa, fb = fb, fa
			}
			if na != fa || nb != fb {
				return newError(TopologyError, "block", b, "local face %d has divisions (%d,%d), face %d has (%d,%d)",
					lf, na, nb, B.Face[lf], fa, fb)
			}
		}
	}
	return
}

// validate checks everything generation relies on, so that no error can surface half way through
func (s *Skeleton) validate() (err error) {
	for b := range s.Blocks {
		B := &s.Blocks[b]
		if B.NX < 1 || B.NY < 1 || B.NZ < 1 {
			return newError(ConfigError, "block", b, "divisions must be >= 1, have (%d,%d,%d)", B.NX, B.NY, B.NZ)
		}
		if !(B.GX > 0 && B.GY > 0 && B.GZ > 0) {
			return newError(ConfigError, "block", b, "bias ratios must be > 0")
		}
		for _, n := range B.N {
			if s.Nodes[n].Kind != NodeVertex {
				return newError(ConfigError, "block", b, "corner node %d is a shape node", n)
			}
		}
	}
	for f := range s.Faces {
		F := &s.Faces[f]
		if F.NX < 1 || F.NY < 1 {
			return newError(ConfigError, "face", f, "divisions must be >= 1, have (%d,%d)", F.NX, F.NY)
		}
		if !(F.GX > 0 && F.GY > 0) {
			return newError(ConfigError, "face", f, "bias ratios must be > 0")
		}
	}
	for e := range s.Edges {
		E := &s.Edges[e]
		if E.NX < 1 {
			return newError(ConfigError, "edge", e, "divisions must be >= 1, have %d", E.NX)
		}
		if !(E.G > 0) {
			return newError(ConfigError, "edge", e, "bias ratio must be > 0")
		}
		if err = curveOf(E).check(s, s.Nodes[E.N[0]].X, s.Nodes[E.N[1]].X); err != nil {
			var be *BuildError
			if errors.As(err, &be) {
				be.Index = e
			}
			return
		}
	}
	if err = s.updateMB(); err != nil {
		return
	}
	if err = s.checkBlockFaces(); err != nil {
		return
	}
	for f := range s.Faces {
		F := &s.Faces[f]
		for le := 0; le < 4; le++ {
			if E := &s.Edges[F.E[le]]; E.NX != F.dim(le) {
				return newError(TopologyError, "face", f, "edge %d has %d divisions, face side %d has %d",
					F.E[le], E.NX, le, F.dim(le))
			}
		}
	}
	return
}

// countNodes sums the exact number of output nodes for the element kind
func (g *generator) countNodes() (count int) {
	s := g.s
	for _, n := range s.Nodes {
		if n.Kind == NodeVertex {
			count++
		}
	}
	for _, E := range s.Edges {
		count += edgeInteriorCount(g.kind, E.NX)
	}
	for _, F := range s.Faces {
		count += faceInteriorCount(g.kind, F.NX, F.NY)
	}
	for _, B := range s.Blocks {
		count += blockInteriorCount(g.kind, B.NX, B.NY, B.NZ)
	}
	return
}

// newNode allocates an output node at x
func (g *generator) newNode(x r3.Vec) (idx int, err error) {
	if idx, err = g.alloc.allocate(); err != nil {
		return
	}
	g.mesh.Vertices[idx] = x
	return
}

// position returns the coordinates of an already generated node
func (g *generator) position(idx int, entity string, index int) (x r3.Vec, err error) {
	if idx < 0 || idx >= g.alloc.next {
		return x, newError(PreconditionError, entity, index, "boundary node was never generated")
	}
	return g.mesh.Vertices[idx], nil
}

func (g *generator) buildNodes() (err error) {
	s := g.s
	for n := range s.Nodes {
		g.corner[n] = -1
		if s.Nodes[n].Kind != NodeVertex {
			continue
		}
		if g.corner[n], err = g.newNode(s.Nodes[n].X); err != nil {
			return
		}
		g.mesh.NodeTags[g.corner[n]] = s.Nodes[n].GID
	}
	for e := range s.Edges {
		if err = g.buildEdgeNodes(e); err != nil {
			return
		}
	}
	for f := range s.Faces {
		if err = g.buildFaceNodes(f); err != nil {
			return
		}
	}
	for b := range s.Blocks {
		if err = g.buildBlockNodes(b); err != nil {
			return
		}
	}
	return
}

func (g *generator) buildEdgeNodes(e int) (err error) {
	var (
		E     = &g.s.Edges[e]
		m     = E.NX * g.step
		vals  []float64
		nodes = make([]int, m-1)
	)
	if vals, err = gridValues(E.NX, E.G, E.Mirror, g.step); err != nil {
		return
	}
	for p := 1; p < m; p++ {
		if nodes[p-1], err = g.newNode(g.s.EdgePosition(e, vals[p])); err != nil {
			return
		}
	}
	g.edgeNodes[e] = nodes
	return
}

func (g *generator) buildFaceNodes(f int) (err error) {
	var (
		F      = &g.s.Faces[f]
		mx, my = F.NX * g.step, F.NY * g.step
		c      = g.s.faceCorners(F)
		vr, vs []float64
		nodes  = make([]int, (mx-1)*(my-1))
		e      [4]r3.Vec
	)
	if vr, err = gridValues(F.NX, F.GX, F.BX, g.step); err != nil {
		return
	}
	if vs, err = gridValues(F.NY, F.GY, F.BY, g.step); err != nil {
		return
	}
	for j := 1; j < my; j++ {
		for i := 1; i < mx; i++ {
			n := (j-1)*(mx-1) + (i - 1)
			nodes[n] = -1
			if !keepFacePoint(g.kind, i, j) {
				continue
			}
			lookup := [4]int{
				g.faceEdgeNode(f, 0, i),
				g.faceEdgeNode(f, 1, j),
				g.faceEdgeNode(f, 2, mx-i),
				g.faceEdgeNode(f, 3, my-j),
			}
			for le, idx := range lookup {
				if e[le], err = g.position(idx, "face", f); err != nil {
					return
				}
			}
			if nodes[n], err = g.newNode(blendFace(F, c, e, vr[i], vs[j])); err != nil {
				return
			}
		}
	}
	g.faceNodes[f] = nodes
	return
}

func (g *generator) buildBlockNodes(b int) (err error) {
	var (
		B          = &g.s.Blocks[b]
		mx, my, mz = B.NX * g.step, B.NY * g.step, B.NZ * g.step
		c          = g.s.blockCorners(B)
		vr, vs, vt []float64
		nodes      = make([]int, (mx-1)*(my-1)*(mz-1))
		fv         [6]r3.Vec
	)
	if vr, err = gridValues(B.NX, B.GX, B.BX, g.step); err != nil {
		return
	}
	if vs, err = gridValues(B.NY, B.GY, B.BY, g.step); err != nil {
		return
	}
	if vt, err = gridValues(B.NZ, B.GZ, B.BZ, g.step); err != nil {
		return
	}
	for k := 1; k < mz; k++ {
		for j := 1; j < my; j++ {
			for i := 1; i < mx; i++ {
				n := ((k-1)*(my-1)+(j-1))*(mx-1) + (i - 1)
				nodes[n] = -1
				if !keepBlockPoint(g.kind, i, j, k) {
					continue
				}
				lookup := [6]int{
					g.blockFaceNode(b, 0, i, k),
					g.blockFaceNode(b, 1, j, k),
					g.blockFaceNode(b, 2, mx-i, k),
					g.blockFaceNode(b, 3, my-j, k),
					g.blockFaceNode(b, 4, i, my-j),
					g.blockFaceNode(b, 5, i, j),
				}
				for lf, idx := range lookup {
					if fv[lf], err = g.position(idx, "block", b); err != nil {
						return
					}
				}
				if nodes[n], err = g.newNode(blendBlock(c, fv, vr[i], vs[j], vt[k])); err != nil {
					return
				}
			}
		}
	}
	g.blockNodes[b] = nodes
	return
}

// offset scales a refined element offset to the grid of the element kind
func (g *generator) offset(o int) int {
	if g.step == 1 {
		return o / 2
	}
	return o
}

func (g *generator) buildEdges() (err error) {
	et := edgeKind(g.kind)
	for e := range g.s.Edges {
		E := &g.s.Edges[e]
		if E.GID < 0 {
			continue
		}
		for p := 0; p < E.NX; p++ {
			var nodes []int
			if g.step == 1 {
				nodes = []int{g.edgeNode(e, p), g.edgeNode(e, p+1)}
			} else {
				nodes = []int{g.edgeNode(e, 2*p), g.edgeNode(e, 2*p+2), g.edgeNode(e, 2*p+1)}
			}
			if err = g.checkNodes(nodes, "edge", e); err != nil {
				return
			}
			if err = g.mesh.AddBoundaryEdge(et, E.GID, nodes); err != nil {
				return
			}
		}
	}
	return
}

func (g *generator) buildFaces() (err error) {
	ft := faceKind(g.kind)
	for f := range g.s.Faces {
		F := &g.s.Faces[f]
		if F.GID < 0 {
			continue
		}
		sid := F.SID
		if sid < 0 {
			sid = F.GID
		}
		for cj := 0; cj < F.NY; cj++ {
			for ci := 0; ci < F.NX; ci++ {
				nodes := make([]int, ft.NumNodes())
				for q := range nodes {
					o := quadNodeOffsets[q]
					nodes[q] = g.faceNode(f, ci*g.step+g.offset(o[0]), cj*g.step+g.offset(o[1]))
				}
				if err = g.checkNodes(nodes, "face", f); err != nil {
					return
				}
				if err = g.mesh.AddBoundaryFace(ft, F.GID, sid, nodes); err != nil {
					return
				}
			}
		}
	}
	return
}

func (g *generator) buildElements() (err error) {
	for b := range g.s.Blocks {
		B := &g.s.Blocks[b]
		for ek := 0; ek < B.NZ; ek++ {
			for ej := 0; ej < B.NY; ej++ {
				for ei := 0; ei < B.NX; ei++ {
					nodes := make([]int, g.kind.NumNodes())
					for q := range nodes {
						o := hexNodeOffsets[q]
						nodes[q] = g.blockNode(b,
							ei*g.step+g.offset(o[0]),
							ej*g.step+g.offset(o[1]),
							ek*g.step+g.offset(o[2]))
					}
					if err = g.checkNodes(nodes, "block", b); err != nil {
						return
					}
					if err = g.mesh.AddElement(g.kind, B.GID, nodes); err != nil {
						return
					}
				}
			}
		}
	}
	return
}

func (g *generator) checkNodes(nodes []int, entity string, index int) error {
	for _, n := range nodes {
		if n < 0 {
			return newError(PreconditionError, entity, index, "element references a node that was never generated")
		}
	}
	return nil
}

// RefKind selects the skeleton table a Ref points into
type RefKind uint8

const (
	RefEdge RefKind = iota
	RefFace
	RefBlock
)

// Ref names a skeleton edge, face or block
type Ref struct {
	Kind  RefKind
	Index int
}

func EdgeRef(e int) Ref  { return Ref{Kind: RefEdge, Index: e} }
func FaceRef(f int) Ref  { return Ref{Kind: RefFace, Index: f} }
func BlockRef(b int) Ref { return Ref{Kind: RefBlock, Index: b} }

// NodeList returns every output node lying on a skeleton entity, its border included, in grid order
func (res *Result) NodeList(ref Ref) (nodes []int, err error) {
	g := res.gen
	switch ref.Kind {
	case RefEdge:
		if ref.Index < 0 || ref.Index >= len(g.s.Edges) {
			break
		}
		m := g.s.Edges[ref.Index].NX * g.step
		for p := 0; p <= m; p++ {
			nodes = append(nodes, g.edgeNode(ref.Index, p))
		}
		return
	case RefFace:
		if ref.Index < 0 || ref.Index >= len(g.s.Faces) {
			break
		}
		F := &g.s.Faces[ref.Index]
		for j := 0; j <= F.NY*g.step; j++ {
			for i := 0; i <= F.NX*g.step; i++ {
				if keepFacePoint(g.kind, i, j) {
					nodes = append(nodes, g.faceNode(ref.Index, i, j))
				}
			}
		}
		return
	case RefBlock:
		if ref.Index < 0 || ref.Index >= len(g.s.Blocks) {
			break
		}
		B := &g.s.Blocks[ref.Index]
		for k := 0; k <= B.NZ*g.step; k++ {
			for j := 0; j <= B.NY*g.step; j++ {
				for i := 0; i <= B.NX*g.step; i++ {
					if keepBlockPoint(g.kind, i, j, k) {
						nodes = append(nodes, g.blockNode(ref.Index, i, j, k))
					}
				}
			}
		}
		return
	}
	return nil, newError(ConfigError, "mesh", ref.Index, "no skeleton entity of kind %d", ref.Kind)
}

// BlockNode returns the output node at refined grid point (i,j,k) of block b, -1 outside the grid
func (res *Result) BlockNode(b, i, j, k int) int {
	if b < 0 || b >= len(res.gen.s.Blocks) {
		return -1
	}
	return res.gen.blockNode(b, i, j, k)
}

// FaceNode returns the output node at refined grid point (i,j) of face f, -1 outside the grid
func (res *Result) FaceNode(f, i, j int) int {
	if f < 0 || f >= len(res.gen.s.Faces) {
		return -1
	}
	return res.gen.faceNode(f, i, j)
}
