package multiblock

import (
	"github.com/notargets/gomesh/utils"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// NodeKind distinguishes mesh vertices from construction points
type NodeKind uint8

const (
	NodeVertex NodeKind = iota // becomes an output node
	NodeShape                  // construction aid only, e.g. an arc center
)

// Node is a skeleton corner point
type Node struct {
	X    r3.Vec
	Kind NodeKind
	GID  int
}

// Edge connects two skeleton nodes
type Edge struct {
	N      [2]int
	Curve  Curve
	NX     int
	G      float64
	Mirror bool
	GID    int
}

// Face is a quadrilateral loop of skeleton nodes with derived edges
type Face struct {
	N      [4]int
	E      [4]int
	EWind  [4]int // +1 when E[i] runs from N[i] to N[i+1], -1 when reversed
	NX, NY int
	GX, GY float64
	BX, BY bool
	Block  [2]int // owning blocks, Block[1] is -1 on the boundary
	Nbr    [4]int // neighboring boundary face across each edge, -1 if none
	GID    int
	SID    int // smoothing group, -1 uses GID
	Surf   Surface
}

// Block is a hexahedral region with nodes in the conventional hex corner order
type Block struct {
	N          [8]int
	NX, NY, NZ int
	GX, GY, GZ float64
	BX, BY, BZ bool
	Nbr        [6]int
	Face       [6]int
	Edge       [12]int
	GID        int

	frame [6]faceFrame
}

// Skeleton is the index addressed block topology that drives the mesher
type Skeleton struct {
	Nodes  []Node
	Edges  []Edge
	Faces  []Face
	Blocks []Block

	built bool
	log   *zap.Logger
}

func NewSkeleton() *Skeleton {
	return &Skeleton{log: zap.NewNop()}
}

// SetLogger attaches a logger, nil restores the no-op logger
func (s *Skeleton) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	s.log = l
}

func (s *Skeleton) logger() *zap.Logger {
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s.log
}

// AddNode appends a node and returns its index
func (s *Skeleton) AddNode(x r3.Vec, kind NodeKind) int {
	s.Nodes = append(s.Nodes, Node{X: x, Kind: kind, GID: -1})
	return len(s.Nodes) - 1
}

// AddBlock appends an unbiased block and returns its index. Adding a block invalidates any earlier topology build.
func (s *Skeleton) AddBlock(nodes [8]int, nx, ny, nz int) (b int, err error) {
	seen := make(map[int]bool, 8)
	for _, n := range nodes {
		if n < 0 || n >= len(s.Nodes) {
			return -1, newError(ConfigError, "block", len(s.Blocks), "node index %d out of range", n)
		}
		if seen[n] {
			return -1, newError(TopologyError, "block", len(s.Blocks), "node %d used twice", n)
		}
		seen[n] = true
	}
	for i := 0; i < 8; i++ {
		for j := i + 1; j < 8; j++ {
			if utils.Coincident(s.Nodes[nodes[i]].X, s.Nodes[nodes[j]].X) {
				return -1, newError(TopologyError, "block", len(s.Blocks), "nodes %d and %d coincide", nodes[i], nodes[j])
			}
		}
	}
	blk := Block{
		N:  nodes,
		NX: nx, NY: ny, NZ: nz,
		GX: 1, GY: 1, GZ: 1,
	}
	for i := range blk.Nbr {
		blk.Nbr[i] = -1
		blk.Face[i] = -1
	}
	for i := range blk.Edge {
		blk.Edge[i] = -1
	}
	s.Blocks = append(s.Blocks, blk)
	s.built = false
	return len(s.Blocks) - 1, nil
}

// SetBlockZoning sets the bias ratios and mirror flags of the three block axes
func (s *Skeleton) SetBlockZoning(b int, gx, gy, gz float64, bx, by, bz bool) error {
	if b < 0 || b >= len(s.Blocks) {
		return newError(ConfigError, "block", b, "index out of range")
	}
	B := &s.Blocks[b]
	B.GX, B.GY, B.GZ = gx, gy, gz
	B.BX, B.BY, B.BZ = bx, by, bz
	return nil
}

// SetBlockID sets the part tag of the elements generated in a block
func (s *Skeleton) SetBlockID(b, gid int) error {
	if b < 0 || b >= len(s.Blocks) {
		return newError(ConfigError, "block", b, "index out of range")
	}
	s.Blocks[b].GID = gid
	return nil
}

func (s *Skeleton) SetNodeID(n, gid int) error {
	if n < 0 || n >= len(s.Nodes) {
		return newError(ConfigError, "node", n, "index out of range")
	}
	s.Nodes[n].GID = gid
	return nil
}

// SetBlockFaceID assigns boundary groups to the 6 faces of a block, -1 leaves a face untagged
func (s *Skeleton) SetBlockFaceID(b int, ids [6]int) error {
	if err := s.requireBuilt(); err != nil {
		return err
	}
	if b < 0 || b >= len(s.Blocks) {
		return newError(ConfigError, "block", b, "index out of range")
	}
	for lf, id := range ids {
		s.Faces[s.Blocks[b].Face[lf]].GID = id
	}
	return nil
}

// SetFaceEdgeID assigns boundary groups to the 4 edges of a face, -1 leaves an edge untagged
func (s *Skeleton) SetFaceEdgeID(f int, ids [4]int) error {
	if err := s.requireBuilt(); err != nil {
		return err
	}
	if f < 0 || f >= len(s.Faces) {
		return newError(ConfigError, "face", f, "index out of range")
	}
	for le, id := range ids {
		s.Edges[s.Faces[f].E[le]].GID = id
	}
	return nil
}

// SetFaceSmoothingID sets the smoothing group written with the boundary faces of f
func (s *Skeleton) SetFaceSmoothingID(f, sid int) error {
	if f < 0 || f >= len(s.Faces) {
		return newError(ConfigError, "face", f, "index out of range")
	}
	s.Faces[f].SID = sid
	return nil
}

// BlockFace returns the skeleton face on local face lf of block b
func (s *Skeleton) BlockFace(b, lf int) (f int, err error) {
	if err = s.requireBuilt(); err != nil {
		return -1, err
	}
	if b < 0 || b >= len(s.Blocks) || lf < 0 || lf > 5 {
		return -1, newError(ConfigError, "block", b, "no local face %d", lf)
	}
	return s.Blocks[b].Face[lf], nil
}

// FaceEdge returns the skeleton edge on local edge le of face f
func (s *Skeleton) FaceEdge(f, le int) (e int, err error) {
	if err = s.requireBuilt(); err != nil {
		return -1, err
	}
	if f < 0 || f >= len(s.Faces) || le < 0 || le > 3 {
		return -1, newError(ConfigError, "face", f, "no local edge %d", le)
	}
	return s.Faces[f].E[le], nil
}

// FindEdge returns the edge joining n0 and n1 in either direction, -1 if there is none
func (s *Skeleton) FindEdge(n0, n1 int) int {
	for i := range s.Edges {
		e := &s.Edges[i]
		if (e.N[0] == n0 && e.N[1] == n1) || (e.N[0] == n1 && e.N[1] == n0) {
			return i
		}
	}
	return -1
}

// SetEdgeArc3P makes e a circular arc about the center node. Winding +1 runs counter clockwise about
// (N0-c)x(N1-c), the short way, -1 takes the long way around.
func (s *Skeleton) SetEdgeArc3P(e, center, winding int) error {
	if e < 0 || e >= len(s.Edges) {
		return newError(ConfigError, "edge", e, "index out of range")
	}
	if center < 0 || center >= len(s.Nodes) {
		return newError(ConfigError, "edge", e, "arc center node %d out of range", center)
	}
	if winding != 1 && winding != -1 {
		return newError(ConfigError, "edge", e, "winding must be +1 or -1, have %d", winding)
	}
	s.Edges[e].Curve = Arc3P{Center: center, Winding: winding}
	return nil
}

// SetEdgeZArc makes e a circular arc about the z axis in a plane of constant z. Winding +1 is counter clockwise
// seen from +z.
func (s *Skeleton) SetEdgeZArc(e, winding int) error {
	if e < 0 || e >= len(s.Edges) {
		return newError(ConfigError, "edge", e, "index out of range")
	}
	if winding != 1 && winding != -1 {
		return newError(ConfigError, "edge", e, "winding must be +1 or -1, have %d", winding)
	}
	s.Edges[e].Curve = ZArc{Winding: winding}
	return nil
}

// SetEdgeID sets the boundary group of a single edge, -1 leaves it untagged
func (s *Skeleton) SetEdgeID(e, gid int) error {
	if e < 0 || e >= len(s.Edges) {
		return newError(ConfigError, "edge", e, "index out of range")
	}
	s.Edges[e].GID = gid
	return nil
}

// SetEdgeZoning overrides the divisions and bias of a single edge
func (s *Skeleton) SetEdgeZoning(e, nx int, g float64, mirror bool) error {
	if e < 0 || e >= len(s.Edges) {
		return newError(ConfigError, "edge", e, "index out of range")
	}
	E := &s.Edges[e]
	E.NX, E.G, E.Mirror = nx, g, mirror
	return nil
}

func (s *Skeleton) requireBuilt() error {
	if !s.built {
		return newError(PreconditionError, "mesh", -1, "topology has not been built")
	}
	return nil
}
