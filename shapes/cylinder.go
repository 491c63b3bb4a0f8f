package shapes

import (
	"fmt"
	"math"

	"github.com/notargets/gomesh/multiblock"
	"gonum.org/v1/gonum/spatial/r3"
)

/*
Cylinder is a solid cylinder of radius Radius standing on the xy plane, meshed as a core of four blocks inside a
ring of eight. Ratio sizes the core relative to the square inscribed in the circle. ND divides each core block side,
NS the ring, NZ the height.
Boundary groups: bottom face 0, top face 5, the wall quarters 1-4; the bottom rim arcs are edges 0-3, the top ones
4-7 and the wall seams 8-11; the rim points at 0, 90, 180 and 270 degrees are nodes 0-3 at the bottom and 4-7 on top.
*/
type Cylinder struct {
	Radius, Height float64
	Ratio          float64
	ND, NS, NZ     int
	GR, GZ         float64
	BR, BZ         bool
}

func NewCylinder(radius, height float64, nd, ns, nz int) *Cylinder {
	return &Cylinder{Radius: radius, Height: height, Ratio: 0.5, ND: nd, NS: ns, NZ: nz, GR: 1, GZ: 1}
}

var cylinderBlocks = [12][8]int{
	{0, 1, 4, 3, 9, 10, 13, 12},
	{1, 2, 5, 4, 10, 11, 14, 13},
	{3, 4, 7, 6, 12, 13, 16, 15},
	{4, 5, 8, 7, 13, 14, 17, 16},
	{0, 18, 19, 1, 9, 26, 27, 10},
	{1, 19, 20, 2, 10, 27, 28, 11},
	{2, 20, 21, 5, 11, 28, 29, 14},
	{5, 21, 22, 8, 14, 29, 30, 17},
	{8, 22, 23, 7, 17, 30, 31, 16},
	{7, 23, 24, 6, 16, 31, 32, 15},
	{6, 24, 25, 3, 15, 32, 33, 12},
	{3, 25, 18, 0, 12, 33, 26, 9},
}

// wall quarter of each ring block's outer face
var cylinderWallID = [8]int{3, 4, 4, 1, 1, 2, 2, 3}

// ring block and edge groups of each wall face, counter clockwise from 0 degrees
var cylinderWall = [8]struct {
	block int
	ids   [4]int
}{
	{7, [4]int{0, -1, 4, 8}},
	{8, [4]int{0, 9, 4, -1}},
	{9, [4]int{1, -1, 5, 9}},
	{10, [4]int{1, 10, 5, -1}},
	{11, [4]int{2, -1, 6, 10}},
	{4, [4]int{2, 11, 6, -1}},
	{5, [4]int{3, -1, 7, 11}},
	{6, [4]int{3, 8, 7, -1}},
}

// rim nodes tagged at 0, 90, 180 and 270 degrees, bottom then top
var cylinderRimID = [8]int{21, 23, 25, 19, 29, 31, 33, 27}

func (cy *Cylinder) Skeleton() (s *multiblock.Skeleton, err error) {
	if !(cy.Radius > 0 && cy.Height > 0) {
		return nil, fmt.Errorf("cylinder radius and height must be positive, have %g and %g", cy.Radius, cy.Height)
	}
	var (
		nd, ns, nz = atLeast(cy.ND, 1), atLeast(cy.NS, 1), atLeast(cy.NZ, 1)
		gr, gz     = unset(cy.GR, 1), unset(cy.GZ, 1)
		br, bz     = cy.BR && ns > 1, cy.BZ && nz > 1
		b          = cy.Radius * math.Sqrt2 / 2
		a          = clamp(unset(cy.Ratio, 0.5), 0.001, 0.999) * b
	)
	s = multiblock.NewSkeleton()
	for _, z := range []float64{0, cy.Height} {
		for j := -1; j <= 1; j++ {
			for i := -1; i <= 1; i++ {
				s.AddNode(r3.Vec{X: a * float64(i), Y: a * float64(j), Z: z}, multiblock.NodeVertex)
			}
		}
	}
	for _, z := range []float64{0, cy.Height} {
		for k := 0; k < 8; k++ {
			rot := r3.NewRotation(-0.75*math.Pi+float64(k)*math.Pi/4, r3.Vec{Z: 1})
			p := rot.Rotate(r3.Vec{X: cy.Radius})
			p.Z = z
			s.AddNode(p, multiblock.NodeVertex)
		}
	}

	specs := make([]blockSpec, len(cylinderBlocks))
	for i, nodes := range cylinderBlocks {
		if i < 4 {
			specs[i] = blockSpec{nodes, [3]int{nd, nd, nz}, [3]float64{1, 1, gz}, [3]bool{false, false, bz}}
		} else {
			specs[i] = blockSpec{nodes, [3]int{ns, nd, nz}, [3]float64{gr, 1, gz}, [3]bool{br, false, bz}}
		}
	}
	if err = addBlocks(s, specs); err != nil {
		return nil, err
	}
	if err = s.BuildTopology(); err != nil {
		return nil, err
	}

	for i := range s.Blocks {
		ids := [6]int{-1, -1, -1, -1, 0, 5}
		if i >= 4 {
			ids[1] = cylinderWallID[i-4]
		}
		if err = s.SetBlockFaceID(i, ids); err != nil {
			return nil, err
		}
	}
	for _, w := range cylinderWall {
		var f int
		if f, err = s.BlockFace(w.block, 1); err != nil {
			return nil, err
		}
		if err = s.SetFaceEdgeID(f, w.ids); err != nil {
			return nil, err
		}
		for _, le := range []int{0, 2} {
			var e int
			if e, err = s.FaceEdge(f, le); err != nil {
				return nil, err
			}
			if err = s.SetEdgeZArc(e, zWinding(s, e)); err != nil {
				return nil, err
			}
		}
	}
	for id, n := range cylinderRimID {
		if err = s.SetNodeID(n, id); err != nil {
			return nil, err
		}
	}
	if err = s.UpdateMB(); err != nil {
		return nil, err
	}
	return
}

// zWinding returns the winding of the short arc about the z axis from the first to the second node of e
func zWinding(s *multiblock.Skeleton, e int) int {
	var (
		E    = s.Edges[e]
		a, b = s.Nodes[E.N[0]].X, s.Nodes[E.N[1]].X
	)
	if r3.Cross(a, b).Z < 0 {
		return -1
	}
	return 1
}
