package shapes

import (
	"fmt"
	"math"

	"github.com/notargets/gomesh/multiblock"
	"gonum.org/v1/gonum/spatial/r3"
)

/*
SphereShell is the region between two concentric spheres about the origin, meshed as six blocks projected from
the faces of a cube. ND divides each cube face edge, NS the wall, with radial bias GR.
Boundary groups: the inner sphere patches are faces 0-5, the outer ones 6-11, ordered -y,+x,+y,-x,-z,+z.
The 12 outer arcs are edges 0-11 and the inner arcs 12-23, the outer cube corners nodes 0-7.
*/
type SphereShell struct {
	InnerRadius, OuterRadius float64
	ND, NS                   int
	GR                       float64
	BR                       bool
}

func NewSphereShell(r0, r1 float64, nd, ns int) *SphereShell {
	return &SphereShell{InnerRadius: r0, OuterRadius: r1, ND: nd, NS: ns, GR: 1}
}

// shellPatches lists the cube corners (ix,iy,iz) of each patch, counter clockwise seen from outside
var shellPatches = [6][4][3]int{
	{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
	{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}},
	{{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}},
	{{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
	{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}},
	{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}},
}

func cubeCorner(c [3]int) int { return c[0] + 2*c[1] + 4*c[2] }

func (sh *SphereShell) Skeleton() (s *multiblock.Skeleton, err error) {
	r0, r1 := sh.InnerRadius, sh.OuterRadius
	if !(r0 > 0 && r1 > r0) {
		return nil, fmt.Errorf("sphere shell needs 0 < inner radius < outer radius, have %g and %g", r0, r1)
	}
	var (
		nd, ns = atLeast(sh.ND, 1), atLeast(sh.NS, 1)
		br     = sh.BR && ns > 1
	)
	s = multiblock.NewSkeleton()
	for _, r := range []float64{r0, r1} {
		a := r / math.Sqrt(3)
		for c := 0; c < 8; c++ {
			s.AddNode(r3.Vec{
				X: a * float64(2*(c&1)-1),
				Y: a * float64(2*(c>>1&1)-1),
				Z: a * float64(2*(c>>2&1)-1),
			}, multiblock.NodeVertex)
		}
	}
	center := s.AddNode(r3.Vec{}, multiblock.NodeShape)

	specs := make([]blockSpec, len(shellPatches))
	for b, patch := range shellPatches {
		var nodes [8]int
		for i, c := range patch {
			nodes[i] = cubeCorner(c)
			nodes[4+i] = 8 + cubeCorner(c)
		}
		specs[b] = blockSpec{nodes: nodes, n: [3]int{nd, nd, ns}, g: [3]float64{1, 1, unset(sh.GR, 1)}, mirror: [3]bool{false, false, br}}
	}
	if err = addBlocks(s, specs); err != nil {
		return nil, err
	}
	if err = s.BuildTopology(); err != nil {
		return nil, err
	}
	for b := range s.Blocks {
		if err = s.SetBlockFaceID(b, [6]int{-1, -1, -1, -1, b, 6 + b}); err != nil {
			return nil, err
		}
	}
	var outer, inner = 0, 12
	for e, E := range s.Edges {
		var gid int
		switch n0, n1 := E.N[0] >= 8, E.N[1] >= 8; {
		case n0 && n1:
			gid, outer = outer, outer+1
		case !n0 && !n1:
			gid, inner = inner, inner+1
		default:
			continue
		}
		if err = s.SetEdgeArc3P(e, center, 1); err != nil {
			return nil, err
		}
		if err = s.SetEdgeID(e, gid); err != nil {
			return nil, err
		}
	}
	for c := 0; c < 8; c++ {
		if err = s.SetNodeID(8+c, c); err != nil {
			return nil, err
		}
	}
	if err = s.UpdateMB(); err != nil {
		return nil, err
	}
	return
}
