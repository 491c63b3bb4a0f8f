package shapes

import (
	"fmt"

	"github.com/notargets/gomesh/multiblock"
	"gonum.org/v1/gonum/spatial/r3"
)

/*
Box is a brick of the given width (x), height (y) and depth (z), its bottom face centered on the origin.
A regular box is a single block. A butterfly box is a core block of relative size Ratio wrapped by six blocks
with NS divisions across, which keeps elements square near edges and corners.
Boundary groups: sides -y,+x,+y,-x are faces 0-3, bottom 4 and top 5; the 12 box edges and 8 corners are numbered
in hexahedron order.
*/
type Box struct {
	Width, Height, Depth float64
	NX, NY, NZ           int
	GX, GY, GZ           float64
	BX, BY, BZ           bool

	Butterfly bool
	Ratio     float64
	NS        int
	GR        float64
	BR        bool
}

func NewBox(width, height, depth float64, nx, ny, nz int) *Box {
	return &Box{
		Width: width, Height: height, Depth: depth,
		NX: nx, NY: ny, NZ: nz,
		GX: 1, GY: 1, GZ: 1,
		Ratio: 0.5, NS: 1, GR: 1,
	}
}

func (bx Box) sanitized() Box {
	bx.NX, bx.NY, bx.NZ, bx.NS = atLeast(bx.NX, 1), atLeast(bx.NY, 1), atLeast(bx.NZ, 1), atLeast(bx.NS, 1)
	bx.GX, bx.GY, bx.GZ, bx.GR = unset(bx.GX, 1), unset(bx.GY, 1), unset(bx.GZ, 1), unset(bx.GR, 1)
	bx.Ratio = clamp(unset(bx.Ratio, 0.5), 0.001, 0.999)
	bx.BX = bx.BX && bx.NX > 1
	bx.BY = bx.BY && bx.NY > 1
	bx.BZ = bx.BZ && bx.NZ > 1
	bx.BR = bx.BR && bx.NS > 1
	return bx
}

func (bx *Box) Skeleton() (s *multiblock.Skeleton, err error) {
	if !(bx.Width > 0 && bx.Height > 0 && bx.Depth > 0) {
		return nil, fmt.Errorf("box dimensions must be positive, have %g x %g x %g", bx.Width, bx.Height, bx.Depth)
	}
	p := bx.sanitized()
	s = multiblock.NewSkeleton()
	if p.Butterfly {
		err = p.butterfly(s)
	} else {
		err = p.regular(s)
	}
	if err != nil {
		return nil, err
	}
	return
}

// corners returns the 8 corners of the box section from z0 to z1 scaled by r in x and y
func (bx Box) corners(r, z0, z1 float64) []r3.Vec {
	w, h := bx.Width*r, bx.Height*r
	return []r3.Vec{
		{X: -w, Y: -h, Z: z0}, {X: w, Y: -h, Z: z0}, {X: w, Y: h, Z: z0}, {X: -w, Y: h, Z: z0},
		{X: -w, Y: -h, Z: z1}, {X: w, Y: -h, Z: z1}, {X: w, Y: h, Z: z1}, {X: -w, Y: h, Z: z1},
	}
}

func (bx Box) regular(s *multiblock.Skeleton) (err error) {
	addNodes(s, bx.corners(0.5, 0, bx.Depth))
	err = addBlocks(s, []blockSpec{{
		nodes:  [8]int{0, 1, 2, 3, 4, 5, 6, 7},
		n:      [3]int{bx.NX, bx.NY, bx.NZ},
		g:      [3]float64{bx.GX, bx.GY, bx.GZ},
		mirror: [3]bool{bx.BX, bx.BY, bx.BZ},
	}})
	if err != nil {
		return
	}
	if err = s.BuildTopology(); err != nil {
		return
	}
	if err = s.SetBlockFaceID(0, [6]int{0, 1, 2, 3, 4, 5}); err != nil {
		return
	}
	for i, e := range s.Blocks[0].Edge {
		if err = s.SetEdgeID(e, i); err != nil {
			return
		}
	}
	return tagCorners(s, 8)
}

func (bx Box) butterfly(s *multiblock.Skeleton) (err error) {
	d1 := bx.Depth * (1 - bx.Ratio) * 0.5
	addNodes(s, bx.corners(0.5, 0, bx.Depth))
	addNodes(s, bx.corners(0.5*bx.Ratio, d1, bx.Depth-d1))

	var (
		nx, ny, nz, ns = bx.NX, bx.NY, bx.NZ, bx.NS
		gx, gy, gz, gr = bx.GX, bx.GY, bx.GZ, bx.GR
		mx, my, mz, mr = bx.BX, bx.BY, bx.BZ, bx.BR
	)
	err = addBlocks(s, []blockSpec{
		{[8]int{8, 9, 10, 11, 12, 13, 14, 15}, [3]int{nx, ny, nz}, [3]float64{gx, gy, gz}, [3]bool{mx, my, mz}},
		{[8]int{8, 0, 1, 9, 12, 4, 5, 13}, [3]int{ns, nx, nz}, [3]float64{gr, gx, gz}, [3]bool{mr, mx, mz}},
		{[8]int{9, 1, 2, 10, 13, 5, 6, 14}, [3]int{ns, ny, nz}, [3]float64{gr, gy, gz}, [3]bool{mr, my, mz}},
		{[8]int{10, 2, 3, 11, 14, 6, 7, 15}, [3]int{ns, nx, nz}, [3]float64{gr, flip(gx, mx), gz}, [3]bool{mr, mx, mz}},
		{[8]int{11, 3, 0, 8, 15, 7, 4, 12}, [3]int{ns, ny, nz}, [3]float64{gr, flip(gy, my), gz}, [3]bool{mr, my, mz}},
		{[8]int{11, 10, 9, 8, 3, 2, 1, 0}, [3]int{nx, ny, ns}, [3]float64{gx, flip(gy, my), gr}, [3]bool{mx, my, mr}},
		{[8]int{12, 13, 14, 15, 4, 5, 6, 7}, [3]int{nx, ny, ns}, [3]float64{gx, gy, gr}, [3]bool{mx, my, mr}},
	})
	if err != nil {
		return
	}
	if err = s.BuildTopology(); err != nil {
		return
	}

	// the outer face of each shell block
	outer := [6][2]int{{1, 1}, {2, 1}, {3, 1}, {4, 1}, {5, 5}, {6, 5}}
	var faces [6]int
	for id, bf := range outer {
		if faces[id], err = s.BlockFace(bf[0], bf[1]); err != nil {
			return
		}
		s.Faces[faces[id]].GID = id
	}
	// bottom, top and vertical edges of the four sides
	for side := 0; side < 4; side++ {
		for i, le := range []int{0, 2, 3} {
			var e int
			if e, err = s.FaceEdge(faces[side], le); err != nil {
				return
			}
			if err = s.SetEdgeID(e, 4*i+side); err != nil {
				return
			}
		}
	}
	return tagCorners(s, 8)
}

// tagCorners gives the first n skeleton nodes their own index as boundary group
func tagCorners(s *multiblock.Skeleton, n int) (err error) {
	for i := 0; i < n; i++ {
		if err = s.SetNodeID(i, i); err != nil {
			return
		}
	}
	return
}

func clamp(x, lo, hi float64) float64 {
	switch {
	case x < lo:
		return lo
	case x > hi:
		return hi
	}
	return x
}
