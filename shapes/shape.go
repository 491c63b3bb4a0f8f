package shapes

import (
	"github.com/notargets/gomesh/mesh"
	"github.com/notargets/gomesh/multiblock"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// Shape assembles the block skeleton of a primitive, topology built and boundary groups assigned
type Shape interface {
	Skeleton() (*multiblock.Skeleton, error)
}

// Build meshes a primitive with elements of the given kind
func Build(sh Shape, kind mesh.ElementType, log *zap.Logger) (res *multiblock.Result, err error) {
	var s *multiblock.Skeleton
	if s, err = sh.Skeleton(); err != nil {
		return
	}
	s.SetLogger(log)
	return s.BuildMesh(kind)
}

// blockSpec is one row of a shape's block table
type blockSpec struct {
	nodes  [8]int
	n      [3]int
	g      [3]float64
	mirror [3]bool
}

func addNodes(s *multiblock.Skeleton, pts []r3.Vec) {
	for _, p := range pts {
		s.AddNode(p, multiblock.NodeVertex)
	}
}

func addBlocks(s *multiblock.Skeleton, specs []blockSpec) (err error) {
	var b int
	for _, bs := range specs {
		if b, err = s.AddBlock(bs.nodes, bs.n[0], bs.n[1], bs.n[2]); err != nil {
			return
		}
		if err = s.SetBlockZoning(b, bs.g[0], bs.g[1], bs.g[2], bs.mirror[0], bs.mirror[1], bs.mirror[2]); err != nil {
			return
		}
	}
	return
}

// flip returns the bias seen from the other end of an axis
func flip(g float64, mirrored bool) float64 {
	if mirrored {
		return g
	}
	return 1 / g
}

func atLeast(n, min int) int {
	if n < min {
		return min
	}
	return n
}

// unset replaces a zero parameter, as left by a partial input file, with its default
func unset(x, def float64) float64 {
	if x == 0 {
		return def
	}
	return x
}
