package multiblock

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

var skewedCorners = [8]r3.Vec{
	{X: 0, Y: 0, Z: 0}, {X: 2, Y: 0.1, Z: 0}, {X: 2.2, Y: 1.5, Z: 0.3}, {X: -0.1, Y: 1, Z: 0},
	{X: 0.1, Y: 0, Z: 1}, {X: 2, Y: 0, Z: 1.2}, {X: 2, Y: 1.3, Z: 1.1}, {X: 0, Y: 1, Z: 1},
}

func skewedSkeleton(t *testing.T) *Skeleton {
	s := NewSkeleton()
	var n [8]int
	for i, x := range skewedCorners {
		n[i] = s.AddNode(x, NodeVertex)
	}
	_, err := s.AddBlock(n, 3, 3, 3)
	require.NoError(t, err)
	require.NoError(t, s.BuildTopology())
	return s
}

func trilinear(c [8]r3.Vec, r, s, t float64) (p r3.Vec) {
	N := [8]float64{
		(1 - r) * (1 - s) * (1 - t), r * (1 - s) * (1 - t), r * s * (1 - t), (1 - r) * s * (1 - t),
		(1 - r) * (1 - s) * t, r * (1 - s) * t, r * s * t, (1 - r) * s * t,
	}
	for i := range c {
		p = r3.Add(p, r3.Scale(N[i], c[i]))
	}
	return
}

func assertVecInDelta(t *testing.T, expected, actual r3.Vec, delta float64, msgAndArgs ...interface{}) {
	assert.InDelta(t, 0, r3.Norm(r3.Sub(expected, actual)), delta, msgAndArgs...)
}

func TestEdgePositionLine(t *testing.T) {
	s := skewedSkeleton(t)
	for e := range s.Edges {
		E := &s.Edges[e]
		a, b := s.Nodes[E.N[0]].X, s.Nodes[E.N[1]].X
		assert.Equal(t, a, s.EdgePosition(e, 0))
		assert.Equal(t, b, s.EdgePosition(e, 1))
		assertVecInDelta(t, r3.Add(r3.Scale(0.75, a), r3.Scale(0.25, b)), s.EdgePosition(e, 0.25), 1.e-15)
	}
}

func TestEdgePositionArc3P(t *testing.T) {
	s := boxSkeleton(t, 2, 2, 2)
	center := s.AddNode(r3.Vec{X: 0.5, Y: -0.5}, NodeShape)
	e := s.FindEdge(0, 1)
	require.GreaterOrEqual(t, e, 0)
	var (
		E      = &s.Edges[e]
		c      = s.Nodes[center].X
		R      = math.Sqrt(0.5)
		a, b   = s.Nodes[E.N[0]].X, s.Nodes[E.N[1]].X
		expect = map[int]r3.Vec{
			1:  {X: 0.5, Y: -0.5 + R},
			-1: {X: 0.5, Y: -0.5 - R},
		}
	)
	for _, winding := range []int{1, -1} {
		require.NoError(t, s.SetEdgeArc3P(e, center, winding))
		assert.Equal(t, CurveArc3P, s.Edges[e].Curve.Kind())
		assert.Equal(t, a, s.EdgePosition(e, 0))
		assert.Equal(t, b, s.EdgePosition(e, 1))
		mid := s.EdgePosition(e, 0.5)
		assertVecInDelta(t, expect[winding], mid, 1.e-14, "winding %d", winding)
		for _, r := range []float64{0.1, 0.3, 0.9} {
			assert.InDelta(t, R, r3.Norm(r3.Sub(s.EdgePosition(e, r), c)), 1.e-14)
		}
	}
}

func TestEdgePositionZArc(t *testing.T) {
	s := annulusSkeleton(t, 2, 2, 2)
	e := s.FindEdge(1, 2)
	require.GreaterOrEqual(t, e, 0)
	E := &s.Edges[e]
	assert.Equal(t, CurveZArc, E.Curve.Kind())
	assert.Equal(t, s.Nodes[E.N[0]].X, s.EdgePosition(e, 0))
	assert.Equal(t, s.Nodes[E.N[1]].X, s.EdgePosition(e, 1))
	mid := s.EdgePosition(e, 0.5)
	assertVecInDelta(t, r3.Vec{X: math.Sqrt2, Y: math.Sqrt2}, mid, 1.e-14)

	// The long way round passes through the third quadrant
	require.NoError(t, s.SetEdgeZArc(e, -E.Curve.(ZArc).Winding))
	mid = s.EdgePosition(e, 0.5)
	assertVecInDelta(t, r3.Vec{X: -math.Sqrt2, Y: -math.Sqrt2}, mid, 1.e-14)
}

func TestTransfiniteExactness(t *testing.T) {
	s := skewedSkeleton(t)
	c := s.blockCorners(&s.Blocks[0])
	for i := 0; i < 8; i++ {
		u, v, w := hexNodeOffsets[i][0]/2, hexNodeOffsets[i][1]/2, hexNodeOffsets[i][2]/2
		p, err := s.BlockPosition(0, float64(u), float64(v), float64(w))
		require.NoError(t, err)
		assert.Equal(t, c[i], p)
	}
	// Straight edges make every face bilinear and the block blend trilinear
	for _, uvw := range [][3]float64{{0.5, 0.5, 0.5}, {0.1, 0.7, 0.3}, {0.9, 0.2, 0.6}, {0, 0.4, 0.8}} {
		p, err := s.BlockPosition(0, uvw[0], uvw[1], uvw[2])
		require.NoError(t, err)
		assertVecInDelta(t, trilinear(c, uvw[0], uvw[1], uvw[2]), p, 1.e-13, "%v", uvw)
	}
	for f := range s.Faces {
		F := &s.Faces[f]
		fc := s.faceCorners(F)
		for i := 0; i < 4; i++ {
			p, err := s.FacePosition(f, float64(squareX[i]), float64(squareY[i]))
			require.NoError(t, err)
			assert.Equal(t, fc[i], p)
		}
	}
	_, err := s.BlockPosition(1, 0.5, 0.5, 0.5)
	assert.True(t, errors.Is(err, ErrConfig))
	_, err = s.FacePosition(-1, 0.5, 0.5)
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestBlockPositionRotatedNeighbor(t *testing.T) {
	// The block frame of the turned block maps onto the shared face correctly
	s := twoBlockSkeleton(t, true, [3]int{2, 3, 4}, [3]int{2, 4, 3})
	for _, uvw := range [][3]float64{{0.5, 0.5, 0.5}, {0.25, 0.1, 0.8}} {
		p, err := s.BlockPosition(1, uvw[0], uvw[1], uvw[2])
		require.NoError(t, err)
		// local x -> x, local y -> z, local z -> -y
		assertVecInDelta(t, r3.Vec{X: 1 + uvw[0], Y: 1 - uvw[2], Z: uvw[1]}, p, 1.e-14)
	}
}
