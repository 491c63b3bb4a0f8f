package shapes

import (
	"fmt"
	"math"
	"testing"

	"github.com/notargets/gomesh/mesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gonum.org/v1/gonum/spatial/r3"
)

func checkMesh(t *testing.T, m *mesh.Mesh) {
	assert.Empty(t, m.OrphanNodes())
	for k, nodes := range m.EtoV {
		var (
			p0 = m.Vertices[nodes[0]]
			a  = r3.Sub(m.Vertices[nodes[1]], p0)
			b  = r3.Sub(m.Vertices[nodes[3]], p0)
			c  = r3.Sub(m.Vertices[nodes[4]], p0)
		)
		assert.Greater(t, r3.Dot(r3.Cross(a, b), c), 0., "element %d", k)
	}
	seen := make(map[string]int, m.NumVertices)
	for i, x := range m.Vertices {
		key := fmt.Sprintf("%.9f %.9f %.9f", x.X, x.Y, x.Z)
		if j, ok := seen[key]; ok {
			t.Errorf("nodes %d and %d coincide at %v", j, i, x)
		}
		seen[key] = i
	}
}

func facesPerGroup(m *mesh.Mesh) (count map[int]int) {
	count = make(map[int]int)
	for _, bf := range m.BoundaryFaces {
		count[bf.GID]++
	}
	return
}

func TestBox(t *testing.T) {
	for _, kind := range []mesh.ElementType{mesh.Hex8, mesh.Hex27} {
		bx := NewBox(2, 1, 3, 4, 2, 6)
		bx.GZ = 1.3
		res, err := Build(bx, kind, zaptest.NewLogger(t))
		require.NoError(t, err)
		m := res.Mesh
		checkMesh(t, m)

		step := 1
		if kind == mesh.Hex27 {
			step = 2
		}
		assert.Equal(t, (4*step+1)*(2*step+1)*(6*step+1), m.NumVertices)
		assert.Equal(t, 48, m.NumElements)
		assert.Equal(t, map[int]int{0: 24, 1: 12, 2: 24, 3: 12, 4: 8, 5: 8}, facesPerGroup(m))
		assert.Len(t, m.BoundaryEdges, 48)

		lo, hi := m.BoundingBox()
		assert.InDeltaSlice(t, []float64{-1, -0.5, 0}, []float64{lo.X, lo.Y, lo.Z}, 1.e-14)
		assert.InDeltaSlice(t, []float64{1, 0.5, 3}, []float64{hi.X, hi.Y, hi.Z}, 1.e-14)

		var tagged int
		for i, id := range m.NodeTags {
			if id < 0 {
				continue
			}
			tagged++
			x := m.Vertices[i]
			assert.InDelta(t, 1, math.Abs(x.X), 1.e-14)
			assert.InDelta(t, 0.5, math.Abs(x.Y), 1.e-14)
		}
		assert.Equal(t, 8, tagged)
	}
}

func TestButterflyBox(t *testing.T) {
	bx := NewBox(1, 1, 1, 2, 2, 2)
	bx.Butterfly = true
	bx.NS = 2
	bx.GX, bx.GR = 1.5, 0.8
	for _, kind := range []mesh.ElementType{mesh.Hex8, mesh.Hex20} {
		res, err := Build(bx, kind, nil)
		require.NoError(t, err)
		m := res.Mesh
		checkMesh(t, m)

		assert.Equal(t, 8+6*8, m.NumElements)
		assert.Equal(t, 24, m.BoundaryFaceCount())
		assert.Equal(t, map[int]int{0: 4, 1: 4, 2: 4, 3: 4, 4: 4, 5: 4}, facesPerGroup(m))
		assert.Len(t, m.BoundaryEdges, 24)

		lo, hi := m.BoundingBox()
		assert.InDeltaSlice(t, []float64{-0.5, -0.5, 0}, []float64{lo.X, lo.Y, lo.Z}, 1.e-14)
		assert.InDeltaSlice(t, []float64{0.5, 0.5, 1}, []float64{hi.X, hi.Y, hi.Z}, 1.e-14)
	}
}

func TestSphereShell(t *testing.T) {
	const r0, r1 = 1., 2.
	for _, kind := range []mesh.ElementType{mesh.Hex8, mesh.Hex27} {
		sh := NewSphereShell(r0, r1, 3, 2)
		sh.GR = 1.2
		res, err := Build(sh, kind, nil)
		require.NoError(t, err)
		m := res.Mesh
		checkMesh(t, m)

		step := 1
		if kind == mesh.Hex27 {
			step = 2
		}
		nd, ns := 3*step, 2*step
		assert.Equal(t, (ns+1)*(6*nd*nd+2), m.NumVertices)
		assert.Equal(t, 6*9*2, m.NumElements)
		assert.Equal(t, 2*6*9, m.BoundaryFaceCount())

		for gid, count := range facesPerGroup(m) {
			assert.Equal(t, 9, count, "group %d", gid)
		}
		for _, bf := range m.BoundaryFaces {
			r := r0
			if bf.GID >= 6 {
				r = r1
			}
			for _, n := range bf.Nodes {
				assert.InDelta(t, r, r3.Norm(m.Vertices[n]), 1.e-12)
			}
		}
		for _, be := range m.BoundaryEdges {
			assert.True(t, be.GID >= 0 && be.GID < 24)
		}
		assert.Len(t, m.BoundaryEdges, 24*3)
	}
}

func TestCylinder(t *testing.T) {
	const R, H = 1., 2.
	cy := NewCylinder(R, H, 2, 3, 2)
	cy.GR = 0.9
	res, err := Build(cy, mesh.Hex8, nil)
	require.NoError(t, err)
	m := res.Mesh
	checkMesh(t, m)

	assert.Equal(t, 3*(25+3*16), m.NumVertices)
	assert.Equal(t, 4*4*2+8*3*2*2, m.NumElements)
	assert.Equal(t, map[int]int{0: 64, 1: 8, 2: 8, 3: 8, 4: 8, 5: 64}, facesPerGroup(m))

	for _, bf := range m.BoundaryFaces {
		for _, n := range bf.Nodes {
			x := m.Vertices[n]
			switch bf.GID {
			case 0:
				assert.InDelta(t, 0, x.Z, 1.e-14)
			case 5:
				assert.InDelta(t, H, x.Z, 1.e-14)
			default:
				assert.InDelta(t, R, math.Hypot(x.X, x.Y), 1.e-12)
			}
		}
	}

	perEdge := make(map[int]int)
	for _, be := range m.BoundaryEdges {
		perEdge[be.GID]++
	}
	for id := 0; id < 8; id++ {
		assert.Equal(t, 4, perEdge[id], "edge group %d", id)
	}
	for id := 8; id < 12; id++ {
		assert.Equal(t, 2, perEdge[id], "edge group %d", id)
	}

	for i, id := range m.NodeTags {
		if id < 0 {
			continue
		}
		w := float64(id%4) * math.Pi / 2
		want := r3.Vec{X: R * math.Cos(w), Y: R * math.Sin(w), Z: H * float64(id/4)}
		assert.InDelta(t, 0, r3.Norm(r3.Sub(want, m.Vertices[i])), 1.e-12, "node group %d", id)
	}
}

func TestShapeErrors(t *testing.T) {
	_, err := Build(NewBox(0, 1, 1, 1, 1, 1), mesh.Hex8, nil)
	assert.Error(t, err)
	_, err = Build(NewSphereShell(2, 1, 2, 2), mesh.Hex8, nil)
	assert.Error(t, err)
	_, err = Build(NewCylinder(1, -1, 2, 2, 2), mesh.Hex8, nil)
	assert.Error(t, err)
	_, err = Build(NewBox(1, 1, 1, 1, 1, 1), mesh.Quad4, nil)
	assert.Error(t, err)
}
