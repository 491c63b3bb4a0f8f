package mesh

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// twoHexMesh builds two unit cubes stacked in x, sharing the face at x=1
func twoHexMesh(t *testing.T) *Mesh {
	m := NewMesh(12)
	for j := 0; j < 2; j++ {
		for k := 0; k < 2; k++ {
			for i := 0; i < 3; i++ {
				// vertex (i,j,k) -> i + 3*(j + 2*k)
				m.Vertices[i+3*(j+2*k)] = r3.Vec{X: float64(i), Y: float64(j), Z: float64(k)}
			}
		}
	}
	v := func(i, j, k int) int { return i + 3*(j+2*k) }
	for e := 0; e < 2; e++ {
		require.NoError(t, m.AddElement(Hex8, 7, []int{
			v(e, 0, 0), v(e+1, 0, 0), v(e+1, 1, 0), v(e, 1, 0),
			v(e, 0, 1), v(e+1, 0, 1), v(e+1, 1, 1), v(e, 1, 1),
		}))
	}
	require.NoError(t, m.AddBoundaryFace(Quad4, 3, 3, []int{v(0, 0, 0), v(0, 1, 0), v(0, 1, 1), v(0, 0, 1)}))
	require.NoError(t, m.AddBoundaryEdge(Line2, 1, []int{v(0, 0, 0), v(1, 0, 0)}))
	m.NodeTags[0] = 4
	return m
}

func TestMeshConnectivity(t *testing.T) {
	m := twoHexMesh(t)
	m.BuildConnectivity()

	// 6 faces each, one shared
	assert.Equal(t, 11, m.NumFaces)
	assert.Equal(t, 10, m.BoundaryFaceCount())
	// Local face 1 of element 0 is {1,2,6,5}, local face 3 of element 1 is {3,0,4,7}
	assert.Equal(t, 1, m.EToE[0][1])
	assert.Equal(t, 0, m.EToE[1][3])
	assert.Equal(t, m.EToF[0][1], m.EToF[1][3])
	for lf := 0; lf < 6; lf++ {
		if lf != 1 {
			assert.Equal(t, -1, m.EToE[0][lf])
		}
	}

	var buf bytes.Buffer
	m.PrintStatistics(&buf)
	assert.Contains(t, buf.String(), "Elements: 2")
	assert.Contains(t, buf.String(), "Hex8: 2")
	assert.Contains(t, buf.String(), "Boundary faces: 10")
	assert.Contains(t, buf.String(), "Node valence: min 1, max 2")
	assert.Contains(t, buf.String(), "Orphan nodes: 0")
	assert.Contains(t, buf.String(), "Face adjacent element pairs: 1")
	t.Logf("\n%s", buf.String())
}

func TestMeshValidation(t *testing.T) {
	m := NewMesh(4)
	assert.Error(t, m.AddElement(Hex8, 0, []int{0, 1, 2, 3}))
	assert.Error(t, m.AddElement(Quad4, 0, []int{0, 1, 2, 3}))
	assert.Error(t, m.AddBoundaryFace(Quad4, 0, 0, []int{0, 1, 2, 4}))
	assert.Error(t, m.AddBoundaryEdge(Quad4, 0, []int{0, 1, 2, 3}))
	assert.NoError(t, m.AddBoundaryEdge(Line3, 0, []int{0, 1, 2}))
}

func TestMeshIncidence(t *testing.T) {
	m := twoHexMesh(t)
	valence := m.NodeValence()
	// The 4 vertices of the shared face belong to both elements
	v := func(i, j, k int) int { return i + 3*(j+2*k) }
	for j := 0; j < 2; j++ {
		for k := 0; k < 2; k++ {
			assert.Equal(t, 2, valence[v(1, j, k)])
			assert.Equal(t, 1, valence[v(0, j, k)])
			assert.Equal(t, 1, valence[v(2, j, k)])
		}
	}
	assert.Empty(t, m.OrphanNodes())

	counts := m.SharedCornerCounts(4)
	assert.Equal(t, map[[2]int]int{{0, 1}: 4, {1, 0}: 4}, counts)
	assert.Empty(t, m.SharedCornerCounts(5))

	lo, hi := m.BoundingBox()
	assert.Equal(t, r3.Vec{}, lo)
	assert.Equal(t, r3.Vec{X: 2, Y: 1, Z: 1}, hi)
	c := m.Centroid()
	assert.InDelta(t, 1., c.X, 1.e-12)
	assert.InDelta(t, 0.5, c.Y, 1.e-12)
	assert.InDelta(t, 0.5, c.Z, 1.e-12)

	{ // A vertex nobody uses is reported
		m2 := NewMesh(9)
		copy(m2.Vertices, m.Vertices[:9])
		require.NoError(t, m2.AddElement(Hex8, 0, []int{0, 1, 4, 3, 6, 7, 8, 6}))
		assert.Equal(t, []int{2, 5}, m2.OrphanNodes())
		var buf bytes.Buffer
		m2.PrintStatistics(&buf)
		assert.Contains(t, buf.String(), "Node valence: min 0, max 1")
		assert.Contains(t, buf.String(), "Orphan nodes: 2")
		assert.Contains(t, buf.String(), "Face adjacent element pairs: 0")
	}
}

func TestGmshOrder(t *testing.T) {
	for _, et := range []ElementType{Hex8, Hex20, Hex27, Quad9} {
		nodes := make([]int, et.NumNodes())
		for i := range nodes {
			nodes[i] = 100 + i
		}
		assert.Equal(t, nodes, fromGmshOrder(et, toGmshOrder(et, nodes)))
	}
	{ // Gmsh position 9 is the edge between corners 0 and 3, local edge 11
		nodes := make([]int, 20)
		for i := range nodes {
			nodes[i] = i
		}
		g := toGmshOrder(Hex20, nodes)
		assert.Equal(t, 11, g[9])
		assert.Equal(t, 16, g[10])
	}
}

func TestGmshRoundTrip(t *testing.T) {
	m := twoHexMesh(t)
	m.Vertices[5].X = 2.0000000000000004
	var buf bytes.Buffer
	require.NoError(t, m.WriteGmsh22(&buf))
	text := buf.String()
	assert.True(t, strings.HasPrefix(text, "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n"))
	assert.Contains(t, text, "1 5 2 7 7 1 2 5 4 7 8 11 10\n")

	m2, err := ReadGmsh22(strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(t, m.Vertices, m2.Vertices)
	assert.Equal(t, m.NodeTags, m2.NodeTags)
	assert.Equal(t, m.EtoV, m2.EtoV)
	assert.Equal(t, m.ElementTypes, m2.ElementTypes)
	assert.Equal(t, m.ElementTags, m2.ElementTags)
	assert.Equal(t, m.BoundaryFaces, m2.BoundaryFaces)
	assert.Equal(t, m.BoundaryEdges, m2.BoundaryEdges)
	assert.Equal(t, 11, m2.NumFaces)

	{ // Quadratic permutation survives the round trip
		q := NewMesh(27)
		nodes := make([]int, 27)
		for i := range nodes {
			nodes[i] = 26 - i
		}
		require.NoError(t, q.AddElement(Hex27, 2, nodes))
		buf.Reset()
		require.NoError(t, q.WriteGmsh22(&buf))
		q2, err := ReadGmsh22(&buf)
		require.NoError(t, err)
		assert.Equal(t, [][]int{nodes}, q2.EtoV)
	}
}

func TestGmshReaderErrors(t *testing.T) {
	_, err := ReadGmsh22(strings.NewReader("$Nodes\n1\n1 0 0 0\n$EndNodes\n"))
	assert.Error(t, err)

	_, err = ReadGmsh22(strings.NewReader("$MeshFormat\n4.1 0 8\n$EndMeshFormat\n"))
	assert.Error(t, err)

	_, err = ReadGmsh22(strings.NewReader("$MeshFormat\n2.2 0 8\n$EndMeshFormat\n" +
		"$Nodes\n2\n1 0 0 0\n2 1 0 0\n$EndNodes\n$Elements\n1\n1 1 2 0 0 1 3\n$EndElements\n"))
	assert.Error(t, err)

	m, err := ReadGmsh22(strings.NewReader("$MeshFormat\n2.2 0 8\n$EndMeshFormat\n" +
		"$PhysicalNames\n1\n1 1 \"wall\"\n$EndPhysicalNames\n" +
		"$Nodes\n2\n10 0 0 0\n20 1 0 0\n$EndNodes\n$Elements\n2\n1 15 1 0 10\n2 1 2 5 5 20 10\n$EndElements\n"))
	require.NoError(t, err)
	require.Len(t, m.BoundaryEdges, 1)
	assert.Equal(t, []int{1, 0}, m.BoundaryEdges[0].Nodes)
	assert.Equal(t, 5, m.BoundaryEdges[0].GID)
	assert.Equal(t, []int{-1, -1}, m.NodeTags)
}

func TestParseElementType(t *testing.T) {
	et, err := ParseElementType("hex20")
	require.NoError(t, err)
	assert.Equal(t, Hex20, et)
	et, err = ParseElementType("Quad9")
	require.NoError(t, err)
	assert.Equal(t, Quad9, et)
	_, err = ParseElementType("tet4")
	assert.Error(t, err)
}
