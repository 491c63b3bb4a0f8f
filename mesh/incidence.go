package mesh

import (
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// NodeElementIncidence returns the [NumVertices x NumElements] incidence matrix of the volume elements
func (m *Mesh) NodeElementIncidence() *sparse.CSR {
	dok := sparse.NewDOK(m.NumVertices, max(m.NumElements, 1))
	for k, verts := range m.EtoV {
		for _, v := range verts {
			dok.Set(v, k, 1)
		}
	}
	return dok.ToCSR()
}

// NodeValence returns the number of volume elements attached to each vertex
func (m *Mesh) NodeValence() (valence []int) {
	var (
		raw = m.NodeElementIncidence().RawMatrix()
	)
	valence = make([]int, m.NumVertices)
	for i := range valence {
		valence[i] = raw.Indptr[i+1] - raw.Indptr[i]
	}
	return
}

// OrphanNodes lists the vertices not referenced by any volume element
func (m *Mesh) OrphanNodes() (orphans []int) {
	for i, v := range m.NodeValence() {
		if v == 0 {
			orphans = append(orphans, i)
		}
	}
	return
}

/*
SharedCornerCounts returns, for every pair of distinct elements sharing at least minShared corner vertices,
the number of shared corners. Computed as C^T C with C the corner incidence matrix.
*/
func (m *Mesh) SharedCornerCounts(minShared int) (counts map[[2]int]int) {
	counts = make(map[[2]int]int)
	if m.NumElements == 0 {
		return
	}
	var (
		cDOK  = sparse.NewDOK(m.NumVertices, m.NumElements)
		ctDOK = sparse.NewDOK(m.NumElements, m.NumVertices)
	)
	for k, verts := range m.EtoV {
		for _, v := range verts[:m.ElementTypes[k].NumCorners()] {
			cDOK.Set(v, k, 1)
			ctDOK.Set(k, v, 1)
		}
	}
	EtoE := sparse.NewCSR(m.NumElements, m.NumElements, nil, nil, nil)
	EtoE.Mul(ctDOK.ToCSR(), cDOK.ToCSR())
	EtoE.DoNonZero(func(i, j int, v float64) {
		if i != j && int(v) >= minShared {
			counts[[2]int{i, j}] = int(v)
		}
	})
	return
}

// coordinateMatrix packs the vertices into a [NumVertices x 3] matrix
func (m *Mesh) coordinateMatrix() *mat.Dense {
	data := make([]float64, 3*m.NumVertices)
	for i, v := range m.Vertices {
		data[3*i], data[3*i+1], data[3*i+2] = v.X, v.Y, v.Z
	}
	return mat.NewDense(m.NumVertices, 3, data)
}

// BoundingBox returns the minimum and maximum corners of the vertex cloud
func (m *Mesh) BoundingBox() (lo, hi r3.Vec) {
	if m.NumVertices == 0 {
		return
	}
	var (
		X   = m.coordinateMatrix()
		col = make([]float64, m.NumVertices)
		l   [3]float64
		h   [3]float64
	)
	for j := 0; j < 3; j++ {
		mat.Col(col, j, X)
		l[j], h[j] = floats.Min(col), floats.Max(col)
	}
	lo, hi = r3.Vec{X: l[0], Y: l[1], Z: l[2]}, r3.Vec{X: h[0], Y: h[1], Z: h[2]}
	return
}

// Centroid returns the mean vertex position
func (m *Mesh) Centroid() (c r3.Vec) {
	if m.NumVertices == 0 {
		return
	}
	var (
		X   = m.coordinateMatrix()
		col = make([]float64, m.NumVertices)
		s   [3]float64
	)
	for j := 0; j < 3; j++ {
		mat.Col(col, j, X)
		s[j] = floats.Sum(col) / float64(m.NumVertices)
	}
	c = r3.Vec{X: s[0], Y: s[1], Z: s[2]}
	return
}
