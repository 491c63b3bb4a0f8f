package mesh

import (
	"fmt"
	"io"
	"sort"

	"github.com/notargets/gomesh/types"
	"gonum.org/v1/gonum/spatial/r3"
)

// Face represents a face of an element
type Face struct {
	Key     types.FaceKey // Sorted corner vertex indices
	Element int           // Parent element
	LocalID int           // Local face ID within element
}

// BoundaryFace is an exported surface element carrying a boundary group and a smoothing group
type BoundaryFace struct {
	Type  ElementType
	Nodes []int
	GID   int
	SID   int
}

// BoundaryEdge is an exported curve element carrying a boundary group
type BoundaryEdge struct {
	Type  ElementType
	Nodes []int
	GID   int
}

// Mesh is a finite element mesh of volume elements plus tagged boundary faces and edges
type Mesh struct {
	// Geometry
	Vertices []r3.Vec // Vertex coordinates
	NodeTags []int    // Boundary group of each vertex, -1 when untagged

	// Element data
	EtoV         [][]int       // Element to vertex connectivity [nelems][nverts_per_elem]
	ElementTypes []ElementType // Element type for each element
	ElementTags  []int         // Part tag for each element

	// Boundary data
	BoundaryFaces []BoundaryFace
	BoundaryEdges []BoundaryEdge

	// Connectivity (built by BuildConnectivity)
	EToE [][]int // Element to element connectivity [nelems][nfaces_per_elem]
	EToF [][]int // Element to face connectivity [nelems][nfaces_per_elem]

	// Face data
	Faces   []Face                // All unique faces in mesh
	FaceMap map[types.FaceKey]int // Map from sorted vertex key to face ID

	// Mesh statistics
	NumElements int
	NumVertices int
	NumFaces    int
}

// NewMesh creates a mesh with storage for exactly numVertices vertices
func NewMesh(numVertices int) *Mesh {
	m := &Mesh{
		Vertices:    make([]r3.Vec, numVertices),
		NodeTags:    make([]int, numVertices),
		FaceMap:     make(map[types.FaceKey]int),
		NumVertices: numVertices,
	}
	for i := range m.NodeTags {
		m.NodeTags[i] = -1
	}
	return m
}

// AddElement appends a volume element
func (m *Mesh) AddElement(et ElementType, tag int, nodes []int) (err error) {
	if err = m.checkNodes(et, nodes); err != nil {
		return
	}
	if et.Dimension() != 3 {
		return fmt.Errorf("element type %s is not a volume element", et)
	}
	m.EtoV = append(m.EtoV, nodes)
	m.ElementTypes = append(m.ElementTypes, et)
	m.ElementTags = append(m.ElementTags, tag)
	m.NumElements++
	return
}

// AddBoundaryFace appends a surface element
func (m *Mesh) AddBoundaryFace(et ElementType, gid, sid int, nodes []int) (err error) {
	if err = m.checkNodes(et, nodes); err != nil {
		return
	}
	if et.Dimension() != 2 {
		return fmt.Errorf("element type %s is not a surface element", et)
	}
	m.BoundaryFaces = append(m.BoundaryFaces, BoundaryFace{Type: et, Nodes: nodes, GID: gid, SID: sid})
	return
}

// AddBoundaryEdge appends a curve element
func (m *Mesh) AddBoundaryEdge(et ElementType, gid int, nodes []int) (err error) {
	if err = m.checkNodes(et, nodes); err != nil {
		return
	}
	if et.Dimension() != 1 {
		return fmt.Errorf("element type %s is not a curve element", et)
	}
	m.BoundaryEdges = append(m.BoundaryEdges, BoundaryEdge{Type: et, Nodes: nodes, GID: gid})
	return
}

func (m *Mesh) checkNodes(et ElementType, nodes []int) error {
	if len(nodes) != et.NumNodes() {
		return fmt.Errorf("element type %s expects %d nodes, got %d", et, et.NumNodes(), len(nodes))
	}
	for _, n := range nodes {
		if n < 0 || n >= m.NumVertices {
			return fmt.Errorf("node index %d out of range [0,%d)", n, m.NumVertices)
		}
	}
	return nil
}

// BuildConnectivity builds element-to-element and face connectivity
func (m *Mesh) BuildConnectivity() {
	m.EToE = make([][]int, m.NumElements)
	m.EToF = make([][]int, m.NumElements)
	m.Faces = m.Faces[:0]
	m.FaceMap = make(map[types.FaceKey]int)

	// Build face connectivity
	for elemID := 0; elemID < m.NumElements; elemID++ {
		faceVertices := GetElementFaces(m.ElementTypes[elemID], m.EtoV[elemID])

		m.EToE[elemID] = make([]int, len(faceVertices))
		m.EToF[elemID] = make([]int, len(faceVertices))

		// Initialize to -1 (boundary)
		for i := range m.EToE[elemID] {
			m.EToE[elemID][i] = -1
			m.EToF[elemID][i] = -1
		}

		for localFaceID, faceVerts := range faceVertices {
			key := types.NewFaceKey(faceVerts)

			if faceID, exists := m.FaceMap[key]; exists {
				// Face already exists - this is an interior face
				face := &m.Faces[faceID]
				neighborElem := face.Element
				neighborLocalID := face.LocalID

				m.EToE[elemID][localFaceID] = neighborElem
				m.EToE[neighborElem][neighborLocalID] = elemID

				m.EToF[elemID][localFaceID] = faceID
			} else {
				faceID := len(m.Faces)
				m.Faces = append(m.Faces, Face{
					Key:     key,
					Element: elemID,
					LocalID: localFaceID,
				})
				m.FaceMap[key] = faceID
				m.EToF[elemID][localFaceID] = faceID
			}
		}
	}

	m.NumFaces = len(m.Faces)
}

// GetElementFaces returns the corner vertices of each face of a volume element
func GetElementFaces(elemType ElementType, vertices []int) (faces [][]int) {
	switch elemType {
	case Hex8, Hex20, Hex27:
		faces = make([][]int, len(HexFaces))
		for i, f := range HexFaces {
			faces[i] = []int{vertices[f[0]], vertices[f[1]], vertices[f[2]], vertices[f[3]]}
		}
	}
	return
}

// BoundaryFaceCount returns the number of element faces without a neighbor
func (m *Mesh) BoundaryFaceCount() (count int) {
	for i := 0; i < m.NumElements; i++ {
		for _, neighbor := range m.EToE[i] {
			if neighbor < 0 {
				count++
			}
		}
	}
	return
}

// PrintStatistics writes mesh statistics
func (m *Mesh) PrintStatistics(w io.Writer) {
	fmt.Fprintf(w, "Mesh Statistics:\n")
	fmt.Fprintf(w, "  Vertices: %d\n", m.NumVertices)
	fmt.Fprintf(w, "  Elements: %d\n", m.NumElements)
	fmt.Fprintf(w, "  Faces: %d\n", m.NumFaces)

	// Count element types
	typeCounts := make(map[ElementType]int)
	for _, t := range m.ElementTypes {
		typeCounts[t]++
	}
	for _, bf := range m.BoundaryFaces {
		typeCounts[bf.Type]++
	}
	for _, be := range m.BoundaryEdges {
		typeCounts[be.Type]++
	}
	keys := make([]int, 0, len(typeCounts))
	for t := range typeCounts {
		keys = append(keys, int(t))
	}
	sort.Ints(keys)
	fmt.Fprintf(w, "  Element types:\n")
	for _, t := range keys {
		fmt.Fprintf(w, "    %s: %d\n", ElementType(t), typeCounts[ElementType(t)])
	}

	if m.EToE != nil {
		fmt.Fprintf(w, "  Boundary faces: %d\n", m.BoundaryFaceCount())
	}
	if m.NumVertices > 0 && m.NumElements > 0 {
		valence := m.NodeValence()
		vMin, vMax := valence[0], valence[0]
		for _, v := range valence {
			vMin, vMax = min(vMin, v), max(vMax, v)
		}
		fmt.Fprintf(w, "  Node valence: min %d, max %d\n", vMin, vMax)
		fmt.Fprintf(w, "  Orphan nodes: %d\n", len(m.OrphanNodes()))
		// Hexes sharing four corners share a face, each pair is listed in both orders
		fmt.Fprintf(w, "  Face adjacent element pairs: %d\n", len(m.SharedCornerCounts(4))/2)
	}
	if m.NumVertices > 0 {
		lo, hi := m.BoundingBox()
		fmt.Fprintf(w, "  Bounding box: [%g %g %g] - [%g %g %g]\n", lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z)
	}
}
