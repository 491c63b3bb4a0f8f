package mesh

import (
	"fmt"
	"strings"
)

// ElementType represents the element shapes produced by the structured mesher
type ElementType int

const (
	Line2 ElementType = iota
	Line3
	Quad4
	Quad8
	Quad9
	Hex8
	Hex20
	Hex27
)

func (e ElementType) String() string {
	return [...]string{"Line2", "Line3", "Quad4", "Quad8", "Quad9", "Hex8", "Hex20", "Hex27"}[e]
}

// ParseElementType looks up an element type by name, case insensitive
func ParseElementType(name string) (et ElementType, err error) {
	for et = Line2; et <= Hex27; et++ {
		if strings.EqualFold(name, et.String()) {
			return
		}
	}
	return -1, fmt.Errorf("unknown element type %q", name)
}

// NumNodes returns the number of nodes of the element type
func (e ElementType) NumNodes() int {
	return [...]int{2, 3, 4, 8, 9, 8, 20, 27}[e]
}

// NumCorners returns the number of vertex nodes, the leading entries of an element's node list
func (e ElementType) NumCorners() int {
	return [...]int{2, 2, 4, 4, 4, 8, 8, 8}[e]
}

// Dimension returns the topological dimension
func (e ElementType) Dimension() int {
	return [...]int{1, 1, 2, 2, 2, 3, 3, 3}[e]
}

// IsQuadratic reports whether the element carries mid-side nodes
func (e ElementType) IsQuadratic() bool {
	switch e {
	case Line3, Quad8, Quad9, Hex20, Hex27:
		return true
	}
	return false
}

// Element type numbers of the Gmsh 2.2 format
var elementTypeToGmsh22 = map[ElementType]int{
	Line2: 1,
	Line3: 8,
	Quad4: 3,
	Quad8: 16,
	Quad9: 10,
	Hex8:  5,
	Hex20: 17,
	Hex27: 12,
}

var gmshElementType2_2 = map[int]ElementType{
	1:  Line2,
	3:  Quad4,
	5:  Hex8,
	8:  Line3,
	10: Quad9,
	12: Hex27,
	16: Quad8,
	17: Hex20,
}

/*
Gmsh orders the mid-edge nodes of a hexahedron by edge (0,1),(0,3),(0,4),(1,2),... and the face centres
bottom first. Local ordering here follows the hexahedron edge loop 01,12,23,30,45,56,67,74,04,15,26,37
and the faces {0,1,5,4},{1,2,6,5},{2,3,7,6},{3,0,4,7},{3,2,1,0},{4,5,6,7}.
gmshOrder[e][i] is the local node written at Gmsh position i.
*/
var gmshOrder = map[ElementType][]int{
	Hex20: {0, 1, 2, 3, 4, 5, 6, 7, 8, 11, 16, 9, 17, 10, 18, 19, 12, 15, 13, 14},
	Hex27: {0, 1, 2, 3, 4, 5, 6, 7, 8, 11, 16, 9, 17, 10, 18, 19, 12, 15, 13, 14, 24, 20, 23, 21, 22, 25, 26},
}

// toGmshOrder permutes a local node list into Gmsh order
func toGmshOrder(et ElementType, nodes []int) (out []int) {
	perm, ok := gmshOrder[et]
	if !ok {
		return nodes
	}
	out = make([]int, len(nodes))
	for i, p := range perm {
		out[i] = nodes[p]
	}
	return
}

// fromGmshOrder inverts toGmshOrder
func fromGmshOrder(et ElementType, nodes []int) (out []int) {
	perm, ok := gmshOrder[et]
	if !ok {
		return nodes
	}
	out = make([]int, len(nodes))
	for i, p := range perm {
		out[p] = nodes[i]
	}
	return
}

// HexFaces lists the corner nodes of the 6 faces of a hexahedron, each loop ordered counter clockwise seen from outside
var HexFaces = [6][4]int{
	{0, 1, 5, 4},
	{1, 2, 6, 5},
	{2, 3, 7, 6},
	{3, 0, 4, 7},
	{3, 2, 1, 0},
	{4, 5, 6, 7},
}

// HexEdges lists the corner node pairs of the 12 edges of a hexahedron
var HexEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}
