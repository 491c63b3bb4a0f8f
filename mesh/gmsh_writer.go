package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// WriteGmsh22File writes the mesh as an ASCII Gmsh 2.2 file
func (m *Mesh) WriteGmsh22File(filename string) (err error) {
	var file *os.File
	if file, err = os.Create(filename); err != nil {
		return
	}
	if err = m.WriteGmsh22(file); err != nil {
		file.Close()
		return
	}
	return file.Close()
}

/*
WriteGmsh22 writes nodes, then volume elements, boundary faces and boundary edges in one $Elements section.
Every element carries two tags: the physical tag is the part tag (volumes) or boundary group (faces, edges),
the elementary tag is the smoothing group for faces and repeats the physical tag otherwise.
Node tags are written to a $NodeData section so that they survive a round trip.
*/
func (m *Mesh) WriteGmsh22(w io.Writer) (err error) {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "$MeshFormat\n2.2 0 8\n$EndMeshFormat")

	fmt.Fprintln(bw, "$Nodes")
	fmt.Fprintf(bw, "%d\n", m.NumVertices)
	for i, v := range m.Vertices {
		fmt.Fprintf(bw, "%d %s %s %s\n", i+1, formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
	}
	fmt.Fprintln(bw, "$EndNodes")

	total := m.NumElements + len(m.BoundaryFaces) + len(m.BoundaryEdges)
	fmt.Fprintln(bw, "$Elements")
	fmt.Fprintf(bw, "%d\n", total)
	elemID := 1
	writeElement := func(et ElementType, physical, elementary int, nodes []int) {
		nodeIDs := make([]string, len(nodes))
		for j, n := range toGmshOrder(et, nodes) {
			nodeIDs[j] = strconv.Itoa(n + 1)
		}
		// Format: elem-id elem-type num-tags tag1 tag2 node1 node2 ...
		fmt.Fprintf(bw, "%d %d 2 %d %d %s\n", elemID, elementTypeToGmsh22[et], physical, elementary,
			strings.Join(nodeIDs, " "))
		elemID++
	}
	for k, nodes := range m.EtoV {
		writeElement(m.ElementTypes[k], m.ElementTags[k], m.ElementTags[k], nodes)
	}
	for _, bf := range m.BoundaryFaces {
		writeElement(bf.Type, bf.GID, bf.SID, bf.Nodes)
	}
	for _, be := range m.BoundaryEdges {
		writeElement(be.Type, be.GID, be.GID, be.Nodes)
	}
	fmt.Fprintln(bw, "$EndElements")

	fmt.Fprintln(bw, "$NodeData")
	fmt.Fprintln(bw, "1\n\"NodeTag\"\n1\n0.0\n3\n0\n1")
	fmt.Fprintf(bw, "%d\n", m.NumVertices)
	for i, tag := range m.NodeTags {
		fmt.Fprintf(bw, "%d %d\n", i+1, tag)
	}
	fmt.Fprintln(bw, "$EndNodeData")

	return bw.Flush()
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', 17, 64)
}
