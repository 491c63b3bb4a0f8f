package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// ReadGmsh22File reads an ASCII Gmsh 2.2 file
func ReadGmsh22File(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadGmsh22(file)
}

type gmshReader struct {
	scanner *bufio.Scanner
	mesh    *Mesh
	nodeIdx map[int]int // Gmsh node ID to vertex index
}

// ReadGmsh22 reads an ASCII Gmsh 2.2 stream. Volume elements become elements, 2-D elements boundary faces
// and 1-D elements boundary edges.
func ReadGmsh22(r io.Reader) (*Mesh, error) {
	gr := &gmshReader{
		scanner: bufio.NewScanner(r),
		nodeIdx: make(map[int]int),
	}
	// Increase scanner buffer for large files
	const maxScanTokenSize = 1024 * 1024 * 10 // 10MB
	buf := make([]byte, 64*1024)
	gr.scanner.Buffer(buf, maxScanTokenSize)

	var haveFormat bool
	for gr.scanner.Scan() {
		line := strings.TrimSpace(gr.scanner.Text())

		switch line {
		case "$MeshFormat":
			if err := gr.readMeshFormat(); err != nil {
				return nil, err
			}
			haveFormat = true

		case "$Nodes":
			if err := gr.readNodes(); err != nil {
				return nil, err
			}

		case "$Elements":
			if gr.mesh == nil {
				return nil, fmt.Errorf("$Elements section before $Nodes")
			}
			if err := gr.readElements(); err != nil {
				return nil, err
			}

		case "$NodeData":
			if err := gr.readNodeData(); err != nil {
				return nil, err
			}

		default:
			if strings.HasPrefix(line, "$") && !strings.HasPrefix(line, "$End") {
				if err := gr.skipSection("$End" + line[1:]); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := gr.scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %v", err)
	}
	if !haveFormat {
		return nil, fmt.Errorf("no $MeshFormat section found")
	}
	if gr.mesh == nil {
		return nil, fmt.Errorf("no $Nodes section found")
	}

	gr.mesh.BuildConnectivity()
	return gr.mesh, nil
}

func (gr *gmshReader) next(section string) (fields []string, err error) {
	if !gr.scanner.Scan() {
		return nil, fmt.Errorf("unexpected EOF in %s", section)
	}
	fields = strings.Fields(gr.scanner.Text())
	return
}

func (gr *gmshReader) nextInt(section string) (val int, err error) {
	var fields []string
	if fields, err = gr.next(section); err != nil {
		return
	}
	if len(fields) != 1 {
		return 0, fmt.Errorf("expected a count in %s, got %q", section, strings.Join(fields, " "))
	}
	if val, err = strconv.Atoi(fields[0]); err != nil {
		return 0, fmt.Errorf("invalid count in %s: %v", section, err)
	}
	return
}

func (gr *gmshReader) skipSection(end string) error {
	for gr.scanner.Scan() {
		if strings.TrimSpace(gr.scanner.Text()) == end {
			return nil
		}
	}
	return fmt.Errorf("unexpected EOF looking for %s", end)
}

func (gr *gmshReader) readMeshFormat() error {
	parts, err := gr.next("MeshFormat")
	if err != nil {
		return err
	}
	if len(parts) < 3 {
		return fmt.Errorf("invalid MeshFormat line")
	}
	if !strings.HasPrefix(parts[0], "2") {
		return fmt.Errorf("unsupported Gmsh version: %s", parts[0])
	}
	if parts[1] != "0" {
		return fmt.Errorf("binary Gmsh files are not supported")
	}
	return gr.skipSection("$EndMeshFormat")
}

func (gr *gmshReader) readNodes() error {
	numNodes, err := gr.nextInt("Nodes")
	if err != nil {
		return err
	}
	gr.mesh = NewMesh(numNodes)

	for i := 0; i < numNodes; i++ {
		fields, err := gr.next("Nodes")
		if err != nil {
			return err
		}
		if len(fields) < 4 {
			return fmt.Errorf("invalid node entry at line %d", i+1)
		}

		nodeID, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("invalid node ID: %v", err)
		}

		var coords [3]float64
		for j := 0; j < 3; j++ {
			coords[j], err = strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return fmt.Errorf("invalid coordinate: %v", err)
			}
		}
		gr.nodeIdx[nodeID] = i
		gr.mesh.Vertices[i] = r3.Vec{X: coords[0], Y: coords[1], Z: coords[2]}
	}

	return gr.skipSection("$EndNodes")
}

func (gr *gmshReader) readElements() error {
	numElems, err := gr.nextInt("Elements")
	if err != nil {
		return err
	}

	for i := 0; i < numElems; i++ {
		fields, err := gr.next("Elements")
		if err != nil {
			return err
		}
		if len(fields) < 3 {
			return fmt.Errorf("invalid element entry at line %d", i+1)
		}

		ints := make([]int, len(fields))
		for j, f := range fields {
			if ints[j], err = strconv.Atoi(f); err != nil {
				return fmt.Errorf("invalid integer %q in element entry %d", f, i+1)
			}
		}
		gmshType, numTags := ints[1], ints[2]

		// Skip unknown element types
		et, ok := gmshElementType2_2[gmshType]
		if !ok {
			continue
		}
		startIdx := 3 + numTags
		if len(ints)-startIdx != et.NumNodes() {
			return fmt.Errorf("element type %v expects %d nodes, got %d", et, et.NumNodes(), len(ints)-startIdx)
		}

		var physical, elementary int
		if numTags > 0 {
			physical = ints[3]
			elementary = physical
		}
		if numTags > 1 {
			elementary = ints[4]
		}

		nodes := make([]int, et.NumNodes())
		for j := range nodes {
			idx, ok := gr.nodeIdx[ints[startIdx+j]]
			if !ok {
				return fmt.Errorf("element %d references unknown node %d", ints[0], ints[startIdx+j])
			}
			nodes[j] = idx
		}
		nodes = fromGmshOrder(et, nodes)

		switch et.Dimension() {
		case 3:
			err = gr.mesh.AddElement(et, physical, nodes)
		case 2:
			err = gr.mesh.AddBoundaryFace(et, physical, elementary, nodes)
		case 1:
			err = gr.mesh.AddBoundaryEdge(et, physical, nodes)
		}
		if err != nil {
			return err
		}
	}

	return gr.skipSection("$EndElements")
}

// readNodeData picks up the "NodeTag" view written by WriteGmsh22 and skips any other view
func (gr *gmshReader) readNodeData() error {
	var header []string
	for _, section := range []string{"string", "real", "integer"} {
		count, err := gr.nextInt("NodeData")
		if err != nil {
			return err
		}
		for i := 0; i < count; i++ {
			fields, err := gr.next("NodeData " + section + " tags")
			if err != nil {
				return err
			}
			header = append(header, strings.Join(fields, " "))
		}
	}
	if len(header) == 0 || strings.Trim(header[0], "\"") != "NodeTag" {
		return gr.skipSection("$EndNodeData")
	}
	numValues, err := strconv.Atoi(header[len(header)-1])
	if err != nil {
		return fmt.Errorf("invalid NodeData value count: %v", err)
	}
	for i := 0; i < numValues; i++ {
		fields, err := gr.next("NodeData")
		if err != nil {
			return err
		}
		if len(fields) < 2 {
			return fmt.Errorf("invalid NodeData entry at line %d", i+1)
		}
		nodeID, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("invalid node ID: %v", err)
		}
		tag, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return fmt.Errorf("invalid node tag: %v", err)
		}
		if idx, ok := gr.nodeIdx[nodeID]; ok {
			gr.mesh.NodeTags[idx] = int(tag)
		}
	}
	return gr.skipSection("$EndNodeData")
}
