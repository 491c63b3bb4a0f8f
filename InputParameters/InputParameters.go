package InputParameters

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/notargets/gomesh/multiblock"
	"github.com/notargets/gomesh/shapes"
	"gonum.org/v1/gonum/spatial/r3"
)

// Parameters obtained from the YAML input file. A file either names one primitive (Box, SphereShell, Cylinder)
// or lists the skeleton nodes and blocks directly.
type MeshInput struct {
	Title       string `json:"Title"`
	ElementType string `json:"ElementType"` // Hex8, Hex20 or Hex27

	Box         *shapes.Box         `json:"Box,omitempty"`
	SphereShell *shapes.SphereShell `json:"SphereShell,omitempty"`
	Cylinder    *shapes.Cylinder    `json:"Cylinder,omitempty"`

	Nodes      [][3]float64 `json:"Nodes"`
	ShapeNodes []int        `json:"ShapeNodes"` // construction points, e.g. arc centers, that are not meshed
	NodeIDs    map[int]int  `json:"NodeIDs"`    // node index to boundary group
	Blocks     []BlockInput `json:"Blocks"`
	Edges      []EdgeInput  `json:"Edges"`
	Faces      []FaceInput  `json:"Faces"`
}

type BlockInput struct {
	Nodes     [8]int      `json:"Nodes"`
	Divisions [3]int      `json:"Divisions"`
	Bias      *[3]float64 `json:"Bias,omitempty"`
	Mirror    [3]bool     `json:"Mirror"`
	ID        int         `json:"ID"`
	FaceIDs   *[6]int     `json:"FaceIDs,omitempty"`
}

// EdgeInput addresses a skeleton edge by its end nodes
type EdgeInput struct {
	Nodes     [2]int  `json:"Nodes"`
	Curve     string  `json:"Curve"` // line, arc3p or zarc
	Center    int     `json:"Center"`
	Winding   int     `json:"Winding"`
	Divisions int     `json:"Divisions"`
	Bias      float64 `json:"Bias"`
	Mirror    bool    `json:"Mirror"`
	ID        *int    `json:"ID,omitempty"`
}

// FaceInput addresses a skeleton face by a block and its local face
type FaceInput struct {
	Block       int     `json:"Block"`
	Face        int     `json:"Face"`
	ID          *int    `json:"ID,omitempty"`
	SmoothingID *int    `json:"SmoothingID,omitempty"`
	EdgeIDs     *[4]int `json:"EdgeIDs,omitempty"`
}

func (mi *MeshInput) Parse(data []byte) error {
	return yaml.Unmarshal(data, mi)
}

func (mi *MeshInput) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", mi.Title)
	fmt.Printf("[%s]\t\t\t= Element Type\n", mi.ElementType)
	switch mi.primitive().(type) {
	case *shapes.Box:
		fmt.Printf("Box = %+v\n", *mi.Box)
	case *shapes.SphereShell:
		fmt.Printf("SphereShell = %+v\n", *mi.SphereShell)
	case *shapes.Cylinder:
		fmt.Printf("Cylinder = %+v\n", *mi.Cylinder)
	default:
		fmt.Printf("[%d]\t\t\t\t= Nodes\n", len(mi.Nodes))
		fmt.Printf("[%d]\t\t\t\t= Blocks\n", len(mi.Blocks))
		fmt.Printf("[%d]\t\t\t\t= Edge Settings\n", len(mi.Edges))
		fmt.Printf("[%d]\t\t\t\t= Face Settings\n", len(mi.Faces))
	}
	keys := make([]int, len(mi.NodeIDs))
	i := 0
	for k := range mi.NodeIDs {
		keys[i] = k
		i++
	}
	sort.Ints(keys)
	for _, key := range keys {
		fmt.Printf("NodeIDs[%d] = %d\n", key, mi.NodeIDs[key])
	}
}

func (mi *MeshInput) primitive() shapes.Shape {
	switch {
	case mi.Box != nil:
		return mi.Box
	case mi.SphereShell != nil:
		return mi.SphereShell
	case mi.Cylinder != nil:
		return mi.Cylinder
	}
	return nil
}

// Skeleton assembles the skeleton described by the input, topology built and all settings applied
func (mi *MeshInput) Skeleton() (s *multiblock.Skeleton, err error) {
	var count int
	for _, set := range []bool{mi.Box != nil, mi.SphereShell != nil, mi.Cylinder != nil} {
		if set {
			count++
		}
	}
	switch {
	case count > 1:
		return nil, fmt.Errorf("input names %d primitives, at most one is allowed", count)
	case count == 1 && (len(mi.Nodes) != 0 || len(mi.Blocks) != 0):
		return nil, fmt.Errorf("input names a primitive and lists skeleton blocks")
	case count == 1:
		return mi.primitive().Skeleton()
	case len(mi.Blocks) == 0:
		return nil, fmt.Errorf("input has no blocks")
	}

	s = multiblock.NewSkeleton()
	shape := make(map[int]bool, len(mi.ShapeNodes))
	for _, n := range mi.ShapeNodes {
		shape[n] = true
	}
	for i, x := range mi.Nodes {
		kind := multiblock.NodeVertex
		if shape[i] {
			kind = multiblock.NodeShape
		}
		s.AddNode(r3.Vec{X: x[0], Y: x[1], Z: x[2]}, kind)
	}
	for i, bi := range mi.Blocks {
		if err = mi.addBlock(s, bi); err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
	}
	if err = s.BuildTopology(); err != nil {
		return nil, err
	}
	for i, bi := range mi.Blocks {
		if bi.FaceIDs == nil {
			continue
		}
		if err = s.SetBlockFaceID(i, *bi.FaceIDs); err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
	}
	for i, ei := range mi.Edges {
		if err = applyEdge(s, ei); err != nil {
			return nil, fmt.Errorf("edge setting %d %v: %w", i, ei.Nodes, err)
		}
	}
	for i, fi := range mi.Faces {
		if err = applyFace(s, fi); err != nil {
			return nil, fmt.Errorf("face setting %d: %w", i, err)
		}
	}
	for n, id := range mi.NodeIDs {
		if err = s.SetNodeID(n, id); err != nil {
			return nil, err
		}
	}
	if err = s.UpdateMB(); err != nil {
		return nil, err
	}
	return
}

func (mi *MeshInput) addBlock(s *multiblock.Skeleton, bi BlockInput) (err error) {
	var b int
	if b, err = s.AddBlock(bi.Nodes, bi.Divisions[0], bi.Divisions[1], bi.Divisions[2]); err != nil {
		return
	}
	g := [3]float64{1, 1, 1}
	if bi.Bias != nil {
		g = *bi.Bias
	}
	if err = s.SetBlockZoning(b, g[0], g[1], g[2], bi.Mirror[0], bi.Mirror[1], bi.Mirror[2]); err != nil {
		return
	}
	return s.SetBlockID(b, bi.ID)
}

func applyEdge(s *multiblock.Skeleton, ei EdgeInput) (err error) {
	e := s.FindEdge(ei.Nodes[0], ei.Nodes[1])
	if e < 0 {
		return fmt.Errorf("no block edge joins the nodes")
	}
	// Windings and arc senses refer to the direction given in the input
	reversed := s.Edges[e].N[0] != ei.Nodes[0]
	winding := ei.Winding
	if winding == 0 {
		winding = 1
	}
	switch strings.ToLower(ei.Curve) {
	case "", "line":
	case "arc3p":
		err = s.SetEdgeArc3P(e, ei.Center, winding)
	case "zarc":
		if reversed {
			winding = -winding
		}
		err = s.SetEdgeZArc(e, winding)
	default:
		err = fmt.Errorf("unknown curve %q", ei.Curve)
	}
	if err != nil {
		return
	}
	if ei.Divisions > 0 {
		g := ei.Bias
		if g == 0 {
			g = 1
		}
		if reversed && !ei.Mirror {
			g = 1 / g
		}
		if err = s.SetEdgeZoning(e, ei.Divisions, g, ei.Mirror); err != nil {
			return
		}
	}
	if ei.ID != nil {
		err = s.SetEdgeID(e, *ei.ID)
	}
	return
}

func applyFace(s *multiblock.Skeleton, fi FaceInput) (err error) {
	var f int
	if f, err = s.BlockFace(fi.Block, fi.Face); err != nil {
		return
	}
	if fi.ID != nil {
		s.Faces[f].GID = *fi.ID
	}
	if fi.SmoothingID != nil {
		if err = s.SetFaceSmoothingID(f, *fi.SmoothingID); err != nil {
			return
		}
	}
	if fi.EdgeIDs != nil {
		err = s.SetFaceEdgeID(f, *fi.EdgeIDs)
	}
	return
}
