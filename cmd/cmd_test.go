package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/notargets/gomesh/InputParameters"
	"github.com/notargets/gomesh/mesh"
	"github.com/notargets/gomesh/shapes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExampleInput(t *testing.T) {
	var ip InputParameters.MeshInput
	require.NoError(t, ip.Parse([]byte(exampleInput)))
	kind, err := mesh.ParseElementType(ip.ElementType)
	require.NoError(t, err)
	res, err := shapes.Build(&ip, kind, nil)
	require.NoError(t, err)
	assert.Equal(t, 2*64, res.Mesh.NumElements)
	assert.Equal(t, 16+16+16, len(res.Mesh.BoundaryFaces))
	assert.Len(t, res.Mesh.BoundaryEdges, 4)
	assert.Empty(t, res.Mesh.OrphanNodes())
}

func TestRunBatch(t *testing.T) {
	var (
		dir    = t.TempDir()
		outDir = t.TempDir()
		inputs = map[string]string{
			"two_blocks.yaml": exampleInput,
			"box.yaml":        "ElementType: Hex27\nBox: {Width: 1, Height: 1, Depth: 1, NX: 2, NY: 2, NZ: 2}\n",
			"shell.yaml":      "SphereShell: {InnerRadius: 1, OuterRadius: 2, ND: 2, NS: 1}\n",
		}
		files []string
	)
	for name, text := range inputs {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(text), 0644))
		files = append(files, path)
	}
	results, err := RunBatch(files, outDir, 2)
	require.NoError(t, err)
	require.Len(t, results, len(files))

	elements := map[string]int{"two_blocks.msh": 128, "box.msh": 8, "shell.msh": 24}
	for name, count := range elements {
		m, err := mesh.ReadGmsh22File(filepath.Join(outDir, name))
		require.NoError(t, err, name)
		assert.Equal(t, count, m.NumElements, name)
	}
	// Three files over two workers split 2 and 1, reported in input order
	for i, r := range results {
		assert.Equal(t, files[i], r.Input)
		name := filepath.Base(r.Output)
		assert.Equal(t, filepath.Join(outDir, name), r.Output)
		assert.Equal(t, elements[name], r.Elements)
		assert.Positive(t, r.Nodes)
	}
	assert.Equal(t, []int{0, 0, 1}, []int{results[0].Worker, results[1].Worker, results[2].Worker})

	// Without an output directory meshes land next to their inputs
	results, err = RunBatch(files[:1], "", 8)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "two_blocks.msh"), results[0].Output)
	_, err = os.Stat(filepath.Join(dir, "two_blocks.msh"))
	assert.NoError(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("Box: {Width: -1, Height: 1, Depth: 1}\n"), 0644))
	results, err = RunBatch(append(files, bad), outDir, 3)
	assert.Error(t, err)
	assert.Nil(t, results)
	_, err = RunBatch([]string{filepath.Join(dir, "missing.yaml")}, outDir, 1)
	assert.Error(t, err)
}

func TestBuildShapeCount(t *testing.T) {
	// The instruction counter may be unavailable, the build must succeed either way
	res, err := buildShape(shapes.NewBox(1, 1, 1, 2, 2, 2), mesh.Hex8, true, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 27, res.Mesh.NumVertices)

	_, err = buildShape(shapes.NewBox(1, 1, 1, 2, 2, 2), mesh.Quad4, true, zap.NewNop())
	assert.Error(t, err)
}

func TestBoxCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "box.msh")
	rootCmd.SetArgs([]string{"box", "--nx", "2", "--ny", "2", "--nz", "2", "-e", "Hex27", "-o", out, "--log-level", "warn"})
	require.NoError(t, rootCmd.Execute())

	m, err := mesh.ReadGmsh22File(out)
	require.NoError(t, err)
	assert.Equal(t, 125, m.NumVertices)
	assert.Equal(t, 8, m.NumElements)
	assert.Equal(t, mesh.Hex27, m.ElementTypes[0])
	assert.Len(t, m.BoundaryFaces, 24)
}
