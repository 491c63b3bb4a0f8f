/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"github.com/notargets/gomesh/shapes"
	"github.com/spf13/cobra"
)

// BoxCmd represents the box command
var BoxCmd = &cobra.Command{
	Use:   "box",
	Short: "Mesh a box, optionally as a butterfly of seven blocks",
	Long: `
Meshes a brick standing on the xy plane. With --butterfly the box becomes a core block
wrapped by six blocks, controlled by --ratio, --ns, --gr and --br.

gomesh box -x 2 -y 1 -z 1 --nx 8 --ny 4 --nz 4 --gz 1.2 -e Hex20 -o box.msh`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var mo *MeshOptions
		if mo, err = readMeshFlags(cmd); err != nil {
			return
		}
		f := cmd.Flags()
		bx := &shapes.Box{}
		bx.Width, _ = f.GetFloat64("width")
		bx.Height, _ = f.GetFloat64("height")
		bx.Depth, _ = f.GetFloat64("depth")
		bx.NX, _ = f.GetInt("nx")
		bx.NY, _ = f.GetInt("ny")
		bx.NZ, _ = f.GetInt("nz")
		bx.GX, _ = f.GetFloat64("gx")
		bx.GY, _ = f.GetFloat64("gy")
		bx.GZ, _ = f.GetFloat64("gz")
		bx.BX, _ = f.GetBool("bx")
		bx.BY, _ = f.GetBool("by")
		bx.BZ, _ = f.GetBool("bz")
		bx.Butterfly, _ = f.GetBool("butterfly")
		bx.Ratio, _ = f.GetFloat64("ratio")
		bx.NS, _ = f.GetInt("ns")
		bx.GR, _ = f.GetFloat64("gr")
		bx.BR, _ = f.GetBool("br")
		return RunShape(bx, mo)
	},
}

func init() {
	rootCmd.AddCommand(BoxCmd)
	f := BoxCmd.Flags()
	f.Float64P("width", "x", 1, "size along x")
	f.Float64P("height", "y", 1, "size along y")
	f.Float64P("depth", "z", 1, "size along z")
	f.Int("nx", 4, "divisions along x")
	f.Int("ny", 4, "divisions along y")
	f.Int("nz", 4, "divisions along z")
	f.Float64("gx", 1, "ratio of successive element sizes along x")
	f.Float64("gy", 1, "ratio of successive element sizes along y")
	f.Float64("gz", 1, "ratio of successive element sizes along z")
	f.Bool("bx", false, "mirror the x bias about the middle")
	f.Bool("by", false, "mirror the y bias about the middle")
	f.Bool("bz", false, "mirror the z bias about the middle")
	f.Bool("butterfly", false, "wrap a core block with six blocks")
	f.Float64("ratio", 0.5, "core size relative to the box, butterfly only")
	f.Int("ns", 2, "divisions across the wrapping blocks, butterfly only")
	f.Float64("gr", 1, "bias across the wrapping blocks, butterfly only")
	f.Bool("br", false, "mirror the bias across the wrapping blocks, butterfly only")
	addMeshFlags(BoxCmd)
}
