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

// ShellCmd represents the shell command
var ShellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Mesh a spherical shell as six cubed-sphere blocks",
	Long: `
Meshes the region between two concentric spheres about the origin.

gomesh shell --r0 1 --r1 2 --nd 8 --ns 4 --gr 1.1 -e Hex27 -o shell.msh`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var mo *MeshOptions
		if mo, err = readMeshFlags(cmd); err != nil {
			return
		}
		f := cmd.Flags()
		sh := &shapes.SphereShell{}
		sh.InnerRadius, _ = f.GetFloat64("r0")
		sh.OuterRadius, _ = f.GetFloat64("r1")
		sh.ND, _ = f.GetInt("nd")
		sh.NS, _ = f.GetInt("ns")
		sh.GR, _ = f.GetFloat64("gr")
		sh.BR, _ = f.GetBool("br")
		return RunShape(sh, mo)
	},
}

// CylinderCmd represents the cylinder command
var CylinderCmd = &cobra.Command{
	Use:   "cylinder",
	Short: "Mesh a solid cylinder as a core of four blocks inside a ring of eight",
	Long: `
Meshes a cylinder about the z axis standing on the xy plane.

gomesh cylinder -r 1 --height 3 --nd 4 --ns 3 --nz 12 -o cylinder.msh`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var mo *MeshOptions
		if mo, err = readMeshFlags(cmd); err != nil {
			return
		}
		f := cmd.Flags()
		cy := &shapes.Cylinder{}
		cy.Radius, _ = f.GetFloat64("radius")
		cy.Height, _ = f.GetFloat64("height")
		cy.Ratio, _ = f.GetFloat64("ratio")
		cy.ND, _ = f.GetInt("nd")
		cy.NS, _ = f.GetInt("ns")
		cy.NZ, _ = f.GetInt("nz")
		cy.GR, _ = f.GetFloat64("gr")
		cy.GZ, _ = f.GetFloat64("gz")
		cy.BR, _ = f.GetBool("br")
		cy.BZ, _ = f.GetBool("bz")
		return RunShape(cy, mo)
	},
}

func init() {
	rootCmd.AddCommand(ShellCmd)
	f := ShellCmd.Flags()
	f.Float64("r0", 0.5, "inner radius")
	f.Float64("r1", 1, "outer radius")
	f.Int("nd", 4, "divisions along each cube face edge")
	f.Int("ns", 2, "divisions through the wall")
	f.Float64("gr", 1, "radial ratio of successive element sizes")
	f.Bool("br", false, "mirror the radial bias about the middle of the wall")
	addMeshFlags(ShellCmd)

	rootCmd.AddCommand(CylinderCmd)
	f = CylinderCmd.Flags()
	f.Float64P("radius", "r", 1, "radius")
	f.Float64("height", 1, "height")
	f.Float64("ratio", 0.5, "core size relative to the inscribed square")
	f.Int("nd", 4, "divisions along each core block side")
	f.Int("ns", 2, "divisions across the ring")
	f.Int("nz", 4, "divisions along z")
	f.Float64("gr", 1, "radial ratio of successive element sizes in the ring")
	f.Float64("gz", 1, "ratio of successive element sizes along z")
	f.Bool("br", false, "mirror the radial bias")
	f.Bool("bz", false, "mirror the z bias")
	addMeshFlags(CylinderCmd)
}
