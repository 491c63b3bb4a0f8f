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
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/notargets/gomesh/InputParameters"
	"github.com/notargets/gomesh/mesh"
	"github.com/spf13/cobra"
)

const exampleInput = `
########################################
Title: "Two blocks"
ElementType: Hex20
Nodes: [[0,0,0],[1,0,0],[2,0,0],[0,1,0],[1,1,0],[2,1,0],
        [0,0,1],[1,0,1],[2,0,1],[0,1,1],[1,1,1],[2,1,1]]
Blocks:
  - Nodes: [0,1,4,3,6,7,10,9]
    Divisions: [4,4,4]
    Bias: [1.2,1,1]
    FaceIDs: [-1,-1,-1,0,-1,-1]
  - Nodes: [1,2,5,4,7,8,11,10]
    Divisions: [4,4,4]
    FaceIDs: [-1,1,-1,-1,-1,-1]
Edges:
  - Nodes: [0,1]
    ID: 0
Faces:
  - Block: 1
    Face: 5
    ID: 2
    SmoothingID: 7
# Box, SphereShell or Cylinder may replace Nodes and Blocks:
# Box: {Width: 2, Height: 1, Depth: 1, NX: 8, NY: 4, NZ: 4}
########################################
`

// MeshCmd represents the mesh command
var MeshCmd = &cobra.Command{
	Use:   "mesh",
	Short: "Mesh a block skeleton read from a YAML input file",
	Long: `
Reads the skeleton nodes, blocks, curved edges and boundary groups from a YAML file
and writes the hexahedral mesh in Gmsh 2.2 format.

gomesh mesh -I skeleton.yaml -o part.msh`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			mo *MeshOptions
			ip *InputParameters.MeshInput
		)
		inputFile, _ := cmd.Flags().GetString("inputFile")
		if len(inputFile) == 0 {
			fmt.Printf("Example File:%s\n", exampleInput)
			return fmt.Errorf("must supply an input file (-I, --inputFile) in YAML format")
		}
		if mo, err = readMeshFlags(cmd); err != nil {
			return
		}
		if ip, err = readInput(inputFile); err != nil {
			return
		}
		if ip.ElementType != "" && !cmd.Flags().Changed("element") {
			if mo.Kind, err = mesh.ParseElementType(ip.ElementType); err != nil {
				return fmt.Errorf("%s: %w", inputFile, err)
			}
		}
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			ip.Print()
		}
		return RunShape(ip, mo)
	},
}

func init() {
	rootCmd.AddCommand(MeshCmd)
	MeshCmd.Flags().StringP("inputFile", "I", "", "YAML file describing the block skeleton")
	MeshCmd.Flags().BoolP("verbose", "v", false, "print the parsed input")
	addMeshFlags(MeshCmd)
}

func readInput(path string) (ip *InputParameters.MeshInput, err error) {
	var data []byte
	if path, err = homedir.Expand(path); err != nil {
		return
	}
	if data, err = os.ReadFile(path); err != nil {
		return
	}
	ip = &InputParameters.MeshInput{}
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return
}
