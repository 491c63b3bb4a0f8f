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

	perf "github.com/hodgesds/perf-utils"
	"github.com/mitchellh/go-homedir"
	"github.com/notargets/gomesh/logger"
	"github.com/notargets/gomesh/mesh"
	"github.com/notargets/gomesh/multiblock"
	"github.com/notargets/gomesh/shapes"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// MeshOptions are the output settings shared by the mesh producing commands
type MeshOptions struct {
	Kind    mesh.ElementType
	Output  string
	Profile string
	Perf    bool
	Stats   bool
}

func addMeshFlags(c *cobra.Command) {
	c.Flags().StringP("element", "e", "Hex8", "element type: Hex8, Hex20 or Hex27")
	c.Flags().StringP("output", "o", "", "Gmsh 2.2 output file, stdout when empty")
	c.Flags().String("profile", "", "profile the build, cpu or mem, written to the current directory")
	c.Flags().Bool("perf", false, "count the hardware instructions spent building the mesh (Linux)")
	c.Flags().Bool("stats", false, "print mesh statistics to stderr")
}

func readMeshFlags(c *cobra.Command) (mo *MeshOptions, err error) {
	mo = &MeshOptions{}
	var name string
	if name, err = c.Flags().GetString("element"); err != nil {
		return
	}
	if mo.Kind, err = mesh.ParseElementType(name); err != nil {
		return
	}
	mo.Output, _ = c.Flags().GetString("output")
	mo.Profile, _ = c.Flags().GetString("profile")
	mo.Perf, _ = c.Flags().GetBool("perf")
	mo.Stats, _ = c.Flags().GetBool("stats")
	return
}

// RunShape builds the mesh of sh and writes it where mo says
func RunShape(sh shapes.Shape, mo *MeshOptions) (err error) {
	switch mo.Profile {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	default:
		return fmt.Errorf("unknown profile %q, use cpu or mem", mo.Profile)
	}
	var res *multiblock.Result
	if res, err = buildShape(sh, mo.Kind, mo.Perf, logger.Log); err != nil {
		return
	}
	if mo.Stats {
		res.Mesh.PrintStatistics(os.Stderr)
	}
	return writeMesh(res.Mesh, mo.Output)
}

func buildShape(sh shapes.Shape, kind mesh.ElementType, count bool, log *zap.Logger) (res *multiblock.Result, err error) {
	build := func() error {
		res, err = shapes.Build(sh, kind, log)
		return err
	}
	if !count {
		build()
		return
	}
	pv, perr := perf.CPUInstructions(build)
	switch {
	case err != nil:
	case perr != nil:
		log.Warn("instruction count unavailable", zap.Error(perr))
		if res == nil {
			build()
		}
	default:
		log.Info("build cost", zap.Uint64("instructions", pv.Value))
	}
	return
}

func writeMesh(m *mesh.Mesh, output string) (err error) {
	if output == "" {
		return m.WriteGmsh22(os.Stdout)
	}
	if output, err = homedir.Expand(output); err != nil {
		return
	}
	if err = m.WriteGmsh22File(output); err != nil {
		return
	}
	logger.Log.Info("mesh written", zap.String("file", output),
		zap.Int("nodes", m.NumVertices), zap.Int("elements", m.NumElements))
	return
}
