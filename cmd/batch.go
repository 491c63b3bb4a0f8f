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
	"path/filepath"
	"runtime"
	"strings"

	"github.com/notargets/gomesh/logger"
	"github.com/notargets/gomesh/mesh"
	"github.com/notargets/gomesh/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// BatchCmd represents the batch command
var BatchCmd = &cobra.Command{
	Use:   "batch file.yaml...",
	Short: "Mesh many YAML input files concurrently",
	Long: `
Meshes each input file on its own, spreading the files over --jobs goroutines, and writes
<name>.msh next to each input, or into --outDir.

gomesh batch -j 4 -d out parts/*.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jobs, _ := cmd.Flags().GetInt("jobs")
		outDir, _ := cmd.Flags().GetString("outDir")
		results, err := RunBatch(args, outDir, jobs)
		if err != nil {
			return err
		}
		for _, r := range results {
			fmt.Printf("%s -> %s: %d nodes, %d elements\n", r.Input, r.Output, r.Nodes, r.Elements)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(BatchCmd)
	BatchCmd.Flags().IntP("jobs", "j", runtime.NumCPU(), "number of files meshed at once")
	BatchCmd.Flags().StringP("outDir", "d", "", "directory for the meshes, next to the inputs when empty")
}

// BatchResult records one meshed input
type BatchResult struct {
	Input, Output   string
	Worker          int
	Nodes, Elements int
}

// RunBatch meshes every file, stopping each worker at its first failure. Results come back in input order.
func RunBatch(files []string, outDir string, jobs int) (results []BatchResult, err error) {
	if jobs < 1 {
		jobs = 1
	}
	if jobs > len(files) {
		jobs = len(files)
	}
	pm := utils.NewPartitionMap(jobs, len(files))
	results = make([]BatchResult, len(files))
	err = pm.ParallelFor(func(bn, kMin, kMax int) (err error) {
		var (
			log   = logger.Log.With(zap.Int("worker", bn))
			local = make([]BatchResult, pm.GetBucketDimension(bn))
		)
		for k := kMin; k < kMax; k++ {
			kLocal, nLocal, _ := pm.GetLocalK(k)
			log.Debug("meshing", zap.String("input", files[k]), zap.Int("file", kLocal+1), zap.Int("of", nLocal))
			if local[kLocal], err = meshFile(files[k], outDir, log); err != nil {
				return fmt.Errorf("%s: %w", files[k], err)
			}
			local[kLocal].Worker = bn
		}
		for kLocal, r := range local {
			results[pm.GetGlobalK(kLocal, bn)] = r
		}
		return
	})
	if err != nil {
		return nil, err
	}
	return
}

func meshFile(path, outDir string, log *zap.Logger) (r BatchResult, err error) {
	ip, err := readInput(path)
	if err != nil {
		return
	}
	kind := mesh.Hex8
	if ip.ElementType != "" {
		if kind, err = mesh.ParseElementType(ip.ElementType); err != nil {
			return
		}
	}
	res, err := buildShape(ip, kind, false, log.With(zap.String("input", path)))
	if err != nil {
		return
	}
	out := strings.TrimSuffix(path, filepath.Ext(path)) + ".msh"
	if outDir != "" {
		out = filepath.Join(outDir, filepath.Base(out))
	}
	if err = writeMesh(res.Mesh, out); err != nil {
		return
	}
	r = BatchResult{Input: path, Output: out, Nodes: res.Mesh.NumVertices, Elements: res.Mesh.NumElements}
	return
}
