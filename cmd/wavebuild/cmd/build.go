package cmd

import (
	"encoding/binary"
	"fmt"
	"io/ioutil"
	"math"

	"github.com/spf13/cobra"

	"github.com/tidewave/wavemesh/diag"
	"github.com/tidewave/wavemesh/orchestrator"
)

var buildCmd = &cobra.Command{
	Use:   "build SCENARIO OUTFILE",
	Short: "build one surf mesh from a scenario file",
	Long: `Build runs one orchestrator pass over the first wave source in
SCENARIO against its terrain, writes the packed vertex/index buffers to
OUTFILE, and prints the profiling record to standard output.`,
	Args: cobra.ExactArgs(2),
	Run:  doBuild,
}

var buildCfgVal string

func init() {
	RootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVar(&buildCfgVal, "config", "", "build settings YAML (optional, defaults used if omitted)")
}

func doBuild(cmd *cobra.Command, args []string) {
	scenarioPath, outPath := args[0], args[1]
	check(fileExists(scenarioPath))

	var sc scenario
	check(unmarshalYAMLFile(scenarioPath, &sc))
	if len(sc.Sources) == 0 {
		check(fmt.Errorf("scenario %q has no wave sources", scenarioPath))
	}

	var cfg orchestratorConfig
	if buildCfgVal != "" {
		check(unmarshalYAMLFile(buildCfgVal, &cfg))
	}

	in := sc.inputs(cfg)[0]
	d := diag.New(func(e diag.Event) { fmt.Printf("[%s] %s\n", e.Stage, e.Message) })

	m, profile, err := orchestrator.Build(in, d)
	check(err)

	check(writeMeshFile(outPath, m.Vertices, m.Indices))

	fmt.Printf("vertices: %d -> %d\n", profile.VertexCountBeforeDecimation, profile.VertexCountAfterDecimation)
	fmt.Printf("triangles: %d -> %d\n", profile.TriangleCountBeforeDecimation, profile.TriangleCountAfterDecimation)
	fmt.Printf("steps: %d  merges: %d  splits: %d\n", profile.StepCount, profile.MergeCount, profile.SplitCount)
	for stage, d := range profile.StageDurations {
		fmt.Printf("  %-12s %v\n", stage, d)
	}
}

// writeMeshFile packs vertices and indices into a small flat binary file:
// vertexCount uint32, indexCount uint32, then the vertex buffer and index
// buffer as little-endian float32/uint32.
func writeMeshFile(path string, vertices []float32, indices []uint32) error {
	buf := make([]byte, 8+4*len(vertices)+4*len(indices))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(vertices)/6))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(indices)))
	off := 8
	for _, v := range vertices {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
		off += 4
	}
	for _, idx := range indices {
		binary.LittleEndian.PutUint32(buf[off:off+4], idx)
		off += 4
	}
	return ioutil.WriteFile(path, buf, 0644)
}
