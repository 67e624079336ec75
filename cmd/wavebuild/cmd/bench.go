package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tidewave/wavemesh/orchestrator"
	"github.com/tidewave/wavemesh/worker"
)

var benchCmd = &cobra.Command{
	Use:   "bench SCENARIO",
	Short: "drive the worker pool over every wave source in a scenario",
	Long: `Bench submits every wave source in SCENARIO to the build worker pool
concurrently and prints aggregate timing and any failures. This is a thin
development aid, not the project's benchmark harness.`,
	Args: cobra.ExactArgs(1),
	Run:  doBench,
}

var benchCfgVal string

func init() {
	RootCmd.AddCommand(benchCmd)
	benchCmd.Flags().StringVar(&benchCfgVal, "config", "", "build settings YAML (optional)")
}

func doBench(cmd *cobra.Command, args []string) {
	scenarioPath := args[0]
	check(fileExists(scenarioPath))

	var sc scenario
	check(unmarshalYAMLFile(scenarioPath, &sc))
	if len(sc.Sources) == 0 {
		check(fmt.Errorf("scenario %q has no wave sources", scenarioPath))
	}

	var cfg orchestratorConfig
	if benchCfgVal != "" {
		check(unmarshalYAMLFile(benchCfgVal, &cfg))
	}

	terra := sc.buildTerrain()
	pool := worker.New(context.Background())
	defer pool.Stop()

	reqs := make([]worker.Request, len(sc.Sources))
	for i, src := range sc.Sources {
		reqs[i] = worker.Request{
			RequestID: fmt.Sprintf("source-%d", i),
			Source:    src,
			Terrain:   terra,
			Cfg:       cfg.BuildConfig,
		}
	}

	start := time.Now()
	responses := pool.SubmitBatch(reqs)
	total := time.Since(start)

	ok := worker.Succeeded(responses)
	fmt.Printf("%d/%d builds succeeded in %v\n", len(ok), len(responses), total)
	for _, line := range worker.Failed(responses) {
		fmt.Println("  FAILED", line)
	}

	profiles := make([]orchestrator.Profile, 0, len(ok))
	times := make([]time.Duration, 0, len(ok))
	for _, r := range ok {
		profiles = append(profiles, orchestrator.Profile{
			TriangleCountAfterDecimation:  len(r.Indices) / 3,
			TriangleCountBeforeDecimation: len(r.Indices) / 3,
		})
		times = append(times, r.BuildTime)
	}
	summary := orchestrator.Summarize(profiles, times)
	fmt.Printf("mean build time: %.1fms (stddev %.1fms)\n", summary.MeanBuildMs, summary.StdDevBuildMs)
	fmt.Printf("mean triangles after decimation: %.1f\n", summary.MeanTrianglesAfter)
}
