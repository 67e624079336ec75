package refine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tidewave/wavemesh/config"
	"github.com/tidewave/wavemesh/internal/terraintest"
	"github.com/tidewave/wavemesh/refine"
	"github.com/tidewave/wavemesh/wavefront"
)

func buildStep(xs, ys, ts []float32, energy float32) *wavefront.Step {
	var rays wavefront.Rays
	for i := range xs {
		rays.Append(xs[i], ys[i], 1, 0, ts[i], energy, 0, 0, 0, 0)
	}
	return &wavefront.Step{Rays: rays, Segments: []wavefront.Segment{{Start: 0, Count: len(xs)}}}
}

func TestSegmentMergesNearDuplicateRays(t *testing.T) {
	terr := terraintest.OpenOcean(-100)
	cfg := config.Default()
	// Two rays 0.01 ft apart, well under MergeRatio*VertexSpacing, and a
	// total span short enough that the surviving pair does not also split.
	step := buildStep([]float32{0, 0.01, 20}, []float32{0, 0, 0}, []float32{0, 0.001, 1}, 1)

	var out wavefront.Rays
	newSeg, counts := refine.Segment(step, step.Segments[0], terr, cfg, 1, &out, nil)

	assert.Equal(t, 1, counts.Merged)
	assert.Equal(t, 2, newSeg.Count)
}

func TestSegmentSplitsWidelySpacedRays(t *testing.T) {
	terr := terraintest.OpenOcean(-100)
	cfg := config.Default()
	cfg.VertexSpacing = 20
	// 1000 ft apart, far beyond any split threshold.
	step := buildStep([]float32{0, 1000}, []float32{0, 0}, []float32{0, 1}, 1)

	var out wavefront.Rays
	newSeg, counts := refine.Segment(step, step.Segments[0], terr, cfg, 1, &out, nil)

	assert.Equal(t, 1, counts.Split)
	assert.Equal(t, 3, newSeg.Count)
	assert.InDelta(t, 500, out.X[newSeg.Start+1], 1e-3)
}

func TestSegmentNeverSplitsLowEnergyEndpoints(t *testing.T) {
	terr := terraintest.OpenOcean(-100)
	cfg := config.Default()
	step := buildStep([]float32{0, 1000}, []float32{0, 0}, []float32{0, 1}, config.MinSplitEnergy/2)

	var out wavefront.Rays
	_, counts := refine.Segment(step, step.Segments[0], terr, cfg, 1, &out, nil)

	assert.Equal(t, 0, counts.Split)
}
