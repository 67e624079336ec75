// Package orchestrator wires the bounds solver, marcher, refinement,
// diffraction, decimation and triangulation stages into one fixed
// pipeline (C10), and collects a profiling record for the build.
//
// Grounded on github.com/arl/go-detour/recast/solomeshbuilder.go's
// top-level Build method: a single function that runs a fixed sequence of
// named stages over one input, timing each with a *recast.BuildContext
// and returning the composed result plus diagnostics.
package orchestrator

import (
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/tidewave/wavemesh/bounds"
	"github.com/tidewave/wavemesh/config"
	"github.com/tidewave/wavemesh/decimate"
	"github.com/tidewave/wavemesh/diag"
	"github.com/tidewave/wavemesh/diffraction"
	"github.com/tidewave/wavemesh/march"
	"github.com/tidewave/wavemesh/mesh"
	"github.com/tidewave/wavemesh/physics"
	"github.com/tidewave/wavemesh/refine"
	"github.com/tidewave/wavemesh/terrain"
	"github.com/tidewave/wavemesh/triangulate"
	"github.com/tidewave/wavemesh/waveerr"
	"github.com/tidewave/wavemesh/wavefront"
	"github.com/tidewave/wavemesh/wavesource"
)

// Input is everything one build needs.
type Input struct {
	Source     wavesource.WaveSource
	Terrain    *terrain.Terrain
	TideHeight float32
	Cfg        config.BuildConfig
}

// Profile is the per-build profiling record: per-stage wall-clock time,
// vertex/triangle counts before and after decimation, and refinement
// counts.
type Profile struct {
	StageDurations                map[diag.Stage]time.Duration
	VertexCountBeforeDecimation   int
	VertexCountAfterDecimation    int
	TriangleCountBeforeDecimation int
	TriangleCountAfterDecimation  int
	MergeCount, SplitCount        int
	StepCount                     int
}

// Build runs the fixed pipeline for one (waveSource, terrain) pair.
func Build(in Input, d *diag.Context) (mesh.Mesh, Profile, error) {
	cfg := in.Cfg.WithDefaults()
	if in.Source.Wavelength <= 0 {
		return mesh.Mesh{}, Profile{}, waveerr.New(waveerr.NumericDegenerate, "wavelength must be > 0, got %g", in.Source.Wavelength)
	}
	if in.Terrain == nil {
		return mesh.Mesh{}, Profile{}, waveerr.New(waveerr.TerrainInvalid, "terrain is nil")
	}

	lambda := in.Source.Wavelength
	theta := in.Source.Direction
	k := physics.WaveNumber(lambda)
	phasePerStep := k * cfg.StepSize

	d.StartTimer(diag.StageBounds)
	b := bounds.Solve(in.Terrain, theta, lambda, cfg)
	d.StopTimer(diag.StageBounds)

	initial := march.InitialWavefront(b, theta, cfg)
	initialDeltaT := float32(1)
	if n := initial.Rays.Len(); n > 1 {
		initialDeltaT = 1 / float32(n-1)
	}

	marcher := &march.Marcher{Terrain: in.Terrain, Bounds: b, K: k, Lambda: lambda, Cfg: cfg}
	steps := []wavefront.Step{initial}

	span := b.MaxProj - b.MinProj
	stepCap := int(span/(cfg.StepSize*config.MinSpeedFactor)) + 64

	var mergeCount, splitCount int
	cur := initial
	for i := 0; i < stepCap; i++ {
		d.StartTimer(diag.StageMarch)
		res := marcher.Step(cur)
		d.StopTimer(diag.StageMarch)
		if !res.Alive {
			break
		}

		var refined wavefront.Rays
		refinedSegs := make([]wavefront.Segment, 0, len(res.Next.Segments))
		for _, seg := range res.Next.Segments {
			newSeg, counts := refine.Segment(&res.Next, seg, in.Terrain, cfg, initialDeltaT, &refined, d)
			refinedSegs = append(refinedSegs, newSeg)
			mergeCount += counts.Merged
			splitCount += counts.Split
		}
		next := wavefront.Step{Rays: refined, Segments: refinedSegs}

		d.StartTimer(diag.StageAmplitude)
		diffraction.AssignAmplitude(&next, k, cfg, initialDeltaT)
		d.StopTimer(diag.StageAmplitude)

		d.StartTimer(diag.StageDiffraction)
		diffraction.Run(&next, k, cfg, initialDeltaT)
		d.StopTimer(diag.StageDiffraction)

		steps = append(steps, next)
		cur = next

		if res.MarchedProj >= span {
			break
		}
	}

	rawRows := make([]decimate.Row, len(steps))
	for i, s := range steps {
		rawRows[i] = decimate.Row{Step: s, StepIndex: int32(i)}
	}
	rawMesh := triangulate.Build(rawRows, k, phasePerStep)

	d.StartTimer(diag.StageDecimate)
	rows := decimate.Decimate(steps, lambda, k, phasePerStep, cfg, d)
	d.StopTimer(diag.StageDecimate)

	d.StartTimer(diag.StageTriangulate)
	tm := triangulate.Build(rows, k, phasePerStep)
	d.StopTimer(diag.StageTriangulate)

	out := mesh.FromTriangulated(tm, b.CoverageQuad())

	profile := Profile{
		StageDurations: map[diag.Stage]time.Duration{
			diag.StageBounds:      d.Elapsed(diag.StageBounds),
			diag.StageMarch:       d.Elapsed(diag.StageMarch),
			diag.StageAmplitude:   d.Elapsed(diag.StageAmplitude),
			diag.StageDiffraction: d.Elapsed(diag.StageDiffraction),
			diag.StageDecimate:    d.Elapsed(diag.StageDecimate),
			diag.StageTriangulate: d.Elapsed(diag.StageTriangulate),
		},
		VertexCountBeforeDecimation:   len(rawMesh.Vertices),
		VertexCountAfterDecimation:    len(tm.Vertices),
		TriangleCountBeforeDecimation: len(rawMesh.Indices) / 3,
		TriangleCountAfterDecimation:  len(tm.Indices) / 3,
		MergeCount:                    mergeCount,
		SplitCount:                    splitCount,
		StepCount:                     len(steps),
	}
	return out, profile, nil
}

// Summary aggregates build-time statistics across a batch of builds, for
// the bench command.
type Summary struct {
	Count               int
	MeanBuildMs         float64
	StdDevBuildMs       float64
	MeanTrianglesAfter  float64
	MeanDecimationRatio float64
}

// Summarize computes aggregate statistics over a batch of profiles and
// their wall-clock build durations, using gonum's floats package the way
// a benchmark harness reduces a slice of raw samples to mean/stddev.
func Summarize(profiles []Profile, buildTimes []time.Duration) Summary {
	if len(profiles) == 0 {
		return Summary{}
	}

	ms := make([]float64, len(buildTimes))
	for i, d := range buildTimes {
		ms[i] = float64(d.Milliseconds())
	}
	triangles := make([]float64, len(profiles))
	ratios := make([]float64, len(profiles))
	for i, p := range profiles {
		triangles[i] = float64(p.TriangleCountAfterDecimation)
		if p.TriangleCountBeforeDecimation > 0 {
			ratios[i] = float64(p.TriangleCountAfterDecimation) / float64(p.TriangleCountBeforeDecimation)
		}
	}

	mean := floats.Sum(ms) / float64(len(ms))
	var variance float64
	if len(ms) > 1 {
		variance = floats.Sum(apply(ms, func(v float64) float64 { return (v - mean) * (v - mean) })) / float64(len(ms)-1)
	}

	return Summary{
		Count:               len(profiles),
		MeanBuildMs:         mean,
		StdDevBuildMs:       sqrt(variance),
		MeanTrianglesAfter:  floats.Sum(triangles) / float64(len(triangles)),
		MeanDecimationRatio: floats.Sum(ratios) / float64(len(ratios)),
	}
}

func apply(xs []float64, f func(float64) float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = f(x)
	}
	return out
}

func sqrt(v float64) float64 {
	if v < 0 {
		return 0
	}
	lo, hi := 0.0, v+1
	for i := 0; i < 60; i++ {
		mid := (lo + hi) / 2
		if mid*mid > v {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo
}
