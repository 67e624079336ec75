// Package diffraction implements amplitude assignment and the lateral
// diffusion stencil (C7) that runs once per freshly refined step, after
// amplitude assignment and before decimation.
//
// Grounded on the explicit diffusion / smoothing passes in
// github.com/arl/go-detour/recast/regionmerge.go-style iterative local
// averaging: a small number of fixed iterations over a 1-D neighbour
// stencil, same shape as the region-smoothing sweeps in recast, adapted
// from region labels to continuous amplitude values.
package diffraction

import (
	"github.com/arl/math32"

	"github.com/tidewave/wavemesh/config"
	"github.com/tidewave/wavemesh/physics"
	"github.com/tidewave/wavemesh/wavefront"
)

// AssignAmplitude sets the amplitude field of every ray in step from its
// surviving energy, the shoaling coefficient at its depth, and a
// divergence correction comparing the ray's local spacing to the spacing
// it would have if the wavefront had not converged or spread.
func AssignAmplitude(step *wavefront.Step, k float32, cfg config.BuildConfig, initialDeltaT float32) {
	r := &step.Rays
	for _, seg := range step.Segments {
		for i := seg.Start; i < seg.End(); i++ {
			localSpacing := centeredSpacing(r.X, r.Y, i, seg)
			deltaTLocal := centeredDelta(r.T, i, seg)
			expectedSpacing := deltaTLocal * cfg.VertexSpacing / initialDeltaT

			divergence := float32(1)
			if localSpacing > 0 {
				divergence = math32.Sqrt(expectedSpacing / localSpacing)
			}
			divergence = math32.Min(divergence, config.MaxAmplification)

			ks := physics.ShoalingCoefficient(k, r.Depth[i])
			r.Amplitude[i] = r.Energy[i] * ks * divergence
		}
	}
}

// centeredSpacing returns the average Euclidean distance from ray i to its
// immediate neighbours within seg, one-sided at the segment's ends.
func centeredSpacing(xs, ys []float32, i int, seg wavefront.Segment) float32 {
	var sum float32
	var n int
	if i > seg.Start {
		dx, dy := xs[i]-xs[i-1], ys[i]-ys[i-1]
		sum += math32.Sqrt(dx*dx + dy*dy)
		n++
	}
	if i < seg.End()-1 {
		dx, dy := xs[i+1]-xs[i], ys[i+1]-ys[i]
		sum += math32.Sqrt(dx*dx + dy*dy)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float32(n)
}

// centeredDelta is centeredSpacing's analogue over the parametric t axis.
func centeredDelta(t []float32, i int, seg wavefront.Segment) float32 {
	var sum float32
	var n int
	if i > seg.Start {
		sum += math32.Abs(t[i] - t[i-1])
		n++
	}
	if i < seg.End()-1 {
		sum += math32.Abs(t[i+1] - t[i])
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float32(n)
}

// Run applies cfg.DiffractionIterations explicit diffusion passes to
// the amplitude field of every segment in step. A ray within half an
// initial Δt of the overall domain edge (t ≈ 0 or t ≈ 1) is treated as
// open ocean (ghost amplitude 1.0) on its outward side; any other segment
// endpoint is a shadow edge (ghost amplitude 0).
func Run(step *wavefront.Step, k float32, cfg config.BuildConfig, initialDeltaT float32) {
	diffusivity := math32.Min(0.5, cfg.StepSize/(2*k*cfg.VertexSpacing*cfg.VertexSpacing))
	edgeBand := 0.5 * initialDeltaT

	for _, seg := range step.Segments {
		if seg.Count < 2 {
			continue
		}
		a := make([]float32, seg.Count)
		copy(a, step.Rays.Amplitude[seg.Start:seg.End()])
		t := step.Rays.T[seg.Start : seg.End()]

		for iter := 0; iter < cfg.DiffractionIterations; iter++ {
			next := make([]float32, seg.Count)
			for i := 0; i < seg.Count; i++ {
				left := ghostOrValue(a, t, i-1, edgeBand)
				right := ghostOrValue(a, t, i+1, edgeBand)
				next[i] = math32.Max(0, a[i]+diffusivity*(left-2*a[i]+right))
			}
			a = next
		}
		copy(step.Rays.Amplitude[seg.Start:seg.End()], a)
	}
}

// ghostOrValue returns a[i] when i is a valid in-segment index, or the
// appropriate ghost value (1.0 near the domain edge, 0 at a shadow edge)
// when i has run off either end of the segment.
func ghostOrValue(a, t []float32, i int, edgeBand float32) float32 {
	if i >= 0 && i < len(a) {
		return a[i]
	}
	var edgeT float32
	if i < 0 {
		edgeT = t[0]
	} else {
		edgeT = t[len(t)-1]
	}
	if edgeT < edgeBand || edgeT > 1-edgeBand {
		return 1.0
	}
	return 0.0
}
