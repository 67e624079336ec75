// Package refine implements adaptive refinement (C6): merging rays that
// have collapsed too close together and splitting rays that have spread
// too far apart, once per segment per freshly marched step.
//
// Grounded on github.com/arl/go-detour/recast/contour.go's
// simplifyContour, which walks a polyline once and both drops
// near-duplicate points and inserts points where the polyline deviates
// from its simplification beyond a tolerance — the same "single forward
// pass, local merge-or-split decision" shape used here, generalized from
// a fixed tolerance to the t-scaled split threshold the wavefront needs.
package refine

import (
	stdmath "math"

	"github.com/arl/math32"

	"github.com/tidewave/wavemesh/config"
	"github.com/tidewave/wavemesh/diag"
	"github.com/tidewave/wavemesh/terrain"
	"github.com/tidewave/wavemesh/wavefront"
)

// Counts tallies how many merges and splits a Segment call performed, for
// the orchestrator's profiling record.
type Counts struct {
	Merged int
	Split  int
}

// Segment refines one segment of rays: it reads the segment's rays
// ([seg.Start, seg.End()) in step.Rays) and appends the refined ray
// sequence to out, returning the new segment's (start, count) and
// refinement counts.
//
// initialDeltaT is the uniform Δt of the build's very first wavefront;
// deltaT scaling in the split threshold is always relative to it, so that
// rays keep requiring larger gaps the more they have already been split.
func Segment(step *wavefront.Step, seg wavefront.Segment, t *terrain.Terrain, cfg config.BuildConfig, initialDeltaT float32, out *wavefront.Rays, d *diag.Context) (wavefront.Segment, Counts) {
	var counts Counts
	outStart := out.Len()

	src := step.Rays
	kept := make([]int, 0, seg.Count)
	kept = append(kept, seg.Start)
	for i := seg.Start + 1; i < seg.End(); i++ {
		last := kept[len(kept)-1]
		dx := src.X[i] - src.X[last]
		dy := src.Y[i] - src.Y[last]
		dist := math32.Sqrt(dx*dx + dy*dy)
		if dist < config.MergeRatio*cfg.VertexSpacing {
			counts.Merged++
			continue // drop the later ray i
		}
		kept = append(kept, i)
	}

	out.CopyRay(&src, kept[0])
	splitBudget := config.MaxSplitsPerSegment
	for k := 1; k < len(kept); k++ {
		a, b := kept[k-1], kept[k]
		if splitBudget > 0 && out.Len()-outStart < cfg.MaxSegmentPoints {
			if mid, ok := trySplit(&src, a, b, t, cfg, initialDeltaT); ok {
				out.Append(mid.x, mid.y, mid.dx, mid.dy, mid.t, mid.energy, mid.breaking, mid.depth, mid.amplitude, mid.origStep)
				counts.Split++
				splitBudget--
			}
		}
		out.CopyRay(&src, b)
	}

	if d != nil && (splitBudget == 0 || out.Len()-outStart >= cfg.MaxSegmentPoints) {
		d.Warnf(diag.StageMarch, out.Len()-outStart, true, "refinement cap reached in segment")
	}

	return wavefront.Segment{Start: outStart, Count: out.Len() - outStart}, counts
}

type midpoint struct {
	x, y, dx, dy, t, energy, breaking, depth, amplitude float32
	origStep                                            int32
}

// trySplit decides whether to insert a midpoint between rays a and b of
// src, returning it when the physical gap exceeds the t-scaled threshold.
func trySplit(src *wavefront.Rays, a, b int, t *terrain.Terrain, cfg config.BuildConfig, initialDeltaT float32) (midpoint, bool) {
	if src.Energy[a] < config.MinSplitEnergy || src.Energy[b] < config.MinSplitEnergy {
		return midpoint{}, false
	}

	deltaT := src.T[b] - src.T[a]
	if deltaT <= 0 {
		return midpoint{}, false
	}

	dx := src.X[b] - src.X[a]
	dy := src.Y[b] - src.Y[a]
	dist := math32.Sqrt(dx*dx + dy*dy)

	ratio := initialDeltaT / deltaT
	effectiveRatio := config.BaseSplitRatio * math32.Pow(ratio, log2(config.SplitEscalation))
	effectiveRatio = math32.Min(effectiveRatio, config.MaxSplitRatio)
	threshold := effectiveRatio * cfg.VertexSpacing

	if dist <= threshold {
		return midpoint{}, false
	}

	mx := (src.X[a] + src.X[b]) / 2
	my := (src.Y[a] + src.Y[b]) / 2
	mt := (src.T[a] + src.T[b]) / 2
	mdx := (src.DX[a] + src.DX[b]) / 2
	mdy := (src.DY[a] + src.DY[b]) / 2
	norm := math32.Sqrt(mdx*mdx + mdy*mdy)
	if norm > 0 {
		mdx, mdy = mdx/norm, mdy/norm
	}
	energy := (src.Energy[a] + src.Energy[b]) / 2
	breaking := math32.Max(src.Breaking[a], src.Breaking[b])
	amplitude := (src.Amplitude[a] + src.Amplitude[b]) / 2
	h := t.Height(mx, my)
	depth := math32.Max(0, -h)
	origStep := src.OrigStep[a]
	if src.OrigStep[b] > origStep {
		origStep = src.OrigStep[b]
	}

	return midpoint{mx, my, mdx, mdy, mt, energy, breaking, depth, amplitude, origStep}, true
}

// log2 is implemented against the float64 standard library since math32
// does not export logarithms (see physics.tanh for the same pattern).
func log2(x float32) float32 {
	return float32(stdmath.Log2(float64(x)))
}
