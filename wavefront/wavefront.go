// Package wavefront is the shared struct-of-arrays data model (C4) for
// ray/segment/step state, threaded through march, refine, diffraction,
// decimate and triangulate.
//
// Grounded on github.com/arl/go-detour/recast/chunkytrimesh.go's
// convention of addressing shared buffers through flat (start, count)
// ranges (ChunkyTriMeshNode.I/N) rather than per-node allocation — a
// Segment here is exactly that kind of range into a Step's Rays.
package wavefront

import "github.com/arl/assertgo"

// Rays is one step's per-ray attribute arrays. All slices share one
// length invariant: every field has the same len() at all times.
type Rays struct {
	X, Y       []float32 // position
	DX, DY     []float32 // propagation direction, unit vector
	T          []float32 // parametric lateral label, in [0, 1]
	Energy     []float32 // surviving energy fraction, in [0, 1]
	Breaking   []float32 // breaking intensity, in [0, 1]
	Depth      []float32 // cached water depth at the current position
	Amplitude  []float32 // derived amplitude (set post-march)
	OrigStep   []int32   // the step index this ray's attributes were first computed at (for decimation re-affine)
}

// Len returns the number of rays.
func (r *Rays) Len() int { return len(r.X) }

// Append adds one ray to the end of r.
func (r *Rays) Append(x, y, dx, dy, t, energy, breaking, depth, amplitude float32, origStep int32) {
	r.X = append(r.X, x)
	r.Y = append(r.Y, y)
	r.DX = append(r.DX, dx)
	r.DY = append(r.DY, dy)
	r.T = append(r.T, t)
	r.Energy = append(r.Energy, energy)
	r.Breaking = append(r.Breaking, breaking)
	r.Depth = append(r.Depth, depth)
	r.Amplitude = append(r.Amplitude, amplitude)
	r.OrigStep = append(r.OrigStep, origStep)
	n := len(r.X)
	assert.True(len(r.Y) == n && len(r.DX) == n && len(r.DY) == n && len(r.T) == n &&
		len(r.Energy) == n && len(r.Breaking) == n && len(r.Depth) == n &&
		len(r.Amplitude) == n && len(r.OrigStep) == n,
		"wavefront.Rays attribute arrays diverged in length")
}

// CopyRay copies ray i from src onto the end of r.
func (r *Rays) CopyRay(src *Rays, i int) {
	r.Append(src.X[i], src.Y[i], src.DX[i], src.DY[i], src.T[i],
		src.Energy[i], src.Breaking[i], src.Depth[i], src.Amplitude[i], src.OrigStep[i])
}

// GatherInto appends, in order, the rays at indices into dst: a single
// call for a copy-with-remap instead of one hand-written gather loop per
// attribute. decimate itself copies ray by ray with CopyRay.
func (r *Rays) GatherInto(dst *Rays, indices []int) {
	for _, i := range indices {
		dst.CopyRay(r, i)
	}
}

// Segment is a contiguous, ordered range of alive rays within one Step,
// strictly increasing in T.
type Segment struct {
	Start, Count int
}

// End returns the exclusive end index of the segment.
func (s Segment) End() int { return s.Start + s.Count }

// Step is one wavefront: an ordered list of disjoint Segments over a
// shared Rays buffer.
type Step struct {
	Rays     Rays
	Segments []Segment
}

// NumRays returns the total number of alive rays across all segments of
// the step (may be less than s.Rays.Len() if Rays holds scratch beyond the
// segment ranges, which current stages do not do, but callers should not
// assume equality).
func (s *Step) NumRays() int {
	n := 0
	for _, seg := range s.Segments {
		n += seg.Count
	}
	return n
}
