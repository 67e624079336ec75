// Package decimate implements the two-phase row and vertex decimation
// stage (C8): dropping whole wavefront steps that are accurately
// recoverable by interpolating their surviving neighbours, then
// collapsing near-collinear runs of vertices within each surviving row.
//
// Grounded on github.com/arl/go-detour/detour/nodequeue.go's hand-rolled
// binary min-heap (bubbleUp/trickleDown over a flat slice, keyed on
// Node.Total): the row-removal priority queue here reuses exactly that
// shape, keyed on the row's maximum normalised interpolation error
// instead of a path cost, plus a version counter per row so that a stale
// heap entry left over from a row whose neighbours have since changed is
// detected and discarded lazily at pop time rather than hunted down and
// removed from the middle of the heap.
package decimate

import (
	"sort"

	"github.com/arl/assertgo"
	"github.com/arl/math32"

	"github.com/tidewave/wavemesh/config"
	"github.com/tidewave/wavemesh/diag"
	"github.com/tidewave/wavemesh/wavefront"
)

// Row is one surviving wavefront step, tagged with the step index it was
// originally computed at (needed to recompute phase correctly after rows
// in between have been dropped).
type Row struct {
	Step      wavefront.Step
	StepIndex int32
}

// Decimate runs row decimation followed by vertex decimation over steps,
// returning the reduced rows.
func Decimate(steps []wavefront.Step, lambda, k, phasePerStep float32, cfg config.BuildConfig, d *diag.Context) []Row {
	rows := decimateRows(steps, lambda, k, phasePerStep, cfg, d)
	for i := range rows {
		rows[i].Step = decimateVertices(rows[i].Step, lambda, cfg.DecimationTolerance)
	}
	return rows
}

// --- Phase 1: row decimation ---

type heapEntry struct {
	score   float32
	row     int32
	version int32
}

type rowHeap struct {
	entries []heapEntry
}

func (h *rowHeap) push(e heapEntry) {
	h.entries = append(h.entries, heapEntry{})
	h.bubbleUp(int32(len(h.entries)-1), e)
}

func (h *rowHeap) bubbleUp(i int32, e heapEntry) {
	parent := (i - 1) / 2
	for i > 0 && h.entries[parent].score > e.score {
		h.entries[i] = h.entries[parent]
		i = parent
		parent = (i - 1) / 2
	}
	h.entries[i] = e
}

func (h *rowHeap) trickleDown(i int32, e heapEntry) {
	n := int32(len(h.entries))
	child := i*2 + 1
	for child < n {
		if child+1 < n && h.entries[child].score > h.entries[child+1].score {
			child++
		}
		h.entries[i] = h.entries[child]
		i = child
		child = i*2 + 1
	}
	h.bubbleUp(i, e)
}

func (h *rowHeap) pop() (heapEntry, bool) {
	if len(h.entries) == 0 {
		return heapEntry{}, false
	}
	top := h.entries[0]
	last := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	if len(h.entries) > 0 {
		h.trickleDown(0, last)
	}
	assert.True(len(h.entries) == 0 || h.entries[0].score >= top.score,
		"rowHeap root must never be smaller than the entry just popped")
	return top, true
}

func decimateRows(steps []wavefront.Step, lambda, k, phasePerStep float32, cfg config.BuildConfig, d *diag.Context) []Row {
	m := len(steps)
	if m <= 2 {
		rows := make([]Row, m)
		for i := range steps {
			rows[i] = Row{Step: steps[i], StepIndex: int32(i)}
		}
		return rows
	}

	prev := make([]int32, m)
	next := make([]int32, m)
	removed := make([]bool, m)
	version := make([]int32, m)
	for i := range steps {
		prev[i] = int32(i - 1)
		next[i] = int32(i + 1)
	}
	prev[0] = -1
	next[m-1] = -1

	h := &rowHeap{}
	tryPush := func(row int32) {
		if row <= 0 || int(row) >= m-1 || removed[row] {
			return
		}
		score, ok := rowError(steps, row, prev[row], next[row], lambda, k, phasePerStep, cfg.DecimationTolerance)
		if ok {
			h.push(heapEntry{score: score, row: row, version: version[row]})
		}
	}
	for i := 1; i < m-1; i++ {
		tryPush(int32(i))
	}

	removedCount := 0
	for {
		e, ok := h.pop()
		if !ok {
			break
		}
		if removed[e.row] || version[e.row] != e.version {
			continue // stale entry: the row changed or is already gone
		}
		removed[e.row] = true
		removedCount++
		p, n := prev[e.row], next[e.row]
		if p >= 0 {
			next[p] = n
		}
		if n >= 0 {
			prev[n] = p
		}
		if p >= 0 {
			version[p]++
			tryPush(p)
		}
		if n >= 0 {
			version[n]++
			tryPush(n)
		}
	}

	if d != nil && removedCount > 0 {
		d.Progressf(diag.StageDecimate, "row decimation removed %d of %d steps", removedCount, m)
	}

	rows := make([]Row, 0, m-removedCount)
	for i := 0; i < m; i++ {
		if !removed[i] {
			rows = append(rows, Row{Step: steps[i], StepIndex: int32(i)})
		}
	}
	return rows
}

// rowError returns the maximum normalised error across every ray of row
// when reconstructed by affine interpolation between prevRow and nextRow,
// and whether that error is within tolerance (removable).
func rowError(steps []wavefront.Step, row, prevRow, nextRow int32, lambda, k, phasePerStep, tol float32) (float32, bool) {
	weight := float32(row-prevRow) / float32(nextRow-prevRow)
	rowStep := steps[row]
	prevStep := steps[prevRow]
	nextStep := steps[nextRow]

	var maxErr float32
	for _, seg := range rowStep.Segments {
		for i := seg.Start; i < seg.End(); i++ {
			t := rowStep.Rays.T[i]
			px, py, pdx, pdy, pamp, okP := sampleRow(prevStep, t)
			nx, ny, ndx, ndy, namp, okN := sampleRow(nextStep, t)
			if !okP || !okN {
				return 0, false
			}

			lx := lerp(px, nx, weight)
			ly := lerp(py, ny, weight)
			posErr := math32.Sqrt(sq(rowStep.Rays.X[i]-lx) + sq(rowStep.Rays.Y[i]-ly))
			posScore := posErr / (tol * lambda)

			ampLerp := lerp(pamp, namp, weight)
			ampScore := math32.Abs(rowStep.Rays.Amplitude[i]-ampLerp) / tol

			rowPhase := phaseAt(row, rowStep.Rays.X[i], rowStep.Rays.Y[i], rowStep.Rays.DX[i], rowStep.Rays.DY[i], k, phasePerStep)
			pPhase := phaseAt(prevRow, px, py, pdx, pdy, k, phasePerStep)
			nPhase := phaseAt(nextRow, nx, ny, ndx, ndy, k, phasePerStep)
			phaseLerp := lerp(pPhase, nPhase, weight)
			phaseScore := math32.Abs(rowPhase-phaseLerp) / (tol * math32.Pi)

			score := math32.Max(posScore, math32.Max(ampScore, phaseScore))
			if score > maxErr {
				maxErr = score
			}
		}
	}
	return maxErr, maxErr < 1
}

func phaseAt(stepIndex int32, x, y, dx, dy, k, phasePerStep float32) float32 {
	return float32(stepIndex)*phasePerStep - k*(x*dx+y*dy)
}

// sampleRow finds the segment of step whose t-range covers t, then
// linearly interpolates position, direction and amplitude between the
// bracketing pair of rays. ok is false when no segment covers t.
func sampleRow(step wavefront.Step, t float32) (x, y, dx, dy, amp float32, ok bool) {
	for _, seg := range step.Segments {
		if seg.Count == 0 {
			continue
		}
		tLo := step.Rays.T[seg.Start]
		tHi := step.Rays.T[seg.End()-1]
		if t < tLo || t > tHi {
			continue
		}
		ts := step.Rays.T[seg.Start:seg.End()]
		j := sort.Search(len(ts), func(i int) bool { return ts[i] >= t }) + seg.Start
		if j == seg.Start {
			return step.Rays.X[j], step.Rays.Y[j], step.Rays.DX[j], step.Rays.DY[j], step.Rays.Amplitude[j], true
		}
		i := j - 1
		denom := step.Rays.T[j] - step.Rays.T[i]
		var frac float32
		if denom > 0 {
			frac = (t - step.Rays.T[i]) / denom
		}
		x = lerp(step.Rays.X[i], step.Rays.X[j], frac)
		y = lerp(step.Rays.Y[i], step.Rays.Y[j], frac)
		dx = lerp(step.Rays.DX[i], step.Rays.DX[j], frac)
		dy = lerp(step.Rays.DY[i], step.Rays.DY[j], frac)
		amp = lerp(step.Rays.Amplitude[i], step.Rays.Amplitude[j], frac)
		return x, y, dx, dy, amp, true
	}
	return 0, 0, 0, 0, 0, false
}

func lerp(a, b, frac float32) float32 { return a + (b-a)*frac }
func sq(v float32) float32            { return v * v }

// --- Phase 2: vertex decimation ---

func decimateVertices(step wavefront.Step, lambda, tol float32) wavefront.Step {
	var out wavefront.Rays
	segs := make([]wavefront.Segment, 0, len(step.Segments))
	for _, seg := range step.Segments {
		if seg.Count == 0 {
			segs = append(segs, wavefront.Segment{Start: out.Len(), Count: 0})
			continue
		}
		outStart := out.Len()
		anchor := seg.Start
		out.CopyRay(&step.Rays, anchor)
		for anchor < seg.End()-1 {
			j := anchor + 1
			for j+1 < seg.End() && collinearWithinTol(&step.Rays, anchor, j+1, lambda, tol) {
				j++
			}
			out.CopyRay(&step.Rays, j)
			anchor = j
		}
		segs = append(segs, wavefront.Segment{Start: outStart, Count: out.Len() - outStart})
	}
	return wavefront.Step{Rays: out, Segments: segs}
}

// collinearWithinTol reports whether every ray strictly between i and j
// lies within tolerance of the straight-line (in t) interpolation between
// ray i and ray j, in both position and amplitude.
func collinearWithinTol(r *wavefront.Rays, i, j int, lambda, tol float32) bool {
	span := r.T[j] - r.T[i]
	if span <= 0 {
		return false
	}
	for m := i + 1; m < j; m++ {
		frac := (r.T[m] - r.T[i]) / span
		lx := lerp(r.X[i], r.X[j], frac)
		ly := lerp(r.Y[i], r.Y[j], frac)
		if sq(r.X[m]-lx)+sq(r.Y[m]-ly) >= sq(tol*lambda) {
			return false
		}
		lamp := lerp(r.Amplitude[i], r.Amplitude[j], frac)
		if math32.Abs(r.Amplitude[m]-lamp) >= tol {
			return false
		}
	}
	return true
}
