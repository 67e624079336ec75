// Package triangulate implements vertex emission and sweep-line
// triangulation (C9): turning a sequence of decimated wavefront rows into
// a packed vertex buffer and triangle index list.
//
// Grounded on github.com/arl/go-detour/recast/mesh.go's buildMeshAdjacency
// / triangulate pair: both walk two polygon boundaries (there, a single
// polygon's edge loop; here, two adjacent wavefront rows) choosing one
// diagonal at a time by a local cost comparison, advancing whichever
// cursor the chosen diagonal consumes.
package triangulate

import (
	"github.com/arl/math32"

	"github.com/tidewave/wavemesh/decimate"
)

// Vertex is one emitted mesh vertex.
type Vertex struct {
	X, Y        float32
	Amplitude   float32
	Breaking    float32
	Phase       float32
	BlendWeight float32
}

// Mesh is the packed output of triangulation: a flat vertex buffer and a
// triangle list of absolute vertex indices.
type Mesh struct {
	Vertices []Vertex
	Indices  []int32
}

type segmentRange struct {
	globalStart int32
	t           []float32
}

// Build emits vertices for every ray in rows and triangulates each pair of
// adjacent rows' overlapping segments.
func Build(rows []decimate.Row, k, phasePerStep float32) Mesh {
	var mesh Mesh
	rowRanges := make([][]segmentRange, len(rows))

	for ri, row := range rows {
		isEdgeRow := ri == 0 || ri == len(rows)-1
		ranges := make([]segmentRange, 0, len(row.Step.Segments))
		for _, seg := range row.Step.Segments {
			start := int32(len(mesh.Vertices))
			for i := seg.Start; i < seg.End(); i++ {
				x, y := row.Step.Rays.X[i], row.Step.Rays.Y[i]
				dx, dy := row.Step.Rays.DX[i], row.Step.Rays.DY[i]
				phase := float32(row.StepIndex)*phasePerStep - k*(x*dx+y*dy)
				blend := float32(1)
				if isEdgeRow || i == seg.Start || i == seg.End()-1 {
					blend = 0
				}
				mesh.Vertices = append(mesh.Vertices, Vertex{
					X: x, Y: y,
					Amplitude:   row.Step.Rays.Amplitude[i],
					Breaking:    row.Step.Rays.Breaking[i],
					Phase:       phase,
					BlendWeight: blend,
				})
			}
			t := make([]float32, seg.Count)
			copy(t, row.Step.Rays.T[seg.Start:seg.End()])
			ranges = append(ranges, segmentRange{globalStart: start, t: t})
		}
		rowRanges[ri] = ranges
	}

	for ri := 0; ri < len(rows)-1; ri++ {
		for _, prevSeg := range rowRanges[ri] {
			for _, nextSeg := range rowRanges[ri+1] {
				lo, hi, ok := overlap(prevSeg.t, nextSeg.t)
				if !ok {
					continue
				}
				pi, pj := clipRange(prevSeg.t, lo, hi)
				ni, nj := clipRange(nextSeg.t, lo, hi)
				sweep(&mesh, prevSeg, pi, pj, nextSeg, ni, nj)
			}
		}
	}

	return mesh
}

func overlap(a, b []float32) (lo, hi float32, ok bool) {
	lo = math32.Max(a[0], b[0])
	hi = math32.Min(a[len(a)-1], b[len(b)-1])
	return lo, hi, lo < hi
}

// clipRange returns the inclusive [start, end] local index range of t covering
// [lo, hi], extended by one index on each side where available so the
// sweep covers the fringe triangles just outside the strict overlap.
func clipRange(t []float32, lo, hi float32) (start, end int) {
	start = 0
	for start < len(t) && t[start] < lo {
		start++
	}
	if start > 0 {
		start--
	}
	end = len(t) - 1
	for end > 0 && t[end] > hi {
		end--
	}
	if end < len(t)-1 {
		end++
	}
	return start, end
}

// sweep triangulates between prevSeg's clipped range [pi, pj] and
// nextSeg's clipped range [ni, nj], appending triangles to mesh.Indices.
func sweep(mesh *Mesh, prevSeg segmentRange, pi, pj int, nextSeg segmentRange, ni, nj int) {
	i, j := pi, ni
	pGlobal := func(local int) int32 { return prevSeg.globalStart + int32(local) }
	nGlobal := func(local int) int32 { return nextSeg.globalStart + int32(local) }
	pos := func(idx int32) (float32, float32) { v := mesh.Vertices[idx]; return v.X, v.Y }

	emit := func(a, b, c int32) {
		mesh.Indices = append(mesh.Indices, a, b, c)
	}

	for i < pj || j < nj {
		switch {
		case i >= pj:
			emit(pGlobal(i), nGlobal(j), nGlobal(j+1))
			j++
		case j >= nj:
			emit(pGlobal(i), pGlobal(i+1), nGlobal(j))
			i++
		default:
			ax, ay := pos(pGlobal(i))
			bx, by := pos(pGlobal(i + 1))
			cx, cy := pos(nGlobal(j))
			dx, dy := pos(nGlobal(j + 1))

			costA := sqdist(ax, ay, bx, by) + sqdist(bx, by, cx, cy) + sqdist(cx, cy, ax, ay)
			costB := sqdist(ax, ay, cx, cy) + sqdist(cx, cy, dx, dy) + sqdist(dx, dy, ax, ay)

			if costA <= costB {
				emit(pGlobal(i), pGlobal(i+1), nGlobal(j))
				i++
			} else {
				emit(pGlobal(i), nGlobal(j), nGlobal(j+1))
				j++
			}
		}
	}
}

func sqdist(ax, ay, bx, by float32) float32 {
	dx, dy := bx-ax, by-ay
	return dx*dx + dy*dy
}
