// Package terrain implements the contour-tree terrain query (C1): a total,
// pure function from world point to bathymetry height and depth-gradient
// over a read-only forest of pre-sampled polygon contours.
//
// Grounded on github.com/arl/go-detour/recast/contour.go (the shape of a
// Contour/ContourSet pair, and the convention that a region's geometry is a
// flat int32/float32 vertex buffer addressed by start/count) and on
// detour/common.go's point/segment geometry helpers (TriArea2D,
// distancePtSegSqr2D), which we adapt from the xz-plane 3-vector convention
// to a flat 2-D (x, y) buffer since terrain contours have no vertical
// extent of their own (height is a scalar attribute, not a coordinate).
package terrain

import "github.com/arl/math32"

// Contour is one closed, pre-sampled polygon in the terrain forest.
type Contour struct {
	PointStart int32 // index of the first vertex, in Terrain.Verts (2 floats per vertex)
	PointCount int32
	Height     float32 // feet; negative = below sea level
	Parent     int32   // index into Terrain.Contours, or -1 at the root
	Depth      uint32  // depth in the tree, 0 at roots
	ChildStart uint32  // start offset into Terrain.Children
	ChildCount uint32
	Coastline  bool // true iff Height == 0
	BBoxMin    [2]float32
	BBoxMax    [2]float32
	SkipCount  uint32 // number of descendants; lets a rejecting query skip the whole subtree
}

// Terrain is the read-only, shared bathymetry input to one or more builds.
// It is immutable for the lifetime of every build that references it: no
// method on Terrain mutates it.
type Terrain struct {
	Verts        []float32 // 2 floats (x, y) per vertex, contours concatenated in DFS pre-order
	Contours     []Contour // DFS pre-order
	Children     []uint32  // flat child-index list, indexed via Contour.ChildStart/ChildCount
	DefaultDepth float32   // open-ocean depth reported outside every root contour
}

func (t *Terrain) poly(c *Contour) []float32 {
	return t.Verts[c.PointStart*2 : (c.PointStart+c.PointCount)*2]
}

// Height returns the bathymetry height at (x, y). Total: never fails, and
// equals DefaultDepth outside every root contour.
func (t *Terrain) Height(x, y float32) float32 {
	h, _ := t.heightBlended(x, y)
	return h
}

// HeightAndGradient returns the height and its (x, y) gradient at (x, y),
// via central finite differences with step delta. Gradient on
// land (h > 0) is defined but never consumed by the marcher.
func (t *Terrain) HeightAndGradient(x, y, delta float32) (h, dhdx, dhdy float32) {
	h, _ = t.heightBlended(x, y)
	hx1, _ := t.heightBlended(x-delta, y)
	hx2, _ := t.heightBlended(x+delta, y)
	hy1, _ := t.heightBlended(x, y-delta)
	hy2, _ := t.heightBlended(x, y+delta)
	dhdx = (hx2 - hx1) / (2 * delta)
	dhdy = (hy2 - hy1) / (2 * delta)
	return
}

// GradientDelta picks the finite-difference step for a query at wavelength
// lambda ("δ ≈ λ/16 or ≈ 2 ft").
func GradientDelta(lambda float32) float32 {
	return math32.Max(lambda/16, 2)
}

// containing returns the index of the deepest contour containing (x, y),
// or -1 if the point lies outside every root contour. It performs an
// iterative DFS-preorder scan gated by AABB and SkipCount: a contour that
// fails the test causes the scan to jump straight past its entire subtree,
// so no recursion or explicit stack is needed.
func (t *Terrain) containing(x, y float32) int32 {
	best := int32(-1)
	n := int32(len(t.Contours))
	for i := int32(0); i < n; {
		c := &t.Contours[i]
		if !boxContains(c.BBoxMin, c.BBoxMax, x, y) || !pointInPolygon(t.poly(c), x, y) {
			i += 1 + int32(c.SkipCount)
			continue
		}
		best = i
		i++
	}
	return best
}

// heightBlended returns the terrain height at (x, y) and the index of the
// deepest containing contour (-1 outside every root), applying
// inverse-distance blending toward the contour's own children so that
// height does not jump discontinuously at a child boundary (see DESIGN.md
// for the concrete weighting chosen here).
func (t *Terrain) heightBlended(x, y float32) (float32, int32) {
	idx := t.containing(x, y)
	if idx < 0 {
		return t.DefaultDepth, -1
	}
	c := &t.Contours[idx]
	if c.ChildCount == 0 {
		return c.Height, idx
	}

	const selfWeight = 1.0
	const eps = 1e-3

	weightSum := float32(selfWeight)
	heightSum := float32(selfWeight) * c.Height
	for k := uint32(0); k < c.ChildCount; k++ {
		childIdx := t.Children[c.ChildStart+k]
		child := &t.Contours[childIdx]
		d := distanceToPolygon(t.poly(child), x, y)
		scale := math32.Max(bboxHalfDiagonal(child.BBoxMin, child.BBoxMax), eps)
		nd := d / scale
		w := 1 / ((nd + eps) * (nd + eps))
		weightSum += w
		heightSum += w * child.Height
	}
	return heightSum / weightSum, idx
}

func bboxHalfDiagonal(min, max [2]float32) float32 {
	dx := max[0] - min[0]
	dy := max[1] - min[1]
	return 0.5 * math32.Sqrt(dx*dx+dy*dy)
}

func boxContains(min, max [2]float32, x, y float32) bool {
	return x >= min[0] && x <= max[0] && y >= min[1] && y <= max[1]
}
