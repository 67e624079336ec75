// Package terraintest builds synthetic Terrain values for tests, the way
// github.com/arl/go-detour/recast/inputgeom.go builds synthetic
// InputGeom values for recast's own tests (a hand-rolled fixture, not a
// level-file loader — that belongs to the non-goal "Level file parsing").
package terraintest

import (
	"math"

	"github.com/tidewave/wavemesh/terrain"
)

// Circle returns a CCW-sampled circular polygon of nsegs points, centered
// at (cx, cy) with the given radius.
func Circle(cx, cy, radius float32, nsegs int) []float32 {
	pts := make([]float32, 0, nsegs*2)
	for i := 0; i < nsegs; i++ {
		theta := 2 * math.Pi * float64(i) / float64(nsegs)
		pts = append(pts, cx+radius*float32(math.Cos(theta)), cy+radius*float32(math.Sin(theta)))
	}
	return pts
}

func bbox(poly []float32) ([2]float32, [2]float32) {
	min := [2]float32{poly[0], poly[1]}
	max := min
	for i := 0; i < len(poly); i += 2 {
		if poly[i] < min[0] {
			min[0] = poly[i]
		}
		if poly[i+1] < min[1] {
			min[1] = poly[i+1]
		}
		if poly[i] > max[0] {
			max[0] = poly[i]
		}
		if poly[i+1] > max[1] {
			max[1] = poly[i+1]
		}
	}
	return min, max
}

// OpenOcean returns a terrain with zero contours, reporting defaultDepth
// everywhere.
func OpenOcean(defaultDepth float32) *terrain.Terrain {
	return &terrain.Terrain{DefaultDepth: defaultDepth}
}

// SingleIsland returns a terrain with one coastline (height 0) circular
// contour centered at (cx, cy).
func SingleIsland(cx, cy, radius, defaultDepth float32) *terrain.Terrain {
	return NestedShelves(defaultDepth, []Shelf{{Radius: radius, Height: 0, CX: cx, CY: cy}})
}

// Shelf describes one ring of a concentric nested-shelf terrain, ordered
// outermost (largest radius) first.
type Shelf struct {
	CX, CY, Radius, Height float32
}

// NestedShelves builds a chain of concentrically nested circular contours,
// each parented to the previous (coarser) one, like a series of shoaling
// shelves leading into an island.
func NestedShelves(defaultDepth float32, shelves []Shelf) *terrain.Terrain {
	t := &terrain.Terrain{DefaultDepth: defaultDepth}
	parent := int32(-1)
	for i, s := range shelves {
		poly := Circle(s.CX, s.CY, s.Radius, 64)
		pStart := len(t.Verts) / 2
		t.Verts = append(t.Verts, poly...)
		min, max := bbox(poly)
		t.Contours = append(t.Contours, terrain.Contour{
			PointStart: int32(pStart),
			PointCount: int32(len(poly) / 2),
			Height:     s.Height,
			Parent:     parent,
			Depth:      uint32(i),
			Coastline:  s.Height == 0,
			BBoxMin:    min,
			BBoxMax:    max,
		})
		if parent >= 0 {
			t.Contours[parent].ChildStart = uint32(len(t.Children))
			t.Contours[parent].ChildCount = 1
			t.Children = append(t.Children, uint32(i))
		}
		parent = int32(i)
	}
	// SkipCount: each shelf but the last contains exactly the remainder
	// of the slice (a single linear chain of parent/child).
	for i := range t.Contours {
		t.Contours[i].SkipCount = uint32(len(t.Contours) - i - 1)
	}
	return t
}
