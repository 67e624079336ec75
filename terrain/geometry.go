package terrain

import (
	"github.com/arl/gogeo/f32/d3"
	"github.com/arl/math32"
)

// pointInPolygon reports whether (x, y) lies inside the closed polygon
// poly (flat x, y pairs). Points exactly on an edge are treated as
// inside, the conservative choice.
//
// Adapted from the even-odd crossing test in
// github.com/arl/go-detour/detour/common.go's distancePtPolyEdgesSqr,
// generalized from the xz-plane-of-a-3-vector convention to a flat 2-D
// buffer, and split from its distance computation (see distanceToPolygon)
// since our two call sites need them independently.
func pointInPolygon(poly []float32, x, y float32) bool {
	n := len(poly) / 2
	if n < 3 {
		return false
	}
	if onBoundary(poly, x, y) {
		return true
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := poly[i*2], poly[i*2+1]
		xj, yj := poly[j*2], poly[j*2+1]
		if ((yi > y) != (yj > y)) &&
			(x < (xj-xi)*(y-yi)/(yj-yi)+xi) {
			inside = !inside
		}
	}
	return inside
}

// onBoundary reports whether (x, y) lies within a negligible distance of
// any edge of poly.
func onBoundary(poly []float32, x, y float32) bool {
	const eps2 = 1e-6
	n := len(poly) / 2
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		if distPtSegSqr2D(x, y, poly[j*2], poly[j*2+1], poly[i*2], poly[i*2+1]) < eps2 {
			return true
		}
	}
	return false
}

// distanceToPolygon returns the minimum Euclidean distance from (x, y) to
// any edge of poly (flat x, y pairs). 0 if (x, y) lies on an edge.
func distanceToPolygon(poly []float32, x, y float32) float32 {
	n := len(poly) / 2
	best := math32.MaxFloat32
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		d := distPtSegSqr2D(x, y, poly[j*2], poly[j*2+1], poly[i*2], poly[i*2+1])
		if d < best {
			best = d
		}
	}
	return math32.Sqrt(best)
}

// distPtSegSqr2D returns the squared distance from point (px, py) to the
// segment (ax, ay)-(bx, by). Adapted from
// github.com/arl/go-detour/detour/common.go's distancePtSegSqr2D, keeping
// its d3.Vec3 vector algebra but mapping our flat x,y plane onto that
// function's x,z plane (our terrain has no vertical axis of its own).
func distPtSegSqr2D(px, py, ax, ay, bx, by float32) float32 {
	pt := d3.Vec3{px, 0, py}
	a := d3.Vec3{ax, 0, ay}
	b := d3.Vec3{bx, 0, by}

	ab := b.Sub(a)
	ap := pt.Sub(a)
	d := ab[0]*ab[0] + ab[2]*ab[2]
	t := ab[0]*ap[0] + ab[2]*ap[2]
	if d > 0 {
		t /= d
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closest := a.Add(ab.Scale(t))
	dx := closest[0] - pt[0]
	dz := closest[2] - pt[2]
	return dx*dx + dz*dz
}
