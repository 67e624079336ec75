// Package bounds implements the bounds solver (C3): deriving a
// wave-aligned simulation rectangle from terrain root contours, the wave
// direction, and wavelength-scaled margins.
//
// Grounded on github.com/arl/go-detour/detour/common.go's projectPoly /
// overlapRange pair (project every candidate point onto an axis, track a
// running min/max): the same "project onto an axis, track extrema"
// pattern here projects terrain AABB corners onto the wave direction and
// its perpendicular instead of projecting polygon vertices onto a
// separating axis.
package bounds

import (
	"github.com/arl/math32"
	"github.com/tidewave/wavemesh/config"
	"github.com/tidewave/wavemesh/terrain"
)

// Frame is the wave-aligned coordinate frame: Forward points in the wave
// propagation direction, Right is its perpendicular (Forward rotated +90°,
// so (Forward, Right) is a right-handed frame and CCW in (proj, perp) is CCW
// in world (x, y)).
type Frame struct {
	Forward [2]float32
	Right   [2]float32
}

// NewFrame builds the wave-aligned frame for propagation direction theta
// (radians).
func NewFrame(theta float32) Frame {
	fwd := [2]float32{math32.Cos(theta), math32.Sin(theta)}
	right := [2]float32{-fwd[1], fwd[0]}
	return Frame{Forward: fwd, Right: right}
}

// Project returns the (forward, right) coordinates of world point (x, y)
// in this frame.
func (f Frame) Project(x, y float32) (proj, perp float32) {
	proj = x*f.Forward[0] + y*f.Forward[1]
	perp = x*f.Right[0] + y*f.Right[1]
	return
}

// Unproject returns the world (x, y) of a point given in this frame.
func (f Frame) Unproject(proj, perp float32) (x, y float32) {
	x = proj*f.Forward[0] + perp*f.Right[0]
	y = proj*f.Forward[1] + perp*f.Right[1]
	return
}

// Bounds is the wave-aligned simulation rectangle, plus the frame it was
// computed in.
type Bounds struct {
	Frame            Frame
	MinProj, MaxProj float32 // along Forward (upwave..downwave)
	MinPerp, MaxPerp float32 // along Right (crosswave extent)
}

// Contains reports whether world point (x, y) lies within the bounds.
func (b Bounds) Contains(x, y float32) bool {
	p, q := b.Frame.Project(x, y)
	return p >= b.MinProj && p <= b.MaxProj && q >= b.MinPerp && q <= b.MaxPerp
}

// CoverageQuad returns the 4 world-space corners of the bounding
// rectangle, wound CCW starting at (MinProj, MinPerp).
func (b Bounds) CoverageQuad() [4][2]float32 {
	corners := [4][2]float32{}
	pts := [4][2]float32{
		{b.MinProj, b.MinPerp},
		{b.MaxProj, b.MinPerp},
		{b.MaxProj, b.MaxPerp},
		{b.MinProj, b.MaxPerp},
	}
	for i, p := range pts {
		x, y := b.Frame.Unproject(p[0], p[1])
		corners[i] = [2]float32{x, y}
	}
	return corners
}

// Solve derives the wave-aligned bounds for a build with the given wave
// direction theta, wavelength lambda, and terrain. Each of
// upwave/downwave/crosswave takes max(MinimumMarginFeet, marginMultiplier·λ).
func Solve(t *terrain.Terrain, theta, lambda float32, cfg config.BuildConfig) Bounds {
	frame := NewFrame(theta)

	roots := rootIndices(t)
	if len(roots) == 0 {
		return Bounds{
			Frame:   frame,
			MinProj: -config.FallbackBoundsHalfSide,
			MaxProj: config.FallbackBoundsHalfSide,
			MinPerp: -config.FallbackBoundsHalfSide,
			MaxPerp: config.FallbackBoundsHalfSide,
		}
	}

	minProj, maxProj := math32.MaxFloat32, -math32.MaxFloat32
	minPerp, maxPerp := math32.MaxFloat32, -math32.MaxFloat32
	for _, idx := range roots {
		c := &t.Contours[idx]
		corners := [4][2]float32{
			{c.BBoxMin[0], c.BBoxMin[1]},
			{c.BBoxMax[0], c.BBoxMin[1]},
			{c.BBoxMax[0], c.BBoxMax[1]},
			{c.BBoxMin[0], c.BBoxMax[1]},
		}
		for _, corner := range corners {
			p, q := frame.Project(corner[0], corner[1])
			minProj = math32.Min(minProj, p)
			maxProj = math32.Max(maxProj, p)
			minPerp = math32.Min(minPerp, q)
			maxPerp = math32.Max(maxPerp, q)
		}
	}

	upwave := math32.Max(config.MinimumMarginFeet, cfg.UpwaveMargin*lambda)
	downwave := math32.Max(config.MinimumMarginFeet, cfg.DownwaveMargin*lambda)
	crosswave := math32.Max(config.MinimumMarginFeet, cfg.CrosswaveMargin*lambda)

	return Bounds{
		Frame:   frame,
		MinProj: minProj - upwave,
		MaxProj: maxProj + downwave,
		MinPerp: minPerp - crosswave,
		MaxPerp: maxPerp + crosswave,
	}
}

func rootIndices(t *terrain.Terrain) []int32 {
	var roots []int32
	for i := range t.Contours {
		if t.Contours[i].Parent == -1 {
			roots = append(roots, int32(i))
		}
	}
	return roots
}
