// Package march implements the per-ray stepping stage (C5): building the
// initial wavefront from the bounds solver's upwave edge, and advancing
// one wavefront to the next by refraction, movement, a bounds check, and
// terrain/breaking dissipation.
//
// Grounded on the per-node expansion loop in
// github.com/arl/go-detour/detour/query.go (FindPath's open/closed-list
// walk): both advance a frontier of independent elements one step at a
// time, apply a local cost/physics update, and drop elements that fail a
// termination test, without ever looking more than one neighbour ahead.
package march

import (
	stdmath "math"

	"github.com/arl/math32"

	"github.com/tidewave/wavemesh/bounds"
	"github.com/tidewave/wavemesh/config"
	"github.com/tidewave/wavemesh/physics"
	"github.com/tidewave/wavemesh/terrain"
	"github.com/tidewave/wavemesh/wavefront"
)

// InitialWavefront builds the first step's rays: evenly spaced along the
// upwave edge of b, all travelling in direction theta with full energy.
func InitialWavefront(b bounds.Bounds, theta float32, cfg config.BuildConfig) wavefront.Step {
	span := b.MaxPerp - b.MinPerp
	n := int(math32.Ceil(span/cfg.VertexSpacing)) + 1
	if n < 3 {
		n = 3
	}

	dx, dy := math32.Cos(theta), math32.Sin(theta)
	var rays wavefront.Rays
	for i := 0; i < n; i++ {
		t := float32(i) / float32(n-1)
		perp := b.MinPerp + t*span
		x, y := b.Frame.Unproject(b.MinProj, perp)
		rays.Append(x, y, dx, dy, t, 1, 0, 0, 0, 0)
	}
	return wavefront.Step{
		Rays:     rays,
		Segments: []wavefront.Segment{{Start: 0, Count: n}},
	}
}

// Marcher advances one wavefront step to the next.
type Marcher struct {
	Terrain *terrain.Terrain
	Bounds  bounds.Bounds
	K       float32 // wave number, 2π/λ
	Lambda  float32
	Cfg     config.BuildConfig
}

// Result is the outcome of advancing one step.
type Result struct {
	Next        wavefront.Step
	MarchedProj float32 // projected distance the surviving frontier has travelled past b.MinProj
	Alive       bool    // false when no segment survived
}

// Step advances cur by one march increment.
func (m *Marcher) Step(cur wavefront.Step) Result {
	out := wavefront.Rays{}
	var segments []wavefront.Segment
	maxProj := float32(-math32.MaxFloat32)

	for _, seg := range cur.Segments {
		segStart := -1
		for i := seg.Start; i < seg.End(); i++ {
			alive, px, py := m.stepRay(&cur.Rays, i, &out)
			if !alive {
				if segStart >= 0 {
					segments = append(segments, wavefront.Segment{Start: segStart, Count: out.Len() - segStart})
					segStart = -1
				}
				continue
			}
			if segStart < 0 {
				segStart = out.Len() - 1
			}
			p, _ := m.Bounds.Frame.Project(px, py)
			if p > maxProj {
				maxProj = p
			}
		}
		if segStart >= 0 {
			segments = append(segments, wavefront.Segment{Start: segStart, Count: out.Len() - segStart})
		}
	}

	return Result{
		Next:        wavefront.Step{Rays: out, Segments: segments},
		MarchedProj: maxProj - m.Bounds.MinProj,
		Alive:       len(segments) > 0,
	}
}

// stepRay advances ray i of src by one increment, appending it to dst when
// it survives. Returns the survival flag and the new position.
func (m *Marcher) stepRay(src *wavefront.Rays, i int, dst *wavefront.Rays) (alive bool, nx, ny float32) {
	energy := src.Energy[i]
	if energy < m.Cfg.MinEnergy {
		return false, 0, 0
	}

	x, y := src.X[i], src.Y[i]
	dx, dy := src.DX[i], src.DY[i]
	breaking := src.Breaking[i]

	h := m.Terrain.Height(x, y)
	depth := math32.Max(0, -h)
	cRatio := physics.PhaseSpeedRatio(m.K, depth)
	localStep := m.Cfg.StepSize * math32.Max(config.MinSpeedFactor, cRatio)
	normalizedStep := localStep / m.Cfg.StepSize

	if depth > 0 {
		delta := terrain.GradientDelta(m.Lambda)
		_, gx, gy := m.Terrain.HeightAndGradient(x, y, delta)
		perpX, perpY := dy, -dx
		dhdn := gx*perpX + gy*perpY

		const dhProbe = 0.5 // feet; small depth probe for dC/ddepth
		cNear := physics.PhaseSpeedRatio(m.K, math32.Max(0, depth-dhProbe))
		cFar := physics.PhaseSpeedRatio(m.K, depth+dhProbe)
		dCddepth := (cFar - cNear) / (2 * dhProbe)
		dcdn := dCddepth * (-dhdn)

		turn := physics.RefractionTurn(cRatio, dcdn, localStep)
		dx, dy = rotate(dx, dy, turn)
	}

	x += localStep * dx
	y += localStep * dy
	if !m.Bounds.Contains(x, y) {
		return false, 0, 0
	}

	h = m.Terrain.Height(x, y)
	depth = math32.Max(0, -h)
	if h > 0 {
		energy *= exp32(-h * m.K * config.TerrainDecayRate * normalizedStep)
	}
	if physics.IsBreaking(depth, m.Lambda) {
		intensity := physics.BreakingIntensity(depth, m.Lambda)
		if intensity > breaking {
			breaking = intensity
		}
	}
	if breaking > 0 {
		energy *= exp32(-config.BreakingDecayRate * normalizedStep)
	}

	dst.Append(x, y, dx, dy, src.T[i], energy, breaking, depth, src.Amplitude[i], src.OrigStep[i])
	return true, x, y
}

func rotate(x, y, theta float32) (float32, float32) {
	c, s := math32.Cos(theta), math32.Sin(theta)
	return x*c - y*s, x*s + y*c
}

func exp32(x float32) float32 {
	return float32(stdmath.Exp(float64(x)))
}
