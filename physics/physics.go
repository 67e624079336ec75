// Package physics implements the pure wave-physics primitives: dispersion
// relation speed, shoaling, breaking, and the continuous Snell-law
// refraction turn.
//
// Grounded on the style of github.com/arl/go-detour/detour/common.go:
// small, free (non-method) float32 functions with no hidden state, each
// doing exactly one piece of geometry or physics.
package physics

import (
	stdmath "math"

	"github.com/arl/math32"
	"github.com/tidewave/wavemesh/config"
)

// WaveNumber returns k = 2π/λ for wavelength lambda (feet).
func WaveNumber(lambda float32) float32 {
	return 2 * math32.Pi / lambda
}

// PhaseSpeedRatio returns c/c_deep = sqrt(tanh(k·depth)) for the given
// wave number and water depth (feet, >= 0). Returns 0 on land (depth <= 0).
func PhaseSpeedRatio(k, depth float32) float32 {
	if depth <= 0 {
		return 0
	}
	return math32.Sqrt(tanh(k * depth))
}

// ShoalingCoefficient returns K_s(depth), clamped to
// config.MaxAmplification. 1 in deep water (k·h > 10).
func ShoalingCoefficient(k, depth float32) float32 {
	if depth <= 0 {
		return config.MaxAmplification
	}
	kh := k * depth
	if kh > 10 {
		return 1
	}
	n := 0.5 * (1 + 2*kh/sinh(2*kh))
	ks := 1 / math32.Sqrt(2*n*tanh(kh))
	return math32.Min(ks, config.MaxAmplification)
}

// BreakingDepth returns the depth threshold below which a wave of
// wavelength lambda is considered breaking.
func BreakingDepth(lambda float32) float32 {
	return config.BreakingDepthRatio * lambda
}

// IsBreaking reports whether a wave of wavelength lambda is breaking at
// the given depth.
func IsBreaking(depth, lambda float32) bool {
	return depth < BreakingDepth(lambda)
}

// BreakingIntensity returns the instantaneous breaking ramp
// 1 - depth/breakingDepth, clamped to [0, 1]. It is the caller's
// responsibility (march.Marcher) to fold this into the ray's
// monotonically non-decreasing breaking attribute.
func BreakingIntensity(depth, lambda float32) float32 {
	bd := BreakingDepth(lambda)
	if bd <= 0 {
		return 0
	}
	v := 1 - depth/bd
	return clamp(v, 0, 1)
}

// RefractionTurn returns the Snell-law turn dθ = -(1/c)·(∂c/∂n)·ds,
// clamped to ±config.MaxTurnPerStep.
//
//	cRatio   c/c_deep at the ray's current position (from PhaseSpeedRatio).
//	dcdn     the component of ∂c/∂n along the ray-perpendicular direction
//	         (already projected by the caller).
//	ds       the step length just advanced.
func RefractionTurn(cRatio, dcdn, ds float32) float32 {
	if cRatio <= 0 {
		return 0
	}
	dtheta := -(1 / cRatio) * dcdn * ds
	maxTurn := float32(config.MaxTurnPerStep)
	return clamp(dtheta, -maxTurn, maxTurn)
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}

// tanh and sinh are implemented against the float64 standard library the
// way github.com/arl/math32 itself wraps math.Xxx for the functions it
// exposes (see const.go's MaxFloat32 = float32(math.MaxFloat32)); math32
// does not export hyperbolic functions, so the dispersion relation and
// shoaling coefficient compute them directly.
func tanh(x float32) float32 {
	return float32(stdmath.Tanh(float64(x)))
}

func sinh(x float32) float32 {
	return float32(stdmath.Sinh(float64(x)))
}
