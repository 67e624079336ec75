// Package config carries the tunables of one build.
//
// Modeled on recast.Config (github.com/arl/go-detour/recast/config.go): a
// flat struct of documented fields with units in the comment, no behavior
// attached beyond defaulting. Every tunable a build needs flows through a
// BuildConfig value — there is no package-level configuration singleton
// anywhere in wavemesh.
package config

// BuildConfig holds the recognized build options, all defaulted.
type BuildConfig struct {
	// VertexSpacing is the lateral ray spacing for the initial wavefront.
	// [Units: ft] [Default: 20]
	VertexSpacing float32

	// StepSize is the base deep-water march step.
	// [Units: ft] [Default: 10]
	StepSize float32

	// DecimationTolerance is the error budget used by decimate.
	// [Default: 0.02]
	DecimationTolerance float32

	// DiffractionIterations is the number of diffusion iterations run
	// per step in diffraction.
	// [Default: 10]
	DiffractionIterations int

	// UpwaveMargin, DownwaveMargin, CrosswaveMargin are multipliers over
	// the wavelength λ used by the bounds solver.
	// [Default: 10 / 80 / 40]
	UpwaveMargin, DownwaveMargin, CrosswaveMargin float32

	// MaxSegmentPoints is the hard cap on rays in one wavefront segment.
	// [Default: 5000]
	MaxSegmentPoints int

	// MinEnergy is the surviving-energy threshold below which a ray is
	// considered dead.
	// [Default: 0.005]
	MinEnergy float32
}

// Fixed physical/algorithmic constants, not exposed as build options
// since no build ever needs to override them.
const (
	MinSpeedFactor         = 0.25
	MaxAmplification       = 2.0
	MaxTurnPerStep         = 0.7853981633974483 // π/4
	BreakingDepthRatio     = 0.07
	TerrainDecayRate       = 0.35
	BreakingDecayRate      = 0.6
	MergeRatio             = 0.3
	MaxSplitRatio          = 16.0
	BaseSplitRatio         = 1.75
	SplitEscalation        = 1.6
	MinSplitEnergy         = 0.1
	MaxSplitsPerSegment    = 100
	FallbackBoundsHalfSide = 500.0
	MinimumMarginFeet      = 2000.0
)

// Default returns the build configuration's default values.
func Default() BuildConfig {
	return BuildConfig{
		VertexSpacing:          20,
		StepSize:               10,
		DecimationTolerance:    0.02,
		DiffractionIterations:  10,
		UpwaveMargin:           10,
		DownwaveMargin:         80,
		CrosswaveMargin:        40,
		MaxSegmentPoints:       5000,
		MinEnergy:              0.005,
	}
}

// WithDefaults fills any zero-valued field of c with its default value,
// leaving explicitly-set fields untouched. Callers that decode a partial
// YAML settings file (cmd/wavebuild) use this so every option has a
// default but the caller may override any of them.
func (c BuildConfig) WithDefaults() BuildConfig {
	d := Default()
	if c.VertexSpacing == 0 {
		c.VertexSpacing = d.VertexSpacing
	}
	if c.StepSize == 0 {
		c.StepSize = d.StepSize
	}
	if c.DecimationTolerance == 0 {
		c.DecimationTolerance = d.DecimationTolerance
	}
	if c.DiffractionIterations == 0 {
		c.DiffractionIterations = d.DiffractionIterations
	}
	if c.UpwaveMargin == 0 {
		c.UpwaveMargin = d.UpwaveMargin
	}
	if c.DownwaveMargin == 0 {
		c.DownwaveMargin = d.DownwaveMargin
	}
	if c.CrosswaveMargin == 0 {
		c.CrosswaveMargin = d.CrosswaveMargin
	}
	if c.MaxSegmentPoints == 0 {
		c.MaxSegmentPoints = d.MaxSegmentPoints
	}
	if c.MinEnergy == 0 {
		c.MinEnergy = d.MinEnergy
	}
	return c
}
