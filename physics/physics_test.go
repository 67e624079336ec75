package physics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tidewave/wavemesh/physics"
)

func TestPhaseSpeedRatioIsZeroOnLand(t *testing.T) {
	k := physics.WaveNumber(100)
	assert.Equal(t, float32(0), physics.PhaseSpeedRatio(k, 0))
	assert.Equal(t, float32(0), physics.PhaseSpeedRatio(k, -5))
}

func TestPhaseSpeedRatioApproachesOneInDeepWater(t *testing.T) {
	k := physics.WaveNumber(100)
	r := physics.PhaseSpeedRatio(k, 1000)
	assert.InDelta(t, 1.0, r, 1e-3)
}

func TestShoalingCoefficientIsOneInDeepWater(t *testing.T) {
	k := physics.WaveNumber(100)
	ks := physics.ShoalingCoefficient(k, 1000)
	assert.InDelta(t, 1.0, ks, 1e-6)
}

func TestShoalingCoefficientClampsToMaxAmplification(t *testing.T) {
	k := physics.WaveNumber(1000)
	ks := physics.ShoalingCoefficient(k, 0.01)
	assert.LessOrEqual(t, ks, float32(2.0))
}

func TestBreakingRampsFromZeroToOne(t *testing.T) {
	lambda := float32(100)
	bd := physics.BreakingDepth(lambda)
	assert.False(t, physics.IsBreaking(bd+1, lambda))
	assert.True(t, physics.IsBreaking(bd-1, lambda))
	assert.Equal(t, float32(0), physics.BreakingIntensity(bd, lambda))
	assert.InDelta(t, 1.0, physics.BreakingIntensity(0, lambda), 1e-6)
}

func TestRefractionTurnIsClamped(t *testing.T) {
	turn := physics.RefractionTurn(0.01, 1e6, 10)
	assert.LessOrEqual(t, turn, float32(0.7853981633974483+1e-6))
	assert.GreaterOrEqual(t, turn, float32(-0.7853981633974483-1e-6))
}

func TestRefractionTurnIsZeroOnLand(t *testing.T) {
	assert.Equal(t, float32(0), physics.RefractionTurn(0, 5, 10))
}
