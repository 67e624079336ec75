package march_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tidewave/wavemesh/bounds"
	"github.com/tidewave/wavemesh/config"
	"github.com/tidewave/wavemesh/internal/terraintest"
	"github.com/tidewave/wavemesh/march"
	"github.com/tidewave/wavemesh/physics"
)

func TestInitialWavefrontSpansBoundsPerpExtent(t *testing.T) {
	terr := terraintest.OpenOcean(-100)
	cfg := config.Default()
	b := bounds.Solve(terr, 0, 100, cfg)
	step := march.InitialWavefront(b, 0, cfg)

	assert.GreaterOrEqual(t, step.Rays.Len(), 3)
	assert.Equal(t, 1, len(step.Segments))
	assert.InDelta(t, 0, step.Rays.T[0], 1e-6)
	assert.InDelta(t, 1, step.Rays.T[step.Rays.Len()-1], 1e-6)
	for i := 0; i < step.Rays.Len(); i++ {
		assert.Equal(t, float32(1), step.Rays.Energy[i])
	}
}

func TestStepAdvancesRaysInOpenOcean(t *testing.T) {
	terr := terraintest.OpenOcean(-100)
	cfg := config.Default()
	lambda := float32(100)
	b := bounds.Solve(terr, 0, lambda, cfg)
	step := march.InitialWavefront(b, 0, cfg)

	m := &march.Marcher{Terrain: terr, Bounds: b, K: physics.WaveNumber(lambda), Lambda: lambda, Cfg: cfg}
	startX := step.Rays.X[0]
	res := m.Step(step)

	assert.True(t, res.Alive)
	assert.Greater(t, res.Next.Rays.X[0], startX, "ray should have advanced toward +x in deep water")
	assert.Greater(t, res.MarchedProj, float32(0))
}

func TestStepKillsRaysBelowMinEnergy(t *testing.T) {
	terr := terraintest.OpenOcean(-100)
	cfg := config.Default()
	lambda := float32(100)
	b := bounds.Solve(terr, 0, lambda, cfg)
	step := march.InitialWavefront(b, 0, cfg)
	for i := range step.Rays.Energy {
		step.Rays.Energy[i] = cfg.MinEnergy / 2
	}

	m := &march.Marcher{Terrain: terr, Bounds: b, K: physics.WaveNumber(lambda), Lambda: lambda, Cfg: cfg}
	res := m.Step(step)

	assert.False(t, res.Alive)
	assert.Equal(t, 0, len(res.Next.Segments))
}

func TestStepEndsRaysThatLeaveBounds(t *testing.T) {
	terr := terraintest.OpenOcean(-100)
	cfg := config.Default()
	cfg.StepSize = 1e7 // force the first advance to leave bounds
	lambda := float32(100)
	b := bounds.Solve(terr, 0, lambda, cfg)
	step := march.InitialWavefront(b, 0, cfg)

	m := &march.Marcher{Terrain: terr, Bounds: b, K: physics.WaveNumber(lambda), Lambda: lambda, Cfg: cfg}
	res := m.Step(step)

	assert.False(t, res.Alive)
}
