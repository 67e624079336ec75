package orchestrator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidewave/wavemesh/config"
	"github.com/tidewave/wavemesh/internal/terraintest"
	"github.com/tidewave/wavemesh/orchestrator"
	"github.com/tidewave/wavemesh/wavesource"
)

func TestBuildProducesNonEmptyMeshOverOpenOcean(t *testing.T) {
	in := orchestrator.Input{
		Source:  wavesource.WaveSource{Amplitude: 2, Wavelength: 200, Direction: 0},
		Terrain: terraintest.OpenOcean(-60),
		Cfg:     config.Default(),
	}
	m, profile, err := orchestrator.Build(in, nil)
	require.NoError(t, err)

	assert.Greater(t, m.VertexCount, 0)
	assert.Greater(t, m.IndexCount, 0)
	assert.Equal(t, 0, m.IndexCount%3)
	assert.Greater(t, profile.StepCount, 0)
	assert.GreaterOrEqual(t, profile.VertexCountAfterDecimation, 0)
}

func TestBuildRejectsZeroWavelength(t *testing.T) {
	in := orchestrator.Input{
		Source:  wavesource.WaveSource{Wavelength: 0, Direction: 0},
		Terrain: terraintest.OpenOcean(-60),
		Cfg:     config.Default(),
	}
	_, _, err := orchestrator.Build(in, nil)
	assert.Error(t, err)
}

func TestBuildRejectsNilTerrain(t *testing.T) {
	in := orchestrator.Input{
		Source: wavesource.WaveSource{Wavelength: 100, Direction: 0},
		Cfg:    config.Default(),
	}
	_, _, err := orchestrator.Build(in, nil)
	assert.Error(t, err)
}

func TestBuildOverIslandReducesTriangleCountAfterDecimation(t *testing.T) {
	in := orchestrator.Input{
		Source:  wavesource.WaveSource{Amplitude: 2, Wavelength: 150, Direction: 0},
		Terrain: terraintest.SingleIsland(0, 0, 100, -40),
		Cfg:     config.Default(),
	}
	_, profile, err := orchestrator.Build(in, nil)
	require.NoError(t, err)
	assert.Less(t, profile.TriangleCountAfterDecimation, profile.TriangleCountBeforeDecimation)
}

func TestSummarizeAveragesAcrossBuilds(t *testing.T) {
	profiles := []orchestrator.Profile{
		{TriangleCountAfterDecimation: 100, TriangleCountBeforeDecimation: 200},
		{TriangleCountAfterDecimation: 300, TriangleCountBeforeDecimation: 300},
	}
	times := []time.Duration{10 * time.Millisecond, 30 * time.Millisecond}

	s := orchestrator.Summarize(profiles, times)
	assert.Equal(t, 2, s.Count)
	assert.InDelta(t, 20, s.MeanBuildMs, 0.001)
	assert.InDelta(t, 200, s.MeanTrianglesAfter, 0.001)
}

func TestSummarizeHandlesEmptyInput(t *testing.T) {
	s := orchestrator.Summarize(nil, nil)
	assert.Equal(t, 0, s.Count)
}
