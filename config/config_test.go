package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tidewave/wavemesh/config"
)

func TestWithDefaultsFillsOnlyZeroFields(t *testing.T) {
	partial := config.BuildConfig{VertexSpacing: 99}
	filled := partial.WithDefaults()

	assert.Equal(t, float32(99), filled.VertexSpacing)
	assert.Equal(t, config.Default().StepSize, filled.StepSize)
	assert.Equal(t, config.Default().MaxSegmentPoints, filled.MaxSegmentPoints)
}

func TestWithDefaultsIsIdempotentOnFullyDefaultedConfig(t *testing.T) {
	d := config.Default()
	assert.Equal(t, d, d.WithDefaults())
}
