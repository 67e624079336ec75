package waveerr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tidewave/wavemesh/waveerr"
)

func TestIsMatchesOnlyTheSameKind(t *testing.T) {
	err := waveerr.New(waveerr.TerrainInvalid, "bad contour")
	assert.True(t, waveerr.Is(err, waveerr.TerrainInvalid))
	assert.False(t, waveerr.Is(err, waveerr.BudgetExceeded))
}

func TestWrapPreservesCauseForUnwrap(t *testing.T) {
	cause := errors.New("decode failed")
	err := waveerr.Wrap(waveerr.TerrainInvalid, cause, "could not parse terrain")
	assert.ErrorIs(t, err, cause)
}

func TestErrorMessageIncludesKindAndMessage(t *testing.T) {
	err := waveerr.New(waveerr.NumericDegenerate, "all rays died at step %d", 0)
	assert.Contains(t, err.Error(), "numeric degenerate")
	assert.Contains(t, err.Error(), "all rays died at step 0")
}
