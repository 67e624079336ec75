package diag_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tidewave/wavemesh/diag"
)

func TestElapsedAccumulatesAcrossMultipleStartStopPairs(t *testing.T) {
	d := diag.New(nil)
	d.StartTimer(diag.StageMarch)
	time.Sleep(time.Millisecond)
	d.StopTimer(diag.StageMarch)
	first := d.Elapsed(diag.StageMarch)

	d.StartTimer(diag.StageMarch)
	time.Sleep(time.Millisecond)
	d.StopTimer(diag.StageMarch)

	assert.Greater(t, d.Elapsed(diag.StageMarch), first)
}

func TestNilContextIsSafeToUseEverywhere(t *testing.T) {
	var d *diag.Context
	assert.NotPanics(t, func() {
		d.StartTimer(diag.StageBounds)
		d.StopTimer(diag.StageBounds)
		d.Warnf(diag.StageBounds, 1, true, "capped")
		d.Errorf(diag.StageBounds, "failed")
	})
	assert.Equal(t, time.Duration(0), d.Elapsed(diag.StageBounds))
}

func TestSinkReceivesTypedEventFields(t *testing.T) {
	var got diag.Event
	d := diag.New(func(e diag.Event) { got = e })
	d.Warnf(diag.StageDecimate, 7, true, "cap fired for %d rows", 7)

	assert.Equal(t, diag.StageDecimate, got.Stage)
	assert.Equal(t, diag.LevelWarning, got.Level)
	assert.Equal(t, 7, got.Count)
	assert.True(t, got.ThresholdHit)
	assert.Equal(t, "cap fired for 7 rows", got.Message)
}
