// Package diag is the structured observability channel a build reports
// through.
//
// Modeled on recast.BuildContext (github.com/arl/go-detour/recast/buildcontext.go):
// a value threaded through every build stage that accumulates named
// per-stage timers and reports log events. Where that type stores raw
// Sprintf'd strings, this one passes typed Event values (stage, count,
// thresholdHit) to a Sink without storing them, so callers can filter and
// aggregate without parsing text. A nil *Context, or one built by New with
// a nil Sink, discards every event.
package diag

import (
	"fmt"
	"time"
)

// Stage names the pipeline stages of the orchestrator (C10), and doubles
// as the timer label.
type Stage string

const (
	StageBounds      Stage = "bounds"
	StageMarch       Stage = "march"
	StageAmplitude   Stage = "amplitude"
	StageDiffraction Stage = "diffraction"
	StageDecimate    Stage = "decimate"
	StageTriangulate Stage = "triangulate"
)

// Level is the severity of a diagnostic Event, mirroring
// recast.LogCategory (RC_LOG_PROGRESS/WARNING/ERROR).
type Level int

const (
	LevelProgress Level = iota
	LevelWarning
	LevelError
)

// Event is one structured diagnostic emitted during a build.
type Event struct {
	Stage        Stage
	Level        Level
	Message      string
	Count        int
	ThresholdHit bool
}

// Sink receives diagnostic events from a Context; nil means diagnostics
// are discarded.
type Sink func(Event)

// Context is threaded through one build's stages, the way a single
// *recast.BuildContext value is passed to every Recast build function.
// It is not safe for concurrent use: a single build runs single-threaded,
// so no locking is needed.
type Context struct {
	Sink Sink

	start map[Stage]time.Time
	acc   map[Stage]time.Duration
}

// New returns a Context that reports to sink. A nil sink discards events.
func New(sink Sink) *Context {
	return &Context{
		Sink:  sink,
		start: make(map[Stage]time.Time),
		acc:   make(map[Stage]time.Duration),
	}
}

// StartTimer starts the timer for stage.
func (c *Context) StartTimer(stage Stage) {
	if c == nil {
		return
	}
	c.start[stage] = time.Now()
}

// StopTimer accumulates elapsed time for stage since the last StartTimer.
func (c *Context) StopTimer(stage Stage) {
	if c == nil {
		return
	}
	t0, ok := c.start[stage]
	if !ok {
		return
	}
	c.acc[stage] += time.Since(t0)
}

// Elapsed returns the accumulated duration for stage.
func (c *Context) Elapsed(stage Stage) time.Duration {
	if c == nil {
		return 0
	}
	return c.acc[stage]
}

func (c *Context) emit(level Level, stage Stage, count int, thresholdHit bool, format string, args ...interface{}) {
	if c == nil || c.Sink == nil {
		return
	}
	c.Sink(Event{
		Stage:        stage,
		Level:        level,
		Message:      sprintf(format, args...),
		Count:        count,
		ThresholdHit: thresholdHit,
	})
}

// Progressf reports a progress event for stage.
func (c *Context) Progressf(stage Stage, format string, args ...interface{}) {
	c.emit(LevelProgress, stage, 0, false, format, args...)
}

// Warnf reports a recoverable condition (e.g. a cap fired) for stage. The
// condition does not fail the build; the caller proceeds with the
// conservative fallback described at the call site.
func (c *Context) Warnf(stage Stage, count int, thresholdHit bool, format string, args ...interface{}) {
	c.emit(LevelWarning, stage, count, thresholdHit, format, args...)
}

// Errorf reports a non-recoverable condition for stage, just before the
// build short-circuits with a *waveerr.Error.
func (c *Context) Errorf(stage Stage, format string, args ...interface{}) {
	c.emit(LevelError, stage, 0, false, format, args...)
}

func sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
