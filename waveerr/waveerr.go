// Package waveerr defines the closed set of error kinds a mesh build can
// fail with.
//
// Modeled on detour.Status (github.com/arl/go-detour/detour/status.go),
// which uses a small bitmask of failure kinds that also implements the
// error interface. We keep the "small closed set of kinds, one type"
// shape but drop the bitmask in favour of wrapped values, since Go callers
// expect errors.Is/errors.As rather than flag tests.
package waveerr

import "fmt"

// Kind identifies one of the build-level failure categories.
type Kind int

const (
	// TerrainInvalid means structural corruption was detected in the
	// terrain input on entry. Fatal for the build.
	TerrainInvalid Kind = iota
	// BudgetExceeded means a per-build timeout or resource cap fired.
	BudgetExceeded
	// NumericDegenerate means a numerical guard tripped (e.g. all rays
	// died at step 0).
	NumericDegenerate
	// WorkerCrashed means an out-of-band failure occurred in the
	// execution environment hosting the build.
	WorkerCrashed
)

func (k Kind) String() string {
	switch k {
	case TerrainInvalid:
		return "terrain invalid"
	case BudgetExceeded:
		return "budget exceeded"
	case NumericDegenerate:
		return "numeric degenerate"
	case WorkerCrashed:
		return "worker crashed"
	default:
		return "unknown"
	}
}

// Error is a build-level failure. It carries the failing Kind plus a
// human-readable message and an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether err is a build error of kind k.
func Is(err error, k Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == k
}

// New builds a *Error with the given kind and formatted message.
func New(k Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds a *Error with the given kind, message and cause.
func Wrap(k Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...), Cause: cause}
}
