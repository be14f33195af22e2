package ecs

import "github.com/pkg/errors"

// ErrorKind classifies a FatalError for callers that want to branch on the
// failure category without string-matching messages.
type ErrorKind string

const (
	// ErrQueryFetchMissingRow means a required view's fetch ran against an
	// entity the filter pass should already have excluded. Indicates a bug
	// in the filter/fetch split rather than anything a caller can recover
	// from, so it is raised as a panic wrapped in FatalError.
	ErrQueryFetchMissingRow ErrorKind = "query_fetch_missing_row"

	// ErrDuplicateStageLabel means Schedule.AddStage was called twice with
	// the same label.
	ErrDuplicateStageLabel ErrorKind = "duplicate_stage_label"

	// ErrUnknownStageLabel means AddStageBefore/AddStageAfter named a label
	// that is not present in the schedule.
	ErrUnknownStageLabel ErrorKind = "unknown_stage_label"

	// ErrResourceBorrow means a resource was accessed in violation of the
	// shared/exclusive borrow discipline (already borrowed exclusively, or
	// borrowed exclusively while shared borrows are outstanding).
	ErrResourceBorrow ErrorKind = "resource_borrow"

	// ErrResourceMissing means a resource type was looked up before being
	// inserted into the World.
	ErrResourceMissing ErrorKind = "resource_missing"
)

// FatalError is this module's error type for conditions the spec treats as
// programmer error rather than recoverable runtime state: violating a
// borrow rule, misconfiguring a schedule, or a query invariant breach.
// Wraps github.com/pkg/errors so callers retain a stack trace via
// errors.Cause/errors.StackTracer, matching the teacher's error-handling
// idiom (engine-wide *EngineError pattern generalized to this module's own
// error kinds).
type FatalError struct {
	Kind  ErrorKind
	cause error
}

func newFatalError(kind ErrorKind, message string) *FatalError {
	return &FatalError{Kind: kind, cause: errors.New(message)}
}

func newFatalErrorf(kind ErrorKind, format string, args ...any) *FatalError {
	return &FatalError{Kind: kind, cause: errors.Errorf(format, args...)}
}

func (e *FatalError) Error() string { return string(e.Kind) + ": " + e.cause.Error() }

func (e *FatalError) Unwrap() error { return e.cause }

// Cause returns the underlying github.com/pkg/errors value, preserving its
// stack trace for logging.
func (e *FatalError) Cause() error { return e.cause }
