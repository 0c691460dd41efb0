// Package coalsimerr defines the error-code taxonomy shared by every
// package in this module, mirroring the negative-integer status codes
// §6 of the specification assigns to the simulation engine's C ancestry.
package coalsimerr

import "fmt"

// Code classifies a failure. Values are negative, matching the
// specification's "returned as a negative integer" convention.
type Code int

const (
	// CodeOK is never returned as an error; it exists so Code's zero
	// value is distinguishable from any real failure.
	CodeOK Code = 0

	// CodeBadArgument marks a parameter outside its admissible domain.
	CodeBadArgument Code = -1
	// CodeAllocationFailed marks a failed arena or table allocation.
	CodeAllocationFailed Code = -2
	// CodeOverflow marks an arena or table that exceeded its bound.
	CodeOverflow Code = -3
	// CodeInconsistentDemography marks a demographic configuration that
	// cannot be realized (e.g. moving more than 100% of a population).
	CodeInconsistentDemography Code = -4
	// CodeModelPrecondition marks multiple-merger parameters out of range.
	CodeModelPrecondition Code = -5
	// CodeBadRate marks an infinite or negative event rate.
	CodeBadRate Code = -6
	// CodeAlreadyComplete marks a simulation that has already finished.
	CodeAlreadyComplete Code = -7
	// CodeIO marks a failure in a file-format or config collaborator.
	CodeIO Code = -8
	// CodeOutOfMemory marks transient memory pressure against max_memory.
	CodeOutOfMemory Code = -9
	// CodeCorruptInput marks unsorted edges, dangling node references,
	// or negative intervals handed to the simplifier or tree iterator.
	CodeCorruptInput Code = -10
)

var names = map[Code]string{
	CodeOK:                     "ok",
	CodeBadArgument:            "invalid argument",
	CodeAllocationFailed:       "allocation failed",
	CodeOverflow:               "arena or table overflow",
	CodeInconsistentDemography: "inconsistent demography",
	CodeModelPrecondition:      "model precondition violated",
	CodeBadRate:                "infinite or negative rate",
	CodeAlreadyComplete:        "simulation already completed",
	CodeIO:                     "I/O failure",
	CodeOutOfMemory:            "out of memory",
	CodeCorruptInput:           "corrupt or inconsistent input",
}

// String implements strerror(code) from §6.
func (c Code) String() string {
	if s, ok := names[c]; ok {
		return s
	}
	return fmt.Sprintf("unknown error code %d", int(c))
}

// Error is the concrete error type every fallible operation in this
// module returns. It wraps an optional cause without losing the code.
type Error struct {
	Code  Code
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// New builds an *Error with no wrapped cause.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// Wrap builds an *Error wrapping cause, or returns nil if cause is nil.
func Wrap(code Code, msg string, cause error) *Error {
	if cause == nil {
		return nil
	}
	return &Error{Code: code, Msg: msg, Cause: cause}
}
