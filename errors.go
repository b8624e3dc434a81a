package reporter

import (
	"errors"
	"fmt"
)

// RuntimeError represents an operational error that should lead to exit code 2
// Examples include configuration errors, unreadable input streams, etc.
type RuntimeError struct {
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error: %v", e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// NewRuntimeError creates a new RuntimeError
func NewRuntimeError(err error) *RuntimeError {
	return &RuntimeError{Err: err}
}

// IsRuntimeError checks if the error is or wraps a RuntimeError
func IsRuntimeError(err error) bool {
	var runtimeErr *RuntimeError
	return err != nil && errors.As(err, &runtimeErr)
}

// TestFailureError signals that the persisted report contains failed or
// errored tests (exit code 1). The report itself was still written.
type TestFailureError struct {
	Failed  int
	Errored int
}

func (e *TestFailureError) Error() string {
	return fmt.Sprintf("test failures in report: %d failed, %d errored", e.Failed, e.Errored)
}

// NewTestFailureError creates a new TestFailureError
func NewTestFailureError(failed, errored int) *TestFailureError {
	return &TestFailureError{Failed: failed, Errored: errored}
}

// IsTestFailureError checks if the error is or wraps a TestFailureError
func IsTestFailureError(err error) bool {
	var testErr *TestFailureError
	return err != nil && errors.As(err, &testErr)
}
