// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-runtime.

package api

import "fmt"

// Common errors used across the runtime.
var (
	ErrPoolInitialized   = fmt.Errorf("pool size cannot be set after pool has been created")
	ErrNoContext         = fmt.Errorf("no context active on the calling goroutine")
	ErrTimerOwnership    = fmt.Errorf("timer can only be cancelled from the context that set it")
	ErrInvalidSharedType = fmt.Errorf("invalid type for shared data structure")
	ErrInvalidArgument   = fmt.Errorf("invalid argument")
	ErrExecutorClosed    = fmt.Errorf("executor is closed")
	ErrRuntimeClosed     = fmt.Errorf("runtime is closed")
)

// ErrorCode represents specific error conditions in the runtime.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeIllegalState
	ErrCodeOwnership
	ErrCodeTypeRejected
	ErrCodeClosed
	ErrCodeInternal
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Unwrap exposes the underlying sentinel for errors.Is.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new structured error wrapping a sentinel cause.
func NewError(code ErrorCode, cause error, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
		Cause:   cause,
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
