package errors

import (
	"errors"
	"fmt"
)

// Re-exported so callers need a single errors import.
var (
	New    = errors.New
	Unwrap = errors.Unwrap
	Is     = errors.Is
	As     = errors.As
)

// Error is an error carrying a service error code.
type Error interface {
	error
	Code() string
	Unwrap() error
}

// AppError is the default Error implementation.
type AppError struct {
	code    string
	message string
	err     error
	// status overrides the HTTP status derived from code when set.
	status int
}

func (e *AppError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.message, e.err.Error())
	}
	return e.message
}

func (e *AppError) Code() string {
	return e.code
}

// Message returns the message without the wrapped cause.
func (e *AppError) Message() string {
	return e.message
}

func (e *AppError) Unwrap() error {
	return e.err
}

// Status returns the HTTP status of the error.
func (e *AppError) Status() int {
	if e.status != 0 {
		return e.status
	}
	return ToHTTPStatus(e.code)
}

// NewAppError creates an AppError.
func NewAppError(code string, message string, err error) *AppError {
	return &AppError{
		code:    code,
		message: message,
		err:     err,
	}
}

// Wrap wraps err with a message, keeping the code of an AppError in the chain.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	var appErr Error
	if As(err, &appErr) {
		return NewAppError(appErr.Code(), message, err)
	}

	return NewAppError(ErrInternal, message, err)
}

// CodeOf returns the code of the first Error in the chain, or ErrInternal.
func CodeOf(err error) string {
	var appErr Error
	if As(err, &appErr) {
		return appErr.Code()
	}
	return ErrInternal
}
