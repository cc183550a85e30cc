package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Hashing errors
	ErrAlgorithmUnknown ErrorCode = "ALGORITHM_UNKNOWN"
	ErrLeafUnreadable   ErrorCode = "LEAF_UNREADABLE"
	ErrTraversal        ErrorCode = "TRAVERSAL"

	// Manifest errors
	ErrAlgorithmMismatch ErrorCode = "ALGORITHM_MISMATCH"
	ErrCorruptManifest   ErrorCode = "CORRUPT_MANIFEST"
	ErrManifestIO        ErrorCode = "MANIFEST_IO"

	// Path errors
	ErrPathInvalid ErrorCode = "PATH_INVALID"
)

// DirsumError represents a structured error with code and details
type DirsumError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DirsumError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DirsumError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DirsumError) Is(target error) bool {
	var targetErr *DirsumError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DirsumError with the given code and message
func New(code ErrorCode, message string) *DirsumError {
	return &DirsumError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DirsumError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DirsumError {
	return &DirsumError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DirsumError
func Wrap(err error, code ErrorCode, message string) *DirsumError {
	if err == nil {
		return nil
	}
	return &DirsumError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DirsumError {
	if err == nil {
		return nil
	}
	return &DirsumError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DirsumError) WithDetail(key string, value interface{}) *DirsumError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *DirsumError) WithDetails(details map[string]interface{}) *DirsumError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dsErr *DirsumError
	if errors.As(err, &dsErr) {
		return dsErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DirsumError
func GetErrorCode(err error) ErrorCode {
	var dsErr *DirsumError
	if errors.As(err, &dsErr) {
		return dsErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DirsumError
func GetErrorDetails(err error) map[string]interface{} {
	var dsErr *DirsumError
	if errors.As(err, &dsErr) {
		return dsErr.Details
	}
	return nil
}
