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
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrPermission   ErrorCode = "PERMISSION"
	ErrCancelled    ErrorCode = "CANCELLED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Build errors
	ErrSymlink     ErrorCode = "SYMLINK"
	ErrBuildScript ErrorCode = "BUILD_SCRIPT"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// HomebuildError represents a structured error with code and details
type HomebuildError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *HomebuildError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *HomebuildError) Unwrap() error {
	return e.Wrapped
}

// Is matches any HomebuildError carrying the same code
func (e *HomebuildError) Is(target error) bool {
	var targetErr *HomebuildError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new HomebuildError with the given code and message
func New(code ErrorCode, message string) *HomebuildError {
	return &HomebuildError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new HomebuildError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *HomebuildError {
	return &HomebuildError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a HomebuildError
func Wrap(err error, code ErrorCode, message string) *HomebuildError {
	if err == nil {
		return nil
	}
	return &HomebuildError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *HomebuildError {
	if err == nil {
		return nil
	}
	return &HomebuildError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *HomebuildError) WithDetail(key string, value interface{}) *HomebuildError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewSymlinkError reports that destination could not be cleared or linked to source.
func NewSymlinkError(source, destination string, cause error) *HomebuildError {
	return &HomebuildError{
		Code:    ErrSymlink,
		Message: fmt.Sprintf("failed to create symlink: %s -> %s", destination, source),
		Details: map[string]interface{}{
			"source":      source,
			"destination": destination,
		},
		Wrapped: cause,
	}
}

// NewBuildScriptError reports a build script that failed to run or exited non-zero.
// exitCode is -1 when the process never produced an exit status.
func NewBuildScriptError(name string, exitCode int, cause error) *HomebuildError {
	msg := fmt.Sprintf("build script %q failed", name)
	if exitCode >= 0 {
		msg = fmt.Sprintf("build script %q exited with status %d", name, exitCode)
	}
	return &HomebuildError{
		Code:    ErrBuildScript,
		Message: msg,
		Details: map[string]interface{}{
			"script":    name,
			"exit_code": exitCode,
		},
		Wrapped: cause,
	}
}

// NewConfigurationError reports a malformed configuration tree.
func NewConfigurationError(format string, args ...interface{}) *HomebuildError {
	return Newf(ErrConfigValid, format, args...)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var hbErr *HomebuildError
	if errors.As(err, &hbErr) {
		return hbErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a HomebuildError
func GetErrorCode(err error) ErrorCode {
	var hbErr *HomebuildError
	if errors.As(err, &hbErr) {
		return hbErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a HomebuildError
func GetErrorDetails(err error) map[string]interface{} {
	var hbErr *HomebuildError
	if errors.As(err, &hbErr) {
		return hbErr.Details
	}
	return nil
}
