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

	// Configuration errors
	ErrConfigLoad     ErrorCode = "CONFIG_LOAD"
	ErrConfigParse    ErrorCode = "CONFIG_PARSE"
	ErrLocatorInvalid ErrorCode = "LOCATOR_INVALID"

	// Fetch errors
	ErrFetchNetwork  ErrorCode = "FETCH_NETWORK"
	ErrRepoNotFound  ErrorCode = "REPO_NOT_FOUND"
	ErrFetchTimeout  ErrorCode = "FETCH_TIMEOUT"
	ErrFetchFailed   ErrorCode = "FETCH_FAILED"
	ErrStagingCreate ErrorCode = "STAGING_CREATE"

	// Filesystem errors
	ErrFileAccess     ErrorCode = "FILE_ACCESS"
	ErrFileCopy       ErrorCode = "FILE_COPY"
	ErrDirCreate      ErrorCode = "DIR_CREATE"
	ErrSymlinkCreate  ErrorCode = "SYMLINK_CREATE"
	ErrStagingCleanup ErrorCode = "STAGING_CLEANUP"
)

// CwkitError represents a structured error with code and details
type CwkitError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *CwkitError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *CwkitError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *CwkitError) Is(target error) bool {
	var targetErr *CwkitError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new CwkitError with the given code and message
func New(code ErrorCode, message string) *CwkitError {
	return &CwkitError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new CwkitError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *CwkitError {
	return &CwkitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a CwkitError
func Wrap(err error, code ErrorCode, message string) *CwkitError {
	if err == nil {
		return nil
	}
	return &CwkitError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *CwkitError {
	if err == nil {
		return nil
	}
	return &CwkitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *CwkitError) WithDetail(key string, value interface{}) *CwkitError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var cwkitErr *CwkitError
	if errors.As(err, &cwkitErr) {
		return cwkitErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a CwkitError
func GetErrorCode(err error) ErrorCode {
	var cwkitErr *CwkitError
	if errors.As(err, &cwkitErr) {
		return cwkitErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a CwkitError
func GetErrorDetails(err error) map[string]interface{} {
	var cwkitErr *CwkitError
	if errors.As(err, &cwkitErr) {
		return cwkitErr.Details
	}
	return nil
}
