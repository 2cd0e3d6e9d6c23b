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
	ErrManifestNotFound ErrorCode = "MANIFEST_NOT_FOUND"
	ErrManifestParse    ErrorCode = "MANIFEST_PARSE"
	ErrPackageNotFound  ErrorCode = "PACKAGE_NOT_FOUND"

	// Deployment errors
	ErrSourceMissing      ErrorCode = "SOURCE_MISSING"
	ErrTargetExists       ErrorCode = "TARGET_EXISTS"
	ErrManualModification ErrorCode = "MANUAL_MODIFICATION"
	ErrPathResolve        ErrorCode = "PATH_RESOLVE"

	// FileSystem errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrRemove        ErrorCode = "REMOVE"

	// Cache errors
	ErrCacheLoad ErrorCode = "CACHE_LOAD"
	ErrCacheSave ErrorCode = "CACHE_SAVE"
)

// TowboatError represents a structured error with code and details
type TowboatError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *TowboatError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *TowboatError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *TowboatError) Is(target error) bool {
	var targetErr *TowboatError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new TowboatError with the given code and message
func New(code ErrorCode, message string) *TowboatError {
	return &TowboatError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new TowboatError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *TowboatError {
	return &TowboatError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a TowboatError
func Wrap(err error, code ErrorCode, message string) *TowboatError {
	if err == nil {
		return nil
	}
	return &TowboatError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *TowboatError {
	if err == nil {
		return nil
	}
	return &TowboatError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *TowboatError) WithDetail(key string, value interface{}) *TowboatError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *TowboatError) WithDetails(details map[string]interface{}) *TowboatError {
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
	var tbErr *TowboatError
	if errors.As(err, &tbErr) {
		return tbErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a TowboatError
func GetErrorCode(err error) ErrorCode {
	var tbErr *TowboatError
	if errors.As(err, &tbErr) {
		return tbErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a TowboatError
func GetErrorDetails(err error) map[string]interface{} {
	var tbErr *TowboatError
	if errors.As(err, &tbErr) {
		return tbErr.Details
	}
	return nil
}
