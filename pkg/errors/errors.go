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
	ErrPermission   ErrorCode = "PERMISSION"

	// Identifier errors
	ErrAmbiguousIdentifier ErrorCode = "AMBIGUOUS_IDENTIFIER"
	ErrIdentifierNotFound  ErrorCode = "IDENTIFIER_NOT_FOUND"
	ErrInvalidHash         ErrorCode = "INVALID_HASH"

	// Alias errors
	ErrAliasConflict ErrorCode = "ALIAS_CONFLICT"
	ErrAliasNotFound ErrorCode = "ALIAS_NOT_FOUND"
	ErrInvalidAlias  ErrorCode = "INVALID_ALIAS"
	ErrAliasStore    ErrorCode = "ALIAS_STORE"

	// Template errors
	ErrTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrTemplateInvalid  ErrorCode = "TEMPLATE_INVALID"
	ErrInvalidVersion   ErrorCode = "INVALID_VERSION"

	// Substitution errors
	ErrMissingVariable   ErrorCode = "MISSING_VARIABLE"
	ErrSubstitutionDepth ErrorCode = "SUBSTITUTION_DEPTH"
	ErrPathTraversal     ErrorCode = "PATH_TRAVERSAL"
	ErrInvalidTransform  ErrorCode = "INVALID_TRANSFORM"

	// Application errors
	ErrRootFolderConflict ErrorCode = "ROOT_FOLDER_CONFLICT"
	ErrAlreadyApplied     ErrorCode = "ALREADY_APPLIED"
	ErrNotApplied         ErrorCode = "NOT_APPLIED"

	// Manifest errors
	ErrManifestNotFound ErrorCode = "MANIFEST_NOT_FOUND"
	ErrManifestInvalid  ErrorCode = "MANIFEST_INVALID"
	ErrManifestExists   ErrorCode = "MANIFEST_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileCreate   ErrorCode = "FILE_CREATE"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// ScaffoldError represents a structured error with code and details
type ScaffoldError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ScaffoldError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ScaffoldError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ScaffoldError) Is(target error) bool {
	var targetErr *ScaffoldError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ScaffoldError with the given code and message
func New(code ErrorCode, message string) *ScaffoldError {
	return &ScaffoldError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ScaffoldError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ScaffoldError {
	return &ScaffoldError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ScaffoldError
func Wrap(err error, code ErrorCode, message string) *ScaffoldError {
	if err == nil {
		return nil
	}
	return &ScaffoldError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ScaffoldError {
	if err == nil {
		return nil
	}
	return &ScaffoldError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ScaffoldError) WithDetail(key string, value interface{}) *ScaffoldError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *ScaffoldError) WithDetails(details map[string]interface{}) *ScaffoldError {
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
	var scaffoldErr *ScaffoldError
	if errors.As(err, &scaffoldErr) {
		return scaffoldErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ScaffoldError
func GetErrorCode(err error) ErrorCode {
	var scaffoldErr *ScaffoldError
	if errors.As(err, &scaffoldErr) {
		return scaffoldErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ScaffoldError
func GetErrorDetails(err error) map[string]interface{} {
	var scaffoldErr *ScaffoldError
	if errors.As(err, &scaffoldErr) {
		return scaffoldErr.Details
	}
	return nil
}
