package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Grammar errors
	ErrCodeGrammarNotFound ErrorCode = "GRAMMAR_NOT_FOUND"
	ErrCodeGrammarInvalid  ErrorCode = "GRAMMAR_INVALID"
	ErrCodeGrammarStale    ErrorCode = "GRAMMAR_STALE"

	// Parse errors
	ErrCodeSyntaxError   ErrorCode = "SYNTAX_ERROR"
	ErrCodeInputNotFound ErrorCode = "INPUT_NOT_FOUND"

	// Tooling errors
	ErrCodeGenerateFailed ErrorCode = "GENERATE_FAILED"
	ErrCodeWatchFailed    ErrorCode = "WATCH_FAILED"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// GramError represents a structured error with context
type GramError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *GramError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *GramError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *GramError) WithDetail(key string, value interface{}) *GramError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *GramError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new GramError
func New(code ErrorCode, message string) *GramError {
	return &GramError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a GramError
func Wrap(err error, code ErrorCode, message string) *GramError {
	return &GramError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific GramError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	gramErr, ok := err.(*GramError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return gramErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	gramErr, ok := err.(*GramError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return gramErr.Code
}
