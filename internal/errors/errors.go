package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a Tabloid error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST"       // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"             // 404
	ErrFileNotFound   ErrorCode = "FILE_NOT_FOUND"        // 404
	ErrConfiguration  ErrorCode = "CONFIGURATION_ERROR"   // 422
	ErrTemplateSyntax ErrorCode = "TEMPLATE_SYNTAX_ERROR" // 422
	ErrInternal       ErrorCode = "INTERNAL"              // 500
)

// TabloidError represents a structured error with code, status, and details.
type TabloidError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *TabloidError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *TabloidError {
	return &TabloidError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a run cannot be found.
func NewNotFound(id string) *TabloidError {
	return &TabloidError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("run not found: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewFileNotFound creates a 404 error for a missing library or input file.
func NewFileNotFound(path string) *TabloidError {
	return &TabloidError{
		Code:    ErrFileNotFound,
		Status:  404,
		Message: fmt.Sprintf("file not found: %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewConfiguration creates a 422 error for broken authoring data: an unknown
// category key, an unknown case code, or a missing or empty corpus.
func NewConfiguration(msg string, details map[string]any) *TabloidError {
	return &TabloidError{
		Code:    ErrConfiguration,
		Status:  422,
		Message: msg,
		Details: details,
	}
}

// NewTemplateSyntax creates a 422 error for malformed braces in a template.
// offset is the byte position in the template where the problem was detected.
func NewTemplateSyntax(msg, template string, offset int) *TabloidError {
	return &TabloidError{
		Code:    ErrTemplateSyntax,
		Status:  422,
		Message: fmt.Sprintf("%s at offset %d", msg, offset),
		Details: map[string]any{"template": template, "offset": offset},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *TabloidError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &TabloidError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// As returns the TabloidError in err's chain, if any.
func As(err error) (*TabloidError, bool) {
	var tErr *TabloidError
	if stderrors.As(err, &tErr) {
		return tErr, true
	}
	return nil, false
}

// Is checks if an error is a TabloidError with the given code.
func Is(err error, code ErrorCode) bool {
	if tErr, ok := As(err); ok {
		return tErr.Code == code
	}
	return false
}
