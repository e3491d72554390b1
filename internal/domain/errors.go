package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DomainError with the same code, so that
// wrapped provider failures still match their sentinel.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeEmptyStore    = "EMPTY_STORE"
	ErrCodeExtraction    = "EXTRACTION_ERROR"
	ErrCodeProviderQuota = "PROVIDER_QUOTA"
	ErrCodeProvider      = "PROVIDER_ERROR"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrEmptyQuestion = NewDomainError(ErrCodeValidation, "message is required")
	ErrNotPDF        = NewDomainError(ErrCodeExtraction, "file is not a well-formed PDF")
)

// Store errors
var (
	ErrEmptyStore = NewDomainError(ErrCodeEmptyStore, "no documents have been ingested yet")
)

// Provider errors
var (
	ErrProviderQuota = NewDomainError(ErrCodeProviderQuota, "provider rate limit reached, try again shortly")
	ErrProvider      = NewDomainError(ErrCodeProvider, "provider request failed")
)
