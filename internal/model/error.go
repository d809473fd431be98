package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Standard error codes for API responses
const (
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeStorageError = "STORAGE_ERROR"
)

// DomainError carries a machine-readable code alongside the message so that
// handlers can map failures to HTTP statuses without string matching.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation error with the given message.
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidation, message)
}

// Common domain errors
var (
	ErrProductNotFound  = NewDomainError(ErrCodeNotFound, "Product not found")
	ErrCategoryNotFound = NewDomainError(ErrCodeNotFound, "Category not found")
	ErrDuplicateName    = NewDomainError(ErrCodeConflict, "A record with this name already exists")
	ErrMissingFields    = NewDomainError(ErrCodeValidation, "Missing required fields: name, price and category are required")
	ErrNegativePrice    = NewDomainError(ErrCodeValidation, "Price must not be negative")
	ErrNegativeStock    = NewDomainError(ErrCodeValidation, "Stock must not be negative")
	ErrNegativeRating   = NewDomainError(ErrCodeValidation, "Rating must not be negative")
	ErrUnknownCategory  = NewDomainError(ErrCodeValidation, "Category does not exist")
)

// hasCode reports whether err is a DomainError carrying the given code.
func hasCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return hasCode(err, ErrCodeValidation) }

// IsNotFound reports whether err is a missing-record failure.
func IsNotFound(err error) bool { return hasCode(err, ErrCodeNotFound) }

// IsConflict reports whether err is a uniqueness violation.
func IsConflict(err error) bool { return hasCode(err, ErrCodeConflict) }
