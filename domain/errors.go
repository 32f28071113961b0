package domain

import (
	"fmt"
)

// ErrorCode represents the type of domain error
type ErrorCode string

const (
	// ErrCodeNotFound indicates that a requested resource was not found
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeInvalidInput indicates that the input provided is invalid
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrCodeUnknownTimezone indicates an identifier that does not resolve in the timezone database
	ErrCodeUnknownTimezone ErrorCode = "UNKNOWN_TIMEZONE"

	// ErrCodeMalformedInput indicates time or date text that matches none of the accepted formats
	ErrCodeMalformedInput ErrorCode = "MALFORMED_INPUT"

	// ErrCodeInsufficientParties indicates fewer than two resolvable locations for a scheduling operation
	ErrCodeInsufficientParties ErrorCode = "INSUFFICIENT_PARTIES"

	// ErrCodeLocationUnresolved indicates a single location that could not be geocoded or mapped to a timezone
	ErrCodeLocationUnresolved ErrorCode = "LOCATION_UNRESOLVED"

	// ErrCodeGeocoding indicates a geocoding service communication error
	ErrCodeGeocoding ErrorCode = "GEOCODING_ERROR"

	// ErrCodeCache indicates a location cache or history store error
	ErrCodeCache ErrorCode = "CACHE_ERROR"

	// ErrCodeConfig indicates a configuration error
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"

	// ErrCodeExport indicates a report export error
	ErrCodeExport ErrorCode = "EXPORT_ERROR"

	// ErrCodeFileOperation indicates a file operation error
	ErrCodeFileOperation ErrorCode = "FILE_OPERATION_ERROR"
)

// MalformedInputClass identifies which class of text input failed to parse
type MalformedInputClass string

const (
	// MalformedTime marks a failure to parse the time portion of an input
	MalformedTime MalformedInputClass = "time"

	// MalformedDate marks a failure to parse the date portion of an input
	MalformedDate MalformedInputClass = "date"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
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

// WithDetails adds details to the error
func (e *DomainError) WithDetails(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// NewDomainErrorWithCause creates a new domain error with an underlying cause
func NewDomainErrorWithCause(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Err:     err,
	}
}

// Common domain errors

// ErrNotFound creates a not found error
func ErrNotFound(resource string, id string) *DomainError {
	return NewDomainError(ErrCodeNotFound, fmt.Sprintf("%s not found", resource)).
		WithDetails("resource", resource).
		WithDetails("id", id)
}

// ErrInvalidInput creates an invalid input error
func ErrInvalidInput(field string, reason string) *DomainError {
	return NewDomainError(ErrCodeInvalidInput, fmt.Sprintf("invalid %s: %s", field, reason)).
		WithDetails("field", field).
		WithDetails("reason", reason)
}

// Timezone errors

// ErrUnknownTimezone creates an unknown timezone error for an identifier
// that does not resolve in the timezone rule database
func ErrUnknownTimezone(identifier string) *DomainError {
	return NewDomainError(ErrCodeUnknownTimezone, fmt.Sprintf("unknown timezone: %s", identifier)).
		WithDetails("identifier", identifier)
}

// ErrUnknownTimezoneWithCause creates an unknown timezone error with the lookup cause
func ErrUnknownTimezoneWithCause(identifier string, err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeUnknownTimezone, fmt.Sprintf("unknown timezone: %s", identifier), err).
		WithDetails("identifier", identifier)
}

// ErrTimezoneDetection creates a timezone detection error
func ErrTimezoneDetection(fallbackLocation string) *DomainError {
	return NewDomainError(ErrCodeUnknownTimezone, "failed to detect system timezone, using fallback").
		WithDetails("fallback", fallbackLocation)
}

// Input parsing errors

// ErrMalformedInput creates a malformed input error carrying the failed
// input class (time or date) and the accepted formats for user feedback
func ErrMalformedInput(class MalformedInputClass, input string, accepted []string) *DomainError {
	return NewDomainError(ErrCodeMalformedInput, fmt.Sprintf("could not parse %s: %q", class, input)).
		WithDetails("class", string(class)).
		WithDetails("input", input).
		WithDetails("acceptedFormats", accepted)
}

// MalformedClass extracts the input class from a malformed input error,
// or an empty string if err is not one
func MalformedClass(err error) MalformedInputClass {
	if domainErr, ok := err.(*DomainError); ok && domainErr.Code == ErrCodeMalformedInput {
		if class, ok := domainErr.Details["class"].(string); ok {
			return MalformedInputClass(class)
		}
	}
	return ""
}

// Scheduling errors

// ErrInsufficientParties creates an error for a scheduling call with
// fewer than the required resolvable locations
func ErrInsufficientParties(resolved int, required int) *DomainError {
	return NewDomainError(ErrCodeInsufficientParties,
		fmt.Sprintf("need at least %d resolvable locations, got %d", required, resolved)).
		WithDetails("resolved", resolved).
		WithDetails("required", required)
}

// ErrLocationUnresolved creates an error for a single location that could
// not be geocoded or mapped to a timezone; scheduling calls absorb it per party
func ErrLocationUnresolved(location string, reason string) *DomainError {
	return NewDomainError(ErrCodeLocationUnresolved, fmt.Sprintf("could not resolve location: %s", location)).
		WithDetails("location", location).
		WithDetails("reason", reason)
}

// Geocoding errors

// ErrGeocoding creates a geocoding error
func ErrGeocoding(operation string, reason string) *DomainError {
	return NewDomainError(ErrCodeGeocoding, fmt.Sprintf("geocoding error in %s: %s", operation, reason)).
		WithDetails("operation", operation).
		WithDetails("reason", reason)
}

// ErrGeocodingWithCause creates a geocoding error with cause
func ErrGeocodingWithCause(operation string, err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeGeocoding, fmt.Sprintf("geocoding error in %s", operation), err).
		WithDetails("operation", operation)
}

// Cache errors

// ErrCache creates a cache store error
func ErrCache(operation string, err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeCache, fmt.Sprintf("cache error in %s", operation), err).
		WithDetails("operation", operation)
}

// Export errors

// ErrExport creates an export error
func ErrExport(operation string, reason string) *DomainError {
	return NewDomainError(ErrCodeExport, fmt.Sprintf("export error in %s: %s", operation, reason)).
		WithDetails("operation", operation).
		WithDetails("reason", reason)
}

// ErrExportWithCause creates an export error with cause
func ErrExportWithCause(operation string, reason string, err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeExport, fmt.Sprintf("export error in %s: %s", operation, reason), err).
		WithDetails("operation", operation).
		WithDetails("reason", reason)
}

// File operation errors

// ErrFileOperation creates a file operation error
func ErrFileOperation(operation string, path string, reason string) *DomainError {
	return NewDomainError(ErrCodeFileOperation, fmt.Sprintf("file operation error in %s: %s", operation, reason)).
		WithDetails("operation", operation).
		WithDetails("path", path).
		WithDetails("reason", reason)
}

// ErrFileOperationWithCause creates a file operation error with cause
func ErrFileOperationWithCause(operation string, path string, err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeFileOperation, fmt.Sprintf("file operation error in %s", operation), err).
		WithDetails("operation", operation).
		WithDetails("path", path)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error
func GetErrorCode(err error) ErrorCode {
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr.Code
	}
	return ""
}
