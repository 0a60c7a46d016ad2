package services

import (
	"errors"
	"fmt"
)

// ErrorType classifies a DomainError for HTTP translation
type ErrorType string

const (
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeInternal     ErrorType = "internal"
	ErrorTypeExternal     ErrorType = "external"
)

// DomainError is returned by every service. Message is safe to show to
// clients; Err carries the cause for logs.
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Details map[string]interface{}
}

func (e *DomainError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
	return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches any DomainError of the same type, so
// errors.Is(err, ErrBlogNotFound) holds for every not-found error.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && e.Type == t.Type
}

// WithDetail attaches client-visible context, such as per-field messages
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{Type: errType, Message: message, Err: err}
}

// Accounts
var (
	ErrUserNotFound       = NewDomainError(ErrorTypeNotFound, "user not found", nil)
	ErrDuplicateEmail     = NewDomainError(ErrorTypeConflict, "email already exists", nil)
	ErrPasswordTooLong    = NewDomainError(ErrorTypeValidation, "password must be at most 72 bytes", nil)
	ErrInvalidCredentials = NewDomainError(ErrorTypeUnauthorized, "Invalid credentials", nil)
	ErrInvalidToken       = NewDomainError(ErrorTypeUnauthorized, "invalid authentication token", nil)
	ErrTokenExpired       = NewDomainError(ErrorTypeUnauthorized, "authentication token expired", nil)
	ErrUnauthorized       = NewDomainError(ErrorTypeUnauthorized, "Unauthorized", nil)
)

// Blogs
var (
	ErrBlogNotFound      = NewDomainError(ErrorTypeNotFound, "blog not found", nil)
	ErrTitleContentEmpty = NewDomainError(ErrorTypeValidation, "Title and content required", nil)
)

// Support assistant
var (
	ErrEmptyQuestion       = NewDomainError(ErrorTypeValidation, "question cannot be empty", nil)
	ErrKnowledgeBase       = NewDomainError(ErrorTypeInternal, "knowledge base unavailable", nil)
	ErrProviderUnavailable = NewDomainError(ErrorTypeExternal, "AI service unavailable", nil)
	ErrProviderError       = NewDomainError(ErrorTypeExternal, "AI service error", nil)
)

// GetErrorType returns the ErrorType of a domain error, or "" for any other error
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ""
}

// GetErrorDetails returns the details of a domain error, or nil
func GetErrorDetails(err error) map[string]interface{} {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Details
	}
	return nil
}

func IsNotFoundError(err error) bool     { return GetErrorType(err) == ErrorTypeNotFound }
func IsValidationError(err error) bool   { return GetErrorType(err) == ErrorTypeValidation }
func IsUnauthorizedError(err error) bool { return GetErrorType(err) == ErrorTypeUnauthorized }
func IsConflictError(err error) bool     { return GetErrorType(err) == ErrorTypeConflict }
func IsInternalError(err error) bool     { return GetErrorType(err) == ErrorTypeInternal }
func IsExternalError(err error) bool     { return GetErrorType(err) == ErrorTypeExternal }

// WrapInternal reports err to clients as message with an internal type
func WrapInternal(message string, err error) error {
	return NewDomainError(ErrorTypeInternal, message, err)
}

// WrapExternal reports an upstream failure as message
func WrapExternal(message string, err error) error {
	return NewDomainError(ErrorTypeExternal, message, err)
}
