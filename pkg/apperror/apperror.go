package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInternal         = errors.New("internal server error")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrDataCorruption   = errors.New("data corruption")
	ErrConfiguration    = errors.New("configuration error")
	ErrUpstream         = errors.New("upstream error")
	ErrRateLimited      = errors.New("rate limited")
)

type AppError struct {
	BaseError error
	Message   string
	Details   string
	// Payload carries structured diagnostics that are safe to return to the caller.
	Payload any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (Details: %s, Cause: %v)", e.BaseError.Error(), e.Message, e.Details, e.Err)
	}
	return fmt.Sprintf("%s: %s (Details: %s)", e.BaseError.Error(), e.Message, e.Details)
}

func (e *AppError) Unwrap() error {
	return e.BaseError
}

func NewAppError(base error, msg, details string, err error) *AppError {
	return &AppError{BaseError: base, Message: msg, Details: details, Err: err}
}

func NewNotFound(resource, identifier string) *AppError {
	msg := fmt.Sprintf("%s not found", resource)
	details := fmt.Sprintf("%s with identifier '%s' was not found", resource, identifier)
	return NewAppError(ErrNotFound, msg, details, nil)
}

// NewInvalidInput reports a caller mistake; msg is shown to the client verbatim.
func NewInvalidInput(msg string, err error) *AppError {
	return NewAppError(ErrInvalidInput, msg, msg, err)
}

func NewInternal(details string, err error) *AppError {
	return NewAppError(ErrInternal, "An internal server error occurred", details, err)
}

func NewStoreUnavailable(details string, err error) *AppError {
	return NewAppError(ErrStoreUnavailable, "Storage is temporarily unavailable", details, err)
}

func NewDataCorruption(details string, err error) *AppError {
	return NewAppError(ErrDataCorruption, "Stored data is corrupted", details, err)
}

func NewConfiguration(msg string) *AppError {
	return NewAppError(ErrConfiguration, msg, msg, nil)
}

func NewUpstream(details string, payload any, err error) *AppError {
	appErr := NewAppError(ErrUpstream, "Failed to generate content", details, err)
	appErr.Payload = payload
	return appErr
}

func NewRateLimited(details string) *AppError {
	return NewAppError(ErrRateLimited, "Too many requests, slow down", details, nil)
}

func ToHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrRateLimited) {
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

func (e *AppError) ToJSON() gin.H {
	body := gin.H{
		"success": false,
		"error":   e.Message,
	}
	if e.Payload != nil {
		body["details"] = e.Payload
	}
	return body
}
