package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewFetchError wraps a failed remote read.
func NewFetchError(resource string, err error) error {
	return &DomainError{
		Code:       "FETCH_FAILED",
		Message:    fmt.Sprintf("failed to fetch %s", resource),
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// NewCreateError wraps a failed remote insert.
func NewCreateError(resource string, err error) error {
	return &DomainError{
		Code:       "CREATE_FAILED",
		Message:    fmt.Sprintf("failed to create %s", resource),
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// NewUpdateError wraps a failed remote mutation.
func NewUpdateError(resource string, err error) error {
	return &DomainError{
		Code:       "UPDATE_FAILED",
		Message:    fmt.Sprintf("failed to update %s", resource),
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// NewAuthRequired signals an action that needs an identified acting user.
func NewAuthRequired(message string) error {
	return NewDomainError("AUTH_REQUIRED", message, http.StatusUnauthorized, nil)
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
