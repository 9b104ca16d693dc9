package utils

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrConflict          = errors.New("conflict")
)

// PublicError carries a message that is safe to return to API callers.
// Kind is one of the sentinel errors above.
type PublicError struct {
	Kind    error
	Message string
}

func (e *PublicError) Error() string {
	return e.Message
}

func (e *PublicError) Unwrap() error {
	return e.Kind
}

func NotFound(message string) error {
	return &PublicError{Kind: ErrNotFound, Message: message}
}

func Invalid(format string, args ...interface{}) error {
	return &PublicError{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func InvalidTransition(from, to string) error {
	return &PublicError{
		Kind:    ErrInvalidTransition,
		Message: fmt.Sprintf("cannot change order status from %s to %s", from, to),
	}
}

// OrderFinal is returned when a completed or cancelled order is edited
// without a status change.
func OrderFinal(status string) error {
	return &PublicError{
		Kind:    ErrInvalidTransition,
		Message: fmt.Sprintf("order is %s and can no longer be edited", status),
	}
}

func Conflict(message string) error {
	return &PublicError{Kind: ErrConflict, Message: message}
}

// StatusCode maps an error to the HTTP status the API answers with.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
