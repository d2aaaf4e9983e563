package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/fitrate/fitrate/internal/scanlimit"
)

// ErrCardNotFound indicates a rendered card is missing or expired.
type ErrCardNotFound struct {
	CardID uuid.UUID
}

func (e *ErrCardNotFound) Error() string {
	return fmt.Sprintf("card not found or expired: %s", e.CardID)
}

// ErrInvalidToken indicates a card retrieval token failed validation.
type ErrInvalidToken struct{}

func (e *ErrInvalidToken) Error() string {
	return "invalid or expired card token"
}

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrCardNotFound:
		return http.StatusNotFound
	case *ErrInvalidToken:
		return http.StatusUnauthorized
	case *ErrValidation:
		return http.StatusBadRequest
	case *scanlimit.ErrNoScans:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}
