package handlers

import (
	"errors"
	"net/http"

	"github.com/pactfit/pactfit-backend/internal/services"
)

// statusFor maps service sentinel errors to HTTP statuses, falling back to
// the handler's default.
func statusFor(err error, fallback int) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return fallback
	}
}
