package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"tg-dating-backend/internal/middleware"
	"tg-dating-backend/internal/models"
	"tg-dating-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondJSON sends body as JSON with statusCode
func respondJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// statusFor maps a service error to an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrIdentityRequired):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrThreadRequired):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrEventNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// storeFor resolves the caller's identity and its store. It writes the error
// response itself and reports false when the request cannot proceed.
func storeFor(w http.ResponseWriter, r *http.Request, tenants *services.Tenants) (*services.Store, models.Identity, bool) {
	identity := middleware.GetIdentity(r.Context())
	store, err := tenants.For(r.Context(), identity)
	if err != nil {
		respondError(w, err.Error(), statusFor(err))
		return nil, identity, false
	}
	return store, identity, true
}
