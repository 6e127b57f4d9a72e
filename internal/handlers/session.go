package handlers

import (
	"encoding/json"
	"net/http"

	"tg-dating-backend/internal/models"
	"tg-dating-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// SessionHandler exchanges a platform identity for a session token
type SessionHandler struct {
	sessions *services.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *services.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// SessionResponse is returned by CreateSession
type SessionResponse struct {
	Token string          `json:"token"`
	User  models.Identity `json:"user"`
}

// CreateSession handles POST /api/v1/session
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var identity models.Identity
	if err := json.NewDecoder(r.Body).Decode(&identity); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if identity.IsZero() {
		respondError(w, "id is required", http.StatusBadRequest)
		return
	}

	token, err := h.sessions.Issue(identity)
	if err != nil {
		log.Error().Err(err).Int64("user_id", identity.ID).Msg("Failed to issue session")
		respondError(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	log.Info().
		Int64("user_id", identity.ID).
		Str("username", identity.Username).
		Msg("Session created")

	respondJSON(w, http.StatusOK, SessionResponse{Token: token, User: identity})
}
