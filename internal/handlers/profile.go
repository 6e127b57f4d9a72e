package handlers

import (
	"encoding/json"
	"net/http"

	"tg-dating-backend/internal/models"
	"tg-dating-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// ProfileHandler handles the caller's own profile
type ProfileHandler struct {
	tenants *services.Tenants
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(tenants *services.Tenants) *ProfileHandler {
	return &ProfileHandler{tenants: tenants}
}

// GetProfile handles GET /api/v1/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	store, identity, ok := storeFor(w, r, h.tenants)
	if !ok {
		return
	}

	profile, err := store.Profiles.GetProfile(r.Context(), identity)
	if err != nil {
		log.Error().Err(err).Int64("user_id", identity.ID).Msg("Failed to get profile")
		respondError(w, "Failed to get profile", statusFor(err))
		return
	}
	if profile == nil {
		respondError(w, "profile not found", http.StatusNotFound)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/v1/profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	store, identity, ok := storeFor(w, r, h.tenants)
	if !ok {
		return
	}

	var patch models.ProfilePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if patch.Age != nil && *patch.Age < 18 {
		respondError(w, "age must be at least 18", http.StatusBadRequest)
		return
	}
	if p := patch.Preferences; p != nil && (p.MinAge > p.MaxAge || p.MaxDistance < 0) {
		respondError(w, "invalid preferences", http.StatusBadRequest)
		return
	}

	profile, err := store.Profiles.SaveProfile(r.Context(), identity, patch)
	if err != nil {
		log.Error().Err(err).Int64("user_id", identity.ID).Msg("Failed to save profile")
		respondError(w, "Failed to save profile", statusFor(err))
		return
	}

	log.Info().Int64("user_id", identity.ID).Msg("Profile saved")
	respondJSON(w, http.StatusOK, profile)
}
