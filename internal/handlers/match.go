package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"tg-dating-backend/internal/models"
	"tg-dating-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// MatchHandler handles the swipe deck and the match list
type MatchHandler struct {
	tenants *services.Tenants
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(tenants *services.Tenants) *MatchHandler {
	return &MatchHandler{tenants: tenants}
}

// ListCandidates handles GET /api/v1/candidates. With filter=preferences the
// page is narrowed to the age range of the caller's saved preferences.
func (h *MatchHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	store, identity, ok := storeFor(w, r, h.tenants)
	if !ok {
		return
	}
	ctx := r.Context()

	limit := services.DefaultCandidateLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}

	candidates, err := store.Candidates.ListCandidates(ctx, limit)
	if err != nil {
		log.Error().Err(err).Int64("user_id", identity.ID).Msg("Failed to list candidates")
		respondError(w, "Failed to list candidates", statusFor(err))
		return
	}

	if r.URL.Query().Get("filter") == "preferences" {
		profile, err := store.Profiles.GetProfile(ctx, identity)
		if err != nil {
			respondError(w, "Failed to get profile", statusFor(err))
			return
		}
		if profile != nil {
			candidates = models.FilterByPreferences(candidates, profile.Preferences)
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"candidates": candidates,
	})
}

// SwipeRequest represents the request body for a swipe
type SwipeRequest struct {
	CandidateID string `json:"candidate_id"`
	Liked       bool   `json:"liked"`
}

// Swipe handles POST /api/v1/swipes
func (h *MatchHandler) Swipe(w http.ResponseWriter, r *http.Request) {
	store, identity, ok := storeFor(w, r, h.tenants)
	if !ok {
		return
	}

	var req SwipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.CandidateID == "" {
		respondError(w, "candidate_id is required", http.StatusBadRequest)
		return
	}

	outcome, err := store.Matches.Swipe(r.Context(), identity, req.CandidateID, req.Liked)
	if err != nil {
		log.Error().
			Err(err).
			Int64("user_id", identity.ID).
			Str("candidate_id", req.CandidateID).
			Msg("Failed to swipe")
		respondError(w, "Failed to swipe", statusFor(err))
		return
	}

	respondJSON(w, http.StatusOK, outcome)
}

// ListMatches handles GET /api/v1/matches
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	store, identity, ok := storeFor(w, r, h.tenants)
	if !ok {
		return
	}

	matches, err := store.Matches.ListMatches(r.Context(), identity)
	if err != nil {
		log.Error().Err(err).Int64("user_id", identity.ID).Msg("Failed to list matches")
		respondError(w, "Failed to list matches", statusFor(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"matches": matches,
	})
}
