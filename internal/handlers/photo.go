package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"tg-dating-backend/internal/middleware"
	"tg-dating-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// PhotoHandler handles profile photo uploads
type PhotoHandler struct {
	photoService *services.PhotoService
}

// NewPhotoHandler creates a new photo handler. A nil service disables uploads.
func NewPhotoHandler(photoService *services.PhotoService) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
	}
}

// UploadRequest represents the request body for an upload URL
type UploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// UploadPhoto handles POST /api/v1/photos/upload
func (h *PhotoHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if h.photoService == nil {
		respondError(w, "photo uploads are not configured", http.StatusServiceUnavailable)
		return
	}

	ctx := r.Context()
	identity := middleware.GetIdentity(ctx)

	var req UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Validate request
	if req.Filename == "" {
		respondError(w, "filename is required", http.StatusBadRequest)
		return
	}

	if req.ContentType == "" {
		req.ContentType = "image/jpeg" // Default
	}
	if !strings.HasPrefix(req.ContentType, "image/") {
		respondError(w, "only images can be uploaded", http.StatusBadRequest)
		return
	}

	response, err := h.photoService.PresignUpload(ctx, identity, req.Filename, req.ContentType)
	if err != nil {
		log.Error().
			Err(err).
			Int64("user_id", identity.ID).
			Str("filename", req.Filename).
			Msg("Failed to generate pre-signed URL")
		respondError(w, "Failed to generate upload URL", statusFor(err))
		return
	}

	log.Info().
		Int64("user_id", identity.ID).
		Str("photo_id", response.PhotoID).
		Str("filename", req.Filename).
		Msg("Pre-signed URL generated")

	respondJSON(w, http.StatusOK, response)
}
