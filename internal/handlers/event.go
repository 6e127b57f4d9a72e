package handlers

import (
	"net/http"

	"tg-dating-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

// EventHandler serves the event catalog
type EventHandler struct {
	events *services.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(events *services.EventService) *EventHandler {
	return &EventHandler{events: events}
}

// ListEvents handles GET /api/v1/events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"events": h.events.List(r.URL.Query().Get("category")),
	})
}

// GetEvent handles GET /api/v1/events/{slug}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.Get(chi.URLParam(r, "slug"))
	if err != nil {
		respondError(w, err.Error(), statusFor(err))
		return
	}
	respondJSON(w, http.StatusOK, event)
}
