package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"tg-dating-backend/internal/models"
	"tg-dating-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// MaxMessageLength is the longest message a caller may send, in characters
const MaxMessageLength = 500

// ChatHandler handles chat threads
type ChatHandler struct {
	tenants *services.Tenants
}

// NewChatHandler creates a new chat handler
func NewChatHandler(tenants *services.Tenants) *ChatHandler {
	return &ChatHandler{tenants: tenants}
}

// ListChats handles GET /api/v1/chats
func (h *ChatHandler) ListChats(w http.ResponseWriter, r *http.Request) {
	store, _, ok := storeFor(w, r, h.tenants)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"chats": store.Chats.ListPresetChats(r.Context()),
	})
}

// GetMessages handles GET /api/v1/chats/{thread_id}/messages. For threads
// that are not preset chats the peer is the match named by peer_id, falling
// back to the thread id itself. Without a match no welcome message is written.
func (h *ChatHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	store, identity, ok := storeFor(w, r, h.tenants)
	if !ok {
		return
	}
	ctx := r.Context()
	threadID := chi.URLParam(r, "thread_id")

	var peer *models.Candidate
	if !store.Chats.IsPreset(threadID) {
		peerID := r.URL.Query().Get("peer_id")
		if peerID == "" {
			peerID = threadID
		}
		if c, found := store.Matches.Peer(ctx, peerID); found {
			peer = &c
		}
	}

	messages, err := store.Chats.GetThread(ctx, threadID, peer)
	if err != nil {
		log.Error().
			Err(err).
			Int64("user_id", identity.ID).
			Str("thread_id", threadID).
			Msg("Failed to get messages")
		respondError(w, "Failed to get messages", statusFor(err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"messages": messages,
	})
}

// SendMessageRequest represents the request body for sending a message
type SendMessageRequest struct {
	Content string `json:"content"`
}

// SendMessage handles POST /api/v1/chats/{thread_id}/messages
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	store, identity, ok := storeFor(w, r, h.tenants)
	if !ok {
		return
	}
	threadID := chi.URLParam(r, "thread_id")

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		respondError(w, "content is required", http.StatusBadRequest)
		return
	}
	if utf8.RuneCountInString(req.Content) > MaxMessageLength {
		respondError(w, "content is too long", http.StatusBadRequest)
		return
	}

	message, err := store.Chats.AppendMessage(r.Context(), identity, threadID, req.Content)
	if err != nil {
		log.Error().
			Err(err).
			Int64("user_id", identity.ID).
			Str("thread_id", threadID).
			Msg("Failed to send message")
		respondError(w, "Failed to send message", statusFor(err))
		return
	}

	respondJSON(w, http.StatusCreated, message)
}
