package repository

import (
	"context"

	"tg-dating-backend/internal/kv"
	"tg-dating-backend/internal/models"
)

// MessageStore maps a thread id to its messages in append order
type MessageStore map[string][]models.ChatMessage

// MessageRepository handles chat threads
type MessageRepository struct {
	medium kv.Medium
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(medium kv.Medium) *MessageRepository {
	return &MessageRepository{medium: medium}
}

// All returns every stored thread
func (r *MessageRepository) All(ctx context.Context) MessageStore {
	threads := load(ctx, r.medium, KeyMessages, MessageStore{})
	if threads == nil {
		threads = MessageStore{}
	}
	return threads
}

// Thread returns the messages of one thread, empty when the thread is unknown
func (r *MessageRepository) Thread(ctx context.Context, threadID string) []models.ChatMessage {
	messages := r.All(ctx)[threadID]
	if messages == nil {
		return []models.ChatMessage{}
	}
	return messages
}

// SeedIfEmpty writes messages to a thread that has none. It reports whether
// anything was written; existing history is never replaced.
func (r *MessageRepository) SeedIfEmpty(ctx context.Context, threadID string, messages []models.ChatMessage) bool {
	threads := r.All(ctx)
	if len(threads[threadID]) > 0 {
		return false
	}
	threads[threadID] = messages
	store(ctx, r.medium, KeyMessages, threads)
	return true
}

// Append adds a message to the end of a thread
func (r *MessageRepository) Append(ctx context.Context, threadID string, message models.ChatMessage) {
	threads := r.All(ctx)
	threads[threadID] = append(threads[threadID], message)
	store(ctx, r.medium, KeyMessages, threads)
}

// Clear drops every thread
func (r *MessageRepository) Clear(ctx context.Context) {
	store(ctx, r.medium, KeyMessages, MessageStore{})
}
