package repository

import (
	"context"

	"tg-dating-backend/internal/kv"
	"tg-dating-backend/internal/models"
)

// MatchRepository handles the match list
type MatchRepository struct {
	medium kv.Medium
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(medium kv.Medium) *MatchRepository {
	return &MatchRepository{medium: medium}
}

// List returns all matches in storage order
func (r *MatchRepository) List(ctx context.Context) []models.MatchPreview {
	return load(ctx, r.medium, KeyMatches, []models.MatchPreview{})
}

// Exists checks if a match with the given id is already stored
func (r *MatchRepository) Exists(ctx context.Context, matchID string) bool {
	for _, m := range r.List(ctx) {
		if m.MatchID == matchID {
			return true
		}
	}
	return false
}

// Append adds a match at the end of the list
func (r *MatchRepository) Append(ctx context.Context, match models.MatchPreview) {
	matches := r.List(ctx)
	store(ctx, r.medium, KeyMatches, append(matches, match))
}
