package repository

import (
	"context"

	"tg-dating-backend/internal/kv"
	"tg-dating-backend/internal/models"
)

// ProfileRepository handles the persisted user profile
type ProfileRepository struct {
	medium kv.Medium
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(medium kv.Medium) *ProfileRepository {
	return &ProfileRepository{medium: medium}
}

// Get returns the persisted profile or nil when none was saved
func (r *ProfileRepository) Get(ctx context.Context) *models.UserProfile {
	return load[*models.UserProfile](ctx, r.medium, KeyProfile, nil)
}

// Save overwrites the persisted profile
func (r *ProfileRepository) Save(ctx context.Context, profile models.UserProfile) {
	store(ctx, r.medium, KeyProfile, profile)
}
