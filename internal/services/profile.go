package services

import (
	"context"
	"sync"

	"tg-dating-backend/internal/models"
	"tg-dating-backend/internal/repository"
)

// ProfileService handles the user's own profile
type ProfileService struct {
	repo *repository.ProfileRepository
	mu   *sync.Mutex
	opts Options
}

// NewProfileService creates a new profile service
func NewProfileService(repo *repository.ProfileRepository, mu *sync.Mutex, opts Options) *ProfileService {
	return &ProfileService{repo: repo, mu: mu, opts: opts.withDefaults()}
}

// GetProfile returns the persisted profile, or nil when there is no identity
// or nothing was saved yet. Missing timestamps are filled with the current
// time without being written back.
func (s *ProfileService) GetProfile(ctx context.Context, identity models.Identity) (*models.UserProfile, error) {
	if identity.IsZero() {
		return nil, nil
	}
	if err := s.opts.Latency.Wait(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.repo.Get(ctx)
	if stored == nil {
		return nil, nil
	}
	profile := models.BackfillTimestamps(*stored, s.opts.Clock())
	return &profile, nil
}

// SaveProfile merges patch over the persisted profile and the identity
// defaults, persists and returns the result.
func (s *ProfileService) SaveProfile(ctx context.Context, identity models.Identity, patch models.ProfilePatch) (*models.UserProfile, error) {
	if identity.IsZero() {
		return nil, ErrIdentityRequired
	}
	if err := s.opts.Latency.Wait(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.opts.Clock()
	next := models.MergeProfile(models.DefaultProfile(identity, now), s.repo.Get(ctx), patch, now)
	s.repo.Save(ctx, next)
	return &next, nil
}
