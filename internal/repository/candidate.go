package repository

import (
	"context"

	"tg-dating-backend/internal/kv"
	"tg-dating-backend/internal/models"
)

// CandidateRepository handles the candidate pool
type CandidateRepository struct {
	medium kv.Medium
}

// NewCandidateRepository creates a new candidate repository
func NewCandidateRepository(medium kv.Medium) *CandidateRepository {
	return &CandidateRepository{medium: medium}
}

// List returns the pool in insertion order
func (r *CandidateRepository) List(ctx context.Context) []models.Candidate {
	return load(ctx, r.medium, KeyCandidates, []models.Candidate{})
}

// Replace overwrites the whole pool
func (r *CandidateRepository) Replace(ctx context.Context, candidates []models.Candidate) {
	store(ctx, r.medium, KeyCandidates, candidates)
}
