package services

import (
	"context"
	"sync"

	"tg-dating-backend/internal/metrics"
	"tg-dating-backend/internal/models"
	"tg-dating-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// DefaultCandidateLimit is the page size used when a caller names none
const DefaultCandidateLimit = 10

// CandidateService handles the candidate pool
type CandidateService struct {
	repo *repository.CandidateRepository
	mu   *sync.Mutex
	opts Options
}

// NewCandidateService creates a new candidate service
func NewCandidateService(repo *repository.CandidateRepository, mu *sync.Mutex, opts Options) *CandidateService {
	return &CandidateService{repo: repo, mu: mu, opts: opts.withDefaults()}
}

// EnsureSeeded returns the pool, seeding it with the default set when empty
func (s *CandidateService) EnsureSeeded(ctx context.Context) []models.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureSeeded(ctx)
}

func (s *CandidateService) ensureSeeded(ctx context.Context) []models.Candidate {
	pool := s.repo.List(ctx)
	if len(pool) > 0 {
		return pool
	}

	pool = DefaultCandidates()
	s.repo.Replace(ctx, pool)
	s.opts.Metrics.Reseeded(metrics.CollectionCandidates)
	log.Debug().Int("count", len(pool)).Msg("Candidate pool seeded")
	return pool
}

// ListCandidates returns the first limit candidates in pool order
func (s *CandidateService) ListCandidates(ctx context.Context, limit int) ([]models.Candidate, error) {
	if err := s.opts.Latency.Wait(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return firstN(s.ensureSeeded(ctx), limit), nil
}

// CachedCandidates is ListCandidates without the simulated latency, for
// screens that render the deck synchronously.
func (s *CandidateService) CachedCandidates(ctx context.Context, limit int) []models.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()

	return firstN(s.ensureSeeded(ctx), limit)
}

// find looks a candidate up by id without latency or locking
func (s *CandidateService) find(ctx context.Context, id string) (models.Candidate, bool) {
	for _, c := range s.ensureSeeded(ctx) {
		if c.ID == id {
			return c, true
		}
	}
	return models.Candidate{}, false
}

// firstN returns the first limit entries; a non-positive limit yields none
func firstN(pool []models.Candidate, limit int) []models.Candidate {
	if limit <= 0 {
		return []models.Candidate{}
	}
	if limit > len(pool) {
		limit = len(pool)
	}
	return pool[:limit]
}
