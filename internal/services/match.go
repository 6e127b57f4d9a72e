package services

import (
	"context"
	"sync"

	"tg-dating-backend/internal/metrics"
	"tg-dating-backend/internal/models"
	"tg-dating-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// MatchService turns swipes into matches
type MatchService struct {
	repo       *repository.MatchRepository
	candidates *CandidateService
	chats      *ChatService
	mu         *sync.Mutex
	opts       Options
}

// NewMatchService creates a new match service
func NewMatchService(
	repo *repository.MatchRepository,
	candidates *CandidateService,
	chats *ChatService,
	mu *sync.Mutex,
	opts Options,
) *MatchService {
	return &MatchService{
		repo:       repo,
		candidates: candidates,
		chats:      chats,
		mu:         mu,
		opts:       opts.withDefaults(),
	}
}

// Swipe records a decision on a candidate. A like on a known candidate always
// reports a match; the match and its welcome thread are created only once.
// Dislikes, unknown candidates and a missing identity report no match and
// leave no trace.
func (s *MatchService) Swipe(ctx context.Context, identity models.Identity, targetID string, liked bool) (models.SwipeOutcome, error) {
	if identity.IsZero() {
		s.opts.Metrics.Swipe(metrics.OutcomeIgnored)
		return models.SwipeOutcome{}, nil
	}
	if err := s.opts.Latency.Wait(ctx); err != nil {
		return models.SwipeOutcome{}, err
	}

	if !liked {
		s.opts.Metrics.Swipe(metrics.OutcomeDisliked)
		return models.SwipeOutcome{}, nil
	}

	s.mu.Lock()
	target, ok := s.candidates.find(ctx, targetID)
	if !ok {
		s.mu.Unlock()
		s.opts.Metrics.Swipe(metrics.OutcomeIgnored)
		return models.SwipeOutcome{}, nil
	}

	var created *models.MatchPreview
	if !s.repo.Exists(ctx, targetID) {
		match := models.MatchPreview{
			MatchID:   targetID,
			User:      target,
			MatchedAt: s.opts.Clock(),
		}
		s.repo.Append(ctx, match)
		s.chats.seedMatchThread(ctx, targetID, target)
		created = &match
	}
	s.mu.Unlock()

	s.opts.Metrics.Swipe(metrics.OutcomeMatched)
	if created != nil {
		s.opts.Metrics.MatchCreated()
		log.Info().
			Int64("user_id", identity.ID).
			Str("match_id", targetID).
			Msg("Match created")
		if s.opts.Notifier != nil {
			s.opts.Notifier.MatchCreated(identity, *created)
		}
	}

	return models.SwipeOutcome{Matched: true, MatchID: targetID}, nil
}

// ListMatches returns all matches in storage order, empty without an identity
func (s *MatchService) ListMatches(ctx context.Context, identity models.Identity) ([]models.MatchPreview, error) {
	if identity.IsZero() {
		return []models.MatchPreview{}, nil
	}
	if err := s.opts.Latency.Wait(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.List(ctx), nil
}

// Peer resolves the counterpart of a match thread from the match snapshots.
// Candidates that were never matched have no peer.
func (s *MatchService) Peer(ctx context.Context, id string) (models.Candidate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.repo.List(ctx) {
		if m.MatchID == id {
			return m.User, true
		}
	}
	return models.Candidate{}, false
}
