package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"tg-dating-backend/internal/kv"
	"tg-dating-backend/internal/metrics"
	"tg-dating-backend/internal/models"
	"tg-dating-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

var (
	// ErrIdentityRequired is returned when a write needs an identity and none was given
	ErrIdentityRequired = errors.New("identity is required")
	// ErrThreadRequired is returned when a message is sent without a thread id
	ErrThreadRequired = errors.New("thread id is required")
)

// Notifier is told about state changes worth pushing to connected clients
type Notifier interface {
	MatchCreated(identity models.Identity, match models.MatchPreview)
	MessageAppended(identity models.Identity, threadID string, message models.ChatMessage)
}

// Options configures a Store
type Options struct {
	Latency  Latency
	Clock    func() time.Time
	Metrics  *metrics.Metrics
	Notifier Notifier
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}

// Store is the dating simulation over one key-value medium.
// Operations are serialised so read-modify-write cycles never interleave.
type Store struct {
	Profiles   *ProfileService
	Candidates *CandidateService
	Matches    *MatchService
	Chats      *ChatService

	medium kv.Medium
	schema *repository.SchemaRepository
	mu     *sync.Mutex
}

// NewStore wires the services over medium and bootstraps the seeded records
func NewStore(ctx context.Context, medium kv.Medium, opts Options) *Store {
	opts = opts.withDefaults()
	mu := &sync.Mutex{}

	profileRepo := repository.NewProfileRepository(medium)
	candidateRepo := repository.NewCandidateRepository(medium)
	matchRepo := repository.NewMatchRepository(medium)
	messageRepo := repository.NewMessageRepository(medium)

	candidates := NewCandidateService(candidateRepo, mu, opts)
	chats := NewChatService(messageRepo, profileRepo, mu, opts)
	s := &Store{
		Profiles:   NewProfileService(profileRepo, mu, opts),
		Candidates: candidates,
		Matches:    NewMatchService(matchRepo, candidates, chats, mu, opts),
		Chats:      chats,
		medium:     medium,
		schema:     repository.NewSchemaRepository(medium),
		mu:         mu,
	}
	s.Bootstrap(ctx)
	return s
}

// Bootstrap seeds the candidate pool and preset threads if they are empty
func (s *Store) Bootstrap(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.schema.Ensure(ctx)
	s.Candidates.ensureSeeded(ctx)
	s.Chats.ensurePresets(ctx)
}

// Reset wipes every record and bootstraps again
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	err := repository.Reset(ctx, s.medium)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.Bootstrap(ctx)
	return nil
}

// Tenants hands out one Store per platform user, each in its own key namespace
type Tenants struct {
	mu     sync.Mutex
	medium kv.Medium
	opts   Options
	stores map[int64]*Store
}

// NewTenants creates a tenant registry over a shared medium
func NewTenants(medium kv.Medium, opts Options) *Tenants {
	return &Tenants{
		medium: medium,
		opts:   opts,
		stores: make(map[int64]*Store),
	}
}

// For returns the store of identity, creating and bootstrapping it on first use
func (t *Tenants) For(ctx context.Context, identity models.Identity) (*Store, error) {
	if identity.IsZero() {
		return nil, ErrIdentityRequired
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if s, ok := t.stores[identity.ID]; ok {
		return s, nil
	}
	s := NewStore(ctx, kv.Prefixed(t.medium, "user:"+identity.Key()+":"), t.opts)
	t.stores[identity.ID] = s

	log.Info().Int64("user_id", identity.ID).Msg("Store initialized")
	return s, nil
}
