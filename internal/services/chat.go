package services

import (
	"context"
	"sync"
	"time"

	"tg-dating-backend/internal/metrics"
	"tg-dating-backend/internal/models"
	"tg-dating-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ChatService handles chat threads and the preset chat list
type ChatService struct {
	messages *repository.MessageRepository
	profiles *repository.ProfileRepository
	presets  []models.ChatPreview
	mu       *sync.Mutex
	opts     Options
}

// NewChatService creates a new chat service. Preset chats are timestamped
// relative to the moment the service is created.
func NewChatService(
	messages *repository.MessageRepository,
	profiles *repository.ProfileRepository,
	mu *sync.Mutex,
	opts Options,
) *ChatService {
	opts = opts.withDefaults()
	return &ChatService{
		messages: messages,
		profiles: profiles,
		presets:  PresetChats(opts.Clock()),
		mu:       mu,
		opts:     opts,
	}
}

// ListPresetChats returns the chat list, healing any emptied preset thread
func (s *ChatService) ListPresetChats(ctx context.Context) []models.ChatPreview {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensurePresets(ctx)
	out := make([]models.ChatPreview, len(s.presets))
	copy(out, s.presets)
	return out
}

// IsPreset reports whether threadID names a preset chat
func (s *ChatService) IsPreset(threadID string) bool {
	_, ok := s.preset(threadID)
	return ok
}

// GetThread returns the messages of a thread in append order. Preset threads
// are reseeded when found empty. Any other thread gets a welcome message from
// peer when it has none yet and peer is known.
func (s *ChatService) GetThread(ctx context.Context, threadID string, peer *models.Candidate) ([]models.ChatMessage, error) {
	if threadID == "" {
		return []models.ChatMessage{}, nil
	}
	if err := s.opts.Latency.Wait(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if chat, ok := s.preset(threadID); ok {
		s.seedPreset(ctx, chat)
	} else if peer != nil {
		s.seedMatchThread(ctx, threadID, *peer)
	}
	return s.messages.Thread(ctx, threadID), nil
}

// AppendMessage adds a text message from the caller to a thread. The sender
// is the persisted profile when there is one, otherwise the identity itself.
func (s *ChatService) AppendMessage(ctx context.Context, identity models.Identity, threadID, text string) (*models.ChatMessage, error) {
	if threadID == "" {
		return nil, ErrThreadRequired
	}
	if err := s.opts.Latency.Wait(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.ensurePresets(ctx)

	message := models.ChatMessage{
		ID:        "msg_" + uuid.New().String(),
		Sender:    s.sender(ctx, identity),
		Content:   text,
		Kind:      models.MessageKindText,
		CreatedAt: s.nextTimestamp(ctx, threadID),
	}
	s.messages.Append(ctx, threadID, message)
	s.mu.Unlock()

	s.opts.Metrics.MessageAppended()
	log.Debug().
		Int64("user_id", identity.ID).
		Str("thread_id", threadID).
		Str("message_id", message.ID).
		Msg("Message appended")
	if s.opts.Notifier != nil {
		s.opts.Notifier.MessageAppended(identity, threadID, message)
	}

	return &message, nil
}

func (s *ChatService) preset(threadID string) (models.ChatPreview, bool) {
	for _, chat := range s.presets {
		if chat.ID == threadID {
			return chat, true
		}
	}
	return models.ChatPreview{}, false
}

// ensurePresets seeds every preset thread that has no messages
func (s *ChatService) ensurePresets(ctx context.Context) {
	for _, chat := range s.presets {
		s.seedPreset(ctx, chat)
	}
}

func (s *ChatService) seedPreset(ctx context.Context, chat models.ChatPreview) {
	if s.messages.SeedIfEmpty(ctx, chat.ID, presetMessages(chat)) {
		s.opts.Metrics.Reseeded(metrics.CollectionPresetChat)
		log.Debug().Str("thread_id", chat.ID).Msg("Preset thread seeded")
	}
}

// seedMatchThread writes the welcome message of a new match thread
func (s *ChatService) seedMatchThread(ctx context.Context, threadID string, peer models.Candidate) {
	welcome := models.ChatMessage{
		ID:        "msg_" + uuid.New().String(),
		Sender:    peer,
		Content:   matchWelcome,
		Kind:      models.MessageKindText,
		CreatedAt: s.opts.Clock(),
	}
	s.messages.SeedIfEmpty(ctx, threadID, []models.ChatMessage{welcome})
}

func (s *ChatService) sender(ctx context.Context, identity models.Identity) models.Candidate {
	if profile := s.profiles.Get(ctx); profile != nil {
		sender := profile.AsSender()
		sender.ID = identity.Key()
		return sender
	}

	firstName := identity.FirstName
	if firstName == "" {
		firstName = presetSelf.FirstName
	}
	return models.Candidate{
		ID:        identity.Key(),
		FirstName: firstName,
		LastName:  identity.LastName,
		Username:  identity.Username,
		Photos:    []string{models.DefaultAvatar},
	}
}

// nextTimestamp keeps a thread's timestamps non-decreasing even if the clock
// steps backwards.
func (s *ChatService) nextTimestamp(ctx context.Context, threadID string) time.Time {
	now := s.opts.Clock()
	thread := s.messages.Thread(ctx, threadID)
	if n := len(thread); n > 0 && thread[n-1].CreatedAt.After(now) {
		return thread[n-1].CreatedAt
	}
	return now
}
