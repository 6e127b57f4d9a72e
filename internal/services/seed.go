package services

import (
	"time"

	"tg-dating-backend/internal/models"
)

// DefaultCandidates returns the fixed pool used to seed an empty store
func DefaultCandidates() []models.Candidate {
	return []models.Candidate{
		{
			ID:        "cand_1",
			FirstName: "Аня",
			Age:       25,
			Bio:       "Бегаю марафоны, варю лучший раф и ищу спутника для путешествий.",
			Photos: []string{
				"https://images.unsplash.com/photo-1494790108377-be9c29b29330?auto=format&fit=crop&w=900&q=80",
				"https://images.unsplash.com/photo-1524504388940-b1c1722653e1?auto=format&fit=crop&w=900&q=80",
			},
		},
		{
			ID:        "cand_2",
			FirstName: "Мария",
			Age:       29,
			Bio:       "Продакт, обожаю артхаус, крафтовое пиво и котов.",
			Photos: []string{
				"https://images.unsplash.com/photo-1524504388940-b1c1722653e1?auto=format&fit=crop&w=900&q=80",
				"https://images.unsplash.com/photo-1487412720507-e7ab37603c6f?auto=format&fit=crop&w=900&q=80",
			},
		},
		{
			ID:        "cand_3",
			FirstName: "Катя",
			Age:       22,
			Bio:       "Дизайнер UX/UI, люблю выставки, плёночную фотографию и утренние пробежки.",
			Photos: []string{
				"https://images.unsplash.com/photo-1494790108377-be9c29b29330?auto=format&fit=crop&w=900&q=80",
			},
		},
		{
			ID:        "cand_4",
			FirstName: "Вика",
			Age:       27,
			Bio:       "Йога, книги и походы в горы. Ищу партнёра в crime & coffee.",
			Photos: []string{
				"https://images.unsplash.com/photo-1469474968028-56623f02e42e?auto=format&fit=crop&w=900&q=80",
				"https://images.unsplash.com/photo-1524504388940-b1c1722653e1?auto=format&fit=crop&w=900&q=80",
			},
		},
		{
			ID:        "cand_5",
			FirstName: "Саша",
			Age:       24,
			Bio:       "Фронтендер, катаюсь на борде, обожаю инди-музыку и тёплый ламповый свет.",
			Photos: []string{
				"https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?auto=format&fit=crop&w=900&q=80",
				"https://images.unsplash.com/photo-1494790108377-be9c29b29330?auto=format&fit=crop&w=900&q=80",
			},
		},
	}
}

const (
	presetGreeting  = "Привет! Нашла твоё письмо, оно было милым 😊"
	presetSelfReply = "Привет! Давай пересечёмся в субботу, я свободен после 15:00."
	matchWelcome    = "Хей! Кажется, у нас есть совпадение ❤️"
)

// presetSelf authors the outgoing messages of preset threads
var presetSelf = models.Candidate{
	ID:        "me",
	FirstName: "Вы",
	Photos:    []string{models.DefaultAvatar},
}

// PresetChats returns the fixed chat list, timestamped relative to anchor
func PresetChats(anchor time.Time) []models.ChatPreview {
	pool := DefaultCandidates()
	return []models.ChatPreview{
		{
			ID:          "chat_anya",
			User:        pool[0],
			LastMessage: "Когда выберемся на кофе? ☕️",
			UpdatedAt:   anchor.Add(-25 * time.Minute),
			UnreadCount: 2,
		},
		{
			ID:          "chat_maria",
			User:        pool[1],
			LastMessage: "Отправила плейлист, заценишь?",
			UpdatedAt:   anchor.Add(-90 * time.Minute),
			UnreadCount: 0,
		},
		{
			ID:          "chat_katya",
			User:        pool[2],
			LastMessage: "В субботу будет выставка, пойдём?",
			UpdatedAt:   anchor.Add(-240 * time.Minute),
			UnreadCount: 1,
		},
	}
}

// presetMessages builds the seeded history of a preset thread in append order:
// the peer's greeting, the self reply, then the preset's last message.
func presetMessages(chat models.ChatPreview) []models.ChatMessage {
	return []models.ChatMessage{
		{
			ID:        chat.ID + "_m0",
			Sender:    chat.User,
			Content:   presetGreeting,
			Kind:      models.MessageKindText,
			IsRead:    true,
			CreatedAt: chat.UpdatedAt.Add(-2 * time.Hour),
		},
		{
			ID:        chat.ID + "_me1",
			Sender:    presetSelf,
			Content:   presetSelfReply,
			Kind:      models.MessageKindText,
			IsRead:    true,
			CreatedAt: chat.UpdatedAt.Add(-time.Hour),
		},
		{
			ID:        chat.ID + "_m1",
			Sender:    chat.User,
			Content:   chat.LastMessage,
			Kind:      models.MessageKindText,
			IsRead:    chat.UnreadCount == 0,
			CreatedAt: chat.UpdatedAt,
		},
	}
}
