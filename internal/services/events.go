package services

import (
	"errors"

	"tg-dating-backend/internal/models"
)

// ErrEventNotFound is returned for an unknown event slug
var ErrEventNotFound = errors.New("event not found")

// Event categories
const (
	EventCategoryCommunity = "community"
	EventCategoryGame      = "game"
)

// EventService serves the community tab's event catalog
type EventService struct {
	events []models.Event
}

// NewEventService creates an event service over the built-in catalog
func NewEventService() *EventService {
	return &EventService{events: defaultEvents()}
}

// List returns the events of a category, or all of them when category is empty
func (s *EventService) List(category string) []models.Event {
	out := make([]models.Event, 0, len(s.events))
	for _, e := range s.events {
		if category == "" || e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// Get returns the event with the given slug
func (s *EventService) Get(slug string) (models.Event, error) {
	for _, e := range s.events {
		if e.Slug == slug {
			return e, nil
		}
	}
	return models.Event{}, ErrEventNotFound
}

func defaultEvents() []models.Event {
	return []models.Event{
		{
			Slug:        "ftmi-halloween-2026",
			Category:    EventCategoryCommunity,
			Title:       "FTMI Halloween Party 2026",
			Date:        "31 октября 2026, 21:00",
			Cover:       "/placeholders/party-banner.jpeg",
			Location:    "Лофт на Литейном, 34",
			Description: "Ночной костюмированный маркет, бар с фирменными хэллоуин-коктейлями и DJ-сет от резидента FTMI. Лучший костюм получает годовую подписку на премиум!",
			Agenda: []string{
				"21:00 — welcome зона, свечи и дыма побольше",
				"22:00 — speed friending “темные академики”",
				"23:00 — костюм battle",
				"00:00 — закрытый танцпол до утра",
			},
			Tag: "Оффлайн",
		},
		{
			Slug:        "rooftop-vinyl-night",
			Category:    EventCategoryCommunity,
			Title:       "Rooftop Vinyl Night",
			Date:        "07 ноября 2026, 20:00",
			Cover:       "/placeholders/party1.jpeg",
			Location:    "Руфтоп ITMO Highline",
			Description: "Живые виниловые сеты, пледы и какао. Для интровертов — тихая зона, для экстравертов — танцы.",
			Agenda: []string{
				"20:00 — сбор, тёплые напитки",
				"20:30 — blind meet 1:1",
				"21:30 — виниловый сет с заявками гостей",
			},
			Tag: "Музыка",
		},
		{
			Slug:        "boardgames-matcha",
			Category:    EventCategoryCommunity,
			Title:       "Boardgames & Matcha",
			Date:        "10 ноября 2026, 18:30",
			Cover:       "/placeholders/party2.jpeg",
			Location:    "Антикафе “Дворик”",
			Description: "Турнир по “Кодовым именам” и “Дикситу” в формате смешанных команд. Новые друзья гарантированы.",
			Agenda: []string{
				"18:30 — жеребьёвка",
				"19:00 — первый раунд игр",
				"20:30 — обмен контактами и матча-челлендж",
			},
			Tag: "Настолки",
		},
		{
			Slug:        "karaoke-blind-dates",
			Category:    EventCategoryCommunity,
			Title:       "Karaoke Blind Dates",
			Date:        "15 ноября 2026, 19:00",
			Cover:       "/placeholders/party3.jpeg",
			Location:    "Karaoke Room ITMO",
			Description: "Парные песни вслепую: миксуем голоса, эмоции и неожиданные дуэты.",
			Agenda: []string{
				"19:00 — жеребьёвка пар",
				"19:30 — первый блок выступлений",
				"21:00 — free mic + танцпол",
			},
			Tag: "Караоке",
		},
		{
			Slug:        "brunch-art-walk",
			Category:    EventCategoryCommunity,
			Title:       "Brunch & Art Walk",
			Date:        "24 ноября 2026, 12:00",
			Cover:       "/placeholders/party4.jpeg",
			Location:    "Ботанический сад + арт-пространство",
			Description: "Медленный воскресный бранч с прогулкой по инсталляциям. Трекер знакомств поможет не потерять контакты.",
			Agenda: []string{
				"12:00 — бранч и интро-игра",
				"13:00 — прогулка по экспозиции",
				"14:00 — обмен впечатлениями в паре",
			},
			Tag: "Бранч",
		},
		{
			Slug:        "speed-meeting-quest",
			Category:    EventCategoryGame,
			Title:       "Speed Meeting Quest",
			Date:        "Каждый четверг, 19:00",
			Cover:       "/placeholders/game-banner.jpg",
			Location:    "Главный кампус ITMO, квест-маршрут",
			Description: "Командный квест по кампусу: каждая точка — новое знакомство и мини-испытание. Идеально, чтобы разрушить лёд и набрать контактов за вечер.",
			Agenda: []string{
				"19:00 — сбор и распределение на команды",
				"19:20 — старт квеста (5 чекпоинтов)",
				"20:40 — финал и награждение",
				"21:00 — нетворк-лаундж с лимонадом",
			},
			Tag: "Квест",
		},
		{
			Slug:        "icebreaker-bingo",
			Category:    EventCategoryGame,
			Title:       "Icebreaker Bingo",
			Date:        "Пятница, 18:00",
			Cover:       "/placeholders/game1.jpg",
			Location:    "Коворкинг “Поток”",
			Description: "Бинго-карты с заданиями на общение: найди человека, который был в том же городе, или умеет готовить лучшую пасту.",
			Agenda: []string{
				"18:00 — выдача карточек",
				"18:20 — раунд 1 “Совпадения”",
				"19:00 — раунд 2 “Неожиданные факты”",
			},
			Tag: "Icebreaker",
		},
		{
			Slug:        "spyfall-night",
			Category:    EventCategoryGame,
			Title:       "Spyfall Night",
			Date:        "Среда, 19:30",
			Cover:       "/placeholders/game2.jpg",
			Location:    "Лаундж “Точка притяжения”",
			Description: "Классический Spyfall в живую: короткие раунды, смена столов, чтобы познакомиться с максимальным количеством людей.",
			Agenda: []string{
				"19:30 — правила за 5 минут",
				"19:40 — раунды по 8 минут",
				"20:30 — “шпионский” фриплей и общение",
			},
			Tag: "Настолки",
		},
	}
}
