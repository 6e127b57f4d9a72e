package handlers

import (
	"net/http"

	"tg-dating-backend/internal/middleware"
	"tg-dating-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// RouterDeps lists what the HTTP layer is built from. Photos may be nil.
type RouterDeps struct {
	Tenants        *services.Tenants
	Sessions       *services.SessionService
	Photos         *services.PhotoService
	Events         *services.EventService
	Hub            *services.WSHub
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
}

// NewRouter builds the HTTP routes of the mini-app backend
func NewRouter(d RouterDeps) http.Handler {
	sessionHandler := NewSessionHandler(d.Sessions)
	profileHandler := NewProfileHandler(d.Tenants)
	matchHandler := NewMatchHandler(d.Tenants)
	chatHandler := NewChatHandler(d.Tenants)
	photoHandler := NewPhotoHandler(d.Photos)
	eventHandler := NewEventHandler(d.Events)
	wsHandler := NewWebSocketHandler(d.Hub, d.Sessions)

	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler)

	// Routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/session", sessionHandler.CreateSession)
		r.Get("/events", eventHandler.ListEvents)
		r.Get("/events/{slug}", eventHandler.GetEvent)

		// Routes acting on behalf of an identity
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(d.Sessions))
			r.Get("/profile", profileHandler.GetProfile)
			r.Put("/profile", profileHandler.UpdateProfile)
			r.Get("/candidates", matchHandler.ListCandidates)
			r.Post("/swipes", matchHandler.Swipe)
			r.Get("/matches", matchHandler.ListMatches)
			r.Get("/chats", chatHandler.ListChats)
			r.Get("/chats/{thread_id}/messages", chatHandler.GetMessages)
			r.Post("/chats/{thread_id}/messages", chatHandler.SendMessage)
			r.Post("/photos/upload", photoHandler.UploadPhoto)
		})
	})

	r.Get("/ws", wsHandler.HandleWebSocket)

	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
