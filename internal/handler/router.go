package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vaultpass/passgen/internal/middleware"
	"github.com/vaultpass/passgen/internal/service"
)

// RouterConfig wires services and limits into the API router.
type RouterConfig struct {
	Generator      *service.GeneratorService
	Auth           *service.AuthService
	JWTSecret      string
	RateLimitRPS   float64
	RateLimitBurst int
	// Done stops background work started by middleware.
	Done <-chan struct{}
}

// NewRouter builds the chi router for the API.
func NewRouter(cfg RouterConfig) http.Handler {
	genHandler := NewGeneratorHandler(cfg.Generator)
	authHandler := NewAuthHandler(cfg.Auth)
	historyHandler := NewHistoryHandler(cfg.Generator)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/generate", genHandler.HandleGenerate)
		r.Post("/strength", genHandler.HandleStrength)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.Done))
			r.Post("/auth/token", authHandler.HandleToken)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(cfg.JWTSecret))
			r.Get("/history", historyHandler.HandleList)
		})
	})

	return r
}
