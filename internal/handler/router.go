package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/vaultpass/passgen/internal/middleware"
	"github.com/vaultpass/passgen/internal/service"
)

// RouterConfig wires services into the HTTP API.
type RouterConfig struct {
	Generator *service.GeneratorService
	Entries   *service.EntryService
	Auth      *service.AuthService

	// JWTSecret protects the entry routes when AuthEnabled is set.
	JWTSecret   string
	AuthEnabled bool
}

// NewRouter builds the chi router for the local API.
func NewRouter(cfg RouterConfig) http.Handler {
	genHandler := NewGeneratorHandler(cfg.Generator)
	entryHandler := NewEntryHandler(cfg.Entries)
	authHandler := NewAuthHandler(cfg.Auth)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Post("/api/v1/generate", genHandler.HandleGenerate)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(1, 5))
		r.Post("/api/v1/auth/token", authHandler.HandleToken)
	})

	r.Group(func(r chi.Router) {
		if cfg.AuthEnabled {
			r.Use(middleware.JWTAuth(cfg.JWTSecret))
		} else {
			slog.Warn("PASSPHRASE_HASH not set, entry routes are unauthenticated")
		}

		r.Get("/api/v1/entries", entryHandler.HandleListNames)
		r.Post("/api/v1/entries", entryHandler.HandleSave)
		r.Get("/api/v1/entries/{name}", entryHandler.HandleGet)
		r.Delete("/api/v1/entries/{name}", entryHandler.HandleDelete)
		r.Post("/api/v1/entries/{name}/copy", entryHandler.HandleCopy)
	})

	return r
}
