package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avdeyev/classpack/internal/server/jwt"
	"github.com/avdeyev/classpack/internal/server/middleware"
	"github.com/avdeyev/classpack/internal/server/storage"
)

// Auth endpoints get a tight per-IP budget to slow down credential stuffing.
const (
	authRateLimit  = 10
	authRateWindow = time.Minute
)

// RouterConfig collects everything the HTTP surface needs.
type RouterConfig struct {
	Logger     *slog.Logger
	Users      storage.UserStorage
	Tokens     storage.TokenStorage
	Rows       storage.RowStorage
	Tombstones storage.TombstoneStorage
	JWT        jwt.Config
	Version    string
}

// NewRouter builds the full route tree. Row and tombstone routes sit behind
// token auth; registration, login, refresh and health do not.
func NewRouter(cfg RouterConfig) http.Handler {
	authHandler := NewAuthHandler(cfg.Logger, cfg.Users, cfg.Tokens, cfg.JWT)
	rowsHandler := NewRowsHandler(cfg.Logger, cfg.Rows)
	tombstonesHandler := NewTombstonesHandler(cfg.Logger, cfg.Tombstones)
	healthHandler := NewHealthHandler(cfg.Logger, cfg.Version)

	r := chi.NewRouter()
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.Health)

		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.RateLimit(authRateLimit, authRateWindow, cfg.Logger))
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.Logger, cfg.JWT))

			r.Route("/rows/{table}", func(r chi.Router) {
				r.Get("/", rowsHandler.List)
				r.Post("/", rowsHandler.Insert)
				r.Patch("/{id}", rowsHandler.Update)
				r.Delete("/{id}", rowsHandler.Delete)
			})

			r.Route("/tombstones", func(r chi.Router) {
				r.Get("/", tombstonesHandler.List)
				r.Put("/", tombstonesHandler.Put)
				r.Delete("/{type}/{id}", tombstonesHandler.Delete)
			})
		})
	})

	return r
}
