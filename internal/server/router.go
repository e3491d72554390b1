package server

import (
	"net/http"

	"github.com/cloo-solutions/docvault/internal/api"
	"github.com/cloo-solutions/docvault/internal/api/handlers"
	"github.com/cloo-solutions/docvault/internal/api/middleware"
	"github.com/go-chi/chi/v5"
)

type RouterConfig struct {
	UploadHandler *handlers.UploadHandler
	ChatHandler   *handlers.ChatHandler
	StatusHandler *handlers.StatusHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Large enough for PDF uploads, tight enough to bound memory per request.
	const maxBodyBytes int64 = 25 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/upload-pdf", cfg.UploadHandler.Upload)
		r.Post("/chat", cfg.ChatHandler.Chat)
		r.Get("/status", cfg.StatusHandler.Status)
		r.Delete("/reset", cfg.StatusHandler.Reset)
	})

	return r
}
