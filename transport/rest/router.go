package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const requestTimeout = 10 * time.Second

// NewRouter - mounts the ping and analysis endpoints.
func NewRouter(handlers *Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/ping", handlers.Ping)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/evaluate", handlers.Evaluate)
		r.Post("/best-move", handlers.BestMove)
	})

	return r
}
