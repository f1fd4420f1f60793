package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Biotope/internal/config"
	"github.com/MikeSquared-Agency/Biotope/internal/hermes"
	"github.com/MikeSquared-Agency/Biotope/internal/scoring"
)

func NewRouter(e *scoring.Engine, h hermes.Client, cfg config.ServerConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(cfg.RateLimitPerMinute))

	assessments := NewAssessmentsHandler(e, h, cfg.MaxUploadBytes, logger)
	sc := NewScoringHandler(e)

	r.Get("/health", health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APITokenMiddleware(cfg.APIToken))

		r.Post("/assessments", assessments.Create)
		r.Post("/stars", sc.Stars)
		r.Post("/final", sc.Final)
		r.Get("/scoring/config", sc.Config)
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", health)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

func health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
