package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	httpmiddleware "github.com/pitchlab/salestrainer/internal/http/middleware"
	"github.com/pitchlab/salestrainer/internal/simulation"
	scoringworker "github.com/pitchlab/salestrainer/internal/worker/scoring"
	"github.com/pitchlab/salestrainer/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger            *logging.Logger
	SimulationHandler *simulation.Handler
	ScoringHandler    *scoringworker.Handler
	MetricsHandler    http.Handler

	CORSAllowedOrigins []string

	// Requests/sec and burst per client IP. Zero disables rate limiting.
	RateLimitPerSec float64
	RateLimitBurst  int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints (health checks, metrics)
	r.Group(func(public chi.Router) {
		public.Get("/health", handleHealth)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	r.Route("/api", func(api chi.Router) {
		if cfg.RateLimitPerSec > 0 && cfg.RateLimitBurst > 0 {
			api.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSec, cfg.RateLimitBurst))
		}

		if cfg.SimulationHandler != nil {
			api.Route("/sessions", func(sessions chi.Router) {
				sessions.Post("/", cfg.SimulationHandler.Start)
				sessions.Route("/{sessionID}", func(s chi.Router) {
					s.Post("/turns", cfg.SimulationHandler.Turn)
					s.Post("/end", cfg.SimulationHandler.End)
					s.Get("/history", cfg.SimulationHandler.History)
				})
			})
		}

		if cfg.ScoringHandler != nil {
			api.Route("/scores", func(scores chi.Router) {
				scores.Post("/", cfg.ScoringHandler.Score)
				scores.Get("/{sessionID}", cfg.ScoringHandler.Latest)
			})
			api.Get("/progress", cfg.ScoringHandler.Progress)
		}
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
