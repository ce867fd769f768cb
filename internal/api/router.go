package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/savegress/vaxtriage/internal/config"
	"github.com/savegress/vaxtriage/internal/engine"
)

// Server represents the API server
type Server struct {
	config   *config.Config
	router   chi.Router
	handlers *Handlers
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, eng *engine.Engine) *Server {
	s := &Server{
		config: cfg,
		router: chi.NewRouter(),
		handlers: &Handlers{
			engine: eng,
		},
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handlers.HealthCheck)

	s.router.Route("/api/v1/vaxtriage", func(r chi.Router) {
		r.Route("/records", func(r chi.Router) {
			r.Get("/", s.handlers.ListRecords)
			r.Get("/{docID}", s.handlers.GetRecord)
			r.Get("/{docID}/advisories", s.handlers.GetAdvisories)
			r.Post("/{docID}/review", s.handlers.SetReviewed)
			r.Get("/{docID}/review/history", s.handlers.GetReviewHistory)
		})

		r.Put("/filters", s.handlers.UpdateFilters)
		r.Get("/filters", s.handlers.GetFilters)
		r.Get("/summary", s.handlers.GetSummary)
		r.Get("/guidance", s.handlers.GetGuidance)
		r.Get("/export", s.handlers.ExportCSV)
	})
}

// Router returns the chi router
func (s *Server) Router() http.Handler {
	return s.router
}
