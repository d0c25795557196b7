package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/me/studyplan/internal/chat"
	"github.com/me/studyplan/internal/config"
	"github.com/me/studyplan/internal/planner"
	"github.com/me/studyplan/internal/store"
	"github.com/me/studyplan/internal/sweeper"
)

// Server is the studyplan REST API server.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.ServerConfig
	startTime time.Time
	store     store.Store
	planner   *planner.Planner
	assistant *chat.Assistant
	sweeper   *sweeper.Loop
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithPlanner replaces the default planner. Tests use this to inject a
// fixed clock.
func WithPlanner(p *planner.Planner) Option {
	return func(s *Server) {
		s.planner = p
	}
}

// WithSweeper sets the background overdue sweeper started by StartSweeper.
func WithSweeper(l *sweeper.Loop) Option {
	return func(s *Server) {
		s.sweeper = l
	}
}

// New creates a new Server with all routes registered.
func New(cfg config.ServerConfig, st store.Store, logger *slog.Logger, opts ...Option) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		startTime: time.Now(),
		store:     st,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.planner == nil {
		s.planner = planner.New(logger)
	}
	s.assistant = chat.New(st, s.planner, logger)

	s.routes()
	return s
}

// StartSweeper begins the overdue sweep loop in a background goroutine.
func (s *Server) StartSweeper(ctx context.Context) {
	if s.sweeper == nil {
		return
	}
	go func() {
		if err := s.sweeper.Start(ctx); err != nil && err != context.Canceled {
			s.logger.Error("sweeper stopped", "error", err)
		}
	}()
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))

	// API routes (JSON)
	r.Route("/api/v1", func(r chi.Router) {
		// Discovery
		r.Get("/", s.handleDiscovery)

		// Health
		r.Get("/health", s.handleHealth)

		// Tasks
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", s.handleListTasks)
			r.Post("/", s.handleCreateTask)
			r.Get("/{id}", s.handleGetTask)
			r.Put("/{id}", s.handleUpdateTask)
			r.Delete("/{id}", s.handleDeleteTask)
			r.Post("/{id}/complete", s.handleCompleteTask)
		})

		// Exams
		r.Route("/exams", func(r chi.Router) {
			r.Get("/", s.handleListExams)
			r.Post("/", s.handleCreateExam)
			r.Get("/{id}", s.handleGetExam)
			r.Delete("/{id}", s.handleDeleteExam)
		})

		// Recurring availability slots
		r.Route("/slots", func(r chi.Router) {
			r.Get("/", s.handleListSlots)
			r.Post("/", s.handleCreateSlot)
			r.Put("/{id}", s.handleUpdateSlot)
			r.Delete("/{id}", s.handleDeleteSlot)
		})

		// Study plans
		r.Route("/plans", func(r chi.Router) {
			r.Get("/", s.handleListPlans)
			r.Post("/generate", s.handleGeneratePlan)
			r.Get("/latest", s.handleLatestPlan)
			r.Get("/{id}", s.handleGetPlan)
		})

		// Chat assistant
		r.Post("/chat", s.handleChat)
	})
}
