// Package server exposes the future-self backend over HTTP: career
// catalog, chat, résumé analysis, and a websocket chat channel.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/future-self-ai/backend/internal/career"
	"github.com/future-self-ai/backend/internal/config"
	"github.com/future-self-ai/backend/internal/engine"
	"github.com/future-self-ai/backend/internal/retrieval"
	"github.com/future-self-ai/backend/internal/session"
)

// historyTurns is how many stored turns the engine sees per question.
const historyTurns = 4

// Server wires the answer engine and session store behind a chi router.
type Server struct {
	cfg        config.Config
	careers    map[string]career.Record
	engine     *engine.Engine
	sessions   *session.Store
	store      *retrieval.Store
	retriever  *retrieval.Retriever
	router     chi.Router
	httpServer *http.Server
}

// New creates a server with all dependencies.
func New(cfg config.Config, careers map[string]career.Record, eng *engine.Engine, sessions *session.Store, store *retrieval.Store, retriever *retrieval.Retriever) *Server {
	s := &Server{
		cfg:       cfg,
		careers:   careers,
		engine:    eng,
		sessions:  sessions,
		store:     store,
		retriever: retriever,
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/careers", s.handleListCareers)
		r.Get("/careers/{id}/insights", s.handleCareerInsights)
		r.Post("/chat", s.handleChat)
		r.Post("/resume/analyze", s.handleResumeAnalyze)
		r.Get("/resume/{sessionID}", s.handleResumeProfile)
	})

	r.Get("/ws/chat", s.handleWebSocket)

	return r
}

// Router returns the router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("futureself server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
