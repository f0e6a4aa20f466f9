// Package api is the HTTP surface: session lifecycle, scenario and rubric
// catalogs, content pages, and PDF exports.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/calluna-vineyards/trellis/internal/anthropic"
	"github.com/calluna-vineyards/trellis/internal/content"
	"github.com/calluna-vineyards/trellis/internal/evaluator"
	"github.com/calluna-vineyards/trellis/internal/events"
	"github.com/calluna-vineyards/trellis/internal/simulator"
	"github.com/calluna-vineyards/trellis/internal/slack"
)

type Server struct {
	router *chi.Mux
	port   int
	logger *slog.Logger

	llm     *anthropic.Client
	eval    *evaluator.Evaluator
	events  *events.Publisher // may be nil
	content *content.Store    // nil serves static fallbacks only
	slack   *slack.Poster     // may be nil
	opts    simulator.Options

	mu       sync.Mutex
	sessions map[uuid.UUID]*simulator.Session
}

// Config carries everything the server needs; the zero values of the optional
// fields (Events, Content, APIToken, StaticDir) are valid.
type Config struct {
	Port      int
	APIToken  string
	StaticDir string

	LLM     *anthropic.Client
	Events  *events.Publisher
	Content *content.Store
	Slack   *slack.Poster
	Session simulator.Options

	Logger *slog.Logger
}

func NewServer(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:   router,
		port:     cfg.Port,
		logger:   cfg.Logger,
		llm:      cfg.LLM,
		eval:     evaluator.New(cfg.LLM, cfg.Logger),
		events:   cfg.Events,
		content:  cfg.Content,
		slack:    cfg.Slack,
		opts:     cfg.Session,
		sessions: make(map[uuid.UUID]*simulator.Session),
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/trellis/status", s.status)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(BearerAuthMiddleware(cfg.APIToken))

		r.Get("/scenarios", s.listScenarios)
		r.Get("/scenarios/{id}", s.getScenario)
		r.Get("/rubrics/{id}", s.getRubric)
		r.Get("/content/{type}/{id}", s.getContent)

		r.Post("/sessions", s.createSession)
		r.Get("/sessions/{id}", s.getSession)
		r.Delete("/sessions/{id}", s.deleteSession)
		r.Post("/sessions/{id}/messages", s.postMessage)
		r.Post("/sessions/{id}/end", s.endSession)
		r.Post("/sessions/{id}/emotion", s.overrideEmotion)
		r.Get("/sessions/{id}/export/transcript", s.exportTranscript)
		r.Get("/sessions/{id}/export/evaluation", s.exportEvaluation)
	})

	if cfg.StaticDir != "" {
		fs := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		router.Get("/static/*", fs.ServeHTTP)
	}

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// BearerAuthMiddleware rejects requests without the configured token. An
// empty token disables auth.
func BearerAuthMiddleware(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	n := len(s.sessions)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"app":      "trellis",
		"status":   "ok",
		"sessions": n,
	})
}

func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) (*simulator.Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return nil, false
	}
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return sess, true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
