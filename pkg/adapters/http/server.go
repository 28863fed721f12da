package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/aretw0/automata/pkg/playback"
	"github.com/aretw0/automata/pkg/session"
	"github.com/aretw0/automata/pkg/traversal"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server serves the automaton API over a session manager.
type Server struct {
	Sessions *session.Manager
	Streams  *StreamManager

	metrics  *observability.Metrics
	frontier traversal.Frontier
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics enables request timing, visualizer counters and GET /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithFrontier sets the frontier discipline used by session runs.
func WithFrontier(f traversal.Frontier) Option {
	return func(s *Server) {
		s.frontier = f
	}
}

// WithLogger configures the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a Server over mgr.
func NewServer(mgr *session.Manager, opts ...Option) *Server {
	s := &Server{
		Sessions: mgr,
		Streams:  NewStreamManager(),
		frontier: traversal.FrontierLIFO,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Streams.logger = s.logger
	return s
}

// NewHandler creates the HTTP handler for mgr.
func NewHandler(mgr *session.Manager, opts ...Option) http.Handler {
	return NewServer(mgr, opts...).Routes()
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/algorithms", s.GetAlgorithms)
	r.Post("/steps", s.PostSteps)
	r.Post("/export", s.PostExport)
	r.Post("/validate", s.PostValidate)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Post("/", s.CreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Post("/next", s.Next)
			r.Post("/reset", s.Reset)
			r.Post("/seek", s.Seek)
			r.Post("/prune", s.Prune)
			r.Post("/restore", s.Restore)
			r.Put("/algorithm", s.SetAlgorithm)
			r.Put("/graph", s.SetGraph)
			r.Get("/mermaid", s.GetMermaid)
			r.Get("/events", s.SubscribeEvents)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "automata-http",
		"version": automata.VersionString(),
	})
}

// errBadRequest marks client errors that carry no domain sentinel.
var errBadRequest = errors.New("bad request")

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPruneUnavailable), errors.Is(err, domain.ErrNothingToRestore):
		return http.StatusConflict
	case errors.Is(err, session.ErrSessionExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnknownAlgorithm), errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "code", code, "err", err)
	}
	s.writeJSON(w, code, map[string]string{"error": err.Error()})
}

func (s *Server) decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(errBadRequest, err)
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) visualizerOptions(alg domain.Algorithm) []playback.Option {
	opts := []playback.Option{
		playback.WithAlgorithm(alg),
		playback.WithTraversalOptions(traversal.WithFrontier(s.frontier)),
		playback.WithLogger(s.logger),
	}
	if s.metrics != nil {
		opts = append(opts, playback.WithHooks(s.metrics.Hooks()))
	}
	return opts
}
