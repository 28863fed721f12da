package http

import (
	"fmt"
	"net/http"

	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/playback"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CreateSessionRequest is the body of POST /sessions.
type CreateSessionRequest struct {
	Graph     domain.Graph `json:"graph"`
	Algorithm string       `json:"algorithm"`
}

// AlgorithmRequest is the body of PUT /sessions/{id}/algorithm.
type AlgorithmRequest struct {
	Algorithm string `json:"algorithm"`
}

// GraphRequest is the body of PUT /sessions/{id}/graph.
type GraphRequest struct {
	Graph domain.Graph `json:"graph"`
}

// SeekRequest is the body of POST /sessions/{id}/seek.
type SeekRequest struct {
	Cursor int `json:"cursor"`
}

// ListSessions handles the GET /sessions request.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// CreateSession handles the POST /sessions request.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body CreateSessionRequest
	if err := s.decode(r, &body); err != nil {
		s.fail(w, r, err)
		return
	}
	alg, err := domain.ParseAlgorithm(body.Algorithm)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	id := uuid.NewString()
	v := playback.NewVisualizer(body.Graph, s.visualizerOptions(alg)...)
	defer v.Close()

	if err := s.Sessions.Create(r.Context(), v.Session(id)); err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.Info("session created", "session_id", id, "algorithm", alg)

	view := v.View()
	view.ID = id
	s.writeJSON(w, http.StatusCreated, view)
}

// GetSession handles the GET /sessions/{id} request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.view(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, view)
}

// DeleteSession handles the DELETE /sessions/{id} request.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.Sessions.Load(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.Sessions.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	s.Streams.Close(id)
	w.WriteHeader(http.StatusNoContent)
}

// Next handles the POST /sessions/{id}/next request. At the last step it is a no-op.
func (s *Server) Next(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(v *playback.Visualizer) error {
		v.Player().Next()
		return nil
	})
}

// Reset handles the POST /sessions/{id}/reset request.
func (s *Server) Reset(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(v *playback.Visualizer) error {
		v.Player().Reset()
		return nil
	})
}

// Seek handles the POST /sessions/{id}/seek request. The cursor is clamped.
func (s *Server) Seek(w http.ResponseWriter, r *http.Request) {
	var body SeekRequest
	if err := s.decode(r, &body); err != nil {
		s.fail(w, r, err)
		return
	}
	s.mutate(w, r, func(v *playback.Visualizer) error {
		v.Player().Seek(body.Cursor)
		return nil
	})
}

// Prune handles the POST /sessions/{id}/prune request.
func (s *Server) Prune(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(v *playback.Visualizer) error {
		return v.Prune()
	})
}

// Restore handles the POST /sessions/{id}/restore request.
func (s *Server) Restore(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(v *playback.Visualizer) error {
		return v.Restore()
	})
}

// SetAlgorithm handles the PUT /sessions/{id}/algorithm request.
func (s *Server) SetAlgorithm(w http.ResponseWriter, r *http.Request) {
	var body AlgorithmRequest
	if err := s.decode(r, &body); err != nil {
		s.fail(w, r, err)
		return
	}
	alg, err := domain.ParseAlgorithm(body.Algorithm)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.mutate(w, r, func(v *playback.Visualizer) error {
		return v.SetAlgorithm(alg)
	})
}

// SetGraph handles the PUT /sessions/{id}/graph request.
func (s *Server) SetGraph(w http.ResponseWriter, r *http.Request) {
	var body GraphRequest
	if err := s.decode(r, &body); err != nil {
		s.fail(w, r, err)
		return
	}
	s.mutate(w, r, func(v *playback.Visualizer) error {
		v.SetGraph(body.Graph)
		return nil
	})
}

// GetMermaid handles the GET /sessions/{id}/mermaid request.
func (s *Server) GetMermaid(w http.ResponseWriter, r *http.Request) {
	view, err := s.view(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	overlay := &graph.Overlay{
		Accessible:       view.Accessible,
		HighlightedNodes: view.HighlightedNodes,
		HighlightedEdges: view.HighlightedEdges,
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, graph.GenerateMermaid(view.Graph, overlay))
}

// view loads the session named in the URL and renders its current step.
func (s *Server) view(r *http.Request) (playback.View, error) {
	id := chi.URLParam(r, "id")
	sess, err := s.Sessions.Load(r.Context(), id)
	if err != nil {
		return playback.View{}, err
	}
	v := playback.FromSession(sess, s.visualizerOptions(sess.Algorithm)...)
	defer v.Close()

	view := v.View()
	view.ID = id
	return view, nil
}

// mutate applies op to the session's visualizer and persists the result under the session lock.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, op func(*playback.Visualizer) error) {
	id := chi.URLParam(r, "id")
	var view playback.View
	_, err := s.Sessions.Update(r.Context(), id, func(sess *domain.Session) error {
		v := playback.FromSession(sess, s.visualizerOptions(sess.Algorithm)...)
		defer v.Close()

		if err := op(v); err != nil {
			return err
		}
		*sess = *v.Session(id)
		view = v.View()
		return nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	view.ID = id
	s.Streams.Publish(id, view)
	s.writeJSON(w, http.StatusOK, view)
}
