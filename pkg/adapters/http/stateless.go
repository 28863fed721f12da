package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aretw0/automata/internal/validator"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/editor"
	"github.com/aretw0/automata/pkg/traversal"
)

// StepsRequest is the body of POST /steps.
type StepsRequest struct {
	Algorithm string       `json:"algorithm"`
	Graph     domain.Graph `json:"graph"`
	Frontier  string       `json:"frontier,omitempty"`
}

// StepsResponse is the complete run of an algorithm.
type StepsResponse struct {
	Algorithm domain.Algorithm `json:"algorithm"`
	Result    []string         `json:"result"`
	Steps     []domain.Step    `json:"steps"`
}

// ExportRequest is the body of POST /export. An empty alphabet is derived from the labels.
// Reduce is one of accessible, co-accessible or trim.
type ExportRequest struct {
	Graph    domain.Graph `json:"graph"`
	Alphabet []string     `json:"alphabet,omitempty"`
	Reduce   string       `json:"reduce,omitempty"`
}

// ValidateRequest is the body of POST /validate.
type ValidateRequest struct {
	Graph    domain.Graph `json:"graph"`
	Alphabet []string     `json:"alphabet,omitempty"`
}

// GetAlgorithms handles the GET /algorithms request.
func (s *Server) GetAlgorithms(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, domain.Catalog())
}

// PostSteps handles the POST /steps request.
func (s *Server) PostSteps(w http.ResponseWriter, r *http.Request) {
	var body StepsRequest
	if err := s.decode(r, &body); err != nil {
		s.fail(w, r, err)
		return
	}
	alg, err := domain.ParseAlgorithm(body.Algorithm)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	frontier := s.frontier
	if body.Frontier != "" {
		if frontier, err = traversal.ParseFrontier(body.Frontier); err != nil {
			s.fail(w, r, fmt.Errorf("%w: %w", errBadRequest, err))
			return
		}
	}

	seq, err := traversal.Steps(alg, body.Graph, traversal.WithFrontier(frontier))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	steps := traversal.Collect(seq)
	if s.metrics != nil {
		s.metrics.ObserveRun(alg, len(steps))
	}
	s.writeJSON(w, http.StatusOK, StepsResponse{
		Algorithm: alg,
		Result:    traversal.Result(steps),
		Steps:     steps,
	})
}

// PostExport handles the POST /export request.
func (s *Server) PostExport(w http.ResponseWriter, r *http.Request) {
	var body ExportRequest
	if err := s.decode(r, &body); err != nil {
		s.fail(w, r, err)
		return
	}
	reduction, err := traversal.ParseReduction(body.Reduce)
	if err != nil {
		s.fail(w, r, errors.Join(errBadRequest, err))
		return
	}
	alphabet := body.Alphabet
	if len(alphabet) == 0 {
		alphabet = editor.LabelSymbols(body.Graph)
	}
	s.writeJSON(w, http.StatusOK, traversal.Reduce(editor.Export(body.Graph, alphabet), reduction))
}

// PostValidate handles the POST /validate request.
func (s *Server) PostValidate(w http.ResponseWriter, r *http.Request) {
	var body ValidateRequest
	if err := s.decode(r, &body); err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, validator.Validate(body.Graph, body.Alphabet))
}
