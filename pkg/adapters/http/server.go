package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/protocompat"
	"github.com/aretw0/protocompat/internal/validator"
	"github.com/aretw0/protocompat/pkg/domain"
	"github.com/go-chi/chi/v5"
)

// MaxRounds bounds the rounds a single request may ask for.
const MaxRounds = 1000

const maxBodyBytes = 4 << 20

// Computer is the part of the Analyzer the HTTP API depends on.
type Computer interface {
	Parse(data []byte) (*domain.Graph, error)
	Compute(ctx context.Context, g1, g2 *domain.Graph, rounds int) (*domain.Run, error)
	Fetch(ctx context.Context, id string) (*domain.Run, error)
}

var _ Computer = (*protocompat.Analyzer)(nil)

// ComputeRequest is the body of POST /v1/compatibility.
// Graph1 and Graph2 are graph descriptions in the JSON format.
type ComputeRequest struct {
	Graph1 json.RawMessage `json:"graph1"`
	Graph2 json.RawMessage `json:"graph2"`
	Rounds int             `json:"rounds"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string        `json:"error"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail describes one rejected description field.
type ErrorDetail struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// Server serves the compatibility API.
type Server struct {
	Computer Computer
	Metrics  http.Handler
	Logger   *slog.Logger
}

// Option configures the handler built by NewHandler.
type Option func(*Server)

// WithMetrics mounts h at GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// NewHandler creates a new HTTP handler for the analyzer.
func NewHandler(c Computer, opts ...Option) http.Handler {
	s := &Server{Computer: c, Logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/compatibility", s.Compute)
		r.Get("/runs/{id}", s.GetRun)
	})
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Compute handles the POST /v1/compatibility request.
func (s *Server) Compute(w http.ResponseWriter, r *http.Request) {
	var body ComputeRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&body); err != nil {
		s.Logger.Warn("Compute: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if body.Rounds < 0 || body.Rounds > MaxRounds {
		writeError(w, http.StatusBadRequest, fmt.Errorf("rounds must be between 0 and %d", MaxRounds))
		return
	}

	g1, err := s.parse("graph1", body.Graph1)
	if err != nil {
		s.Logger.Warn("Compute: description rejected", "error", err)
		writeError(w, statusFor(err), err)
		return
	}
	g2, err := s.parse("graph2", body.Graph2)
	if err != nil {
		s.Logger.Warn("Compute: description rejected", "error", err)
		writeError(w, statusFor(err), err)
		return
	}

	run, err := s.Computer.Compute(r.Context(), g1, g2, body.Rounds)
	if err != nil {
		s.Logger.Error("Compute failed", "error", err)
		writeError(w, statusFor(err), err)
		return
	}
	s.Logger.Info("Compute: run created", "run_id", run.ID, "rounds", run.Rounds)

	writeJSON(w, http.StatusCreated, run)
}

func (s *Server) parse(field string, raw json.RawMessage) (*domain.Graph, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, fmt.Errorf("%s: %w: description is required", field, domain.ErrMalformedDescription)
	}
	g, err := s.Computer.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return g, nil
}

// GetRun handles the GET /v1/runs/{id} request.
func (s *Server) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	run, err := s.Computer.Fetch(r.Context(), id)
	if err != nil {
		if !errors.Is(err, domain.ErrRunNotFound) {
			s.Logger.Error("GetRun failed", "run_id", id, "error", err)
		}
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "protocompat-http",
		"version": strings.TrimSpace(protocompat.Version),
	})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnsupportedFeature):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrRunNotFound), errors.Is(err, protocompat.ErrNoStore):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrMalformedDescription),
		errors.Is(err, domain.ErrUnresolvedState),
		errors.Is(err, domain.ErrInitialIncoming),
		errors.Is(err, domain.ErrFinalOutgoing),
		errors.Is(err, domain.ErrDuplicateState),
		errors.Is(err, domain.ErrMalformedParameter),
		errors.Is(err, domain.ErrTauParameters):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := ErrorResponse{Error: err.Error()}
	for _, e := range validator.ValidationErrors(err) {
		var ve *validator.ValidationError
		if errors.As(e, &ve) {
			resp.Details = append(resp.Details, ErrorDetail{Key: ve.Key, Reason: ve.Reason})
		}
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
