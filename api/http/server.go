// Package apihttp exposes pool resolution over HTTP.
package apihttp

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rexbrahh/pool-resolver/decoder"
	"github.com/rexbrahh/pool-resolver/decoder/common"
	"github.com/rexbrahh/pool-resolver/ledger"
	"github.com/rexbrahh/pool-resolver/resolver"
)

// PoolResolver is the slice of the resolver the server needs.
type PoolResolver interface {
	ResolvePool(ctx context.Context, address string) (*resolver.AdjustedPoolReserves, error)
}

// Server bundles dependencies for the HTTP API.
type Server struct {
	router   *chi.Mux
	resolver PoolResolver
	logger   *log.Logger
	started  time.Time
}

// NewServer constructs a Server with registered routes.
func NewServer(res PoolResolver, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(os.Stdout, "api-http ", log.LstdFlags|log.Lshortfile)
	}

	s := &Server{
		router:   chi.NewRouter(),
		resolver: res,
		logger:   logger,
		started:  time.Now(),
	}

	s.router.Get("/healthz", s.healthzHandler)
	s.router.Route("/v1", func(r chi.Router) {
		r.Get("/pools/{address}", s.poolHandler)
	})

	return s
}

// Handler exposes the underlying router for integration tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// HealthResponse reports liveness and uptime.
type HealthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// ErrorResponse carries a client-facing failure description.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) healthzHandler(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status: "ok",
		Uptime: time.Since(s.started).Round(time.Millisecond).String(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) poolHandler(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")

	record, err := s.resolver.ResolvePool(r.Context(), address)
	if err != nil {
		status := statusForError(err)
		if status >= http.StatusInternalServerError {
			s.logger.Printf("resolve pool %s: %v", address, err)
		}
		writeJSON(w, status, ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// statusForError maps the resolver's error taxonomy onto HTTP statuses:
// missing accounts are 404, accounts we cannot interpret are 422, and
// collaborator failures surface as 502.
func statusForError(err error) int {
	switch {
	case errors.Is(err, ledger.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, decoder.ErrUnsupported), errors.Is(err, common.ErrTruncated):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write response: %v", err)
	}
}
