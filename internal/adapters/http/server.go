// Package http exposes the flow builder and intake boundary as a JSON API.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quotedeck/flowkit/internal/logging"
	"github.com/quotedeck/flowkit/internal/metrics"
	"github.com/quotedeck/flowkit/internal/runtime"
	"github.com/quotedeck/flowkit/pkg/domain"
	"github.com/quotedeck/flowkit/pkg/ports"
	"github.com/quotedeck/flowkit/pkg/schema"
)

// Server carries the service dependencies.
type Server struct {
	flows     ports.FlowStore
	sessions  ports.SessionStore
	fields    ports.FieldCatalog
	products  ports.ProductCatalog
	logger    *slog.Logger
	metrics   *metrics.Metrics
	loopLimit int
}

// Option configures the server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics attaches Prometheus instrumentation and the /metrics endpoint.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithCatalogs attaches the field and product catalogs used by the builder
// endpoints and by validation cross-checks.
func WithCatalogs(fields ports.FieldCatalog, products ports.ProductCatalog) Option {
	return func(s *Server) {
		s.fields = fields
		s.products = products
	}
}

// WithLoopLimit overrides the engine's per-node visit bound.
func WithLoopLimit(limit int) Option {
	return func(s *Server) {
		s.loopLimit = limit
	}
}

// NewHandler creates the HTTP handler for the flow service.
func NewHandler(flows ports.FlowStore, sessions ports.SessionStore, opts ...Option) http.Handler {
	s := &Server{
		flows:    flows,
		sessions: sessions,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	r.Route("/flows", func(r chi.Router) {
		r.Post("/", s.createFlow)
		r.Get("/", s.listFlows)
		r.Route("/{flowID}", func(r chi.Router) {
			r.Get("/", s.getFlow)
			r.Put("/", s.putFlow)
			r.Delete("/", s.deleteFlow)
			r.Post("/validate", s.validateFlow)
			r.Post("/publish", s.publishFlow)
			r.Get("/mermaid", s.mermaidFlow)
			r.Post("/sessions", s.startSession)
		})
	})

	r.Route("/sessions/{sessionID}", func(r chi.Router) {
		r.Get("/", s.getSession)
		r.Post("/answers", s.submitAnswer)
		r.Delete("/", s.deleteSession)
	})

	r.Get("/catalog/fields", s.listFields)
	r.Get("/catalog/products", s.listProducts)

	return r
}

func (s *Server) engine(flow *domain.Flow) *runtime.Engine {
	opts := []runtime.Option{runtime.WithLogger(s.logger)}
	if s.loopLimit > 0 {
		opts = append(opts, runtime.WithLoopLimit(s.loopLimit))
	}
	if s.metrics != nil {
		opts = append(opts, runtime.WithHooks(s.metrics.EngineHooks()))
	}
	return runtime.NewEngine(flow, opts...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Debug("request failed", "status", status, "err", err)
	if s.metrics != nil && status >= 400 {
		s.metrics.EngineErrors.WithLabelValues(errorKind(err)).Inc()
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// errorKind buckets errors for the metrics label.
func errorKind(err error) string {
	var (
		invalid    *domain.InvalidAnswerError
		loop       *domain.LoopLimitError
		structural *domain.StructuralError
		notFound   *domain.NotFoundError
		parse      *schema.ParseError
	)
	switch {
	case errors.Is(err, domain.ErrFlowTerminated):
		return "flow_terminated"
	case errors.As(err, &invalid):
		return "invalid_answer"
	case errors.As(err, &loop):
		return "loop_limit"
	case errors.As(err, &structural):
		return string(structural.Code)
	case errors.As(err, &notFound):
		return "not_found"
	case errors.As(err, &parse):
		return "parse_error"
	default:
		return "internal"
	}
}

func (s *Server) decodeFlow(r *http.Request) (*domain.Flow, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return schema.Decode(body)
}
