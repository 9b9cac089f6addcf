// Package server exposes the model store over HTTP.
//
// Routes:
//
//	GET  /         self-describing index
//	GET  /health   liveness and readiness probe
//	POST /predict  score a {surface, pieces} pair
//	GET  /metrics  Prometheus metrics (when a metrics handler is configured)
package server

import (
	"context"
	"net/http"
	"time"

	"houseprice/internal/model"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// HTTPMetrics records finished requests.
type HTTPMetrics interface {
	RequestObserve(route, method string, status int, seconds float64)
}

type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Metrics may be nil.
	Metrics HTTPMetrics
	// MetricsHandler is mounted on /metrics when non-nil.
	MetricsHandler http.Handler
}

// Server serves predictions from a read-only model store.
type Server struct {
	store   *model.Store
	metrics HTTPMetrics
	handler http.Handler
	server  *http.Server
}

func New(store *model.Store, opts Options) *Server {
	s := &Server{
		store:   store,
		metrics: opts.Metrics,
	}

	r := mux.NewRouter()
	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/predict", s.handlePredict).Methods(http.MethodPost)
	if opts.MetricsHandler != nil {
		r.Handle("/metrics", opts.MetricsHandler).Methods(http.MethodGet)
	}
	r.Use(s.instrument)

	// mux skips middleware for unmatched requests, so wrap these explicitly.
	r.NotFoundHandler = s.instrument(http.HandlerFunc(handleNotFound))
	r.MethodNotAllowedHandler = s.instrument(http.HandlerFunc(handleMethodNotAllowed))

	s.handler = r
	s.server = &http.Server{
		Addr:              opts.Addr,
		Handler:           r,
		ReadHeaderTimeout: opts.ReadTimeout,
		ReadTimeout:       opts.ReadTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
	}

	return s
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves HTTP requests until Shutdown is called.
func (s *Server) Start() error {
	log.Info().
		Str("addr", s.server.Addr).
		Bool("model_loaded", s.store.Ready()).
		Msg("starting prediction server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
