// Package server exposes the dashboard over HTTP: the rendered page, chart
// frames, a JSON API and the chat endpoint.
package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"StockScope/internal/dashboard"
)

// Server routes dashboard requests. Collaborator calls run under a
// per-request deadline; taxonomy errors map to friendly messages at this
// boundary and nowhere deeper.
type Server struct {
	svc     *dashboard.Service
	timeout time.Duration
	router  *mux.Router
	decoder *schema.Decoder
	logger  zerolog.Logger
}

// New creates the server around a dashboard service. timeout <= 0 selects
// 30 seconds.
func New(svc *dashboard.Service, timeout time.Duration) *Server {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	s := &Server{
		svc:     svc,
		timeout: timeout,
		router:  mux.NewRouter(),
		decoder: decoder,
		logger:  log.With().Str("component", "server").Logger(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(s.requestLogger)
	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/charts/price", s.handlePriceChart).Methods(http.MethodGet)
	s.router.HandleFunc("/charts/volume", s.handleVolumeChart).Methods(http.MethodGet)
	s.router.HandleFunc("/charts/rsi", s.handleRSIChart).Methods(http.MethodGet)
	s.router.HandleFunc("/api/dashboard", s.handleDashboard).Methods(http.MethodGet)
	s.router.HandleFunc("/api/chat", s.handleChat).Methods(http.MethodPost)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
}

// Handler returns the root handler for an http.Server.
func (s *Server) Handler() http.Handler { return s.router }

// requestLogger tags every request with an id and logs its outcome. The
// request-scoped logger travels in the context.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		logger := s.logger.With().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Logger()
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context())))
		logger.Info().Dur("elapsed", time.Since(start)).Msg("request served")
	})
}
