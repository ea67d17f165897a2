// Package server exposes the pricing engine over a JSON HTTP API.
package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/yourusername/fairline/internal/config"
	"github.com/yourusername/fairline/internal/logger"
	"github.com/yourusername/fairline/internal/metrics"
	"github.com/yourusername/fairline/internal/service"
)

// Server wires the pricing service into HTTP routes.
type Server struct {
	cfg        *config.Config
	pricing    *service.PricingService
	log        *logrus.Entry
	limiter    *rate.Limiter
	httpServer *http.Server
}

// New builds the server and its router.
func New(cfg *config.Config, pricing *service.PricingService, log *logrus.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		pricing: pricing,
		log:     logger.WithComponent(log, "server"),
		limiter: rate.NewLimiter(rate.Limit(cfg.Server.RateLimitPerSecond), cfg.Server.RateLimitBurst),
	}

	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Handle("/sheet", s.withMiddleware("sheet", s.handleSheet)).Methods(http.MethodPost)
	api.Handle("/query", s.withMiddleware("query", s.handleQuery)).Methods(http.MethodPost)
	api.Handle("/handicap", s.withMiddleware("handicap", s.handleHandicap)).Methods(http.MethodPost)
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	allowedOrigins := cfg.Server.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	s.httpServer = &http.Server{
		Addr:         cfg.ListenAddress(),
		Handler:      c.Handler(router),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler exposes the configured HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until the listener fails or Stop is called.
func (s *Server) Start() error {
	s.log.WithField("addr", s.httpServer.Addr).Info("starting HTTP API")
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop drains in-flight requests within the configured shutdown timeout.
func (s *Server) Stop() error {
	timeout := time.Duration(s.cfg.Server.ShutdownTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	s.log.Info("shutting down HTTP API")
	return s.httpServer.Shutdown(ctx)
}

// withMiddleware applies rate limiting, request logging and request metrics
// around a route handler.
func (s *Server) withMiddleware(route string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			metrics.RecordHTTPRequest(route, strconv.Itoa(http.StatusTooManyRequests))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(recorder, r)

		metrics.RecordHTTPRequest(route, strconv.Itoa(recorder.status))
		s.log.WithFields(logrus.Fields{
			"route":    route,
			"status":   recorder.status,
			"duration": time.Since(start).String(),
		}).Debug("handled request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
