package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/Nzyazin/stakeledger/internal/core/handler"
	"github.com/Nzyazin/stakeledger/internal/core/logger"
	"github.com/Nzyazin/stakeledger/internal/core/metrics"
	middlWre "github.com/Nzyazin/stakeledger/internal/core/middleware"
	"github.com/Nzyazin/stakeledger/internal/core/usecase"
	"github.com/Nzyazin/stakeledger/pkg/config"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	metricsprom "github.com/slok/go-http-metrics/metrics/prometheus"
	"github.com/slok/go-http-metrics/middleware"
	"github.com/slok/go-http-metrics/middleware/std"
)

type Server struct {
	router          *mux.Router
	log             logger.Logger
	cfg             config.HTTPConfig
	httpServer      *http.Server
	storage         *Storage
	registry        *prometheus.Registry
	walletHandler   *handler.WalletHandler
	positionHandler *handler.PositionHandler
	poolHandler     *handler.PoolHandler
	admins          []uuid.UUID
}

func NewServer(ctx context.Context, cfg *config.Config, log logger.Logger) (*Server, error) {
	admins, err := cfg.Auth.AdminIDs()
	if err != nil {
		return nil, err
	}
	if len(admins) == 0 {
		log.Warn("ADMIN_USER_IDS is empty, admin routes will answer 403")
	}

	storage, err := OpenStorage(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	ledger := usecase.NewLedger(storage.Repo, log, metrics.NewLedger(registry))

	server := &Server{
		log:             log,
		cfg:             cfg.HTTP,
		router:          mux.NewRouter(),
		storage:         storage,
		registry:        registry,
		walletHandler:   handler.NewWalletHandler(ledger, log),
		positionHandler: handler.NewPositionHandler(ledger, log),
		poolHandler:     handler.NewPoolHandler(ledger, log),
		admins:          admins,
	}

	mw := middleware.New(middleware.Config{
		Recorder: metricsprom.NewRecorder(metricsprom.Config{Registry: registry}),
	})

	server.router.Use(
		middlWre.Recovery(server.log),
		loggingMiddleware(server.log),
		metricsMiddleware(mw),
	)

	server.RegisterRoutes()

	server.httpServer = &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           server.router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 6 * time.Second,
	}
	if cfg.HTTP.TLSCertFile != "" {
		server.httpServer.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	return server, nil
}

func (s *Server) RegisterRoutes() {
	identity := middlWre.Identity(s.log)
	admin := middlWre.RequireAdmin(s.log, s.admins)

	s.walletHandler.RegisterRoutes(s.router, identity, admin)
	s.positionHandler.RegisterRoutes(s.router, identity)
	s.poolHandler.RegisterRoutes(s.router, admin)

	s.router.HandleFunc("/healthz", s.healthz).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
}

// Handler exposes the routed handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	if err := s.storage.Ping(r.Context()); err != nil {
		s.log.Error("Health check failed", logger.ErrorField("error", err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"unavailable"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// Run blocks serving HTTP until Shutdown. It returns http.ErrServerClosed
// when Shutdown came first.
func (s *Server) Run() error {
	if s.cfg.TLSCertFile != "" {
		return s.httpServer.ListenAndServeTLS(s.cfg.TLSCertFile, s.cfg.TLSKeyFile)
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	var shutdownErr error

	go func() {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.log.Error("failed to shutdown HTTP server", logger.ErrorField("error", err))
			shutdownErr = fmt.Errorf("HTTP server shutdown error: %w", err)
		}

		if err := s.storage.Close(); err != nil {
			s.log.Error("failed to close storage", logger.ErrorField("error", err))
			shutdownErr = fmt.Errorf("storage shutdown error: %w", err)
		}

		close(done)
	}()

	select {
	case <-done:
		return shutdownErr
	case <-ctx.Done():
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// metricsMiddleware labels HTTP metrics with the route template, so ids in the
// path do not create new series.
func metricsMiddleware(mw middleware.Middleware) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerID := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tpl, err := route.GetPathTemplate(); err == nil {
					handlerID = tpl
				}
			}
			std.Handler(handlerID, mw, next).ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(log logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			log.Info("HTTP request",
				logger.StringField("method", r.Method),
				logger.StringField("path", r.URL.Path),
				logger.IntField("status", rec.status),
				logger.StringField("duration", time.Since(started).String()),
				logger.StringField("remote_addr", r.RemoteAddr),
				logger.StringField("user_agent", r.UserAgent()),
			)
		})
	}
}
