package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/Nzyazin/ledger/internal/core/cache"
	"github.com/Nzyazin/ledger/internal/core/classifier"
	"github.com/Nzyazin/ledger/internal/core/handler"
	"github.com/Nzyazin/ledger/internal/core/logger"
	"github.com/Nzyazin/ledger/internal/core/metrics"
	middlWre "github.com/Nzyazin/ledger/internal/core/middleware"
	"github.com/Nzyazin/ledger/internal/core/models"
	"github.com/Nzyazin/ledger/internal/core/repository/postgres"
	"github.com/Nzyazin/ledger/internal/core/usecase"
	"github.com/Nzyazin/ledger/pkg/config"
	"github.com/Nzyazin/ledger/pkg/postgresdb"
	"github.com/Nzyazin/ledger/pkg/redisdb"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	metricsprom "github.com/slok/go-http-metrics/metrics/prometheus"
	"github.com/slok/go-http-metrics/middleware"
	"github.com/slok/go-http-metrics/middleware/std"
)

type Server struct {
	router             *mux.Router
	log                logger.Logger
	httpServer         *http.Server
	transactionHandler *handler.TransactionHandler
	db                 *postgresdb.Database
	redis              *redisdb.Client
}

func NewServer(cfg *config.Config, log logger.Logger) (*Server, error) {
	policy, ok := models.ParseCurrencyPolicy(cfg.Ledger.CurrencyPolicy)
	if !ok {
		return nil, fmt.Errorf("invalid LEDGER_CURRENCY_POLICY %q", cfg.Ledger.CurrencyPolicy)
	}

	db, err := postgresdb.NewPostgresDB(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := postgresdb.Migrate(ctx, db.DB); err != nil {
		db.Close()
		return nil, err
	}

	server := &Server{log: log, db: db}

	var store cache.Store = cache.NewMemoryStore()
	if cfg.Redis.Enabled() {
		redisClient, err := redisdb.NewRedisClient(cfg.Redis, log)
		if err != nil {
			db.Close()
			return nil, err
		}
		server.redis = redisClient
		store = cache.NewRedisStore(redisClient.Client, cache.DefaultRedisPrefix)
		log.Info("Category cache backed by redis", logger.StringField("addr", cfg.Redis.Addr))
	}

	reg := newRegistry()
	m := metrics.NewMetrics(reg)

	classifierClient := classifier.NewClient(classifier.Config{
		URL:     cfg.Classifier.URL,
		APIKey:  cfg.Classifier.APIKey,
		Timeout: cfg.Classifier.Timeout,
	}, &http.Client{Timeout: cfg.Classifier.Timeout}, log, m)

	var cacheOpts []cache.Option
	if cfg.Cache.SkipDegraded {
		cacheOpts = append(cacheOpts, cache.WithSkipDegraded())
	}
	categorizer := cache.NewCachedClassifier(cache.NewCategoryCache(store, log, m, cacheOpts...), classifierClient)

	transactionRepository := postgres.NewPostgresTransactionRepo(db.DB, log)
	transactionUsecase := usecase.NewTransactionUsecase(transactionRepository, categorizer, usecase.CurrencyConfig{
		Default: cfg.Ledger.DefaultCurrency,
		Policy:  policy,
	}, log, m)

	server.transactionHandler = handler.NewTransactionHandler(transactionUsecase, log)
	server.router = newRouter(log, server.transactionHandler, reg, reg)

	return server, nil
}

// newRegistry gives each server its own registry so building a second one in
// the same process does not collide on collector names.
func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func newRouter(log logger.Logger, h *handler.TransactionHandler, reg prometheus.Registerer, gatherer prometheus.Gatherer) *mux.Router {
	router := mux.NewRouter()

	mw := middleware.New(middleware.Config{
		Recorder: metricsprom.NewRecorder(metricsprom.Config{Registry: reg}),
	})

	router.Use(
		middlWre.RequestID,
		middlWre.Logging(log),
		middlWre.Recovery(log),
		middlWre.CORS,
		func(next http.Handler) http.Handler {
			return std.Handler("", mw, next)
		},
	)

	h.RegisterRoutes(router)
	router.Methods(http.MethodOptions).HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}

func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadTimeout:       9 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.httpServer = srv

	return srv.ListenAndServe()
}

func (s *Server) RunTLS(addr, certFile, keyFile string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadTimeout:       9 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 6 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
	}

	s.httpServer = srv
	return srv.ListenAndServeTLS(certFile, keyFile)
}

func (s *Server) Shutdown(ctx context.Context) error {
	done := make(chan error, 1)

	go func() {
		var errs []error

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(ctx); err != nil {
				s.log.Error("failed to shutdown HTTP server", logger.ErrorField("error", err))
				errs = append(errs, fmt.Errorf("HTTP server shutdown error: %w", err))
			}
		}

		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				s.log.Error("failed to close redis connection", logger.ErrorField("error", err))
				errs = append(errs, fmt.Errorf("redis shutdown error: %w", err))
			}
		}

		if s.db != nil {
			if err := s.db.Close(); err != nil {
				s.log.Error("failed to close database connection", logger.ErrorField("error", err))
				errs = append(errs, fmt.Errorf("database shutdown error: %w", err))
			}
		}

		done <- errors.Join(errs...)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}
