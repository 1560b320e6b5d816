// Package server assembles the HTTP API from configuration and runs it until shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"passforge/backend/internal/api/middleware"
	"passforge/backend/internal/api/routes"
	"passforge/backend/internal/auth"
	"passforge/backend/internal/config"
	"passforge/backend/internal/database"
	"passforge/backend/internal/dictionary"
	"passforge/backend/internal/metrics"
	"passforge/backend/internal/service"
	"passforge/backend/internal/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	cfg        *config.Config
	logger     *zap.SugaredLogger
	db         *database.Database
	dictionary *dictionary.Store
	metrics    *metrics.Metrics
	limiter    *middleware.RateLimiterStore
	tokens     *auth.TokenService
	service    *service.PasswordService
	httpServer *http.Server
}

// New wires every component described by cfg. The caller must Close the server.
func New(cfg *config.Config, logger *zap.SugaredLogger) (*Server, error) {
	s := &Server{cfg: cfg, logger: logger}

	if cfg.Metrics.Enabled {
		s.metrics = metrics.New()
	}

	s.dictionary = dictionary.NewStore(cfg.Dictionary.Path, logger.Named("dictionary"))
	if s.metrics != nil {
		s.dictionary.OnReload(s.metrics.SetDictionaryWords)
	}

	var audit service.AuditStore
	if cfg.Database.Enabled {
		dbLogger, err := utils.NewDatabaseLogger(&cfg.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database logger: %w", err)
		}
		db, err := database.NewConnection(&cfg.Database, dbLogger)
		if err != nil {
			return nil, err
		}
		if err := db.AutoMigrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Infow("Audit store ready", "path", cfg.Database.Path)
		s.db = db
		audit = db
	}

	var recorder service.MetricsRecorder
	if s.metrics != nil {
		recorder = s.metrics
	}
	s.service = service.NewPasswordService(cfg.Generator, s.dictionary, audit, recorder, logger.Named("service"))

	if cfg.Server.RateLimit.Enabled {
		s.limiter = middleware.NewRateLimiterStore(cfg.Server.RateLimit.RequestsPerSecond, cfg.Server.RateLimit.Burst, logger)
	}

	if cfg.Auth.Enabled {
		s.tokens = auth.NewTokenService(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
		logger.Infow("Token auth enabled", "issuer", cfg.Auth.Issuer)
	}

	accessLogger, err := utils.NewAccessLogger(&cfg.Logger)
	if err != nil {
		logger.Errorf("Failed to create access logger: %v", err)
		accessLogger = logger // Fallback to main logger
	}

	router := routes.SetupRouter(routes.Dependencies{
		Config:       cfg,
		Service:      s.service,
		DB:           s.db,
		Dictionary:   s.dictionary,
		Metrics:      s.metrics,
		RateLimiter:  s.limiter,
		Tokens:       s.tokens,
		Logger:       logger,
		AccessLogger: accessLogger,
	})

	s.httpServer = &http.Server{
		Addr:           cfg.Address(),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    120 * time.Second, // 2 minutes idle timeout
		MaxHeaderBytes: 1 << 20,           // 1 MB max header size
	}

	return s, nil
}

// Handler is the fully wired HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Service exposes the password service backing the API.
func (s *Server) Service() *service.PasswordService {
	return s.service
}

// Run serves until ctx is cancelled, then shuts down gracefully. Background
// workers (dictionary watcher, limiter cleanup) stop with it.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	if s.cfg.Dictionary.Watch {
		g.Go(func() error {
			if err := s.dictionary.Watch(gctx); err != nil {
				s.logger.Warnw("Dictionary watcher stopped", "error", err)
			}
			return nil
		})
	}

	if s.limiter != nil {
		g.Go(func() error {
			s.limiter.Cleanup(gctx, 10*time.Minute)
			return nil
		})
	}

	g.Go(func() error {
		s.logger.Infow("Starting server",
			"address", s.httpServer.Addr,
			"environment", s.cfg.Server.Environment,
			"audit_store", s.db != nil,
			"metrics", s.metrics != nil,
			"rate_limit", s.limiter != nil,
		)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down server...")

		// Give outstanding requests time to complete
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.GracefulTimeout)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	err := g.Wait()
	s.logger.Info("Server exited")
	return err
}

// Close releases the audit store.
func (s *Server) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
