package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/newsdesk/news-classifier-web/internal/adapter/client"
	"github.com/newsdesk/news-classifier-web/internal/adapter/http/router"
	"github.com/newsdesk/news-classifier-web/internal/adapter/repository/memory"
	"github.com/newsdesk/news-classifier-web/internal/infrastructure/config"
	"github.com/newsdesk/news-classifier-web/internal/infrastructure/logger"
	"github.com/newsdesk/news-classifier-web/internal/infrastructure/metrics"
	"github.com/newsdesk/news-classifier-web/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Metrics
	registry := metrics.NewRegistry()
	m := metrics.New(registry)

	// Classification service
	classificationClient := client.NewClassificationClient(cfg.Classifier.BaseURL, cfg.Classifier.Timeout)
	classifier := client.NewClassifier(classificationClient, m, log.Named("classifier"))
	log.Info("Classification service configured",
		zap.String("base_url", classificationClient.BaseURL()),
		zap.Duration("timeout", cfg.Classifier.Timeout),
	)

	// Sessions expire after a period of inactivity
	var sessionUC usecase.SessionUsecase
	sessionRepo := memory.NewSessionRepository(cfg.Session.TTL, func(s *usecase.Session) {
		sessionUC.Expire(s)
	})
	defer sessionRepo.Close()
	sessionUC = usecase.NewSessionUsecase(sessionRepo, classifier, m, log.Named("session"))

	// Setup router
	r := router.Setup(router.Deps{
		SessionUC:      sessionUC,
		ClassifierURL:  classificationClient.BaseURL(),
		MaxUploadBytes: cfg.Session.MaxUploadBytes,
		Metrics:        m,
		Gatherer:       registry,
		Logger:         log,
	})

	// Create HTTP server. No write timeout: event streams stay open until
	// shutdown cancels the base context.
	addr := cfg.Server.Addr()
	baseCtx, stopStreams := context.WithCancel(context.Background())
	defer stopStreams()
	srv := &http.Server{
		Addr:        addr,
		Handler:     r,
		ReadTimeout: cfg.Server.ReadTimeout,
		IdleTimeout: cfg.Server.IdleTimeout,
		BaseContext: func(net.Listener) context.Context { return baseCtx },
	}
	srv.RegisterOnShutdown(stopStreams)

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		log.Error("Server failed", zap.Error(err))
		return fmt.Errorf("server failed: %w", err)
	}

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
	return nil
}
