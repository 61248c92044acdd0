package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/trip-tracker/internal/application"
	"github.com/example/trip-tracker/internal/config"
	httptransport "github.com/example/trip-tracker/internal/http"
	"github.com/example/trip-tracker/internal/logging"
	"github.com/example/trip-tracker/internal/storage"
	"github.com/example/trip-tracker/internal/workbook"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	var publisher application.Publisher
	if cfg.PublishingEnabled() {
		s3, err := storage.NewS3(ctx, storage.S3Config{
			Region:        cfg.AWSRegion,
			Bucket:        cfg.S3Bucket,
			PresignExpiry: cfg.PresignExpiry,
		}, logger)
		if err != nil {
			logger.Fatal("failed to configure S3 publisher", zap.Error(err))
		}
		publisher = s3
	} else {
		logger.Info("publishing disabled; set " + config.EnvS3Bucket + " to enable it")
	}

	gin.SetMode(gin.ReleaseMode)
	router, err := buildRouter(cfg, publisher, logger)
	if err != nil {
		logger.Fatal("failed to build router", zap.Error(err))
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", zap.Error(err))
		}
	}()

	logger.Info("trip tracker API listening", zap.String("addr", server.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", zap.Error(err))
		os.Exit(1)
	}
}

// buildRouter wires the tracker service and handlers from cfg. The template at
// cfg.TemplatePath, when set, is loaded once and used for requests that upload none.
func buildRouter(cfg config.Config, publisher application.Publisher, logger *zap.Logger) (*gin.Engine, error) {
	var template *workbook.Template
	if cfg.TemplatePath != "" {
		loaded, err := workbook.OpenTemplate(cfg.TemplatePath)
		if err != nil {
			return nil, err
		}
		template = loaded
	}

	service := application.NewTrackerService(logger, publisher, uuid.NewString, time.Now)
	trackers := httptransport.NewTrackerHandler(service, httptransport.TrackerHandlerOptions{
		Defaults: httptransport.TripDefaults{
			City:     cfg.DefaultCity,
			Owners:   cfg.DefaultOwners,
			Meetings: cfg.DefaultMeetings,
			Seed:     cfg.DefaultSeed,
		},
		Template:       template,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}, logger)

	return httptransport.NewRouter(httptransport.RouterConfig{
		Trackers: trackers,
		Logger:   logger,
		RateLimit: httptransport.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimitRPS,
			Burst:             cfg.RateLimitBurst,
		},
	}), nil
}
