package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	noticeapp "github.com/claims/backend/internal/application/notice"
	"github.com/claims/backend/internal/infrastructure/config"
	"github.com/claims/backend/internal/infrastructure/logger"
	noticeinfra "github.com/claims/backend/internal/infrastructure/notice"
	"github.com/claims/backend/internal/infrastructure/storage"
	"github.com/claims/backend/internal/interfaces/http/handler"
	"github.com/claims/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting claims backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env))

	// Notice rendering stack
	validator := noticeinfra.NewTemplateValidator(log)
	registry := noticeinfra.NewTemplateRegistry(cfg.Notice.TemplatesDir, validator, log)
	cache := noticeinfra.NewRenderCache(cfg.Notice.CacheDir, cfg.Notice.CacheTTL, log)
	mergers := noticeinfra.NewMergers(log)

	// Optional artifact archive
	var archive storage.ArtifactStorage
	if cfg.Storage.Enabled {
		s3Store, err := storage.NewS3ArtifactStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize artifact storage", zap.Error(err))
		}
		if err := s3Store.EnsureBucket(context.Background()); err != nil {
			log.Fatal("Failed to ensure artifact bucket", zap.Error(err))
		}
		archive = s3Store
	}

	noticeService := noticeapp.NewNoticeService(registry, cache, mergers, archive, noticeapp.Paths{
		OutputDir:  cfg.Notice.OutputDir,
		PreviewDir: cfg.Notice.PreviewDir,
		UploadsDir: cfg.Notice.UploadsDir,
	}, log)

	if cfg.Notice.SweepOnStart {
		if removed, err := noticeService.SweepCache(context.Background()); err != nil {
			log.Warn("Cache sweep failed", zap.Error(err))
		} else if removed > 0 {
			log.Info("Swept render cache", zap.Int("removed", removed))
		}
	}

	engine := router.New(cfg, log, handler.NewNoticeHandler(noticeService, log))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
