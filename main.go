package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/seo-optimizer/ai-analyzer/analyzer"
	"github.com/seo-optimizer/ai-analyzer/config"
	"github.com/seo-optimizer/ai-analyzer/logging"
	"github.com/seo-optimizer/ai-analyzer/server"
	"github.com/seo-optimizer/ai-analyzer/stats"
)

func main() {
	envLoaded := config.LoadEnvFiles()

	cfg, cfgErr := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if !envLoaded {
		log.Info("No .env file found, using environment variables")
	}
	if cfgErr != nil {
		log.WithError(cfgErr).Fatal("invalid configuration")
	}

	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	generator, err := analyzer.NewGeminiGenerator(ctx, analyzer.GeminiConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.GeminiBaseURL,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to initialize Gemini client")
	}

	storage := stats.NewStorage()
	go cleanupStats(ctx, storage)

	srv := server.New(analyzer.New(generator, log), storage, log, server.Options{
		DevMode:     cfg.DevMode,
		AllowOrigin: cfg.AllowOrigin,
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{"port": cfg.Port, "model": cfg.Model}).Info("server starting")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

// cleanupStats drops old months of request statistics once a day
func cleanupStats(ctx context.Context, storage *stats.Storage) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			storage.Cleanup()
		}
	}
}
