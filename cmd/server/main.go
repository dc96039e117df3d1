package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"seo-spinner/internal/config"
	"seo-spinner/internal/database"
	"seo-spinner/internal/enhance"
	"seo-spinner/internal/logger"
	"seo-spinner/internal/routes"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logr := logger.New(cfg)
	defer logr.Sync()

	db, err := database.New(cfg)
	if err != nil {
		logr.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	var gen enhance.Generator
	if cfg.EnhancementEnabled() {
		client, err := enhance.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.EnhanceTemperature)
		if err != nil {
			logr.Warn("content enhancement disabled", zap.Error(err))
		} else {
			defer client.Close()
			gen = client
			logr.Info("content enhancement enabled", zap.String("model", cfg.GeminiModel))
		}
	}
	enhancer := enhance.NewEnhancer(gen, cfg.EnhanceTimeout, logr.Logger)

	r := routes.NewRouter(db, cfg, logr, enhancer)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // large generate requests with enhancement
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logr.Info("server started", zap.String("port", cfg.Port), zap.Bool("auth", cfg.AuthEnabled))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logr.Error("server forced to shutdown", zap.Error(err))
	}

	logr.Info("server exited gracefully")
}
