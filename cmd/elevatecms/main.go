// Package main is the entry point for the ElevateCMS admin API server.
// It loads configuration, connects to Postgres and Redis, wires the
// GitHub-backed content service, and starts the HTTP server with graceful
// shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"elevatecms/internal/cache"
	"elevatecms/internal/config"
	"elevatecms/internal/content"
	"elevatecms/internal/database"
	"elevatecms/internal/github"
	"elevatecms/internal/handlers"
	"elevatecms/internal/session"
	"elevatecms/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"repo", cfg.GitHubRepo,
	)

	// Connect to PostgreSQL (users + audit log).
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if users already exist).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Redis (content cache + session store).
	redisClient, err := cache.Connect(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	sessionStore := session.NewStore(redisClient)
	contentCache := cache.NewContentCache(redisClient, cache.DefaultContentTTL)

	userStore := store.NewUserStore(db)
	auditStore := store.NewAuditStore(db)

	// The GitHub repository is the authoritative content store.
	ghClient := github.New(cfg.GitHubToken, cfg.GitHubRepo, cfg.GitHubBranch)
	contentService := content.NewService(ghClient, contentCache, auditStore)

	apiHandlers := handlers.NewAPI(contentService)
	authHandlers := handlers.NewAuth(sessionStore, userStore)
	publicHandlers := handlers.NewPublic(contentService)
	auditHandlers := handlers.NewAudit(auditStore)

	r := handlers.Routes(sessionStore, apiHandlers, authHandlers, publicHandlers, auditHandlers)

	// WriteTimeout must accommodate GitHub contents API round trips on
	// writes (a post save is two sequential commits).
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
