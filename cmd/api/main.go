// Package main is the entry point for the financial analytics API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/analytics/config"
	"github.com/finance-tracker/analytics/internal/infra/cache"
	"github.com/finance-tracker/analytics/internal/infra/db"
	"github.com/finance-tracker/analytics/internal/infra/dependency"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	cfg := config.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))
	slog.SetDefault(logger)

	slog.Info("Starting financial analytics API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"db_driver", cfg.Database.Driver,
	)

	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migrations completed successfully")
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			slog.Warn("Redis unavailable, falling back to in-memory refresh sequences", "error", err)
			redisClient = nil
		} else {
			defer func() {
				if err := redisClient.Close(); err != nil {
					slog.Error("Failed to close redis connection", "error", err)
				}
			}()
		}
	}

	injector, err := dependency.NewInjector(cfg, database.DB(), redisClient, database.HealthCheck)
	if err != nil {
		slog.Error("Failed to wire dependencies", "error", err)
		os.Exit(1)
	}

	if injector.Scheduler != nil {
		if err := injector.Scheduler.Start(); err != nil {
			slog.Error("Failed to start recompute scheduler", "error", err)
			os.Exit(1)
		}
	}

	engine := injector.Router.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		slog.Error("Server failed to start", "error", err)
	}

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if injector.Scheduler != nil {
		injector.Scheduler.Stop(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return
	}

	slog.Info("Server exited properly")
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
