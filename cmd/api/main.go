package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/webdevexpress/auth-with-jwt/internal/config"
	"github.com/webdevexpress/auth-with-jwt/internal/repository"
	"github.com/webdevexpress/auth-with-jwt/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	var routes *server.AuthRoutes

	// The server keeps running without the auth routes when the database
	// cannot be reached.
	db, err := repository.NewDB(context.Background(), cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed, auth routes disabled", "error", err)
	} else {
		defer db.Close()

		routes, err = server.NewAuthRoutes(cfg, repository.NewUserRepository(db))
		if err != nil {
			slog.Error("initializing auth routes", "error", err)
			os.Exit(1)
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.NewRouter(routes),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", "http://localhost:"+cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
