package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/zourdycodes/authworkflow/internal/auth"
	"github.com/zourdycodes/authworkflow/internal/config"
	"github.com/zourdycodes/authworkflow/internal/http_server/handlers/activate"
	forgotPassword "github.com/zourdycodes/authworkflow/internal/http_server/handlers/forgot_password"
	"github.com/zourdycodes/authworkflow/internal/http_server/handlers/login"
	"github.com/zourdycodes/authworkflow/internal/http_server/handlers/logout"
	"github.com/zourdycodes/authworkflow/internal/http_server/handlers/refresh"
	"github.com/zourdycodes/authworkflow/internal/http_server/handlers/register"
	"github.com/zourdycodes/authworkflow/internal/lib/hasher"
	sl "github.com/zourdycodes/authworkflow/internal/lib/logger"
	"github.com/zourdycodes/authworkflow/internal/lib/tokens"
	"github.com/zourdycodes/authworkflow/internal/lib/validate"
	rateLimit "github.com/zourdycodes/authworkflow/internal/middleware/ratelimit"
	"github.com/zourdycodes/authworkflow/internal/rabbitmq"
	"github.com/zourdycodes/authworkflow/internal/storage/postgres"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad("./config/config.yaml")

	log := setupLogger(cfg.Env)

	log.Info("starting auth service", slog.String("env", cfg.Env))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Info("Shutdown signal received")
		cancel()
	}()

	if err := postgres.RunMigrations(ctx, cfg); err != nil {
		log.Error("failed to apply migrations", sl.Err(err))
		os.Exit(1)
	}

	storage, err := postgres.New(ctx, cfg)
	if err != nil {
		log.Error("failed to connect postgres", sl.Err(err))
		os.Exit(1)
	}
	defer storage.Close()

	msgBroker, err := rabbitmq.New(cfg.RabbitMQ.URL, cfg.RabbitMQ.QueueName)
	if err != nil {
		log.Error("failed to connect rabbitmq", sl.Err(err))
		os.Exit(1)
	}
	defer msgBroker.Close()

	authService := auth.New(
		log,
		storage,
		storage,
		msgBroker,
		hasher.New(cfg.Hasher.BcryptCost),
		tokens.NewActivation(cfg.Tokens.ActivationTokenSecret, cfg.Tokens.ActivationTokenTTL),
		tokens.NewAccess(cfg.Tokens.AccessTokenSecret, cfg.Tokens.AccessTokenTTL),
		tokens.NewRefresh(cfg.Tokens.RefreshTokenSecret, cfg.Tokens.RefreshTokenTTL),
		cfg.ClientURL,
	)

	router := setupRouter(log, authService, cfg.Tokens.RefreshTokenTTL)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server is running", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed", sl.Err(err))
			cancel()
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down HTTP server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", sl.Err(err))
	} else {
		log.Info("Server stopped gracefully")
	}

	log.Info("Main service stopped")
}

func setupRouter(
	log *slog.Logger,
	authService *auth.Auth,
	refreshTTL time.Duration,
) *chi.Mux {
	v := validate.New()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.With(rateLimit.Register()).Post("/register",
		register.New(log, v, authService),
	)
	r.With(rateLimit.Activate()).Get("/activate",
		activate.New(log, authService),
	)
	r.With(rateLimit.Login()).Post("/login",
		login.New(log, v, authService, refreshTTL),
	)
	r.With(rateLimit.Refresh()).Post("/refresh",
		refresh.New(log, authService),
	)
	r.With(rateLimit.Logout()).Post("/logout",
		logout.New(log),
	)
	r.With(rateLimit.ForgotPassword()).Post("/forgot_password",
		forgotPassword.New(log, v, authService),
	)

	return r
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
