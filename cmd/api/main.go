package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vaultpass/passgen/internal/config"
	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/handler"
	"github.com/vaultpass/passgen/internal/repository"
	"github.com/vaultpass/passgen/internal/service"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load(slog.LevelInfo)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	config.SetupLogger(cfg.LogLevel)

	// History is optional: without a database the API still generates.
	var recorder service.Recorder
	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Warn("database connection failed, history disabled", "error", err)
	} else {
		defer db.Close()

		repo := repository.NewGenerationRepository(db)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := repo.EnsureSchema(ctx)
		cancel()
		if err != nil {
			slog.Warn("creating generations table failed, history disabled", "error", err)
		} else {
			recorder = repo
		}
	}

	genService, err := service.NewGeneratorService(cfg.Entropy, recorder)
	if err != nil {
		slog.Error("invalid entropy source", "entropy", cfg.Entropy, "error", err)
		os.Exit(1)
	}
	if genService.Entropy() == crypto.EntropyLCG {
		slog.Warn("serving passwords from a clock-seeded LCG; set PASSGEN_ENTROPY=crypto for unpredictable output")
	}
	authService := service.NewAuthService(cfg.APIKeyHash, cfg.APIClient, cfg.JWTSecret, cfg.JWTExpiry)
	if cfg.APIKeyHash == "" {
		slog.Warn("API_KEY_HASH not set, token issuing disabled")
	}

	done := make(chan struct{})
	defer close(done)

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: handler.NewRouter(handler.RouterConfig{
			Generator:      genService,
			Auth:           authService,
			JWTSecret:      cfg.JWTSecret,
			RateLimitRPS:   cfg.RateLimitRPS,
			RateLimitBurst: cfg.RateLimitBurst,
			Done:           done,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "entropy", genService.Entropy())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
