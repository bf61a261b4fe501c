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

	"github.com/joho/godotenv"
	"github.com/vaultpass/passgen/internal/clipboard"
	"github.com/vaultpass/passgen/internal/config"
	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/handler"
	"github.com/vaultpass/passgen/internal/repository"
	"github.com/vaultpass/passgen/internal/service"
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
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		slog.Error("opening password store failed", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	if err := repo.Init(ctx); err != nil {
		slog.Error("initialising password store failed", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}

	clip := clipboard.NewSystem()
	if clip.Unsupported() {
		slog.Warn("no clipboard utility found, copy requests will fail")
	}

	genService := service.NewGeneratorService(crypto.GeneratorOptions{Length: cfg.DefaultLength})
	router := handler.NewRouter(handler.RouterConfig{
		Generator:   genService,
		Entries:     service.NewEntryService(repo, genService, clip),
		Auth:        service.NewAuthService(cfg.PassphraseHash, cfg.JWTSecret, cfg.JWTExpiry),
		JWTSecret:   cfg.JWTSecret,
		AuthEnabled: cfg.AuthEnabled(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr(), "env", cfg.Env, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

func openRepository(ctx context.Context, cfg config.Config) (repository.Repository, func(), error) {
	if cfg.StoreDriver == config.DriverMySQL {
		db, err := repository.NewDB(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewMySQLRepository(db), func() { db.Close() }, nil
	}

	slog.Info("using file store", "path", cfg.StorePath)
	return repository.NewFileRepository(cfg.StorePath), func() {}, nil
}
