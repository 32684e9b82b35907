package main

import (
	"context"
	"errors"
	"fmt"
	"nexuslink/internal/config"
	"nexuslink/internal/http/server"
	"nexuslink/internal/logger"
	"nexuslink/internal/metrics"
	"nexuslink/internal/repository"
	"nexuslink/internal/repository/cache"
	"nexuslink/internal/repository/filestore"
	"nexuslink/internal/repository/inmemory"
	"nexuslink/internal/repository/postgres"
	"nexuslink/internal/services/auth"
	"nexuslink/internal/services/dashboard"
	"nexuslink/internal/services/recorder"
	"nexuslink/internal/services/redirect"
	"nexuslink/internal/services/shortener"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.NewConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	log := logger.NewLogger(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(cfg *config.Config, log *zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.GeneratedSecret {
		log.Warn().Msg("Using auto-generated JWT secret key. For production, set JWT_SECRET_KEY environment variable.")
	}

	storage, err := newStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := storage.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close storage")
		}
	}()

	authService, err := auth.NewAuthentication(cfg.JWTSecretKey, cfg.JWTAccessExpire)
	if err != nil {
		return err
	}

	shortenerService := shortener.NewShortener(storage, log, cfg.BaseURL, cfg.CodeLength)
	recorderService := recorder.NewRecorder(storage, log)
	resolver := redirect.NewResolver(shortenerService, recorderService, log, cfg.RecordTimeout)
	dashboardService := dashboard.NewService(storage, shortenerService, dashboard.Options{
		Window:   cfg.DashboardWindow,
		Limit:    cfg.DashboardLimit,
		Location: cfg.Location,
	})

	srv, err := server.NewServer(log, *cfg, server.Services{
		Shortener: shortenerService,
		Resolver:  resolver,
		Dashboard: dashboardService,
		Recorder:  recorderService,
		Auth:      authService,
	}, metrics.New())
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start(ctx)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	// клики, начатые до остановки, дописываются до закрытия хранилища
	resolver.Wait()
	log.Info().Msg("Server stopped")
	return nil
}

// newStorage выбирает Postgres при заданном DSN, иначе память (со снимком в файл,
// если задан путь). Redis кеширует разрешение кодов, если указан адрес
func newStorage(ctx context.Context, cfg *config.Config, log *zerolog.Logger) (repository.Storage, error) {
	var storage repository.Storage

	if cfg.DatabaseDSN != "" {
		pg, err := postgres.NewStorage(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to init postgres storage: %w", err)
		}
		log.Info().Msg("Using PostgreSQL storage")
		storage = pg
	} else if cfg.FileStoragePath != "" {
		fs, err := filestore.New(ctx, log, cfg.FileStoragePath)
		if err != nil {
			return nil, fmt.Errorf("failed to init file storage: %w", err)
		}
		log.Info().Str("path", cfg.FileStoragePath).Msg("Using in-memory storage with file snapshot")
		storage = fs
	} else {
		log.Info().Msg("Using in-memory storage")
		storage = inmemory.NewStorage()
	}

	if cfg.RedisAddr == "" {
		return storage, nil
	}

	client, err := cache.NewRedisClient(ctx, cfg.RedisAddr)
	if err != nil {
		_ = storage.Close()
		return nil, err
	}
	log.Info().Str("addr", cfg.RedisAddr).Dur("ttl", cfg.CacheTTL).Msg("Using Redis resolve cache")
	return cache.New(storage, client, cfg.CacheTTL, log), nil
}
