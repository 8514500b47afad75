package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"daily-diary/server/internal/auth"
	"daily-diary/server/internal/config"
	"daily-diary/server/internal/httpapi"
	"daily-diary/server/internal/logger"
	"daily-diary/server/internal/store"
	"daily-diary/server/internal/store/memory"
	"daily-diary/server/internal/store/postgres"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to an optional YAML config file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)

	zlog, err := logger.New(cfg.LogLevel, !cfg.IsProduction())
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	st, storeKind, closer, err := openStore(cfg)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer()
	}
	zlog.Info("store ready", zap.String("store", storeKind))

	authSvc := auth.NewService(
		st,
		auth.NewHasher(cfg.Auth.BcryptCost, cfg.Auth.MaxConcurrentHashes),
		auth.NewTokenManager(auth.TokenAccess, cfg.Auth.AccessSecret, cfg.Auth.AccessTTL),
		auth.NewTokenManager(auth.TokenRefresh, cfg.Auth.RefreshSecret, cfg.Auth.RefreshTTL),
	)

	srv := httpapi.NewServer(httpapi.Options{
		Production: cfg.IsProduction(),
		StoreKind:  storeKind,
	}, st, authSvc, zlog)

	httpServer := &http.Server{
		Addr:              cfg.HTTPServer.Address,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.HTTPServer.ReadTimeout,
		WriteTimeout:      cfg.HTTPServer.WriteTimeout,
		IdleTimeout:       cfg.HTTPServer.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("diary server listening",
			zap.String("addr", cfg.HTTPServer.Address),
			zap.String("env", cfg.Env),
		)
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		zlog.Info("shutdown requested")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
	}

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancelShutdown()
	return httpServer.Shutdown(ctxShutdown)
}

// openStore picks postgres when a database url is configured and the memory
// store otherwise.
func openStore(cfg *config.Config) (store.Store, string, func(), error) {
	if cfg.DatabaseURL == "" {
		return memory.NewStore(), "memory", nil, nil
	}

	pg, err := postgres.NewStore(cfg.DatabaseURL)
	if err != nil {
		return nil, "", nil, fmt.Errorf("init postgres store: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := pg.Migrate(ctx); err != nil {
		pg.Close()
		return nil, "", nil, err
	}
	return pg, "postgres", pg.Close, nil
}
