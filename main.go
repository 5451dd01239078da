package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yourorg/listings-web/backend"
	httpapi "github.com/yourorg/listings-web/http"
	"github.com/yourorg/listings-web/internal/apiquery"
	"github.com/yourorg/listings-web/internal/config"
	"github.com/yourorg/listings-web/internal/events"
	"github.com/yourorg/listings-web/internal/logger"
	"github.com/yourorg/listings-web/internal/redisx"
	"github.com/yourorg/listings-web/internal/session"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	lg, closer, err := logger.New(cfg.Log, cfg.AppName, os.Stdout)
	if err != nil {
		return err
	}
	defer closer.Close()
	slog.SetDefault(lg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := backend.NewClient(backend.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.BackendTimeout,
		RPS:     cfg.BackendRPS,
		Burst:   cfg.BackendBurst,
		Logger:  lg.With("component", "backend"),
	})

	store, err := newTokenStore(ctx, cfg, lg)
	if err != nil {
		return err
	}

	pub := events.NewInMemory(256)
	go events.Watch(ctx, pub, lg.With("component", "session"))

	sessions := session.NewManager(api, store, pub, session.Options{TTL: cfg.SessionTTL, Logger: lg})
	defer sessions.Close()

	views, err := httpapi.NewViews()
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	router := BuildRouter(RouterDeps{
		Logger:          lg,
		Builder:         apiquery.New(cfg.APIBaseURL, lg),
		Fetcher:         api,
		Validator:       backend.NewValidator(cfg.TrustedImageHost),
		Sessions:        sessions,
		Views:           views,
		RateLimitPerMin: cfg.RateLimitPerMin,
		CORSOrigins:     cfg.CORSOrigins,
		CookieSecure:    cfg.CookieSecure,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("listening", "addr", srv.Addr, "backend", cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	lg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newTokenStore uses Redis when REDIS_ADDR is set and memory otherwise.
func newTokenStore(ctx context.Context, cfg *config.Config, lg *slog.Logger) (session.TokenStore, error) {
	if cfg.RedisAddr == "" {
		lg.Warn("REDIS_ADDR not set; sessions are kept in memory")
		return session.NewMemoryStore(), nil
	}
	rc := redisx.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx); err != nil {
		return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}
	return session.NewRedisStore(rc), nil
}
