package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/glossary/internal/auth"
	"github.com/heartmarshall/glossary/internal/config"
	"github.com/heartmarshall/glossary/internal/service/glossary"
	"github.com/heartmarshall/glossary/internal/wordlist"
)

// Run is the application entry point. It loads configuration, loads the
// baseline word list, and serves HTTP until ctx is cancelled, then shuts
// down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	enc, err := wordlist.ParseEncoding(cfg.Glossary.Encoding)
	if err != nil {
		return err
	}

	sources := NewSources(cfg.Database, enc, logger)
	defer sources.Close()

	baseline, err := sources.BuildAll(ctx, cfg.Glossary.BaselineSources)
	if err != nil {
		return fmt.Errorf("baseline sources: %w", err)
	}
	refresh, err := sources.BuildAll(ctx, cfg.Glossary.RefreshSources)
	if err != nil {
		return fmt.Errorf("refresh sources: %w", err)
	}

	svc, err := glossary.NewService(logger, glossary.Options{
		BaselineSources: baseline,
		RefreshSources:  refresh,
		CacheSize:       cfg.Glossary.CacheSize,
		FetchTimeout:    cfg.Glossary.FetchTimeout,
	})
	if err != nil {
		return err
	}

	// Nothing is served without a baseline.
	if _, err := svc.LoadBaseline(ctx); err != nil {
		return err
	}

	deps := RouterDeps{
		Config:  cfg,
		Service: svc,
		Logger:  logger,
		Version: BuildVersion(),
	}
	if pool := sources.Pool(); pool != nil {
		deps.DB = pool
	}
	if cfg.Auth.Enabled() {
		deps.JWT = auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)
	} else {
		logger.Warn("auth.jwt_secret is not set, admin endpoints are disabled")
	}

	router := NewRouter(deps)
	defer router.Stop()

	if cfg.Glossary.RefreshInterval > 0 {
		go runRefresher(ctx, svc, cfg.Glossary.RefreshInterval, logger)
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router.Handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
