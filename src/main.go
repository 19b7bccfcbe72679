package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finance-tracker/src/api"
	"finance-tracker/src/auth"
	"finance-tracker/src/config"
	"finance-tracker/src/db"
	pgstore "finance-tracker/src/db/sql"
	"finance-tracker/src/db/sqlite"
	"finance-tracker/src/ledger"
	"finance-tracker/src/logger"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type store interface {
	auth.UserStore
	ledger.Store
	Ping(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(cfg.LogLevel, cfg.LogPretty)

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped gracefully")
}

func run(cfg config.Config) error {
	if cfg.UsingDevSecret() {
		log.Warn().Msg("JWT_SECRET not set, using the development secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	throttle, err := auth.NewThrottle(cfg.LoginMaxAttempts, cfg.LoginLockout)
	if err != nil {
		return err
	}
	defer throttle.Close()

	router := api.NewRouter(api.Deps{
		Credentials: auth.NewCredentials(st, throttle),
		Tokens:      auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL),
		Ledger:      ledger.New(st),
		Store:       st,
	}, api.Options{
		CORSOrigins: cfg.CORSAllowedOrigins,
		DemoMode:    cfg.DemoMode,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64KB
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("driver", cfg.DatabaseDriver).
			Bool("demo_mode", cfg.DemoMode).
			Msg("API server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openStore(ctx context.Context, cfg config.Config) (store, func(), error) {
	switch cfg.DatabaseDriver {
	case config.DriverSQLite:
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("connected to sqlite")
		return s, func() { s.Close() }, nil
	default:
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("DB connection failed: %w", err)
		}
		log.Info().Msg("connected to postgres")
		return pgstore.NewStore(pool), pool.Close, nil
	}
}
