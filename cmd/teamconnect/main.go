// TeamConnect: multi-tenant company social backend
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	teamapi "github.com/d9705996/teamconnect/internal/api"
	"github.com/d9705996/teamconnect/internal/api/handler"
	"github.com/d9705996/teamconnect/internal/api/middleware"
	"github.com/d9705996/teamconnect/internal/auth"
	"github.com/d9705996/teamconnect/internal/config"
	"github.com/d9705996/teamconnect/internal/db"
	"github.com/d9705996/teamconnect/internal/health"
	"github.com/d9705996/teamconnect/internal/observability"
	"github.com/d9705996/teamconnect/internal/seed"
	"github.com/d9705996/teamconnect/internal/store"
	"github.com/d9705996/teamconnect/internal/version"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Observability -------------------------------------------------------
	obs, log, err := observability.New(ctx, &observability.Config{
		ServiceName:    "teamconnect",
		ServiceVersion: version.Version,
		LogLevel:       cfg.Log.Level,
		LogFormat:      cfg.Log.Format,
		OTLPEndpoint:   cfg.OTel.OTLPEndpoint,
	})
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}
	defer obs.Shutdown(context.Background())
	slog.SetDefault(log)
	log.Info("starting teamconnect", "version", version.Version, "commit", version.Commit,
		"db_driver", cfg.DB.Driver, "tenant_source", cfg.Tenant.Source)

	// --- Database ------------------------------------------------------------
	// db.New opens the connection and runs migrations (AutoMigrate for SQLite,
	// golang-migrate for Postgres).
	gormDB, pool, err := db.New(ctx, &cfg.DB)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() {
		if err := db.Close(gormDB, pool); err != nil {
			log.Error("close db", "err", err)
		}
	}()
	log.Info("database ready", "driver", cfg.DB.Driver)

	// --- Seed ----------------------------------------------------------------
	if cfg.App.SeedOnStart {
		if err := seed.Run(ctx, gormDB, log); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	// --- HTTP routes ---------------------------------------------------------
	st := store.New(gormDB, auth.NewBcryptHasher(cfg.App.BcryptCost))
	authHandler := handler.NewAuthHandler(st, auth.NewRefreshStore(gormDB, cfg.JWT.RefreshTTL), cfg.JWT.Secret, cfg.JWT.AccessTTL)

	mux := http.NewServeMux()
	teamapi.RegisterRoutes(mux, teamapi.NewHandlers(st, health.New(db.NewPinger(gormDB)), authHandler), teamapi.Options{
		Tenants:      st,
		TenantSource: cfg.Tenant.Source,
		JWTSecret:    cfg.JWT.Secret,
	})
	// Prometheus metrics endpoint
	mux.Handle("GET /metrics", promhttp.Handler())

	observe, err := middleware.Observe(log)
	if err != nil {
		return fmt.Errorf("init http metrics: %w", err)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      observe(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Start server --------------------------------------------------------
	log.Info("http server listening", "addr", srv.Addr)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info("server stopped cleanly")
	return nil
}
