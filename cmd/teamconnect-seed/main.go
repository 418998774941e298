// teamconnect-seed creates the permission catalogue and default access
// levels. It is safe to run repeatedly.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/d9705996/teamconnect/internal/config"
	"github.com/d9705996/teamconnect/internal/db"
	"github.com/d9705996/teamconnect/internal/observability"
	"github.com/d9705996/teamconnect/internal/seed"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, pool, err := db.New(ctx, &cfg.DB)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() { _ = db.Close(gormDB, pool) }()

	if err := seed.Run(ctx, gormDB, log); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	log.Info("seed complete", "driver", cfg.DB.Driver)
	return nil
}
