// Package db opens the authoritative Postgres store.
package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"orgair_backend/internal/platform/config"
)

// connectTimeout bounds the startup retry loop. The store is a hard
// dependency; without it the process must not come up.
const connectTimeout = 60 * time.Second

// Open connects to Postgres, retrying until the deadline, and runs
// migrations for the given models when enabled.
func Open(cfg config.DBConfig, models ...any) (*gorm.DB, error) {
	var (
		conn *gorm.DB
		err  error
	)

	deadline := time.Now().Add(connectTimeout)
	for {
		conn, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("database connect failed after %s: %w", connectTimeout, err)
		}
		slog.Warn("database connect failed, retrying", "error", err)
		time.Sleep(3 * time.Second)
	}

	if cfg.RunMigrations && len(models) > 0 {
		if err := conn.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
		slog.Info("database migrations applied", "models", len(models))
	}

	return conn, nil
}
