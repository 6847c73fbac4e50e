package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createStationsQuery := `
	CREATE TABLE IF NOT EXISTS stations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT NOT NULL UNIQUE,
		maps_link TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);
	`

	createAlertsQuery := `
	CREATE TABLE IF NOT EXISTS alerts (
		id TEXT PRIMARY KEY,
		station_id TEXT NOT NULL REFERENCES stations(id),
		type TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		status TEXT NOT NULL,
		user_id TEXT NOT NULL DEFAULT '',
		user_phone TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_alerts_station_created
	ON alerts(station_id, created_at DESC);
	`

	createLinkCacheQuery := `
	CREATE TABLE IF NOT EXISTS link_cache (
		link TEXT PRIMARY KEY,
		expanded TEXT NOT NULL,
		cached_at TIMESTAMPTZ NOT NULL
	);
	`

	statements := []string{
		createStationsQuery,
		createAlertsQuery,
		createIndexQuery,
		createLinkCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
