package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the wells and zones tables when they do not exist.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createWellsQuery := `
	CREATE TABLE IF NOT EXISTS wells (
		well_id TEXT PRIMARY KEY,
		lon DOUBLE PRECISION,
		lat DOUBLE PRECISION,
		yield_m3_per_day DOUBLE PRECISION NOT NULL DEFAULT 0,
		CHECK ((lon IS NULL) = (lat IS NULL))
	);
	`

	createZonesQuery := `
	CREATE TABLE IF NOT EXISTS zones (
		kind TEXT NOT NULL CHECK (kind IN ('sector', 'district')),
		name TEXT NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		area_km2 DOUBLE PRECISION NOT NULL DEFAULT 0,
		demand_m3_per_day DOUBLE PRECISION NOT NULL DEFAULT 0,
		PRIMARY KEY (kind, name)
	);
	`

	statements := []string{
		createWellsQuery,
		createZonesQuery,
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
