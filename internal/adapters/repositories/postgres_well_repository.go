package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"water-redistribution-service/internal/domain"
	"water-redistribution-service/internal/platform/obs"
)

// Postgres-backed implementation of the WellRepository port.
type PostgresWellRepository struct{ DB *sql.DB }

func NewPostgresWellRepository(db *sql.DB) *PostgresWellRepository {
	return &PostgresWellRepository{DB: db}
}

// Return every well ordered by id. Wells without coordinates have a nil Location.
func (p *PostgresWellRepository) ListWells(ctx context.Context) (_ []domain.Well, err error) {
	defer obs.Time(ctx, "wells.List")(&err)

	if p.DB == nil {
		return nil, errors.New("postgres well repository: DB is nil")
	}

	query := `
	SELECT
		well_id,
		lon,
		lat,
		yield_m3_per_day
	FROM wells
	ORDER BY well_id;
	`
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list wells: query wells table: %w", err)
	}
	defer rows.Close()

	wells := make([]domain.Well, 0, 256)
	for rows.Next() {
		var (
			id       string
			lon, lat sql.NullFloat64
			yield    float64
		)
		if err := rows.Scan(&id, &lon, &lat, &yield); err != nil {
			return nil, fmt.Errorf("list wells: scan row: %w", err)
		}

		w := domain.Well{ID: id, YieldM3PerDay: yield}
		if lon.Valid && lat.Valid {
			w.Location = &domain.Coordinates{Lon: lon.Float64, Lat: lat.Float64}
		}
		wells = append(wells, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list wells: row iteration: %w", err)
	}

	return wells, nil
}
