package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"water-redistribution-service/internal/domain"
)

// Postgres-backed implementation of the ZoneRepository port.
type PostgresZoneRepository struct{ DB *sql.DB }

func NewPostgresZoneRepository(db *sql.DB) *PostgresZoneRepository {
	return &PostgresZoneRepository{DB: db}
}

const zoneColumns = `
	SELECT
		name,
		kind,
		lon,
		lat,
		area_km2,
		demand_m3_per_day
	FROM zones
`

func (p *PostgresZoneRepository) ListZones(ctx context.Context, kind domain.ZoneKind) ([]domain.Zone, error) {
	if p.DB == nil {
		return nil, errors.New("postgres zone repository: DB is nil")
	}

	rows, err := p.DB.QueryContext(ctx, zoneColumns+`WHERE kind = $1 ORDER BY name;`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list zones: query zones table: %w", err)
	}
	defer rows.Close()

	zones := make([]domain.Zone, 0, 64)
	for rows.Next() {
		z, err := scanZone(rows)
		if err != nil {
			return nil, fmt.Errorf("list zones: %w", err)
		}
		zones = append(zones, z)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list zones: row iteration: %w", err)
	}

	return zones, nil
}

func (p *PostgresZoneRepository) GetZone(ctx context.Context, kind domain.ZoneKind, name string) (domain.Zone, error) {
	if p.DB == nil {
		return domain.Zone{}, errors.New("postgres zone repository: DB is nil")
	}

	row := p.DB.QueryRowContext(ctx, zoneColumns+`WHERE kind = $1 AND name = $2;`, string(kind), name)
	z, err := scanZone(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Zone{}, fmt.Errorf("get zone %s %q: %w", kind, name, domain.ErrZoneNotFound)
	}
	if err != nil {
		return domain.Zone{}, fmt.Errorf("get zone %s %q: %w", kind, name, err)
	}
	return z, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanZone(s rowScanner) (domain.Zone, error) {
	var (
		z    domain.Zone
		kind string
	)
	if err := s.Scan(&z.Name, &kind, &z.Centroid.Lon, &z.Centroid.Lat, &z.AreaKm2, &z.DemandM3PerDay); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Zone{}, err
		}
		return domain.Zone{}, fmt.Errorf("scan zone: %w", err)
	}
	z.Kind = domain.ZoneKind(kind)
	return z, nil
}
