package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"water-redistribution-service/internal/domain"
)

type WellSeed struct {
	ID            string   `json:"id"`
	Lon           *float64 `json:"lon"`
	Lat           *float64 `json:"lat"`
	YieldM3PerDay float64  `json:"yield_m3_per_day"`
}

type ZoneSeed struct {
	Kind           string  `json:"kind"`
	Name           string  `json:"name"`
	Lon            float64 `json:"lon"`
	Lat            float64 `json:"lat"`
	AreaKm2        float64 `json:"area_km2"`
	DemandM3PerDay float64 `json:"demand_m3_per_day"`
}

// ParseWells decodes and validates a wells seed document.
// Wells without coordinates or with a non-positive yield are kept; the
// allocator treats them as ineligible.
func ParseWells(data []byte) ([]domain.Well, error) {
	var seeds []WellSeed
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("parse wells: %w", err)
	}

	wells := make([]domain.Well, 0, len(seeds))
	seen := make(map[string]struct{}, len(seeds))
	for i, s := range seeds {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			return nil, fmt.Errorf("parse wells: item %d: id cannot be empty", i+1)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("parse wells: item %d: duplicate id %q", i+1, id)
		}
		seen[id] = struct{}{}

		if math.IsNaN(s.YieldM3PerDay) || math.IsInf(s.YieldM3PerDay, 0) {
			return nil, fmt.Errorf("parse wells: well %q: yield must be finite", id)
		}

		w := domain.Well{ID: id, YieldM3PerDay: s.YieldM3PerDay}
		if (s.Lon == nil) != (s.Lat == nil) {
			return nil, fmt.Errorf("parse wells: well %q: lon and lat must both be set or both be null", id)
		}
		if s.Lon != nil {
			c := domain.Coordinates{Lon: *s.Lon, Lat: *s.Lat}
			if !c.Valid() {
				return nil, fmt.Errorf("parse wells: well %q: invalid coordinates %v", id, c.CoordsToList())
			}
			w.Location = &c
		}
		wells = append(wells, w)
	}

	return wells, nil
}

// ParseZones decodes and validates a zones seed document. Names are normalized.
func ParseZones(data []byte) ([]domain.Zone, error) {
	var seeds []ZoneSeed
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("parse zones: %w", err)
	}

	zones := make([]domain.Zone, 0, len(seeds))
	seen := make(map[string]struct{}, len(seeds))
	for i, s := range seeds {
		kind, err := domain.ParseZoneKind(s.Kind)
		if err != nil {
			return nil, fmt.Errorf("parse zones: item %d: %w", i+1, err)
		}

		name := domain.NormalizeName(s.Name)
		if name == "" {
			return nil, fmt.Errorf("parse zones: item %d: name cannot be empty", i+1)
		}
		key := string(kind) + "/" + name
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("parse zones: item %d: duplicate %s %q", i+1, kind, name)
		}
		seen[key] = struct{}{}

		c := domain.Coordinates{Lon: s.Lon, Lat: s.Lat}
		if !c.Valid() {
			return nil, fmt.Errorf("parse zones: %s %q: invalid centroid %v", kind, name, c.CoordsToList())
		}
		if s.DemandM3PerDay < 0 {
			return nil, fmt.Errorf("parse zones: %s %q: demand cannot be negative", kind, name)
		}

		zones = append(zones, domain.Zone{
			Name:           name,
			Kind:           kind,
			Centroid:       c,
			AreaKm2:        s.AreaKm2,
			DemandM3PerDay: s.DemandM3PerDay,
		})
	}

	return zones, nil
}

// ReadWells loads a wells seed file.
func ReadWells(path string) ([]domain.Well, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wells %q: %w", path, err)
	}
	return ParseWells(data)
}

// ReadZones loads a zones seed file.
func ReadZones(path string) ([]domain.Zone, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read zones %q: %w", path, err)
	}
	return ParseZones(data)
}

// SeedFromJSON upserts wells and zones from two JSON files in one transaction.
func SeedFromJSON(ctx context.Context, db *sql.DB, wellsPath, zonesPath string) error {
	wells, err := ReadWells(wellsPath)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	zones, err := ReadZones(zonesPath)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	wellQuery := `
	INSERT INTO wells (
		well_id,
		lon,
		lat,
		yield_m3_per_day
	)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (well_id) DO UPDATE SET
		lon = EXCLUDED.lon,
		lat = EXCLUDED.lat,
		yield_m3_per_day = EXCLUDED.yield_m3_per_day;
	`
	wellStmt, err := tx.PrepareContext(ctx, wellQuery)
	if err != nil {
		return fmt.Errorf("seed: prepare well insert: %w", err)
	}
	defer wellStmt.Close()

	for _, w := range wells {
		var lon, lat sql.NullFloat64
		if w.Location != nil {
			lon = sql.NullFloat64{Float64: w.Location.Lon, Valid: true}
			lat = sql.NullFloat64{Float64: w.Location.Lat, Valid: true}
		}
		if _, err := wellStmt.ExecContext(ctx, w.ID, lon, lat, w.YieldM3PerDay); err != nil {
			return fmt.Errorf("seed: insert well_id=%s: %w", w.ID, err)
		}
	}

	zoneQuery := `
	INSERT INTO zones (
		kind,
		name,
		lon,
		lat,
		area_km2,
		demand_m3_per_day
	)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (kind, name) DO UPDATE SET
		lon = EXCLUDED.lon,
		lat = EXCLUDED.lat,
		area_km2 = EXCLUDED.area_km2,
		demand_m3_per_day = EXCLUDED.demand_m3_per_day;
	`
	zoneStmt, err := tx.PrepareContext(ctx, zoneQuery)
	if err != nil {
		return fmt.Errorf("seed: prepare zone insert: %w", err)
	}
	defer zoneStmt.Close()

	for _, z := range zones {
		if _, err := zoneStmt.ExecContext(ctx, string(z.Kind), z.Name, z.Centroid.Lon, z.Centroid.Lat, z.AreaKm2, z.DemandM3PerDay); err != nil {
			return fmt.Errorf("seed: insert %s %q: %w", z.Kind, z.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}
