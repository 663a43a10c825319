package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"water-redistribution-service/internal/domain"
	"water-redistribution-service/internal/platform/db"
)

// Runs only against a disposable database named by TEST_DATABASE_URL.
func TestPostgresRepositories(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	conn, err := db.Open(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ctx := context.Background()
	_, err = conn.ExecContext(ctx, `DROP TABLE IF EXISTS wells, zones;`)
	require.NoError(t, err)
	require.NoError(t, InitSchema(ctx, conn))

	dir := t.TempDir()
	wellsPath := filepath.Join(dir, "wells.json")
	zonesPath := filepath.Join(dir, "zones.json")
	require.NoError(t, os.WriteFile(wellsPath, []byte(`[
		{"id": "W2", "lon": -77.0, "lat": -12.0, "yield_m3_per_day": 100},
		{"id": "W1", "lon": null, "lat": null, "yield_m3_per_day": 40}
	]`), 0o600))
	require.NoError(t, os.WriteFile(zonesPath, []byte(`[
		{"kind": "district", "name": "Ate", "lon": -76.9, "lat": -12.03, "area_km2": 77.7, "demand_m3_per_day": 1200}
	]`), 0o600))

	require.NoError(t, SeedFromJSON(ctx, conn, wellsPath, zonesPath))
	// Seeding twice upserts instead of failing.
	require.NoError(t, SeedFromJSON(ctx, conn, wellsPath, zonesPath))

	wells, err := NewPostgresWellRepository(conn).ListWells(ctx)
	require.NoError(t, err)
	require.Len(t, wells, 2)
	assert.Equal(t, "W1", wells[0].ID)
	assert.Nil(t, wells[0].Location)
	require.NotNil(t, wells[1].Location)
	assert.Equal(t, -77.0, wells[1].Location.Lon)

	zones := NewPostgresZoneRepository(conn)
	list, err := zones.ListZones(ctx, domain.ZoneDistrict)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ATE", list[0].Name)

	_, err = zones.GetZone(ctx, domain.ZoneDistrict, "NOWHERE")
	assert.ErrorIs(t, err, domain.ErrZoneNotFound)
}
