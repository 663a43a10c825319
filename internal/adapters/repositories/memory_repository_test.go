package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"water-redistribution-service/internal/domain"
)

func TestMemoryWellRepositoryReturnsCopies(t *testing.T) {
	repo := NewMemoryWellRepository([]domain.Well{
		{ID: "W1", Location: &domain.Coordinates{Lon: -77, Lat: -12}, YieldM3PerDay: 10},
	})

	first, err := repo.ListWells(context.Background())
	require.NoError(t, err)
	first[0].YieldM3PerDay = 999
	first[0].Location.Lon = 0

	second, err := repo.ListWells(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10.0, second[0].YieldM3PerDay)
	assert.Equal(t, -77.0, second[0].Location.Lon)
}

func TestMemoryWellRepositoryCanceledContext(t *testing.T) {
	repo := NewMemoryWellRepository(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.ListWells(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryZoneRepository(t *testing.T) {
	repo := NewMemoryZoneRepository([]domain.Zone{
		{Name: "Santa Anita", Kind: domain.ZoneDistrict, DemandM3PerDay: 5},
		{Name: "Ate", Kind: domain.ZoneDistrict, DemandM3PerDay: 7},
		{Name: "S1", Kind: domain.ZoneSector, DemandM3PerDay: 1},
	})
	ctx := context.Background()

	districts, err := repo.ListZones(ctx, domain.ZoneDistrict)
	require.NoError(t, err)
	require.Len(t, districts, 2)
	assert.Equal(t, "ATE", districts[0].Name)
	assert.Equal(t, "SANTA ANITA", districts[1].Name)

	z, err := repo.GetZone(ctx, domain.ZoneDistrict, "ATE")
	require.NoError(t, err)
	assert.Equal(t, 7.0, z.DemandM3PerDay)

	_, err = repo.GetZone(ctx, domain.ZoneSector, "ATE")
	assert.ErrorIs(t, err, domain.ErrZoneNotFound)
}
