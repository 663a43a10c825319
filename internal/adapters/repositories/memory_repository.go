package repositories

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"water-redistribution-service/internal/domain"
)

// In-memory WellRepository used when no database is configured and in tests.
type MemoryWellRepository struct {
	mu    sync.RWMutex
	wells []domain.Well
}

func NewMemoryWellRepository(wells []domain.Well) *MemoryWellRepository {
	return &MemoryWellRepository{wells: cloneWells(wells)}
}

// ListWells returns a copy so callers cannot mutate the stored snapshot.
func (m *MemoryWellRepository) ListWells(ctx context.Context) ([]domain.Well, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list wells: %w", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneWells(m.wells), nil
}

// Replace swaps the stored snapshot.
func (m *MemoryWellRepository) Replace(wells []domain.Well) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wells = cloneWells(wells)
}

func cloneWells(in []domain.Well) []domain.Well {
	out := make([]domain.Well, len(in))
	for i, w := range in {
		out[i] = w
		if w.Location != nil {
			loc := *w.Location
			out[i].Location = &loc
		}
	}
	return out
}

// In-memory ZoneRepository keyed by kind and normalized name.
type MemoryZoneRepository struct {
	mu    sync.RWMutex
	zones map[domain.ZoneKind][]domain.Zone
}

func NewMemoryZoneRepository(zones []domain.Zone) *MemoryZoneRepository {
	m := &MemoryZoneRepository{zones: make(map[domain.ZoneKind][]domain.Zone)}
	for _, z := range zones {
		z.Name = domain.NormalizeName(z.Name)
		m.zones[z.Kind] = append(m.zones[z.Kind], z)
	}
	for k := range m.zones {
		slices.SortFunc(m.zones[k], func(a, b domain.Zone) int { return strings.Compare(a.Name, b.Name) })
	}
	return m
}

func (m *MemoryZoneRepository) ListZones(ctx context.Context, kind domain.ZoneKind) ([]domain.Zone, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.zones[kind]), nil
}

func (m *MemoryZoneRepository) GetZone(ctx context.Context, kind domain.ZoneKind, name string) (domain.Zone, error) {
	if err := ctx.Err(); err != nil {
		return domain.Zone{}, fmt.Errorf("get zone: %w", err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, z := range m.zones[kind] {
		if z.Name == name {
			return z, nil
		}
	}
	return domain.Zone{}, fmt.Errorf("get zone %s %q: %w", kind, name, domain.ErrZoneNotFound)
}
