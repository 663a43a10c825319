package ports

import (
	"context"
	"water-redistribution-service/internal/domain"
)

// Port: a boundary for retrieving demand zones.
type ZoneRepository interface {
	// Retrieve all zones of a kind, ordered by name.
	ListZones(ctx context.Context, kind domain.ZoneKind) ([]domain.Zone, error)
	// Retrieve one zone by its normalized name. Returns a wrapped
	// domain.ErrZoneNotFound when no zone matches.
	GetZone(ctx context.Context, kind domain.ZoneKind, name string) (domain.Zone, error)
}
