package distance

import (
	"fmt"
	"math"
	"strings"

	"water-redistribution-service/internal/domain"
)

type Mode string

const (
	// ModePlanar scales straight-line degree distance by a flat 111 km/degree.
	ModePlanar Mode = "planar"
	// ModeGeodesic uses great-circle (haversine) distance.
	ModeGeodesic Mode = "geodesic"
)

// PlanarDistanceProvider reproduces the flat degree-to-kilometer approximation.
// It is the default mode and keeps parity with historic reports.
type PlanarDistanceProvider struct{}

func NewPlanarDistanceProvider() *PlanarDistanceProvider { return &PlanarDistanceProvider{} }

func (p *PlanarDistanceProvider) DistanceKm(from, to domain.Coordinates) (float64, error) {
	if err := checkPair(from, to); err != nil {
		return 0, fmt.Errorf("planar distance: %w", err)
	}
	return from.PlanarDistanceKm(to), nil
}

// Compute distances from many sources to one destination in a single pass.
func (p *PlanarDistanceProvider) DistancesKm(sources []domain.Coordinates, to domain.Coordinates) ([]float64, error) {
	return batch(sources, to, p.DistanceKm)
}

// GeodesicDistanceProvider measures great-circle distance on a spherical Earth.
type GeodesicDistanceProvider struct{}

func NewGeodesicDistanceProvider() *GeodesicDistanceProvider { return &GeodesicDistanceProvider{} }

func (g *GeodesicDistanceProvider) DistanceKm(from, to domain.Coordinates) (float64, error) {
	if err := checkPair(from, to); err != nil {
		return 0, fmt.Errorf("geodesic distance: %w", err)
	}
	return from.HaversineDistanceKm(to), nil
}

func (g *GeodesicDistanceProvider) DistancesKm(sources []domain.Coordinates, to domain.Coordinates) ([]float64, error) {
	return batch(sources, to, g.DistanceKm)
}

// Provider is the union of the two concrete modes, used by the composition root.
type Provider interface {
	DistanceKm(from, to domain.Coordinates) (float64, error)
	DistancesKm(sources []domain.Coordinates, to domain.Coordinates) ([]float64, error)
}

// NewProvider selects a provider by mode name. Empty selects planar.
func NewProvider(mode string) (Provider, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(mode))) {
	case "", ModePlanar:
		return NewPlanarDistanceProvider(), nil
	case ModeGeodesic:
		return NewGeodesicDistanceProvider(), nil
	}
	return nil, fmt.Errorf("new distance provider: unknown mode %q (want %q or %q)", mode, ModePlanar, ModeGeodesic)
}

func checkPair(from, to domain.Coordinates) error {
	if !from.Valid() {
		return fmt.Errorf("invalid source coordinates %+v", from)
	}
	if !to.Valid() {
		return fmt.Errorf("invalid destination coordinates %+v", to)
	}
	return nil
}

// batch marks per-source failures with NaN instead of failing the whole row.
// A bad destination fails the row since no source could be measured.
func batch(
	sources []domain.Coordinates,
	to domain.Coordinates,
	one func(from, to domain.Coordinates) (float64, error),
) ([]float64, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("distance row: invalid destination coordinates %+v", to)
	}

	out := make([]float64, len(sources))
	for i, s := range sources {
		km, err := one(s, to)
		if err != nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = km
	}
	return out, nil
}
