package ports

import "water-redistribution-service/internal/domain"

// Optional extension of DistanceProvider that supports batched lookups.
type DistanceMatrixProvider interface {
	DistanceProvider
	// Return distances from many sources to one destination, index-aligned with
	// sources. A NaN entry marks a source whose distance could not be computed.
	DistancesKm(sources []domain.Coordinates, to domain.Coordinates) ([]float64, error)
}
