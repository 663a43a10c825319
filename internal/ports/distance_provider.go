package ports

import "water-redistribution-service/internal/domain"

// Contract for computing the one-way distance between a source and a demand point.
type DistanceProvider interface {
	// Return the distance in kilometers, or an error when it cannot be computed.
	DistanceKm(from, to domain.Coordinates) (float64, error)
}
