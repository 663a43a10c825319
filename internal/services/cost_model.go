package services

import (
	"math"

	"water-redistribution-service/internal/domain"
)

// minSpeedKmh floors the reference speed so a zero or negative value cannot divide by zero.
const minSpeedKmh = 1e-6

// Fuel and speed parameters for pricing tanker trips.
type CostParams struct {
	FuelRateGalPerHour float64
	FuelPricePerGal    float64
	ReferenceSpeedKmh  float64
}

// Trips, fuel and fuel cost needed to move one volume over one distance.
type TripCost struct {
	Trips   int
	Cost    float64
	FuelGal float64
}

// ComputeTripCost prices moving volumeM3 over a one-way distance with the given vehicle.
//
// Each trip is a round trip (well -> demand point -> well) and only fuel is
// priced; vehicle rental and crew are not part of the figure.
func ComputeTripCost(volumeM3, distanceKm float64, vehicle domain.VehicleType, p CostParams) TripCost {
	trips := tripsFor(volumeM3, vehicle.CapacityM3)
	if trips == 0 {
		return TripCost{}
	}

	hoursPerTrip := (2.0 * distanceKm) / math.Max(p.ReferenceSpeedKmh, minSpeedKmh)
	fuelPerTrip := hoursPerTrip * p.FuelRateGalPerHour
	costPerTrip := fuelPerTrip * p.FuelPricePerGal

	return TripCost{
		Trips:   trips,
		Cost:    float64(trips) * costPerTrip,
		FuelGal: float64(trips) * fuelPerTrip,
	}
}

// tripsFor is the ceiling of volume/capacity: whole loads plus one for any remainder.
func tripsFor(volumeM3, capacityM3 float64) int {
	if volumeM3 <= 0 || capacityM3 <= 0 {
		return 0
	}
	trips := int(math.Floor(volumeM3 / capacityM3))
	if math.Mod(volumeM3, capacityM3) > 0 {
		trips++
	}
	return trips
}
