package services

import (
	"fmt"
	"math"
	"slices"

	"water-redistribution-service/internal/domain"
	"water-redistribution-service/internal/ports"
)

// Inputs for one allocation run against a single demand point.
type AllocationRequest struct {
	Demand          domain.DemandPoint
	ScenarioPercent float64
	Vehicle         domain.VehicleType
	Cost            CostParams
}

type rankedWell struct {
	id        string
	location  domain.Coordinates
	distance  float64
	available float64
}

// Allocate assigns well capacity to a demand point using a greedy nearest-first heuristic.
//
// Eligible wells are ranked by distance to the demand point and drained in
// that order until the demand is met or the wells run out. The result is
// deterministic and respects per-well availability, but it is not
// cost-minimal: a closer well is always used before a farther one, and no
// transportation problem is solved across zones.
//
// Wells whose distance cannot be computed are skipped and reported in
// AllocationResult.Skipped. The wells slice is never modified.
func Allocate(req AllocationRequest, wells []domain.Well, provider ports.DistanceProvider) domain.AllocationResult {
	ranked, skipped := rankWells(req, wells, provider)

	result := domain.AllocationResult{
		DemandM3:    req.Demand.DemandM3PerDay,
		Assignments: []domain.Assignment{},
		Skipped:     skipped,
	}

	remaining := req.Demand.DemandM3PerDay
	for _, w := range ranked {
		if remaining <= 0 {
			break
		}

		volume := math.Min(w.available, remaining)
		cost := ComputeTripCost(volume, w.distance, req.Vehicle, req.Cost)

		result.Assignments = append(result.Assignments, domain.Assignment{
			WellID:     w.id,
			VolumeM3:   volume,
			Trips:      cost.Trips,
			Cost:       cost.Cost,
			FuelGal:    cost.FuelGal,
			DistanceKm: w.distance,
			Location:   w.location,
		})

		remaining -= volume
		result.TotalTrips += cost.Trips
		result.TotalCost += cost.Cost
		result.TotalFuelGal += cost.FuelGal
	}

	result.ResidualM3 = remaining
	return result
}

// rankWells filters eligible wells, measures them, and sorts by ascending distance.
// Equal distances keep the input order.
func rankWells(
	req AllocationRequest,
	wells []domain.Well,
	provider ports.DistanceProvider,
) ([]rankedWell, []domain.SkippedWell) {
	eligible := make([]domain.Well, 0, len(wells))
	for _, w := range wells {
		if w.Eligible() {
			eligible = append(eligible, w)
		}
	}

	distances, batchErr := measure(eligible, req.Demand.Location, provider)

	ranked := make([]rankedWell, 0, len(eligible))
	var skipped []domain.SkippedWell
	for i, w := range eligible {
		d := math.NaN()
		var reason string
		switch {
		case batchErr != nil:
			reason = batchErr.Error()
		case distances[i].err != nil:
			reason = distances[i].err.Error()
		default:
			d = distances[i].km
		}

		if reason == "" && (math.IsNaN(d) || math.IsInf(d, 0) || d < 0) {
			reason = fmt.Sprintf("invalid distance %v", d)
		}
		if reason != "" {
			skipped = append(skipped, domain.SkippedWell{WellID: w.ID, Reason: reason})
			continue
		}

		ranked = append(ranked, rankedWell{
			id:        w.ID,
			location:  *w.Location,
			distance:  d,
			available: w.AvailableM3(req.ScenarioPercent),
		})
	}

	slices.SortStableFunc(ranked, func(a, b rankedWell) int {
		if a.distance < b.distance {
			return -1
		}
		if a.distance > b.distance {
			return 1
		}
		return 0
	})

	return ranked, skipped
}

type measured struct {
	km  float64
	err error
}

// measure prefers a single batched lookup when the provider supports it.
func measure(wells []domain.Well, to domain.Coordinates, provider ports.DistanceProvider) ([]measured, error) {
	out := make([]measured, len(wells))
	if len(wells) == 0 {
		return out, nil
	}

	if mp, ok := provider.(ports.DistanceMatrixProvider); ok {
		sources := make([]domain.Coordinates, len(wells))
		for i, w := range wells {
			sources[i] = *w.Location
		}

		kms, err := mp.DistancesKm(sources, to)
		if err != nil {
			return nil, fmt.Errorf("batched distance lookup: %w", err)
		}
		if len(kms) != len(wells) {
			return nil, fmt.Errorf("batched distance lookup: got %d distances for %d wells", len(kms), len(wells))
		}
		for i, km := range kms {
			out[i] = measured{km: km}
		}
		return out, nil
	}

	for i, w := range wells {
		km, err := provider.DistanceKm(*w.Location, to)
		out[i] = measured{km: km, err: err}
	}
	return out, nil
}
