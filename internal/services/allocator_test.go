package services

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"water-redistribution-service/internal/adapters/distance"
	"water-redistribution-service/internal/domain"
)

func loc(lon, lat float64) *domain.Coordinates {
	return &domain.Coordinates{Lon: lon, Lat: lat}
}

func request(demand float64, scenario float64) AllocationRequest {
	return AllocationRequest{
		Demand: domain.DemandPoint{
			Label:          "ZONE",
			Location:       domain.Coordinates{Lon: 0, Lat: 0},
			DemandM3PerDay: demand,
		},
		ScenarioPercent: scenario,
		Vehicle:         tanker19,
		Cost:            defaultCost,
	}
}

func TestAllocateExhaustsSingleWell(t *testing.T) {
	wells := []domain.Well{{ID: "P1", Location: loc(0, 0.09), YieldM3PerDay: 100}}

	res := Allocate(request(50, 10), wells, distance.NewPlanarDistanceProvider())

	if len(res.Assignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(res.Assignments))
	}
	a := res.Assignments[0]
	if !approx(a.VolumeM3, 10, 1e-9) {
		t.Fatalf("volume = %v, want 10", a.VolumeM3)
	}
	if a.Trips != 1 || res.TotalTrips != 1 {
		t.Fatalf("trips = %d / total %d, want 1", a.Trips, res.TotalTrips)
	}
	if !approx(res.ResidualM3, 40, 1e-9) {
		t.Fatalf("residual = %v, want 40", res.ResidualM3)
	}
	if !approx(a.DistanceKm, 9.99, 1e-9) {
		t.Fatalf("distance = %v, want 9.99", a.DistanceKm)
	}
	want := ComputeTripCost(10, a.DistanceKm, tanker19, defaultCost)
	if !approx(res.TotalCost, want.Cost, 1e-9) || !approx(res.TotalFuelGal, want.FuelGal, 1e-9) {
		t.Fatalf("totals = (%v, %v), want (%v, %v)", res.TotalCost, res.TotalFuelGal, want.Cost, want.FuelGal)
	}
}

func TestAllocateNearestFirstAndStopsWhenCovered(t *testing.T) {
	wells := []domain.Well{
		{ID: "FAR", Location: loc(0, 0.5), YieldM3PerDay: 1000},
		{ID: "NEAR", Location: loc(0, 0.1), YieldM3PerDay: 200},
		{ID: "MID", Location: loc(0.2, 0), YieldM3PerDay: 300},
	}

	// 20% -> NEAR 40, MID 60, FAR 200. Demand 80 -> NEAR 40 + MID 40.
	res := Allocate(request(80, 20), wells, distance.NewPlanarDistanceProvider())

	gotIDs := make([]string, 0, len(res.Assignments))
	for _, a := range res.Assignments {
		gotIDs = append(gotIDs, a.WellID)
	}
	if !reflect.DeepEqual(gotIDs, []string{"NEAR", "MID"}) {
		t.Fatalf("assignment order = %v, want [NEAR MID]", gotIDs)
	}
	if !approx(res.Assignments[1].VolumeM3, 40, 1e-9) {
		t.Fatalf("MID volume = %v, want 40", res.Assignments[1].VolumeM3)
	}
	if res.ResidualM3 != 0 || !res.Covered() {
		t.Fatalf("residual = %v, want exact coverage", res.ResidualM3)
	}
}

func TestAllocateIsNearestFirstNotCostMinimal(t *testing.T) {
	// Using the far large well alone would need fewer trips in total, but the
	// allocator always drains the closer small well first.
	wells := []domain.Well{
		{ID: "BIG", Location: loc(0, 0.11), YieldM3PerDay: 380},
		{ID: "SMALL", Location: loc(0, 0.10), YieldM3PerDay: 10},
	}

	res := Allocate(request(38, 100), wells, distance.NewPlanarDistanceProvider())

	if len(res.Assignments) != 2 || res.Assignments[0].WellID != "SMALL" {
		t.Fatalf("expected SMALL then BIG, got %+v", res.Assignments)
	}
	if res.TotalTrips != 3 {
		t.Fatalf("trips = %d, want 3 (1 from SMALL + 2 from BIG)", res.TotalTrips)
	}
}

func TestAllocateFiltersIneligibleWells(t *testing.T) {
	wells := []domain.Well{
		{ID: "DRY", Location: loc(0, 0.01), YieldM3PerDay: 0},
		{ID: "NEG", Location: loc(0, 0.01), YieldM3PerDay: -4},
		{ID: "NOWHERE", Location: nil, YieldM3PerDay: 500},
		{ID: "OK", Location: loc(0, 0.2), YieldM3PerDay: 100},
	}

	res := Allocate(request(5, 10), wells, distance.NewPlanarDistanceProvider())

	if len(res.Assignments) != 1 || res.Assignments[0].WellID != "OK" {
		t.Fatalf("expected only OK to be assigned, got %+v", res.Assignments)
	}
	if len(res.Skipped) != 0 {
		t.Fatalf("ineligible wells must not be reported as skipped: %+v", res.Skipped)
	}
}

func TestAllocateSkipsWellsWithFailedDistance(t *testing.T) {
	boom := errors.New("malformed geometry")
	provider := distance.NewMockDistanceProvider([]distance.MockPair{
		{From: domain.Coordinates{Lon: 1, Lat: 1}, Err: boom},
		{From: domain.Coordinates{Lon: 2, Lat: 2}, Km: 4},
		{From: domain.Coordinates{Lon: 3, Lat: 3}, Km: math.NaN()},
	})
	wells := []domain.Well{
		{ID: "BROKEN", Location: loc(1, 1), YieldM3PerDay: 100},
		{ID: "GOOD", Location: loc(2, 2), YieldM3PerDay: 100},
		{ID: "NAN", Location: loc(3, 3), YieldM3PerDay: 100},
	}

	res := Allocate(request(100, 30), wells, provider)

	if len(res.Assignments) != 1 || res.Assignments[0].WellID != "GOOD" {
		t.Fatalf("expected only GOOD, got %+v", res.Assignments)
	}
	if len(res.Skipped) != 2 || res.Skipped[0].WellID != "BROKEN" || res.Skipped[1].WellID != "NAN" {
		t.Fatalf("skipped = %+v, want BROKEN and NAN", res.Skipped)
	}
	if !approx(res.ResidualM3, 70, 1e-9) {
		t.Fatalf("residual = %v, want 70", res.ResidualM3)
	}
}

func TestAllocateZeroDemand(t *testing.T) {
	wells := []domain.Well{{ID: "P1", Location: loc(0, 0.1), YieldM3PerDay: 100}}

	res := Allocate(request(0, 30), wells, distance.NewPlanarDistanceProvider())

	if len(res.Assignments) != 0 {
		t.Fatalf("expected no assignments, got %+v", res.Assignments)
	}
	if res.ResidualM3 != 0 || res.TotalTrips != 0 || res.TotalCost != 0 || res.TotalFuelGal != 0 {
		t.Fatalf("expected all-zero totals, got %+v", res)
	}
}

func TestAllocateNoEligibleWells(t *testing.T) {
	res := Allocate(request(75, 30), nil, distance.NewPlanarDistanceProvider())

	if len(res.Assignments) != 0 || res.ResidualM3 != 75 {
		t.Fatalf("expected residual = demand with no assignments, got %+v", res)
	}
}

func TestAllocateExactFit(t *testing.T) {
	wells := []domain.Well{{ID: "P1", Location: loc(0, 0.1), YieldM3PerDay: 250}}

	res := Allocate(request(50, 20), wells, distance.NewPlanarDistanceProvider())

	if res.ResidualM3 != 0 {
		t.Fatalf("residual = %v, want 0", res.ResidualM3)
	}
}

func TestAllocateTiesKeepInputOrder(t *testing.T) {
	wells := []domain.Well{
		{ID: "B", Location: loc(0, 0.1), YieldM3PerDay: 10},
		{ID: "A", Location: loc(0.1, 0), YieldM3PerDay: 10},
		{ID: "C", Location: loc(0, -0.1), YieldM3PerDay: 10},
	}

	res := Allocate(request(30, 100), wells, distance.NewPlanarDistanceProvider())

	for i, want := range []string{"B", "A", "C"} {
		if res.Assignments[i].WellID != want {
			t.Fatalf("assignment %d = %q, want %q", i, res.Assignments[i].WellID, want)
		}
	}
}

func TestAllocateInvariants(t *testing.T) {
	wells := []domain.Well{
		{ID: "W1", Location: loc(-76.95, -12.03), YieldM3PerDay: 864},
		{ID: "W2", Location: loc(-76.90, -12.01), YieldM3PerDay: 1728},
		{ID: "W3", Location: loc(-77.02, -11.98), YieldM3PerDay: 432},
		{ID: "W4", Location: loc(-76.85, -12.10), YieldM3PerDay: 2592},
		{ID: "W5", Location: nil, YieldM3PerDay: 999},
		{ID: "W6", Location: loc(-76.99, -12.06), YieldM3PerDay: 95.5},
	}
	original := append([]domain.Well(nil), wells...)

	for _, scenario := range []float64{10, 20, 30} {
		for _, demand := range []float64{0, 12.5, 150, 480.25, 10000} {
			req := request(demand, scenario)
			req.Demand.Location = domain.Coordinates{Lon: -76.97, Lat: -12.04}

			res := Allocate(req, wells, distance.NewPlanarDistanceProvider())

			if !approx(res.AllocatedM3()+res.ResidualM3, demand, 1e-6) {
				t.Fatalf("scenario %v demand %v: conservation broken: %v + %v", scenario, demand, res.AllocatedM3(), res.ResidualM3)
			}
			if res.ResidualM3 < 0 {
				t.Fatalf("scenario %v demand %v: negative residual %v", scenario, demand, res.ResidualM3)
			}

			yields := map[string]float64{}
			for _, w := range wells {
				yields[w.ID] = w.YieldM3PerDay
			}
			remaining := demand
			prev := -1.0
			trips := 0
			for _, a := range res.Assignments {
				if a.VolumeM3 > yields[a.WellID]*scenario/100+1e-9 {
					t.Fatalf("well %s over-allocated: %v", a.WellID, a.VolumeM3)
				}
				if a.VolumeM3 > remaining+1e-9 {
					t.Fatalf("well %s allocated %v beyond remaining %v", a.WellID, a.VolumeM3, remaining)
				}
				if a.DistanceKm < prev {
					t.Fatalf("assignments out of distance order: %v after %v", a.DistanceKm, prev)
				}
				prev = a.DistanceKm
				remaining -= a.VolumeM3
				trips += a.Trips
			}
			if trips != res.TotalTrips {
				t.Fatalf("total trips = %d, want %d", res.TotalTrips, trips)
			}

			again := Allocate(req, wells, distance.NewPlanarDistanceProvider())
			if !reflect.DeepEqual(res, again) {
				t.Fatalf("allocation is not idempotent:\n%+v\n%+v", res, again)
			}
		}
	}

	if !reflect.DeepEqual(wells, original) {
		t.Fatal("Allocate mutated its input wells")
	}
}
