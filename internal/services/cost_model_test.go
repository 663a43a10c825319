package services

import (
	"math"
	"testing"

	"water-redistribution-service/internal/domain"
)

var tanker19 = domain.VehicleType{Name: "19m3", CapacityM3: 19}

var defaultCost = CostParams{
	FuelRateGalPerHour: 5.5,
	FuelPricePerGal:    20,
	ReferenceSpeedKmh:  30,
}

func approx(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestComputeTripCostFormula(t *testing.T) {
	got := ComputeTripCost(19, 10, tanker19, defaultCost)

	if got.Trips != 1 {
		t.Fatalf("trips = %d, want 1", got.Trips)
	}
	// 20 km round trip at 30 km/h = 2/3 h; 2/3 * 5.5 gal/h = 3.667 gal; * 20 = 73.33
	if !approx(got.FuelGal, 11.0/3.0, 1e-9) {
		t.Fatalf("fuel = %v, want %v", got.FuelGal, 11.0/3.0)
	}
	if !approx(got.Cost, 220.0/3.0, 1e-9) {
		t.Fatalf("cost = %v, want %v", got.Cost, 220.0/3.0)
	}
}

func TestComputeTripCostRounding(t *testing.T) {
	tests := []struct {
		name   string
		volume float64
		want   int
	}{
		{name: "zero volume", volume: 0, want: 0},
		{name: "negative volume", volume: -5, want: 0},
		{name: "partial load", volume: 10, want: 1},
		{name: "exact load", volume: 19, want: 1},
		{name: "just over one load", volume: 19.01, want: 2},
		{name: "exact multiple", volume: 57, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTripCost(tt.volume, 10, tanker19, defaultCost)
			if got.Trips != tt.want {
				t.Fatalf("trips = %d, want %d", got.Trips, tt.want)
			}
			if tt.want == 0 && (got.Cost != 0 || got.FuelGal != 0) {
				t.Fatalf("expected zero cost and fuel, got %+v", got)
			}
		})
	}
}

func TestComputeTripCostScalesWithTrips(t *testing.T) {
	one := ComputeTripCost(19, 12, tanker19, defaultCost)
	three := ComputeTripCost(50, 12, tanker19, defaultCost)

	if three.Trips != 3 {
		t.Fatalf("trips = %d, want 3", three.Trips)
	}
	if !approx(three.Cost, 3*one.Cost, 1e-9) || !approx(three.FuelGal, 3*one.FuelGal, 1e-9) {
		t.Fatalf("expected totals to be 3x per-trip values: one=%+v three=%+v", one, three)
	}
}

func TestComputeTripCostFloorsSpeed(t *testing.T) {
	p := defaultCost
	p.ReferenceSpeedKmh = 0

	got := ComputeTripCost(19, 1, tanker19, p)
	if math.IsInf(got.Cost, 0) || math.IsNaN(got.Cost) {
		t.Fatalf("cost must stay finite, got %v", got.Cost)
	}
	if got.Cost <= 0 {
		t.Fatalf("cost = %v, want a large positive value", got.Cost)
	}
}

func TestComputeTripCostZeroDistance(t *testing.T) {
	got := ComputeTripCost(40, 0, tanker19, defaultCost)
	if got.Trips != 3 || got.Cost != 0 || got.FuelGal != 0 {
		t.Fatalf("got %+v, want 3 trips at zero cost", got)
	}
}
