package report

import (
	"bytes"
	"strings"
	"testing"

	"water-redistribution-service/internal/domain"
	"water-redistribution-service/internal/services"
)

func shortfall() domain.AllocationResult {
	return domain.AllocationResult{
		DemandM3: 1500,
		Assignments: []domain.Assignment{
			{WellID: "W1", VolumeM3: 10, Trips: 1, Cost: 1234.5, FuelGal: 61.7},
		},
		ResidualM3:   1490,
		TotalTrips:   1,
		TotalCost:    1234.5,
		TotalFuelGal: 61.7,
	}
}

func TestSummarize(t *testing.T) {
	k := Summarize(shortfall())

	if k.WellsUsed != 1 || k.Trips != 1 {
		t.Fatalf("wells/trips: got %d/%d", k.WellsUsed, k.Trips)
	}
	if k.AllocatedM3 != 10 {
		t.Fatalf("allocated: got %v, want 10", k.AllocatedM3)
	}
	if got := k.CoveragePercent; got < 0.66 || got > 0.67 {
		t.Fatalf("coverage: got %v", got)
	}
}

func TestConclusionShortfall(t *testing.T) {
	got := Conclusion(domain.ZoneDistrict, "ATE", shortfall())

	for _, want := range []string{
		"district ATE",
		"1,500.00 m³/day",
		"not covered",
		"shortfall of 1,490.00 m³/day",
		"1 wells are used with 1 trips",
		"61.7 gal",
		"S/ 1,234.50",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("conclusion missing %q:\n%s", want, got)
		}
	}
}

func TestConclusionCovered(t *testing.T) {
	r := domain.AllocationResult{DemandM3: 5, Assignments: []domain.Assignment{{WellID: "W1", VolumeM3: 5, Trips: 1}}, TotalTrips: 1}

	got := Conclusion(domain.ZoneCombination, "ATE, LURIGANCHO", r)

	if !strings.Contains(got, "full demand is covered") {
		t.Fatalf("expected covered narrative, got:\n%s", got)
	}
	if strings.Contains(got, "shortfall") {
		t.Fatalf("covered narrative mentions a shortfall:\n%s", got)
	}
	if !strings.Contains(got, "critical district combination ATE, LURIGANCHO") {
		t.Fatalf("missing context label:\n%s", got)
	}
}

func TestWriteSummary(t *testing.T) {
	rows := []services.SummaryRow{
		{Name: "S1", Kind: domain.ZoneSector, DemandM3: 12000, Trips: 3, Cost: 10, FuelGal: 0.5, CoveragePercent: 100},
	}

	var buf bytes.Buffer
	if err := WriteSummary(&buf, rows); err != nil {
		t.Fatalf("write summary: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"KIND", "S1", "12,000.00", CostCaveat} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}
