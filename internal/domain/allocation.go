package domain

// Represents the water drawn from one well for a demand point.
// Assignments are produced in ascending distance order and never modified.
type Assignment struct {
	WellID     string
	VolumeM3   float64
	Trips      int
	Cost       float64
	FuelGal    float64
	DistanceKm float64
	Location   Coordinates
}

// A well left out of ranking because its distance could not be computed.
type SkippedWell struct {
	WellID string
	Reason string
}

// Represents the outcome of allocating wells to a single demand point.
// Sum of assignment volumes plus ResidualM3 equals DemandM3.
type AllocationResult struct {
	DemandM3     float64
	Assignments  []Assignment
	ResidualM3   float64
	TotalTrips   int
	TotalCost    float64
	TotalFuelGal float64
	Skipped      []SkippedWell
}

// AllocatedM3 sums the volume of every assignment.
func (r AllocationResult) AllocatedM3() float64 {
	total := 0.0
	for _, a := range r.Assignments {
		total += a.VolumeM3
	}
	return total
}

// CoverageRatio is the fraction of demand satisfied, in [0, 1].
// A zero demand reports 0, mirroring how the dashboard displayed it.
func (r AllocationResult) CoverageRatio() float64 {
	if r.DemandM3 <= 0 {
		return 0
	}
	ratio := 1 - r.ResidualM3/r.DemandM3
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

func (r AllocationResult) CoveragePercent() float64 { return r.CoverageRatio() * 100 }

// Covered reports whether no residual demand is left.
func (r AllocationResult) Covered() bool { return r.ResidualM3 <= 0 }
