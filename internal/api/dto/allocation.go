package dto

import "github.com/shopspring/decimal"

// AllocationRequest selects a demand target and optional cost overrides.
// Exactly one target applies, checked in this order: demand_point,
// zone_names (or zone_kind "combination"), zone_kind + zone_name.
type AllocationRequest struct {
	ZoneKind  string   `json:"zone_kind"`
	ZoneName  string   `json:"zone_name"`
	ZoneNames []string `json:"zone_names"`

	DemandPoint    []float64 `json:"demand_point"`
	DemandM3PerDay *float64  `json:"demand_m3_per_day"`

	ScenarioPercent    *float64 `json:"scenario_percent"`
	Vehicle            string   `json:"vehicle"`
	FuelRateGalPerHour *float64 `json:"fuel_rate_gal_per_hour"`
	FuelPricePerGal    *float64 `json:"fuel_price_per_gal"`
	ReferenceSpeedKmh  *float64 `json:"reference_speed_kmh"`
}

type KPIResponse struct {
	DemandM3        float64         `json:"demand_m3"`
	AllocatedM3     float64         `json:"allocated_m3"`
	ResidualM3      float64         `json:"residual_m3"`
	CoveragePercent float64         `json:"coverage_percent"`
	WellsUsed       int             `json:"wells_used"`
	Trips           int             `json:"trips"`
	Cost            decimal.Decimal `json:"cost"`
	FuelGal         float64         `json:"fuel_gal"`
}

type AssignmentResponse struct {
	WellID     string          `json:"well_id"`
	VolumeM3   float64         `json:"volume_m3"`
	Trips      int             `json:"trips"`
	Cost       decimal.Decimal `json:"cost"`
	FuelGal    float64         `json:"fuel_gal"`
	DistanceKm float64         `json:"distance_km"`
	Location   []float64       `json:"location"`
}

type SkippedWellResponse struct {
	WellID string `json:"well_id"`
	Reason string `json:"reason"`
}

type AllocationResponse struct {
	ID              string                `json:"id"`
	Zone            ZoneResponse          `json:"zone"`
	ScenarioPercent float64               `json:"scenario_percent"`
	Vehicle         string                `json:"vehicle"`
	KPIs            KPIResponse           `json:"kpis"`
	Assignments     []AssignmentResponse  `json:"assignments"`
	Skipped         []SkippedWellResponse `json:"skipped"`
	Conclusion      string                `json:"conclusion"`
	CostCaveat      string                `json:"cost_caveat"`
}
