package dto

import "github.com/shopspring/decimal"

type SummaryRowResponse struct {
	Name            string          `json:"name"`
	Kind            string          `json:"kind"`
	DemandM3        float64         `json:"demand_m3"`
	Trips           int             `json:"trips"`
	Cost            decimal.Decimal `json:"cost"`
	FuelGal         float64         `json:"fuel_gal"`
	ResidualM3      float64         `json:"residual_m3"`
	CoveragePercent float64         `json:"coverage_percent"`
}

type SummaryResponse struct {
	ScenarioPercent float64              `json:"scenario_percent"`
	Vehicle         string               `json:"vehicle"`
	Rows            []SummaryRowResponse `json:"rows"`
	CostCaveat      string               `json:"cost_caveat"`
}
