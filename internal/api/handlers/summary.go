package handlers

import (
	"net/http"

	"water-redistribution-service/internal/api/dto"
	"water-redistribution-service/internal/config"
	"water-redistribution-service/internal/report"
	"water-redistribution-service/internal/services"
)

// SummaryHandler serves the general summary across every zone.
type SummaryHandler struct {
	Analyzer *services.Analyzer
	Analysis config.Analysis
}

func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	ov := config.Overrides{Vehicle: r.URL.Query().Get("vehicle")}
	for key, dst := range map[string]**float64{
		"scenario":               &ov.ScenarioPercent,
		"fuel_rate_gal_per_hour": &ov.FuelRateGalPerHour,
		"fuel_price_per_gal":     &ov.FuelPricePerGal,
		"reference_speed_kmh":    &ov.ReferenceSpeedKmh,
	} {
		v, err := queryFloat(r, key)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		*dst = v
	}

	opts, err := h.Analysis.Options(ov)
	if err != nil {
		writeServiceError(w, r, "resolve options", err)
		return
	}

	rows, err := h.Analyzer.Summarize(r.Context(), opts, h.Analysis.CriticalDistricts)
	if err != nil {
		writeServiceError(w, r, "summarize", err)
		return
	}

	res := dto.SummaryResponse{
		ScenarioPercent: opts.ScenarioPercent,
		Vehicle:         opts.Vehicle.Name,
		Rows:            make([]dto.SummaryRowResponse, 0, len(rows)),
		CostCaveat:      report.CostCaveat,
	}
	for _, row := range rows {
		res.Rows = append(res.Rows, dto.SummaryRowResponse{
			Name:            row.Name,
			Kind:            string(row.Kind),
			DemandM3:        row.DemandM3,
			Trips:           row.Trips,
			Cost:            money(row.Cost),
			FuelGal:         row.FuelGal,
			ResidualM3:      row.ResidualM3,
			CoveragePercent: row.CoveragePercent,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
