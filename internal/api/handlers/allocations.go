package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"water-redistribution-service/internal/api/dto"
	"water-redistribution-service/internal/config"
	"water-redistribution-service/internal/domain"
	"water-redistribution-service/internal/report"
	"water-redistribution-service/internal/services"
)

type AllocationHandler struct {
	Analyzer *services.Analyzer
	Analysis config.Analysis
}

// Create runs one allocation for a zone, a district combination or an explicit
// demand point. Nothing is persisted; the response id only correlates logs.
func (h *AllocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.AllocationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	opts, err := h.Analysis.Options(config.Overrides{
		Vehicle:            req.Vehicle,
		ScenarioPercent:    req.ScenarioPercent,
		FuelRateGalPerHour: req.FuelRateGalPerHour,
		FuelPricePerGal:    req.FuelPricePerGal,
		ReferenceSpeedKmh:  req.ReferenceSpeedKmh,
	})
	if err != nil {
		writeServiceError(w, r, "resolve options", err)
		return
	}

	za, status, msg, err := h.run(r.Context(), req, opts)
	if msg != "" {
		writeError(w, r, status, msg)
		return
	}
	if err != nil {
		writeServiceError(w, r, "allocate", err)
		return
	}

	writeJSON(w, r, http.StatusOK, allocationResponse(za, opts))
}

// run dispatches on the request target. A non-empty msg is a validation failure.
func (h *AllocationHandler) run(
	ctx context.Context,
	req dto.AllocationRequest,
	opts services.AllocationOptions,
) (_ *services.ZoneAllocation, status int, msg string, err error) {
	switch {
	case req.DemandPoint != nil:
		if len(req.DemandPoint) != 2 {
			return nil, http.StatusBadRequest, "demand_point must be [lon, lat]", nil
		}
		c := domain.Coordinates{Lon: req.DemandPoint[0], Lat: req.DemandPoint[1]}
		if !c.Valid() {
			return nil, http.StatusBadRequest, "demand_point is out of range", nil
		}
		if req.DemandM3PerDay == nil || *req.DemandM3PerDay < 0 {
			return nil, http.StatusBadRequest, "demand_m3_per_day must be >= 0", nil
		}
		label := strings.TrimSpace(req.ZoneName)
		if label == "" {
			label = fmt.Sprintf("(%.5f, %.5f)", c.Lon, c.Lat)
		}
		za, err := h.Analyzer.AnalyzePoint(ctx, domain.DemandPoint{Label: label, Location: c, DemandM3PerDay: *req.DemandM3PerDay}, opts)
		return za, 0, "", err

	case len(req.ZoneNames) > 0 || strings.EqualFold(strings.TrimSpace(req.ZoneKind), string(domain.ZoneCombination)):
		names := req.ZoneNames
		if len(names) == 0 {
			names = h.Analysis.CriticalDistricts
		}
		za, err := h.Analyzer.AnalyzeCombination(ctx, names, opts)
		return za, 0, "", err

	default:
		kind, err := domain.ParseZoneKind(req.ZoneKind)
		if err != nil {
			return nil, http.StatusBadRequest, "zone_kind must be sector, district or combination", nil
		}
		if strings.TrimSpace(req.ZoneName) == "" {
			return nil, http.StatusBadRequest, "zone_name is required", nil
		}
		za, err := h.Analyzer.AnalyzeZone(ctx, kind, req.ZoneName, opts)
		return za, 0, "", err
	}
}

func allocationResponse(za *services.ZoneAllocation, opts services.AllocationOptions) dto.AllocationResponse {
	res := za.Result
	k := report.Summarize(res)

	out := dto.AllocationResponse{
		ID:              uuid.NewString(),
		Zone:            zoneResponse(za.Zone),
		ScenarioPercent: opts.ScenarioPercent,
		Vehicle:         opts.Vehicle.Name,
		KPIs: dto.KPIResponse{
			DemandM3:        k.DemandM3,
			AllocatedM3:     k.AllocatedM3,
			ResidualM3:      k.ResidualM3,
			CoveragePercent: k.CoveragePercent,
			WellsUsed:       k.WellsUsed,
			Trips:           k.Trips,
			Cost:            money(k.Cost),
			FuelGal:         k.FuelGal,
		},
		Assignments: make([]dto.AssignmentResponse, 0, len(res.Assignments)),
		Skipped:     make([]dto.SkippedWellResponse, 0, len(res.Skipped)),
		Conclusion:  report.Conclusion(za.Zone.Kind, za.Zone.Name, res),
		CostCaveat:  report.CostCaveat,
	}

	for _, a := range res.Assignments {
		out.Assignments = append(out.Assignments, dto.AssignmentResponse{
			WellID:     a.WellID,
			VolumeM3:   a.VolumeM3,
			Trips:      a.Trips,
			Cost:       money(a.Cost),
			FuelGal:    a.FuelGal,
			DistanceKm: round3(a.DistanceKm),
			Location:   a.Location.CoordsToList(),
		})
	}
	for _, s := range res.Skipped {
		out.Skipped = append(out.Skipped, dto.SkippedWellResponse{WellID: s.WellID, Reason: s.Reason})
	}

	return out
}
