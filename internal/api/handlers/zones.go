package handlers

import (
	"log"
	"net/http"

	"water-redistribution-service/internal/api/dto"
	"water-redistribution-service/internal/domain"
	"water-redistribution-service/internal/platform/obs"
	"water-redistribution-service/internal/ports"
)

// ZoneHandler lists sectors and districts.
type ZoneHandler struct {
	Repo ports.ZoneRepository
}

// List returns zones of ?kind=sector|district, or both when kind is omitted.
func (h *ZoneHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	kinds := []domain.ZoneKind{domain.ZoneSector, domain.ZoneDistrict}
	if raw := r.URL.Query().Get("kind"); raw != "" {
		k, err := domain.ParseZoneKind(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "kind must be sector or district")
			return
		}
		kinds = []domain.ZoneKind{k}
	}

	res := dto.ListZonesResponse{Zones: make([]dto.ZoneResponse, 0, 64)}
	for _, k := range kinds {
		zones, err := h.Repo.ListZones(r.Context(), k)
		if err != nil {
			log.Printf("list zones failed: req_id=%s kind=%s err=%v", obs.RequestID(r.Context()), k, err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		for _, z := range zones {
			res.Zones = append(res.Zones, zoneResponse(z))
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}

func zoneResponse(z domain.Zone) dto.ZoneResponse {
	return dto.ZoneResponse{
		Name:           z.Name,
		Kind:           string(z.Kind),
		Centroid:       z.Centroid.CoordsToList(),
		AreaKm2:        z.AreaKm2,
		DemandM3PerDay: z.DemandM3PerDay,
	}
}
