package handlers

import (
	"log"
	"net/http"

	"water-redistribution-service/internal/api/dto"
	"water-redistribution-service/internal/platform/obs"
	"water-redistribution-service/internal/ports"
)

// WellHandler exposes the wells snapshot.
type WellHandler struct {
	Repo ports.WellRepository
}

func (h *WellHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	wells, err := h.Repo.ListWells(r.Context())
	if err != nil {
		log.Printf("list wells failed: req_id=%s err=%v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListWellsResponse{
		Wells: make([]dto.WellResponse, 0, len(wells)),
	}
	for _, wl := range wells {
		item := dto.WellResponse{
			ID:            wl.ID,
			YieldM3PerDay: wl.YieldM3PerDay,
			Eligible:      wl.Eligible(),
		}
		if wl.Location != nil {
			item.Location = wl.Location.CoordsToList()
		}
		res.Wells = append(res.Wells, item)
	}

	writeJSON(w, r, http.StatusOK, res)
}
