package dto

type WellResponse struct {
	ID            string    `json:"id"`
	Location      []float64 `json:"location"`
	YieldM3PerDay float64   `json:"yield_m3_per_day"`
	Eligible      bool      `json:"eligible"`
}

type ListWellsResponse struct {
	Wells []WellResponse `json:"wells"`
}
