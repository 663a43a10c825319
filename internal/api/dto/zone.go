package dto

type ZoneResponse struct {
	Name           string    `json:"name"`
	Kind           string    `json:"kind"`
	Centroid       []float64 `json:"centroid"`
	AreaKm2        float64   `json:"area_km2"`
	DemandM3PerDay float64   `json:"demand_m3_per_day"`
}

type ListZonesResponse struct {
	Zones []ZoneResponse `json:"zones"`
}
