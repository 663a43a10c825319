package domain

// A single point that receives water, typically a zone centroid.
type DemandPoint struct {
	Label          string      `json:"label,omitempty"`
	Location       Coordinates `json:"location"`
	DemandM3PerDay float64     `json:"demand_m3_per_day"`
}
