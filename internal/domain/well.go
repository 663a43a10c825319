package domain

// Represents a groundwater source with a rated daily yield.
// Wells are loaded once per run and are read-only to allocation.
// A nil Location or a non-positive yield makes the well ineligible.
type Well struct {
	ID            string       `json:"id"`
	Location      *Coordinates `json:"location"`
	YieldM3PerDay float64      `json:"yield_m3_per_day"`
}

// Eligible reports whether the well can contribute water at all.
func (w Well) Eligible() bool {
	return w.YieldM3PerDay > 0 && w.Location != nil
}

// AvailableM3 is the share of the rated yield usable under a scenario percentage.
func (w Well) AvailableM3(scenarioPercent float64) float64 {
	return w.YieldM3PerDay * (scenarioPercent / 100.0)
}
