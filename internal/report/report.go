// Package report turns allocation results into operator-facing KPIs and text.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"water-redistribution-service/internal/domain"
	"water-redistribution-service/internal/services"
)

// CostCaveat accompanies every cost figure.
const CostCaveat = "Costs cover fuel only. Tankers and crew are not included."

var printer = message.NewPrinter(language.English)

// Headline numbers shown for one allocation.
type KPIs struct {
	DemandM3        float64
	AllocatedM3     float64
	ResidualM3      float64
	CoveragePercent float64
	WellsUsed       int
	Trips           int
	Cost            float64
	FuelGal         float64
}

func Summarize(r domain.AllocationResult) KPIs {
	return KPIs{
		DemandM3:        r.DemandM3,
		AllocatedM3:     r.AllocatedM3(),
		ResidualM3:      r.ResidualM3,
		CoveragePercent: r.CoveragePercent(),
		WellsUsed:       len(r.Assignments),
		Trips:           r.TotalTrips,
		Cost:            r.TotalCost,
		FuelGal:         r.TotalFuelGal,
	}
}

func kindLabel(k domain.ZoneKind) string {
	switch k {
	case domain.ZoneSector:
		return "sector"
	case domain.ZoneDistrict:
		return "district"
	case domain.ZoneCombination:
		return "critical district combination"
	}
	return "demand point"
}

// Conclusion writes the emergency narrative for one zone.
func Conclusion(kind domain.ZoneKind, name string, r domain.AllocationResult) string {
	k := Summarize(r)

	head := printer.Sprintf(
		"In a water emergency in the %s %s, the demand is %.2f m³/day. ",
		kindLabel(kind), name, k.DemandM3,
	)

	var outcome string
	if r.Covered() {
		outcome = "With the selected wells the full demand is covered. "
	} else {
		outcome = printer.Sprintf(
			"With the selected wells the full demand is not covered, leaving a shortfall of %.2f m³/day. ",
			k.ResidualM3,
		)
	}

	tail := printer.Sprintf(
		"%d wells are used with %d trips, consuming %.1f gal of fuel at a fuel cost of S/ %.2f.",
		k.WellsUsed, k.Trips, k.FuelGal, k.Cost,
	)

	return head + outcome + tail
}

// WriteSummary renders summary rows as an aligned text table.
func WriteSummary(w io.Writer, rows []services.SummaryRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	if _, err := fmt.Fprintln(tw, "KIND\tNAME\tDEMAND_M3\tTRIPS\tCOST\tFUEL_GAL\tSHORTFALL_M3\tCOVERAGE_%\t"); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	for _, r := range rows {
		line := printer.Sprintf("%s\t%s\t%.2f\t%d\t%.2f\t%.1f\t%.2f\t%.1f\t\n",
			r.Kind, r.Name, r.DemandM3, r.Trips, r.Cost, r.FuelGal, r.ResidualM3, r.CoveragePercent)
		if _, err := io.WriteString(tw, line); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	if _, err := fmt.Fprintln(tw, CostCaveat); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write summary: flush: %w", err)
	}
	return nil
}
