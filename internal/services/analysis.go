package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"water-redistribution-service/internal/domain"
	"water-redistribution-service/internal/metrics"
	"water-redistribution-service/internal/platform/obs"
	"water-redistribution-service/internal/ports"
)

// CombinationName labels the critical district combination in summaries.
const CombinationName = "CRITICAL_DISTRICTS"

// maxParallelZones bounds concurrent allocations in Summarize.
const maxParallelZones = 5

// Per-run choices shared by every zone of one analysis.
type AllocationOptions struct {
	ScenarioPercent float64
	Vehicle         domain.VehicleType
	Cost            CostParams
}

func (o AllocationOptions) request(d domain.DemandPoint) AllocationRequest {
	return AllocationRequest{
		Demand:          d,
		ScenarioPercent: o.ScenarioPercent,
		Vehicle:         o.Vehicle,
		Cost:            o.Cost,
	}
}

// Outcome of allocating wells to one zone (or combination of zones).
type ZoneAllocation struct {
	Zone   domain.Zone
	Result domain.AllocationResult
}

// One line of the general summary.
type SummaryRow struct {
	Name            string
	Kind            domain.ZoneKind
	DemandM3        float64
	Trips           int
	Cost            float64
	FuelGal         float64
	ResidualM3      float64
	CoveragePercent float64
}

// Analyzer loads zones and the wells snapshot and runs allocations over them.
type Analyzer struct {
	Wells    ports.WellRepository
	Zones    ports.ZoneRepository
	Distance ports.DistanceProvider
}

func NewAnalyzer(wells ports.WellRepository, zones ports.ZoneRepository, distance ports.DistanceProvider) *Analyzer {
	return &Analyzer{Wells: wells, Zones: zones, Distance: distance}
}

// AnalyzeZone allocates wells to a single sector or district.
func (a *Analyzer) AnalyzeZone(
	ctx context.Context,
	kind domain.ZoneKind,
	name string,
	opts AllocationOptions,
) (_ *ZoneAllocation, err error) {
	defer obs.Time(ctx, "analysis.AnalyzeZone")(&err)

	zone, err := a.Zones.GetZone(ctx, kind, domain.NormalizeName(name))
	if err != nil {
		return nil, fmt.Errorf("analyze zone %s %q: %w", kind, name, err)
	}

	wells, err := a.Wells.ListWells(ctx)
	if err != nil {
		return nil, fmt.Errorf("analyze zone %s %q: list wells: %w", kind, name, err)
	}

	return a.allocate(ctx, zone, wells, opts), nil
}

// AnalyzeCombination unions several districts into one demand point and allocates to it.
func (a *Analyzer) AnalyzeCombination(
	ctx context.Context,
	names []string,
	opts AllocationOptions,
) (_ *ZoneAllocation, err error) {
	defer obs.Time(ctx, "analysis.AnalyzeCombination")(&err)

	zone, err := a.combination(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("analyze combination: %w", err)
	}

	wells, err := a.Wells.ListWells(ctx)
	if err != nil {
		return nil, fmt.Errorf("analyze combination: list wells: %w", err)
	}

	return a.allocate(ctx, zone, wells, opts), nil
}

// AnalyzePoint allocates to an explicit demand point supplied by the caller.
func (a *Analyzer) AnalyzePoint(
	ctx context.Context,
	point domain.DemandPoint,
	opts AllocationOptions,
) (_ *ZoneAllocation, err error) {
	defer obs.Time(ctx, "analysis.AnalyzePoint")(&err)

	if point.DemandM3PerDay < 0 {
		return nil, fmt.Errorf("analyze point: demand must be >= 0 (got %v)", point.DemandM3PerDay)
	}

	wells, err := a.Wells.ListWells(ctx)
	if err != nil {
		return nil, fmt.Errorf("analyze point: list wells: %w", err)
	}

	zone := domain.Zone{
		Name:           point.Label,
		Centroid:       point.Location,
		DemandM3PerDay: point.DemandM3PerDay,
	}
	return a.allocate(ctx, zone, wells, opts), nil
}

// Summarize allocates every sector and district with positive demand, plus the
// critical district combination when any of its districts exist. Zones are
// evaluated concurrently against one read-only wells snapshot.
func (a *Analyzer) Summarize(
	ctx context.Context,
	opts AllocationOptions,
	critical []string,
) (_ []SummaryRow, err error) {
	defer obs.Time(ctx, "analysis.Summarize")(&err)

	wells, err := a.Wells.ListWells(ctx)
	if err != nil {
		return nil, fmt.Errorf("summarize: list wells: %w", err)
	}

	zones := make([]domain.Zone, 0, 64)
	for _, kind := range []domain.ZoneKind{domain.ZoneSector, domain.ZoneDistrict} {
		zs, err := a.Zones.ListZones(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("summarize: list %s zones: %w", kind, err)
		}
		for _, z := range zs {
			if z.DemandM3PerDay > 0 {
				zones = append(zones, z)
			}
		}
	}

	if len(critical) > 0 {
		combo, err := a.combination(ctx, critical)
		switch {
		case err == nil:
			combo.Name = CombinationName
			zones = append(zones, combo)
		case errors.Is(err, domain.ErrEmptySelection):
			log.Printf("req_id=%s summarize: no critical districts found, skipping combination", obs.RequestID(ctx))
		default:
			return nil, fmt.Errorf("summarize: %w", err)
		}
	}

	rows := make([]SummaryRow, len(zones))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelZones)

	for i, z := range zones {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			za := a.allocate(gctx, z, wells, opts)
			rows[i] = summaryRow(za)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	slices.SortStableFunc(rows, func(x, y SummaryRow) int {
		if c := kindOrder(x.Kind) - kindOrder(y.Kind); c != 0 {
			return c
		}
		return strings.Compare(x.Name, y.Name)
	})

	return rows, nil
}

// combination resolves district names and merges them. Unknown names are
// ignored so that a partially loaded district table still yields a result.
func (a *Analyzer) combination(ctx context.Context, names []string) (domain.Zone, error) {
	picked := make([]domain.Zone, 0, len(names))
	labels := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))

	for _, n := range names {
		norm := domain.NormalizeName(n)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}

		z, err := a.Zones.GetZone(ctx, domain.ZoneDistrict, norm)
		if errors.Is(err, domain.ErrZoneNotFound) {
			continue
		}
		if err != nil {
			return domain.Zone{}, fmt.Errorf("get district %q: %w", norm, err)
		}
		picked = append(picked, z)
		labels = append(labels, z.Name)
	}

	return domain.CombineZones(strings.Join(labels, ", "), picked)
}

func (a *Analyzer) allocate(ctx context.Context, zone domain.Zone, wells []domain.Well, opts AllocationOptions) *ZoneAllocation {
	res := Allocate(opts.request(zone.DemandPoint()), wells, a.Distance)

	for _, s := range res.Skipped {
		log.Printf("req_id=%s zone=%q well=%q skipped: %s", obs.RequestID(ctx), zone.Name, s.WellID, s.Reason)
	}
	kind := string(zone.Kind)
	if kind == "" {
		kind = "point"
	}
	metrics.ObserveAllocation(kind, res.Covered(), res.ResidualM3, len(res.Skipped))

	return &ZoneAllocation{Zone: zone, Result: res}
}

func summaryRow(za *ZoneAllocation) SummaryRow {
	r := za.Result
	return SummaryRow{
		Name:            za.Zone.Name,
		Kind:            za.Zone.Kind,
		DemandM3:        r.DemandM3,
		Trips:           r.TotalTrips,
		Cost:            r.TotalCost,
		FuelGal:         r.TotalFuelGal,
		ResidualM3:      r.ResidualM3,
		CoveragePercent: r.CoveragePercent(),
	}
}

// kindOrder lists sectors, then districts, then combinations.
func kindOrder(k domain.ZoneKind) int {
	switch k {
	case domain.ZoneSector:
		return 0
	case domain.ZoneDistrict:
		return 1
	}
	return 2
}
