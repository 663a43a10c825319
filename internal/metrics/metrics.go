package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// Allocations counts allocation runs by zone kind and whether demand was fully covered.
	Allocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "water_allocations_total", Help: "Allocation runs by zone kind and coverage outcome."},
		[]string{"zone_kind", "covered"},
	)
	// ResidualDemand records unmet demand per allocation in m3/day.
	ResidualDemand = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "water_allocation_residual_m3", Help: "Unmet demand per allocation in m3/day.", Buckets: []float64{0, 10, 50, 100, 500, 1000, 5000, 10000, 50000}},
		[]string{"zone_kind"},
	)
	// SkippedWells counts wells dropped because their distance could not be computed.
	SkippedWells = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "water_allocation_skipped_wells_total", Help: "Wells skipped because distance could not be computed."},
	)
)

var regOnce sync.Once

// RegisterDefault registers every collector on Registry once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(Allocations)
		Registry.MustRegister(ResidualDemand)
		Registry.MustRegister(SkippedWells)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

// ObserveAllocation records the outcome of one allocation run.
func ObserveAllocation(zoneKind string, covered bool, residualM3 float64, skipped int) {
	Allocations.WithLabelValues(zoneKind, strconv.FormatBool(covered)).Inc()
	ResidualDemand.WithLabelValues(zoneKind).Observe(residualM3)
	if skipped > 0 {
		SkippedWells.Add(float64(skipped))
	}
}
