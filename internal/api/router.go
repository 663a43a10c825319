package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"water-redistribution-service/internal/api/handlers"
	"water-redistribution-service/internal/config"
	"water-redistribution-service/internal/metrics"
	"water-redistribution-service/internal/ports"
	"water-redistribution-service/internal/services"
)

// Dependencies handed to the HTTP layer by the composition root.
type Deps struct {
	Wells    ports.WellRepository
	Zones    ports.ZoneRepository
	Analyzer *services.Analyzer
	Analysis config.Analysis
	Limiter  *rate.Limiter
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers stay unaware of concrete adapters.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	wellHandler := &handlers.WellHandler{Repo: d.Wells}
	zoneHandler := &handlers.ZoneHandler{Repo: d.Zones}
	allocationHandler := &handlers.AllocationHandler{Analyzer: d.Analyzer, Analysis: d.Analysis}
	summaryHandler := &handlers.SummaryHandler{Analyzer: d.Analyzer, Analysis: d.Analysis}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/wells", wellHandler.List)
	mux.HandleFunc("/zones", zoneHandler.List)
	mux.HandleFunc("/allocations", allocationHandler.Create)
	mux.HandleFunc("/summary", summaryHandler.Get)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	var h http.Handler = mux
	h = rateLimitMiddleware(d.Limiter, h)
	h = loggingMiddleware(h)
	h = requestIDMiddleware(h)
	return h
}
