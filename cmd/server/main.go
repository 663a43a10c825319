package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"water-redistribution-service/internal/adapters/cache"
	"water-redistribution-service/internal/adapters/distance"
	"water-redistribution-service/internal/adapters/repositories"
	"water-redistribution-service/internal/api"
	"water-redistribution-service/internal/config"
	"water-redistribution-service/internal/metrics"
	"water-redistribution-service/internal/platform/db"
	"water-redistribution-service/internal/ports"
	"water-redistribution-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Postgres or in-memory, Redis, distance mode)
// behind ports and starts the HTTP server.
func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	analysis, err := config.LoadAnalysis(cfg.AnalysisPath)
	if err != nil {
		log.Fatal(err)
	}

	provider, err := distance.NewProvider(cfg.DistanceMode)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.RegisterDefault()

	wells, zones, closeDB, err := openRepositories(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeDB()

	// The wells snapshot is the only thing cached; allocation results are never stored.
	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Printf("redis unavailable, serving without well cache: %v", err)
		} else {
			defer rdb.Close()
			wells = cache.NewRedisWellCache(wells, rdb, cfg.WellCacheTTL)
			log.Printf("well cache enabled ttl=%s", cfg.WellCacheTTL)
		}
	}

	router := api.NewRouter(api.Deps{
		Wells:    wells,
		Zones:    zones,
		Analyzer: services.NewAnalyzer(wells, zones, provider),
		Analysis: analysis,
		Limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
	})

	// Summaries run every zone in one request, so writes get more headroom than reads.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening addr=:%s distance_mode=%s", cfg.Port, cfg.DistanceMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// openRepositories picks Postgres when DATABASE_URL is set and falls back to
// in-memory repositories loaded from the seed files otherwise.
func openRepositories(cfg config.Config) (ports.WellRepository, ports.ZoneRepository, func(), error) {
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Println("Using Postgres repositories")
		return repositories.NewPostgresWellRepository(conn),
			repositories.NewPostgresZoneRepository(conn),
			func() { closeQuietly(conn) },
			nil
	}

	wells, err := repositories.ReadWells(cfg.WellsSeedPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open repositories: %w", err)
	}
	zones, err := repositories.ReadZones(cfg.ZonesSeedPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open repositories: %w", err)
	}
	log.Printf("Using in-memory repositories wells=%d zones=%d", len(wells), len(zones))

	return repositories.NewMemoryWellRepository(wells),
		repositories.NewMemoryZoneRepository(zones),
		func() {},
		nil
}

func closeQuietly(conn *sql.DB) {
	if err := conn.Close(); err != nil {
		log.Printf("close db: %v", err)
	}
}
