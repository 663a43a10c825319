package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Process-level settings resolved from the environment.
type Config struct {
	Port           string
	DatabaseURL    string
	RedisURL       string
	AnalysisPath   string
	DistanceMode   string
	RateLimitRPS   float64
	RateLimitBurst int
	WellCacheTTL   time.Duration

	// Seed files backing the in-memory repositories when DatabaseURL is empty.
	WellsSeedPath string
	ZonesSeedPath string
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// LoadDotEnv loads a .env file when present. A missing file is not an error.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

// Load reads the service configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:         Get("PORT", "8080"),
		DatabaseURL:  Get("DATABASE_URL", ""),
		RedisURL:     Get("REDIS_URL", ""),
		AnalysisPath: Get("ANALYSIS_CONFIG", ""),
		DistanceMode: Get("DISTANCE_MODE", "planar"),

		WellsSeedPath: Get("WELLS_SEED_PATH", "data/seeds/wells.json"),
		ZonesSeedPath: Get("ZONES_SEED_PATH", "data/seeds/zones.json"),
	}

	rps, err := strconv.ParseFloat(Get("RATE_LIMIT_RPS", "20"), 64)
	if err != nil || rps <= 0 {
		return Config{}, fmt.Errorf("load config: RATE_LIMIT_RPS must be a positive number")
	}
	cfg.RateLimitRPS = rps

	burst, err := strconv.Atoi(Get("RATE_LIMIT_BURST", "40"))
	if err != nil || burst < 1 {
		return Config{}, fmt.Errorf("load config: RATE_LIMIT_BURST must be a positive integer")
	}
	cfg.RateLimitBurst = burst

	ttl, err := time.ParseDuration(Get("WELL_CACHE_TTL", "10m"))
	if err != nil || ttl <= 0 {
		return Config{}, fmt.Errorf("load config: WELL_CACHE_TTL must be a positive duration")
	}
	cfg.WellCacheTTL = ttl

	return cfg, nil
}
