package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port    string
	BaseURL string

	// Store
	DBDriver string // "sqlite" or "postgres"
	DBPath   string // SQLite file path
	DBURL    string // PostgreSQL connection string

	// Upstream sources
	CatalogURL      string
	UEXBaseURL      string
	LoanerMatrixURL string

	// Cache TTLs
	CatalogTTL   time.Duration
	FiatPriceTTL time.Duration
	AUECPriceTTL time.Duration
	LoanerTTL    time.Duration

	// Loaner matrix delegation timeout
	LoanerTimeout time.Duration

	// Upstream rate limit (requests per second)
	RateLimit float64

	// Refresh
	RefreshSchedule string // cron expression, empty disables scheduled refresh
	WarmOnStartup   bool
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		BaseURL:         getEnv("BASE_URL", "http://localhost:8080"),
		DBDriver:        getEnv("DB_DRIVER", "sqlite"),
		DBPath:          getEnv("DB_PATH", "./data/ship-viewer.db"),
		DBURL:           getEnv("DATABASE_URL", ""),
		CatalogURL:      getEnv("CATALOG_URL", "https://robertsspaceindustries.com/ship-matrix/index"),
		UEXBaseURL:      getEnv("UEX_BASE_URL", "https://api.uexcorp.uk/2.0"),
		LoanerMatrixURL: getEnv("LOANER_MATRIX_URL", "https://support.robertsspaceindustries.com/hc/en-us/articles/360003093114-Loaner-Ship-Matrix"),
		CatalogTTL:      getEnvDuration("CATALOG_TTL", 24*time.Hour),
		FiatPriceTTL:    getEnvDuration("FIAT_PRICE_TTL", 2*time.Minute),
		AUECPriceTTL:    getEnvDuration("AUEC_PRICE_TTL", 24*time.Hour),
		LoanerTTL:       getEnvDuration("LOANER_TTL", 24*time.Hour),
		LoanerTimeout:   getEnvDuration("LOANER_TIMEOUT", 10*time.Second),
		RateLimit:       getEnvFloat("RATE_LIMIT", 1.0),
		RefreshSchedule: getEnv("REFRESH_SCHEDULE", ""),
		WarmOnStartup:   getEnvBool("WARM_ON_STARTUP", false),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	val = strings.ToLower(val)
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvFloat(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return d
}
