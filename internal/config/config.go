package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr               = ":8080"
	defaultMetricsAddr            = ":9090"
	defaultYDaemonBaseURI         = "https://ydaemon.yearn.fi"
	defaultPrimaryChainID         = 1
	defaultReportsCacheTTL        = 10 * time.Minute
	defaultCatalogRefreshInterval = 5 * time.Minute
	defaultReportFetchWorkers     = 8
	defaultHTTPClientTimeout      = 30 * time.Second
	defaultSessionLifetime        = 24 * time.Hour
)

var defaultChainIDs = []int{1, 10, 250, 42161}

type Config struct {
	DatabaseURL            string
	HTTPAddr               string
	MetricsAddr            string
	YDaemonBaseURI         string
	PrimaryChainID         int
	ChainIDs               []int
	ReportsCacheTTL        time.Duration
	CatalogRefreshInterval time.Duration
	ReportFetchWorkers     int
	HTTPClientTimeout      time.Duration
	SessionLifetime        time.Duration
	SessionCookieSecure    bool
}

type LoadOptions struct {
	RequireDatabaseURL bool
}

func Load() (Config, error) {
	return LoadWithOptions(LoadOptions{RequireDatabaseURL: false})
}

func LoadRequireDB() (Config, error) {
	return LoadWithOptions(LoadOptions{RequireDatabaseURL: true})
}

func LoadWithOptions(opts LoadOptions) (Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, err
		}
	}

	cfg := Config{
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		HTTPAddr:               getenvDefault("HTTP_ADDR", defaultHTTPAddr),
		MetricsAddr:            getenvDefault("METRICS_ADDR", defaultMetricsAddr),
		YDaemonBaseURI:         strings.TrimRight(getenvDefault("YDAEMON_BASE_URI", defaultYDaemonBaseURI), "/"),
		PrimaryChainID:         getenvIntDefault("PRIMARY_CHAIN_ID", defaultPrimaryChainID),
		ChainIDs:               slices.Clone(defaultChainIDs),
		ReportsCacheTTL:        getenvDurationDefault("REPORTS_CACHE_TTL", defaultReportsCacheTTL),
		CatalogRefreshInterval: getenvDurationDefault("CATALOG_REFRESH_INTERVAL", defaultCatalogRefreshInterval),
		ReportFetchWorkers:     getenvIntDefault("REPORT_FETCH_WORKERS", defaultReportFetchWorkers),
		HTTPClientTimeout:      getenvDurationDefault("HTTP_CLIENT_TIMEOUT", defaultHTTPClientTimeout),
		SessionLifetime:        getenvDurationDefault("SESSION_LIFETIME", defaultSessionLifetime),
		SessionCookieSecure:    getenvBoolDefault("SESSION_COOKIE_SECURE", false),
	}

	if v := strings.TrimSpace(os.Getenv("CHAIN_IDS")); v != "" {
		ids, err := parseChainIDs(v)
		if err != nil {
			return cfg, fmt.Errorf("CHAIN_IDS: %w", err)
		}
		cfg.ChainIDs = ids
	}
	if !slices.Contains(cfg.ChainIDs, cfg.PrimaryChainID) {
		cfg.ChainIDs = append([]int{cfg.PrimaryChainID}, cfg.ChainIDs...)
	}

	if opts.RequireDatabaseURL && cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required")
	}

	return cfg, nil
}

func parseChainIDs(raw string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid chain id %q", part)
		}
		if !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("at least one chain id is required")
	}
	return out, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func getenvDurationDefault(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getenvBoolDefault(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	switch v {
	case "1":
		return true
	case "0":
		return false
	default:
		return def
	}
}
