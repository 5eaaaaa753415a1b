package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "vaultboard"
)

var (
	refreshDurationBuckets = []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60, 120}

	// Catalog Metrics
	CatalogRefreshDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "catalog_refresh_duration_seconds",
		Help:      "Time taken to refresh the vault list of a chain.",
		Buckets:   refreshDurationBuckets,
	}, []string{"chain_id"})

	CatalogRefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_refresh_total",
		Help:      "Count of vault list refreshes.",
	}, []string{"chain_id", "status"})

	CatalogLastSuccessTimestamp = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "catalog_last_success_timestamp_seconds",
		Help:      "Unix timestamp of the last successful vault list refresh.",
	}, []string{"chain_id"})

	VaultsTotal = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "vaults_total",
		Help:      "Number of vaults held in the catalog.",
	}, []string{"chain_id"})

	// Report Metrics
	ReportFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_fetches_total",
		Help:      "Count of upstream strategy report fetches.",
	}, []string{"chain_id", "status"})

	ReportCacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_cache_lookups_total",
		Help:      "Count of report cache lookups by result.",
	}, []string{"result"})

	ReportSchemaFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_schema_failures_total",
		Help:      "Count of report payloads rejected by schema validation.",
	}, []string{"chain_id"})

	// View Metrics
	StrategyListRendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "strategy_list_renders_total",
		Help:      "Count of strategy list derivations by outcome.",
	}, []string{"outcome"})

	EmptyStatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "empty_states_total",
		Help:      "Count of empty-state placeholders served by kind.",
	}, []string{"kind"})
)
