package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Settlement metrics
	SettlementsRecorded prometheus.Counter
	FullClears          prometheus.Counter
	SettlementAmount    prometheus.Histogram
	SettlementDuration  prometheus.Histogram
	SettlementErrors    *prometheus.CounterVec
	PaymentsPerSettle   prometheus.Histogram

	// Entry metrics
	EntriesCreated *prometheus.CounterVec
	EntryAmount    prometheus.Histogram

	// Debtor metrics
	DebtorsCreated     *prometheus.CounterVec
	OutstandingTotal   *prometheus.GaugeVec
	ReconciliationRuns prometheus.Counter
	ReconciliationDrift *prometheus.CounterVec

	// Outbox metrics
	OutboxEventsPublished prometheus.Counter
	OutboxPublishErrors   prometheus.Counter
	OutboxLag             prometheus.Gauge

	// Database metrics
	DBConnections prometheus.Gauge
	TxRetries     prometheus.Counter

	// Redis metrics
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Settlement metrics
		SettlementsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "khata_settlements_recorded_total",
			Help: "Total number of settlements recorded",
		}),
		FullClears: promauto.NewCounter(prometheus.CounterOpts{
			Name: "khata_full_clears_total",
			Help: "Total number of full-clear settlements",
		}),
		SettlementAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "khata_settlement_amount",
			Help:    "Settled amounts",
			Buckets: []float64{10, 100, 500, 1000, 5000, 10000, 100000, 1000000},
		}),
		SettlementDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "khata_settlement_duration_seconds",
			Help:    "Duration of settlement operations",
			Buckets: prometheus.DefBuckets,
		}),
		SettlementErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "khata_settlement_errors_total",
				Help: "Total number of settlement errors by type",
			},
			[]string{"error_type"},
		),
		PaymentsPerSettle: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "khata_payments_per_settlement",
			Help:    "Number of entries a single settlement was split across",
			Buckets: []float64{1, 2, 3, 5, 10, 20, 50},
		}),

		// Entry metrics
		EntriesCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "khata_entries_created_total",
				Help: "Total number of debt entries created",
			},
			[]string{"kind"},
		),
		EntryAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "khata_entry_amount",
			Help:    "Gross entry amounts",
			Buckets: []float64{10, 100, 500, 1000, 5000, 10000, 100000, 1000000},
		}),

		// Debtor metrics
		DebtorsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "khata_debtors_created_total",
				Help: "Total number of debtors created",
			},
			[]string{"kind"},
		),
		OutstandingTotal: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "khata_outstanding_total",
				Help: "Total outstanding per debtor kind",
			},
			[]string{"kind"},
		),
		ReconciliationRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "khata_reconciliation_runs_total",
			Help: "Total number of reconciliation runs",
		}),
		ReconciliationDrift: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "khata_reconciliation_drift_total",
				Help: "Debtors whose cached outstanding disagreed with the ledger",
			},
			[]string{"kind"},
		),

		// Outbox metrics
		OutboxEventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "khata_outbox_events_published_total",
			Help: "Total number of outbox events published",
		}),
		OutboxPublishErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "khata_outbox_publish_errors_total",
			Help: "Total number of outbox publish failures",
		}),
		OutboxLag: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "khata_outbox_lag_events",
			Help: "Number of unpublished outbox events at last poll",
		}),

		// Database metrics
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "khata_db_connections",
			Help: "Current number of database connections",
		}),
		TxRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "khata_tx_retries_total",
			Help: "Transactions retried after deadlock or serialization failure",
		}),

		// Redis metrics
		CacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "khata_cache_hits_total",
				Help: "Total cache hits",
			},
			[]string{"key_type"},
		),
		CacheMisses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "khata_cache_misses_total",
				Help: "Total cache misses",
			},
			[]string{"key_type"},
		),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "khata_rate_limit_hits_total",
			Help: "Requests rejected by the per-client rate limiter",
		}),
	}
}
