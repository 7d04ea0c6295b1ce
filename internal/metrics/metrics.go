package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels of EventsProcessed
const (
	OutcomeOK    = "ok"
	OutcomeSkip  = "skip"
	OutcomeError = "error"
)

// Handler metrics
var (
	EventsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "indexer_events_processed_total",
		Help: "Total number of contract events handled, by family, action and outcome",
	}, []string{"family", "action", "outcome"})

	HandlerDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "indexer_handler_duration_seconds",
		Help:    "Time taken to handle one contract event, chain queries included",
		Buckets: prometheus.DefBuckets,
	}, []string{"family", "action"})

	LedgerWriteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "indexer_ledger_write_failures_total",
		Help: "Audit entries that could not be written",
	}, []string{"family"})
)

// Stream metrics
var (
	StreamReconnects = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "indexer_stream_reconnects_total",
		Help: "Number of times a stream subscription was re-established",
	}, []string{"family"})

	StreamFrames = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "indexer_stream_frames_total",
		Help: "Websocket frames received, including heartbeats and acknowledgements",
	}, []string{"family"})

	StreamLastMessage = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "indexer_stream_last_message_timestamp",
		Help: "Unix time of the last transaction frame received",
	}, []string{"family"})
)

// Sweeper metrics
var (
	SweeperTxsReplayed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "indexer_sweeper_txs_replayed_total",
		Help: "Transactions replayed through the handlers by the sweeper",
	}, []string{"family"})

	SweeperCursorHeight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "indexer_sweeper_cursor_height",
		Help: "Last block height scanned by the sweeper",
	})

	SweeperGapsResolved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "indexer_sweeper_gaps_resolved_total",
		Help: "Missing stream block markers swept and resolved",
	})
)
