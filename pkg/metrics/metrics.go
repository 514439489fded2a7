package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RecordsParsed    prometheus.Counter
	FailedAttempts   prometheus.Counter
	FlaggedAddresses prometheus.Gauge
	ThreatsLoaded    prometheus.Gauge
	ThreatMatches    prometheus.Gauge
	StageErrorsTotal *prometheus.CounterVec
	FeedFetchSeconds *prometheus.HistogramVec

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers the metrics with reg. Passing a fresh registry keeps tests isolated.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RecordsParsed: factory.NewCounter(prometheus.CounterOpts{
			Name: "threatlog_records_parsed_total",
			Help: "Total number of access-log records that matched the record pattern.",
		}),
		FailedAttempts: factory.NewCounter(prometheus.CounterOpts{
			Name: "threatlog_failed_attempts_total",
			Help: "Total number of records with a failed status.",
		}),
		FlaggedAddresses: factory.NewGauge(prometheus.GaugeOpts{
			Name: "threatlog_flagged_addresses",
			Help: "Addresses at or above the failed-attempt threshold in the last run.",
		}),
		ThreatsLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Name: "threatlog_threats_loaded",
			Help: "Entries in the threat mapping of the last run.",
		}),
		ThreatMatches: factory.NewGauge(prometheus.GaugeOpts{
			Name: "threatlog_threat_matches",
			Help: "Log records correlated with the threat mapping in the last run.",
		}),
		StageErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "threatlog_stage_errors_total",
			Help: "Errors encountered per pipeline stage.",
		}, []string{"stage"}), // e.g. 'read', 'fetch', 'write_csv', 'sink_redis'
		FeedFetchSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "threatlog_feed_fetch_duration_seconds",
			Help:    "Duration of threat feed fetches.",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
		}, []string{"host", "status"}),
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
}

func (m *Metrics) IncStageError(stage string) {
	m.StageErrorsTotal.WithLabelValues(stage).Inc()
}

// WriteTextfile dumps everything gathered by g to path in the text exposition
// format, for node_exporter's textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
