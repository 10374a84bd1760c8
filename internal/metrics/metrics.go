// Package metrics exposes Prometheus metrics for loading, syncing and querying the inventory.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "spares"

// Load outcomes.
const (
	LoadOK    = "ok"
	LoadEmpty = "empty"
	LoadError = "error"
)

var (
	LoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_total",
			Help:      "Total number of dataset loads by outcome",
		},
		[]string{"source", "status"},
	)

	LoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Time taken to read and normalize the dataset",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"source"},
	)

	SnapshotRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "snapshot_records",
			Help:      "Number of records in the visible snapshot",
		},
	)

	SnapshotLoadedAt = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "snapshot_loaded_timestamp_seconds",
			Help:      "Unix time the visible snapshot was loaded",
		},
	)

	// Fields that fell back to a default during normalization
	DefaultedFields = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "defaulted_fields_total",
			Help:      "Total number of row fields replaced by their default value",
		},
		[]string{"field"},
	)

	SyncsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "syncs_total",
			Help:      "Total number of source syncs by outcome",
		},
		[]string{"status"},
	)

	DownloadedBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "downloaded_bytes_total",
			Help:      "Total bytes downloaded from the remote source",
		},
	)

	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Total number of inventory queries by kind",
		},
		[]string{"kind"},
	)
)

// Recorder records metrics on behalf of one source.
type Recorder struct {
	source string
}

func NewRecorder(source string) *Recorder {
	return &Recorder{source: source}
}

func (r *Recorder) RecordLoad(status string, records int, loadedAt time.Time, d time.Duration) {
	LoadsTotal.WithLabelValues(r.source, status).Inc()
	LoadDuration.WithLabelValues(r.source).Observe(d.Seconds())
	SnapshotRecords.Set(float64(records))
	SnapshotLoadedAt.Set(float64(loadedAt.Unix()))
}

func (r *Recorder) RecordDefaulted(fields []string) {
	for _, f := range fields {
		DefaultedFields.WithLabelValues(f).Inc()
	}
}

func (r *Recorder) RecordSync(status string, bytes int64) {
	SyncsTotal.WithLabelValues(status).Inc()
	if bytes > 0 {
		DownloadedBytes.Add(float64(bytes))
	}
}

func (r *Recorder) RecordQuery(kind string) {
	QueriesTotal.WithLabelValues(kind).Inc()
}
