package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once           sync.Once
	syncDuration   *prom.HistogramVec
	syncResults    *prom.CounterVec
	reloadDuration prom.Histogram
	documents      prom.Gauge
	queries        *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.syncDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "notes",
			Name:      "sync_duration_seconds",
			Help:      "Duration of individual synchronization events",
			Buckets:   prom.DefBuckets,
		}, []string{"event"})
		pr.syncResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "notes",
			Name:      "sync_results_total",
			Help:      "Synchronization event counts by outcome",
		}, []string{"event", "result"})
		pr.reloadDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "notes",
			Name:      "reload_duration_seconds",
			Help:      "Duration of full index reloads",
			Buckets:   prom.DefBuckets,
		})
		pr.documents = prom.NewGauge(prom.GaugeOpts{
			Namespace: "notes",
			Name:      "documents_indexed",
			Help:      "Number of documents currently indexed",
		})
		pr.queries = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "notes",
			Name:      "queries_total",
			Help:      "Query counts by kind",
		}, []string{"kind"})
		reg.MustRegister(pr.syncDuration, pr.syncResults, pr.reloadDuration, pr.documents, pr.queries)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveSyncDuration(event string, d time.Duration) {
	if p == nil || p.syncDuration == nil {
		return
	}
	p.syncDuration.WithLabelValues(event).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncSyncResult(event string, result ResultLabel) {
	if p == nil || p.syncResults == nil {
		return
	}
	p.syncResults.WithLabelValues(event, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveReloadDuration(d time.Duration) {
	if p == nil || p.reloadDuration == nil {
		return
	}
	p.reloadDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetDocumentsIndexed(n int) {
	if p == nil || p.documents == nil {
		return
	}
	p.documents.Set(float64(n))
}

func (p *PrometheusRecorder) IncQuery(kind string) {
	if p == nil || p.queries == nil {
		return
	}
	p.queries.WithLabelValues(kind).Inc()
}
