package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PublisherMetrics records outbox publisher throughput and failure counts.
type PublisherMetrics struct {
	batchDuration prometheus.Histogram
	published     *prometheus.CounterVec
	failures      *prometheus.CounterVec
	dlq           *prometheus.CounterVec
}

// NewPublisherMetrics registers the outbox publisher metrics on the provided registerer.
func NewPublisherMetrics(reg prometheus.Registerer) *PublisherMetrics {
	if reg == nil {
		return &PublisherMetrics{}
	}
	batchDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "outbox_batch_duration_seconds",
		Help:    "Duration of outbox publish batches in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	published := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "outbox_published_total",
		Help: "Outbox events published per topic.",
	}, []string{"topic"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "outbox_publish_failures_total",
		Help: "Transient outbox publish failures per topic.",
	}, []string{"topic"})
	dlq := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "outbox_dlq_total",
		Help: "Outbox events routed to the dead letter table per reason.",
	}, []string{"reason"})
	reg.MustRegister(batchDuration, published, failures, dlq)
	return &PublisherMetrics{
		batchDuration: batchDuration,
		published:     published,
		failures:      failures,
		dlq:           dlq,
	}
}

// ObserveBatchDuration records how long a publish batch took.
func (p *PublisherMetrics) ObserveBatchDuration(duration time.Duration) {
	if p == nil || p.batchDuration == nil {
		return
	}
	p.batchDuration.Observe(duration.Seconds())
}

// IncPublished increments the published counter for the topic.
func (p *PublisherMetrics) IncPublished(topic string) {
	if p == nil || p.published == nil {
		return
	}
	p.published.WithLabelValues(normalizeLabel(topic)).Inc()
}

// IncFailure increments the transient failure counter for the topic.
func (p *PublisherMetrics) IncFailure(topic string) {
	if p == nil || p.failures == nil {
		return
	}
	p.failures.WithLabelValues(normalizeLabel(topic)).Inc()
}

// IncDLQ increments the dead letter counter for the reason.
func (p *PublisherMetrics) IncDLQ(reason string) {
	if p == nil || p.dlq == nil {
		return
	}
	p.dlq.WithLabelValues(normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
