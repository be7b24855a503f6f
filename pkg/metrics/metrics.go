package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Assignment metrics
	AssignmentsTotal   *prometheus.CounterVec
	AssignmentFailures *prometheus.CounterVec
	AssignmentDelay    prometheus.Histogram

	// Queue metrics
	QueueSize      prometheus.Gauge
	QueueWaitTime  prometheus.Histogram
	QueuePromoted  prometheus.Counter
	QueueRejected  prometheus.Counter
	ServesComplete prometheus.Counter

	// Event sink metrics
	EventsPublished prometheus.Counter
	EventsFailed    prometheus.Counter
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		AssignmentsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assignments_total",
			Help:      "Total number of confirmed therapist assignments",
		}, []string{"type"}),
		AssignmentFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assignment_failures_total",
			Help:      "Total number of failed assignment attempts",
		}, []string{"reason"}),
		AssignmentDelay: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assignment_delay_minutes",
			Help:      "Estimated delay accepted at assignment time",
			Buckets:   []float64{0, 5, 10, 15, 30, 45, 60, 90, 120},
		}),
		QueueSize: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queue_size",
			Help:      "Current number of waiting clients",
		}),
		QueueWaitTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "queue_wait_minutes",
			Help:      "Minutes waited before leaving the queue",
			Buckets:   []float64{1, 5, 10, 15, 30, 45, 60, 90, 120},
		}),
		QueuePromoted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queue_late_promotions_total",
			Help:      "Total number of late clients promoted ahead of the queue",
		}),
		QueueRejected: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queue_rejected_total",
			Help:      "Total number of check-ins rejected because the queue was full",
		}),
		ServesComplete: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "serves_completed_total",
			Help:      "Total number of completed services",
		}),
		EventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Total number of events published to the broker",
		}),
		EventsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_failed_total",
			Help:      "Total number of events that failed to publish",
		}),
	}
}
