// Package telemetry exports Prometheus metrics for classification.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Veraticus/sector-sift/internal/model"
	"github.com/Veraticus/sector-sift/internal/service"
)

// Outcome label values.
const (
	OutcomeClassified   = "classified"
	OutcomeUnclassified = "unclassified"
	OutcomeError        = "error"
)

// Metrics holds the classification metrics.
type Metrics struct {
	Classifications        *prometheus.CounterVec
	ClassificationDuration *prometheus.HistogramVec
	BatchRecords           *prometheus.CounterVec
}

// NewMetrics registers the metrics on reg. Passing a fresh registry per test
// avoids duplicate registration panics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Classifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sift_classifications_total",
			Help: "Total classifications by classifier and outcome",
		}, []string{"classifier", "outcome"}),

		ClassificationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sift_classification_duration_seconds",
			Help:    "Time to classify a single company",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0},
		}, []string{"classifier"}),

		BatchRecords: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sift_batch_records_total",
			Help: "Total records processed by batch runs",
		}, []string{"classifier"}),
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Observe records one classification.
func (m *Metrics) Observe(classifier string, result model.ClassificationResult, err error, d time.Duration) {
	outcome := OutcomeClassified
	switch {
	case err != nil:
		outcome = OutcomeError
	case result.IsUnclassified():
		outcome = OutcomeUnclassified
	}

	m.Classifications.WithLabelValues(classifier, outcome).Inc()
	m.ClassificationDuration.WithLabelValues(classifier).Observe(d.Seconds())
}

// AddBatchRecords counts records processed by a batch run.
func (m *Metrics) AddBatchRecords(classifier string, n int) {
	m.BatchRecords.WithLabelValues(classifier).Add(float64(n))
}

// Instrument wraps a classifier so every call is observed.
func (m *Metrics) Instrument(c service.Classifier) service.Classifier {
	return &instrumented{next: c, metrics: m}
}

type instrumented struct {
	next    service.Classifier
	metrics *Metrics
}

func (i *instrumented) Name() string { return i.next.Name() }

func (i *instrumented) Classify(ctx context.Context, in model.ClassificationInput) (model.ClassificationResult, error) {
	start := time.Now()
	result, err := i.next.Classify(ctx, in)
	i.metrics.Observe(i.next.Name(), result, err, time.Since(start))
	return result, err
}
