// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FaxDocumentsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fax_documents_generated_total",
			Help: "Total number of fax documents generated",
		},
		[]string{"fax_type"},
	)

	FaxGenerationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fax_generation_failures_total",
			Help: "Total number of failed fax generations",
		},
		[]string{"fax_type", "error_code"},
	)

	FaxRenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "fax_render_duration_seconds",
			Help: "Duration of one full generate pipeline in seconds",
		},
		[]string{"fax_type"},
	)

	FaxPagesPerDocument = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fax_pages_per_document",
			Help:    "Page count distribution of generated documents",
			Buckets: []float64{1, 2, 3, 4, 5, 8, 12, 20},
		},
		[]string{"fax_type"},
	)

	FaxImageFetchFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fax_image_fetch_failures_total",
			Help: "Images that fell back to text after a failed fetch",
		},
	)

	FaxTransmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fax_transmissions_total",
			Help: "Outbound fax transmissions by status",
		},
		[]string{"status"},
	)
)
