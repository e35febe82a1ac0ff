// internal/common/observability/metrics.go
package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability owns the OTel meter provider backed by the Prometheus
// exporter; the instruments surface through the same /metrics endpoint as
// the promauto collectors.
type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	faxCounter    otelmetric.Int64Counter
	faxDuration   otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	faxCounter, _ := meter.Int64Counter(
		"fax.documents.processed",
		otelmetric.WithDescription("Number of fax jobs processed"),
	)

	faxDuration, _ := meter.Float64Histogram(
		"fax.job.duration",
		otelmetric.WithDescription("Fax job processing duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		faxCounter:    faxCounter,
		faxDuration:   faxDuration,
	}
}

func (o *Observability) RecordFaxProcessed(ctx context.Context, faxType, status string) {
	if o.faxCounter != nil {
		o.faxCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("fax_type", faxType),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordJobDuration(ctx context.Context, duration time.Duration, status string) {
	if o.faxDuration != nil {
		o.faxDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = o.meterProvider.Shutdown(ctx)
	}
}
