package chem

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments — initialized once via InitMetrics().
var (
	opsCounter   metric.Int64Counter
	opsHistogram metric.Float64Histogram
	errorCounter metric.Int64Counter
	massGauge    metric.Float64Gauge
)

// InitMetrics registers custom OTel metric instruments for the chemistry domain.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("chem")

	var err error

	opsCounter, err = meter.Int64Counter("chem.operations.total",
		metric.WithDescription("Total number of chemistry operations performed"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return fmt.Errorf("creating ops counter: %w", err)
	}

	opsHistogram, err = meter.Float64Histogram("chem.operation.duration",
		metric.WithDescription("Duration of chemistry operations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating ops histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("chem.errors.total",
		metric.WithDescription("Total number of chemistry operation errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	massGauge, err = meter.Float64Gauge("chem.last_molar_mass",
		metric.WithDescription("The molar mass computed by the last operation, in g/mol"),
		metric.WithUnit("g/mol"),
	)
	if err != nil {
		return fmt.Errorf("creating mass gauge: %w", err)
	}

	return nil
}
