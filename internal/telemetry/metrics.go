package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Submission outcomes recorded on the intake counter.
const (
	OutcomeSucceeded        = "succeeded"
	OutcomeFailed           = "failed"
	OutcomeValidationFailed = "validation_failed"
	OutcomeDiscarded        = "discarded" // result arrived after teardown
)

// Metrics holds the custom metrics for the intake flow and the devserver.
type Metrics struct {
	IntakeSubmitTotal metric.Int64Counter
	SubmitDurationMs  metric.Float64Histogram

	HTTPRequestsTotal metric.Int64Counter
	HTTPDurationMs    metric.Float64Histogram
}

// InitMetrics initializes all custom metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("github.com/WailSalutem-Health-Care/patient-intake")

	intakeSubmitTotal, err := meter.Int64Counter(
		"intake_submit_total",
		metric.WithDescription("Total number of quick-add submit intents by outcome"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return nil, err
	}

	submitDurationMs, err := meter.Float64Histogram(
		"intake_submit_duration_milliseconds",
		metric.WithDescription("Patient creation request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	httpRequestsTotal, err := meter.Int64Counter(
		"http_server_requests_total",
		metric.WithDescription("Total number of HTTP requests handled by the devserver"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	httpDurationMs, err := meter.Float64Histogram(
		"http_server_duration_milliseconds",
		metric.WithDescription("Devserver HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		IntakeSubmitTotal: intakeSubmitTotal,
		SubmitDurationMs:  submitDurationMs,
		HTTPRequestsTotal: httpRequestsTotal,
		HTTPDurationMs:    httpDurationMs,
	}, nil
}

// RecordSubmit records one submit intent. Duration is zero for intents that
// never reached the network (validation failures).
func (m *Metrics) RecordSubmit(ctx context.Context, outcome string, durationMs float64) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.IntakeSubmitTotal.Add(ctx, 1, attrs)
	if durationMs > 0 {
		m.SubmitDurationMs.Record(ctx, durationMs, attrs)
	}
}

// RecordHTTPRequest records a devserver HTTP request metric.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, statusCode int, durationMs float64) {
	attrs := []attribute.KeyValue{
		attribute.String("http_method", method),
		attribute.String("http_route", route),
		attribute.Int("http_status_code", statusCode),
	}

	m.HTTPRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.HTTPDurationMs.Record(ctx, durationMs, metric.WithAttributes(attrs...))
}
