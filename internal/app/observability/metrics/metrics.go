package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	HTTPRequestsTotal        metric.Int64Counter
	HTTPRequestDuration      metric.Float64Histogram
	SuggestionsTotal         metric.Int64Counter
	SuggestionsRejectedTotal metric.Int64Counter
	GenerationDuration       metric.Float64Histogram
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments once, using the
// globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("go-wander")
		var err error
		m := &AppMetrics{}

		m.HTTPRequestsTotal, err = meter.Int64Counter(
			"http_requests_total",
			metric.WithDescription("Total number of HTTP requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_requests_total: %v", err)
		}

		m.HTTPRequestDuration, err = meter.Float64Histogram(
			"http_request_duration_seconds",
			metric.WithDescription("Duration of HTTP requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create http_request_duration_seconds: %v", err)
		}

		m.SuggestionsTotal, err = meter.Int64Counter(
			"suggestions_total",
			metric.WithDescription("Total number of suggestions generated"),
			metric.WithUnit("{suggestion}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create suggestions_total: %v", err)
		}

		m.SuggestionsRejectedTotal, err = meter.Int64Counter(
			"suggestions_rejected_total",
			metric.WithDescription("Total number of model replies rejected by validation"),
			metric.WithUnit("{reply}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create suggestions_rejected_total: %v", err)
		}

		m.GenerationDuration, err = meter.Float64Histogram(
			"suggestion_generation_duration_seconds",
			metric.WithDescription("End-to-end duration of suggestion generation in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create suggestion_generation_duration_seconds: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance. Panics if
// InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
