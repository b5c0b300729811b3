package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	ServiceName    = "fleetpulse"
	ServiceVersion = "v1.0.0"
	MeterName      = "fleetpulse"
)

// OTelConfig holds OpenTelemetry configuration.
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	EnableMetrics  bool
	EnableTracing  bool
}

// OTelProviders holds the OpenTelemetry providers and the business meters.
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	PrometheusHTTP http.Handler
	Logger         *slog.Logger
}

// DefaultOTelConfig returns a default OpenTelemetry configuration.
func DefaultOTelConfig() *OTelConfig {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	return &OTelConfig{
		ServiceName:    ServiceName,
		ServiceVersion: ServiceVersion,
		Environment:    env,
		EnableMetrics:  true,
		EnableTracing:  env == "development",
	}
}

// InitializeOTel initializes OpenTelemetry metrics (Prometheus exporter)
// and, in development, stdout tracing.
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = DefaultOTelConfig()
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		attribute.String("environment", cfg.Environment),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	providers := &OTelProviders{Logger: logger}

	if cfg.EnableMetrics {
		exporter, err := prometheus.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
		}
		providers.MeterProvider = sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exporter),
		)
		otel.SetMeterProvider(providers.MeterProvider)
		providers.Meter = providers.MeterProvider.Meter(MeterName)
		providers.PrometheusHTTP = promhttp.Handler()
	}

	if cfg.EnableTracing {
		traceExporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		providers.TracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(traceExporter),
			sdktrace.WithResource(res),
		)
		otel.SetTracerProvider(providers.TracerProvider)
		providers.Tracer = providers.TracerProvider.Tracer(MeterName)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("OpenTelemetry initialized",
		slog.String("service", cfg.ServiceName),
		slog.Bool("metrics_enabled", cfg.EnableMetrics),
		slog.Bool("tracing_enabled", cfg.EnableTracing))

	return providers, nil
}

// Shutdown flushes and stops the providers.
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var firstErr error
	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}
	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// BusinessMetrics holds the domain counters the service increments.
type BusinessMetrics struct {
	WorkbooksLoaded metric.Int64Counter
	AnalysesRun     metric.Int64Counter
}

// CreateBusinessMetrics registers the fleet analytics counters.
func CreateBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	if meter == nil {
		return &BusinessMetrics{}, nil
	}

	workbooks, err := meter.Int64Counter("fleetpulse_workbooks_loaded_total",
		metric.WithDescription("Workbooks uploaded and parsed"))
	if err != nil {
		return nil, fmt.Errorf("failed to create workbook counter: %w", err)
	}

	analyses, err := meter.Int64Counter("fleetpulse_analyses_run_total",
		metric.WithDescription("Analyses executed, by analysis name"))
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis counter: %w", err)
	}

	return &BusinessMetrics{
		WorkbooksLoaded: workbooks,
		AnalysesRun:     analyses,
	}, nil
}

// RecordAnalysis increments the analysis counter with the analysis name.
func (m *BusinessMetrics) RecordAnalysis(ctx context.Context, name string) {
	if m == nil || m.AnalysesRun == nil {
		return
	}
	m.AnalysesRun.Add(ctx, 1, metric.WithAttributes(attribute.String("analysis", name)))
}

// RecordWorkbookLoad increments the workbook counter.
func (m *BusinessMetrics) RecordWorkbookLoad(ctx context.Context) {
	if m == nil || m.WorkbooksLoaded == nil {
		return
	}
	m.WorkbooksLoaded.Add(ctx, 1)
}
