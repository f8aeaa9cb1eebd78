package observability

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
)

type instruments struct {
	httpRequestsTotal    metric.Int64Counter
	httpRequestDuration  metric.Float64Histogram
	queryExecutionsTotal metric.Int64Counter
	queryDuration        metric.Float64Histogram
}

var (
	instrumentsMu sync.Mutex
	inst          *instruments
)

func buildResource(ctx context.Context, cfg Config) (*resource.Resource, error) {
	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			semconv.DeploymentEnvironmentName(cfg.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create otel resource: %w", err)
	}
	return res, nil
}

func buildMeterProvider(ctx context.Context, cfg Config) (*sdkmetric.MeterProvider, error) {
	if !cfg.Enabled || !cfg.MetricsEnabled {
		return sdkmetric.NewMeterProvider(), nil
	}

	exporter, err := otlpmetricgrpc.New(
		ctx,
		otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("create otlp metric exporter: %w", err)
	}

	res, err := buildResource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
	), nil
}

// getInstruments lazily creates instruments from the global meter provider.
// Setup resets them so they bind to the provider it installs.
func getInstruments() *instruments {
	instrumentsMu.Lock()
	defer instrumentsMu.Unlock()
	if inst != nil {
		return inst
	}

	meter := otel.Meter("dataexplorer")
	i := &instruments{}
	i.httpRequestsTotal, _ = meter.Int64Counter("dataexplorer.http.server.requests_total")
	i.httpRequestDuration, _ = meter.Float64Histogram("dataexplorer.http.server.request_duration_ms")
	i.queryExecutionsTotal, _ = meter.Int64Counter("dataexplorer.query.executions_total")
	i.queryDuration, _ = meter.Float64Histogram("dataexplorer.query.execution_duration_ms")
	inst = i
	return inst
}

func resetInstruments() {
	instrumentsMu.Lock()
	inst = nil
	instrumentsMu.Unlock()
}

// RecordHTTPRequest records one request served by the serve command.
func RecordHTTPRequest(ctx context.Context, method, route string, status int, durationMS float64) {
	i := getInstruments()
	attrs := metric.WithAttributes(
		attribute.String(AttrHTTPMethod, method),
		attribute.String(AttrHTTPRoute, route),
		attribute.Int(AttrHTTPStatusCode, status),
	)
	i.httpRequestsTotal.Add(ctx, 1, attrs)
	i.httpRequestDuration.Record(ctx, durationMS, attrs)
}

// RecordQueryExecution records one query run, successful or not.
func RecordQueryExecution(ctx context.Context, queryName string, success bool, durationMS float64) {
	i := getInstruments()
	attrs := metric.WithAttributes(
		attribute.String(AttrQueryName, queryName),
		attribute.Bool("success", success),
	)
	i.queryExecutionsTotal.Add(ctx, 1, attrs)
	i.queryDuration.Record(ctx, durationMS, attrs)
}
