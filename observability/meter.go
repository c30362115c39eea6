package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/restwire/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	Enabled        bool          `yaml:"enabled" mapstructure:"enabled"`
	ServiceName    string        `yaml:"service_name" mapstructure:"service_name"`
	ServiceVersion string        `yaml:"service_version" mapstructure:"service_version"`
	Environment    string        `yaml:"environment" mapstructure:"environment"`
	Endpoint       string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure       bool          `yaml:"insecure" mapstructure:"insecure"`
	Interval       time.Duration `yaml:"interval" mapstructure:"interval"`
}

// DefaultMeterConfig returns development defaults with export disabled.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter installs an OTLP/HTTP meter provider as the global provider.
// The caller shuts it down on exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recorded around operation invocations.
// A nil *Metrics records nothing.
type Metrics struct {
	invocationTotal    metric.Int64Counter
	invocationDuration metric.Float64Histogram
	invocationActive   metric.Int64UpDownCounter
	transportTotal     metric.Int64Counter
	transportDuration  metric.Float64Histogram
	fallbackTotal      metric.Int64Counter
	errorTotal         metric.Int64Counter
}

// NewMetrics creates the instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	if m.invocationTotal, err = meter.Int64Counter("restwire.invocation.total",
		metric.WithDescription("Operation invocations by outcome"),
	); err != nil {
		return nil, fmt.Errorf("creating restwire.invocation.total counter: %w", err)
	}
	if m.invocationDuration, err = meter.Float64Histogram("restwire.invocation.duration",
		metric.WithDescription("End-to-end invocation duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating restwire.invocation.duration histogram: %w", err)
	}
	if m.invocationActive, err = meter.Int64UpDownCounter("restwire.invocation.active",
		metric.WithDescription("Invocations currently in flight"),
	); err != nil {
		return nil, fmt.Errorf("creating restwire.invocation.active gauge: %w", err)
	}
	if m.transportTotal, err = meter.Int64Counter("restwire.transport.total",
		metric.WithDescription("Transport exchanges by status"),
	); err != nil {
		return nil, fmt.Errorf("creating restwire.transport.total counter: %w", err)
	}
	if m.transportDuration, err = meter.Float64Histogram("restwire.transport.duration",
		metric.WithDescription("Transport exchange duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating restwire.transport.duration histogram: %w", err)
	}
	if m.fallbackTotal, err = meter.Int64Counter("restwire.fallback.total",
		metric.WithDescription("Fallback resolutions by policy and outcome"),
	); err != nil {
		return nil, fmt.Errorf("creating restwire.fallback.total counter: %w", err)
	}
	if m.errorTotal, err = meter.Int64Counter("restwire.error.total",
		metric.WithDescription("Errors by type and component"),
	); err != nil {
		return nil, fmt.Errorf("creating restwire.error.total counter: %w", err)
	}
	return m, nil
}

// RecordInvocationStart increments the in-flight gauge.
func (m *Metrics) RecordInvocationStart(ctx context.Context, service string) {
	if m == nil {
		return
	}
	m.invocationActive.Add(ctx, 1, metric.WithAttributes(attribute.String("service", service)))
}

// RecordInvocationEnd closes an invocation opened by RecordInvocationStart.
func (m *Metrics) RecordInvocationEnd(ctx context.Context, service, operation, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.invocationActive.Add(ctx, -1, metric.WithAttributes(attribute.String("service", service)))
	m.invocationTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("service", service),
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
	m.invocationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("service", service),
		attribute.String("operation", operation),
	))
}

// RecordTransport records one exchange through the transport chain.
func (m *Metrics) RecordTransport(ctx context.Context, transport, operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.transportTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("transport", transport),
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
	m.transportDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("transport", transport),
		attribute.String("operation", operation),
	))
}

// RecordFallback records how a fallback policy resolved a failure.
func (m *Metrics) RecordFallback(ctx context.Context, operation, policy, outcome string) {
	if m == nil {
		return
	}
	m.fallbackTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("policy", policy),
		attribute.String("outcome", outcome),
	))
}

// RecordError records an error by type and component.
func (m *Metrics) RecordError(ctx context.Context, errType, component string) {
	if m == nil {
		return
	}
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", errType),
		attribute.String("component", component),
	))
}
