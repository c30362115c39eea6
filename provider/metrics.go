package provider

import (
	"context"
	"time"

	"github.com/kbukum/restwire/observability"
)

// WithMetrics records a transport count and duration per Execute call.
// The operation label comes from the input's "operation" attribute and the
// status label from the output's "status_code" attribute, or "error".
func WithMetrics[I, O any](metrics *observability.Metrics) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &metricsRR[I, O]{inner: inner, metrics: metrics}
	}
}

type metricsRR[I, O any] struct {
	inner   RequestResponse[I, O]
	metrics *observability.Metrics
}

func (m *metricsRR[I, O]) Name() string                         { return m.inner.Name() }
func (m *metricsRR[I, O]) IsAvailable(ctx context.Context) bool { return m.inner.IsAvailable(ctx) }

func (m *metricsRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	start := time.Now()
	output, err := m.inner.Execute(ctx, input)
	duration := time.Since(start)

	operation := describe(input)["operation"]
	if operation == "" {
		operation = "execute"
	}
	status := "error"
	if err != nil {
		m.metrics.RecordError(ctx, "transport", m.inner.Name())
	} else if code := describe(output)["status_code"]; code != "" {
		status = code
	} else {
		status = "ok"
	}
	m.metrics.RecordTransport(ctx, m.inner.Name(), operation, status, duration)

	return output, err
}
