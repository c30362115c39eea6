package provider

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/restwire/observability"
)

// WithTracing opens a client span named "{serviceName}.{providerName}"
// around each Execute call. Describer attributes of the input and output
// are copied onto the span under the "http." prefix.
func WithTracing[I, O any](serviceName string) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &tracingRR[I, O]{inner: inner, serviceName: serviceName}
	}
}

type tracingRR[I, O any] struct {
	inner       RequestResponse[I, O]
	serviceName string
}

func (t *tracingRR[I, O]) Name() string                         { return t.inner.Name() }
func (t *tracingRR[I, O]) IsAvailable(ctx context.Context) bool { return t.inner.IsAvailable(ctx) }

func (t *tracingRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	ctx, span := observability.StartSpan(ctx, t.serviceName+"."+t.inner.Name(),
		trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	observability.SetSpanAttribute(ctx, observability.AttrServiceName, t.serviceName)
	observability.SetSpanAttributes(ctx, observability.AttrHTTPPrefix, describe(input))

	output, err := t.inner.Execute(ctx, input)
	if err != nil {
		observability.SetSpanError(ctx, err)
		return output, err
	}
	observability.SetSpanAttributes(ctx, observability.AttrHTTPPrefix, describe(output))
	return output, nil
}
