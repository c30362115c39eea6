package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Invocation tracks one declared-operation call from argument binding to
// the caller-visible result.
type Invocation struct {
	Service   string
	Operation string
	StartTime time.Time

	metrics *Metrics
	span    trace.Span
}

type invocationKey struct{}

// StartInvocation opens the invocation span and bumps the in-flight gauge.
// metrics may be nil.
func StartInvocation(ctx context.Context, service, operation string, metrics *Metrics) (context.Context, *Invocation) {
	ctx, span := StartSpan(ctx, SpanInvocation, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		attribute.String(AttrServiceName, service),
		attribute.String(AttrOperation, operation),
	)
	inv := &Invocation{
		Service:   service,
		Operation: operation,
		StartTime: time.Now(),
		metrics:   metrics,
		span:      span,
	}
	metrics.RecordInvocationStart(ctx, service)
	return context.WithValue(ctx, invocationKey{}, inv), inv
}

// InvocationFromContext returns the invocation in flight, or nil.
func InvocationFromContext(ctx context.Context) *Invocation {
	if inv, ok := ctx.Value(invocationKey{}).(*Invocation); ok {
		return inv
	}
	return nil
}

// Annotate records the strategies chosen for this invocation.
func (i *Invocation) Annotate(parser, fallback string) {
	i.span.SetAttributes(
		attribute.String(AttrParser, parser),
		attribute.String(AttrFallback, fallback),
	)
}

// Fallback records a fallback resolution.
func (i *Invocation) Fallback(ctx context.Context, policy, outcome string) {
	i.span.AddEvent("fallback", trace.WithAttributes(
		attribute.String(AttrFallback, policy),
		attribute.String(AttrOutcome, outcome),
	))
	i.metrics.RecordFallback(ctx, i.Operation, policy, outcome)
}

// End closes the span and records the invocation metrics.
func (i *Invocation) End(ctx context.Context, outcome string, err error) {
	d := time.Since(i.StartTime)
	if err != nil {
		i.span.RecordError(err)
		i.span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
		i.metrics.RecordError(ctx, outcome, i.Operation)
	}
	i.span.SetAttributes(
		attribute.String(AttrOutcome, outcome),
		attribute.Int64(AttrDurationMs, d.Milliseconds()),
	)
	i.span.End()
	i.metrics.RecordInvocationEnd(ctx, i.Service, i.Operation, outcome, d)
}

// Duration returns the elapsed time since the invocation started.
func (i *Invocation) Duration() time.Duration {
	return time.Since(i.StartTime)
}
