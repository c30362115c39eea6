package provider

import (
	"context"
	"time"

	"github.com/kbukum/restwire/logger"
)

// WithLogging logs each Execute call with the provider name, duration and
// the attributes of input and output when they implement Describer.
// Failures log at error level, successes at debug.
func WithLogging[I, O any](log *logger.Logger) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &loggingRR[I, O]{inner: inner, log: log}
	}
}

type loggingRR[I, O any] struct {
	inner RequestResponse[I, O]
	log   *logger.Logger
}

func (l *loggingRR[I, O]) Name() string                         { return l.inner.Name() }
func (l *loggingRR[I, O]) IsAvailable(ctx context.Context) bool { return l.inner.IsAvailable(ctx) }

func (l *loggingRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	start := time.Now()
	output, err := l.inner.Execute(ctx, input)

	fields := logger.Timed(logger.Fields("provider", l.inner.Name()), time.Since(start), err)
	for k, v := range describe(input) {
		fields[k] = v
	}

	log := l.log.WithContext(ctx)
	if err != nil {
		log.Error("provider execute failed", fields)
		return output, err
	}
	for k, v := range describe(output) {
		fields[k] = v
	}
	log.Debug("provider execute ok", fields)
	return output, nil
}
