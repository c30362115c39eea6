package logger

import "context"

type contextKey string

// ContextWithRequestID stores the invocation's request id for log lines
// and the X-Request-Id header.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey(FieldRequestID), id)
}

// RequestIDFromContext returns the id stored by ContextWithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey(FieldRequestID)).(string)
	return id
}

// ContextWithCorrelationID stores a caller-supplied correlation id.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey(FieldCorrelationID), id)
}
