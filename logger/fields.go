package logger

import "time"

// Field keys shared by every package that logs.
const (
	FieldService       = "service"
	FieldComponent     = "component"
	FieldTraceID       = "trace_id"
	FieldSpanID        = "span_id"
	FieldRequestID     = "request_id"
	FieldCorrelationID = "correlation_id"

	FieldOperation  = "operation"
	FieldMethod     = "method"
	FieldURI        = "uri"
	FieldStatus     = "status"
	FieldStatusCode = "status_code"
	FieldParser     = "parser"
	FieldFallback   = "fallback"
	FieldOutcome    = "outcome"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
)

// Fields builds a field map from alternating keys and values. Non-string
// keys and a trailing key without a value are dropped.
//
//	log.Info("rack created", logger.Fields("rack", 7, "datacenter", 1))
func Fields(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// RequestFields describes an outbound request line.
func RequestFields(op, method, uri string) map[string]any {
	return Fields(FieldOperation, op, FieldMethod, method, FieldURI, uri)
}

// Timed records the elapsed time on fields and, when err is set, its
// message. A nil map is allocated.
func Timed(fields map[string]any, d time.Duration, err error) map[string]any {
	if fields == nil {
		fields = make(map[string]any, 2)
	}
	fields[FieldDuration] = d.Milliseconds()
	if err != nil {
		fields[FieldError] = err.Error()
	}
	return fields
}
