// Package observability wires OpenTelemetry tracing and metrics around
// operation invocations.
//
// Tracing:
//
//	cfg := observability.DefaultTracerConfig("abiquo")
//	tp, err := observability.InitTracer(ctx, &cfg)
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, &cfg)
//	metrics, err := observability.NewMetrics(observability.Meter("abiquo"))
//
// Invocations:
//
//	ctx, inv := observability.StartInvocation(ctx, "abiquo", "listDatacenters", metrics)
//	defer inv.End(ctx, "ok", nil)
package observability
