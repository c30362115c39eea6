// Package provider defines the generic request/response provider contract
// and the middlewares wrapped around the HTTP transport.
//
//	transport := provider.Chain(
//	    provider.WithLogging[*wire.Request, *wire.Response](log),
//	    provider.WithTracing[*wire.Request, *wire.Response]("abiquo"),
//	    provider.WithMetrics[*wire.Request, *wire.Response](metrics),
//	)(httpAdapter)
//
// Inputs and outputs that implement Describer label the log lines, span
// attributes and metric series.
package provider
