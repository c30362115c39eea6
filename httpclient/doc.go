// Package httpclient is the transport behind a rest client: it executes
// wire requests over net/http and hands back wire responses with their body
// stream open.
//
// Non-2xx statuses are not errors at this layer; they are returned as
// responses for the caller to classify. Only failures that produced no
// response (connection refused, timeouts, an open circuit) come back as a
// *wire.Error with status 0.
//
// The Adapter optionally applies, in order: rate limiting, a circuit
// breaker that trips on transport failures and 5xx statuses, and retries
// of retryable failures (timeouts, connection errors, 429, 502, 503, 504).
//
//	a, err := httpclient.New(httpclient.Config{
//	    Timeout:        10 * time.Second,
//	    Retry:          httpclient.DefaultRetryConfig(),
//	    CircuitBreaker: httpclient.DefaultCircuitBreakerConfig("abiquo"),
//	}, httpclient.WithMetrics(httpclient.NewMetricsCollector(prometheus.NewRegistry())))
//
//	resp, err := a.Execute(ctx, req)
package httpclient
