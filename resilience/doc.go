// Package resilience provides the retry, circuit breaker and rate limiting
// guards the HTTP transport wraps around each exchange.
package resilience
