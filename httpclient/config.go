package httpclient

import (
	"fmt"
	"time"

	"github.com/kbukum/restwire/resilience"
	"github.com/kbukum/restwire/util"
	"github.com/kbukum/restwire/wire"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultMaxIdleConns = 100
)

// Config configures the HTTP transport.
type Config struct {
	// Name identifies the transport in logs, metrics and health checks.
	Name string `yaml:"name" mapstructure:"name"`

	// Timeout bounds a single attempt, body included. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// TLS configures TLS settings for the HTTP transport.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// HTTP2 enables HTTP/2 over TLS on the transport.
	HTTP2 bool `yaml:"http2" mapstructure:"http2"`

	// MaxIdleConns bounds idle keep-alive connections. Defaults to 100.
	MaxIdleConns int `yaml:"max_idle_conns" mapstructure:"max_idle_conns" validate:"gte=0"`

	// MaxResponseSize caps how much of a response body is read, e.g. "10MB".
	// Empty means unlimited.
	MaxResponseSize string `yaml:"max_response_size" mapstructure:"max_response_size"`

	// Headers are sent with every request that does not carry them already.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Retry configures retry behavior. Nil disables retry.
	Retry *resilience.RetryConfig `yaml:"retry" mapstructure:"retry"`

	// CircuitBreaker configures circuit breaker behavior. Nil disables it.
	CircuitBreaker *resilience.CircuitBreakerConfig `yaml:"circuit_breaker" mapstructure:"circuit_breaker"`

	// RateLimiter configures rate limiting. Nil disables it.
	RateLimiter *resilience.RateLimiterConfig `yaml:"rate_limiter" mapstructure:"rate_limiter"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "http"
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = defaultMaxIdleConns
	}
	if c.Retry != nil && c.Retry.RetryIf == nil {
		c.Retry.RetryIf = wire.IsRetryable
	}
	if c.CircuitBreaker != nil && c.CircuitBreaker.Name == "" {
		c.CircuitBreaker.Name = c.Name
	}
	if c.RateLimiter != nil && c.RateLimiter.Name == "" {
		c.RateLimiter.Name = c.Name
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.MaxIdleConns < 0 {
		return fmt.Errorf("httpclient: max_idle_conns must not be negative")
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return err
		}
	}
	if c.Retry != nil && c.Retry.MaxAttempts < 0 {
		return fmt.Errorf("httpclient: retry.max_attempts must not be negative")
	}
	return nil
}

// ResponseLimit returns MaxResponseSize in bytes; 0 means unlimited.
func (c *Config) ResponseLimit() int64 {
	return util.ParseSize(c.MaxResponseSize, 0)
}

// DefaultRetryConfig returns a retry config that retries retryable wire
// failures only.
func DefaultRetryConfig() *resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.RetryIf = wire.IsRetryable
	return &cfg
}

// DefaultCircuitBreakerConfig returns a default circuit breaker config.
func DefaultCircuitBreakerConfig(name string) *resilience.CircuitBreakerConfig {
	cfg := resilience.DefaultCircuitBreakerConfig(name)
	return &cfg
}

// DefaultRateLimiterConfig returns a default rate limiter config.
func DefaultRateLimiterConfig(name string) *resilience.RateLimiterConfig {
	cfg := resilience.DefaultRateLimiterConfig(name)
	return &cfg
}
