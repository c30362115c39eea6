package rest

import (
	"fmt"
	"strings"

	"github.com/kbukum/restwire/config"
	"github.com/kbukum/restwire/filter"
	"github.com/kbukum/restwire/httpclient"
	"github.com/kbukum/restwire/observability"
	"github.com/kbukum/restwire/validation"
)

// Config configures a client process talking to one remote service.
//
//	name: infrastructure
//	endpoint: http://localhost/api
//	auth:
//	  type: basic
//	  username: admin
//	http:
//	  timeout: 10s
//	  retry:
//	    max_attempts: 3
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	// Endpoint is the base URL of the remote API.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint" validate:"required,url"`

	HTTP    httpclient.Config          `yaml:"http" mapstructure:"http"`
	Auth    filter.AuthConfig          `yaml:"auth" mapstructure:"auth"`
	Tracing observability.TracerConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics observability.MeterConfig  `yaml:"metrics" mapstructure:"metrics"`
}

// ApplyDefaults fills unset fields from the service section.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	if c.HTTP.Name == "" {
		c.HTTP.Name = c.Name
	}
	c.HTTP.ApplyDefaults()

	trace := observability.DefaultTracerConfig(c.Name)
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = trace.ServiceName
	}
	if c.Tracing.ServiceVersion == "" {
		c.Tracing.ServiceVersion = c.Version
	}
	if c.Tracing.Environment == "" {
		c.Tracing.Environment = c.Environment
	}
	if c.Tracing.Endpoint == "" {
		c.Tracing.Endpoint = trace.Endpoint
	}
	if c.Tracing.SampleRate == 0 {
		c.Tracing.SampleRate = trace.SampleRate
	}

	meter := observability.DefaultMeterConfig(c.Name)
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = meter.ServiceName
	}
	if c.Metrics.ServiceVersion == "" {
		c.Metrics.ServiceVersion = c.Version
	}
	if c.Metrics.Environment == "" {
		c.Metrics.Environment = c.Environment
	}
	if c.Metrics.Endpoint == "" {
		c.Metrics.Endpoint = meter.Endpoint
	}
	if c.Metrics.Interval == 0 {
		c.Metrics.Interval = meter.Interval
	}
}

// Validate checks struct tags first, then each section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.HTTP.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("config.auth: %w", err)
	}
	return nil
}

// LoadConfig loads, defaults and validates the configuration of service.
// Environment variables use the upper-cased service name as prefix, e.g.
// INFRASTRUCTURE_ENDPOINT.
func LoadConfig(service string, opts ...config.LoaderOption) (*Config, error) {
	prefix := strings.ToUpper(strings.ReplaceAll(service, "-", "_"))
	opts = append([]config.LoaderOption{config.WithEnvPrefix(prefix)}, opts...)
	return config.Load[Config](service, opts...)
}
