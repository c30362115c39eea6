package rest

import (
	"context"
	"fmt"
	"sync"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/restwire/component"
	"github.com/kbukum/restwire/filter"
	"github.com/kbukum/restwire/httpclient"
	"github.com/kbukum/restwire/logger"
	"github.com/kbukum/restwire/observability"
	"github.com/kbukum/restwire/signature"
	"github.com/kbukum/restwire/util"
)

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// Component runs a Client built from Config. Start brings up tracing,
// metrics and the HTTP transport; Stop tears them down in reverse.
type Component struct {
	cfg      *Config
	registry *signature.Registry
	opts     []Option

	mu         sync.RWMutex
	components *component.Registry
	client     *Client
	tracer     *sdktrace.TracerProvider
	meter      *sdkmetric.MeterProvider
}

// NewComponent creates a client component. cfg must already carry its
// defaults (see LoadConfig).
func NewComponent(cfg *Config, registry *signature.Registry, opts ...Option) *Component {
	return &Component{cfg: cfg, registry: registry, opts: opts}
}

// Name returns the configured service name.
func (c *Component) Name() string {
	return util.Coalesce(c.cfg.Name, "rest")
}

// Start initializes observability, starts the transport and builds the client.
func (c *Component) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return nil
	}
	var o options
	for _, opt := range c.opts {
		opt(&o)
	}

	log := logger.New(&c.cfg.Logging, c.Name())
	logger.Register(c.Name(), log)

	if c.cfg.Tracing.Enabled {
		tp, err := observability.InitTracer(ctx, &c.cfg.Tracing)
		if err != nil {
			return fmt.Errorf("rest: tracing: %w", err)
		}
		c.tracer = tp
	}
	if c.cfg.Metrics.Enabled {
		mp, err := observability.InitMeter(ctx, &c.cfg.Metrics)
		if err != nil {
			c.shutdownProviders(ctx)
			return fmt.Errorf("rest: metrics: %w", err)
		}
		c.meter = mp
	}

	transportOpts := append([]httpclient.Option{httpclient.WithLogger(log)}, o.transportOpts...)
	transport := httpclient.NewComponent(c.cfg.HTTP, transportOpts...)
	c.components = component.NewRegistry()
	if err := c.components.Register(transport); err != nil {
		c.shutdownProviders(ctx)
		return err
	}
	if err := c.components.StartAll(ctx); err != nil {
		c.shutdownProviders(ctx)
		return err
	}

	filters := []filter.Filter{filter.RequestID()}
	auth, err := c.cfg.Auth.Filter()
	if err != nil {
		_ = c.components.StopAll(ctx)
		c.shutdownProviders(ctx)
		return fmt.Errorf("rest: auth: %w", err)
	}
	if auth != nil {
		filters = append(filters, auth)
	}

	opts := append([]Option{
		WithName(c.Name()),
		WithLogger(log),
		WithTransport(transport.Adapter()),
		WithFilters(filters...),
	}, c.opts...)
	client, err := New(c.registry, c.cfg.Endpoint, opts...)
	if err != nil {
		_ = c.components.StopAll(ctx)
		c.shutdownProviders(ctx)
		return err
	}
	c.client = client
	return nil
}

// Stop stops the transport and flushes telemetry.
func (c *Component) Stop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}
	c.client = nil
	err := c.components.StopAll(ctx)
	c.shutdownProviders(ctx)
	logger.Unregister(c.Name())
	return err
}

func (c *Component) shutdownProviders(ctx context.Context) {
	if c.meter != nil {
		_ = c.meter.Shutdown(ctx)
		c.meter = nil
	}
	if c.tracer != nil {
		_ = c.tracer.Shutdown(ctx)
		c.tracer = nil
	}
}

// Health reports the worst health of the client and its transport.
func (c *Component) Health(ctx context.Context) component.Health {
	c.mu.RLock()
	defer c.mu.RUnlock()

	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	if c.client == nil {
		h.Status, h.Message = component.StatusUnhealthy, "not started"
		return h
	}
	parts := c.components.HealthAll(ctx)
	h.Status = component.Worst(parts...)
	for _, p := range parts {
		if p.Status != component.StatusHealthy {
			h.Message = p.Name + ": " + p.Message
			break
		}
	}
	return h
}

// Describe summarizes the client for startup output.
func (c *Component) Describe() component.Description {
	details := fmt.Sprintf("endpoint=%s operations=%d auth=%s", c.cfg.Endpoint, c.registry.Len(), authSummary(c.cfg.Auth))
	return component.Description{Name: c.Name(), Type: "rest-client", Details: details}
}

func authSummary(a filter.AuthConfig) string {
	switch a.Type {
	case "", filter.AuthNone:
		return "none"
	case filter.AuthBasic:
		return fmt.Sprintf("basic(%s)", a.Username)
	case filter.AuthBearer, filter.AuthToken:
		return fmt.Sprintf("%s(%s)", a.Type, util.MaskSecret(a.Token, 4))
	case filter.AuthAPIKey:
		return fmt.Sprintf("apikey(%s)", util.MaskSecret(a.Key, 4))
	default:
		return string(a.Type)
	}
}

// Client returns the running client, or nil before Start.
func (c *Component) Client() *Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client
}
