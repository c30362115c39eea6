package httpclient

import (
	"context"
	"fmt"

	"github.com/kbukum/restwire/component"
)

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// Component manages an Adapter's lifecycle. The adapter is created in Start.
type Component struct {
	adapter *Adapter
	config  Config
	opts    []Option
}

// NewComponent creates a transport component.
func NewComponent(cfg Config, opts ...Option) *Component {
	return &Component{config: cfg, opts: opts}
}

// Name returns the component name.
func (c *Component) Name() string {
	if c.config.Name == "" {
		return "http"
	}
	return c.config.Name
}

// Start creates the adapter.
func (c *Component) Start(_ context.Context) error {
	a, err := New(c.config, c.opts...)
	if err != nil {
		return err
	}
	c.adapter = a
	return nil
}

// Stop closes idle connections.
func (c *Component) Stop(ctx context.Context) error {
	if c.adapter == nil {
		return nil
	}
	return c.adapter.Close(ctx)
}

// Health reports unhealthy before Start and while the breaker is open.
func (c *Component) Health(ctx context.Context) component.Health {
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	switch {
	case c.adapter == nil:
		h.Status, h.Message = component.StatusUnhealthy, "not started"
	case !c.adapter.IsAvailable(ctx):
		h.Status, h.Message = component.StatusDegraded, "circuit breaker open"
	}
	return h
}

// Describe summarizes the transport for startup output.
func (c *Component) Describe() component.Description {
	cfg := c.config
	cfg.ApplyDefaults()
	return component.Description{
		Name:    c.Name(),
		Type:    "http-transport",
		Details: fmt.Sprintf("timeout=%s http2=%t retry=%t breaker=%t", cfg.Timeout, cfg.HTTP2, cfg.Retry != nil, cfg.CircuitBreaker != nil),
	}
}

// Adapter returns the adapter. Nil before Start.
func (c *Component) Adapter() *Adapter {
	return c.adapter
}
