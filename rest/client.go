package rest

import (
	"context"
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/kbukum/restwire/builder"
	"github.com/kbukum/restwire/codec"
	"github.com/kbukum/restwire/errors"
	"github.com/kbukum/restwire/fallback"
	"github.com/kbukum/restwire/filter"
	"github.com/kbukum/restwire/httpclient"
	"github.com/kbukum/restwire/logger"
	"github.com/kbukum/restwire/observability"
	"github.com/kbukum/restwire/provider"
	"github.com/kbukum/restwire/response"
	"github.com/kbukum/restwire/signature"
	"github.com/kbukum/restwire/wire"
)

// Outcome labels used in logs and metrics for invocations that did not
// go through a fallback.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Client invokes the operations of one signature registry against one
// base URL. It is safe for concurrent use.
type Client struct {
	name      string
	registry  *signature.Registry
	builder   *builder.Builder
	filters   *filter.Pipeline
	transport Transport
	raw       Transport
	parsers   *response.Parsers
	resolver  *fallback.Resolver
	metrics   *observability.Metrics
	log       *logger.Logger
}

// New creates a client for registry rooted at baseURL.
func New(registry *signature.Registry, baseURL string, opts ...Option) (*Client, error) {
	if registry == nil {
		return nil, fmt.Errorf("rest: registry is nil")
	}
	if baseURL == "" {
		return nil, fmt.Errorf("rest: base URL is required")
	}

	o := options{name: "rest"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.codecs == nil {
		o.codecs = codec.Default()
	}
	if o.log == nil {
		o.log = logger.Get("rest")
	}
	o.log = o.log.WithComponent(o.name)
	if o.metrics == nil {
		m, err := observability.NewMetrics(observability.Meter(o.name))
		if err != nil {
			return nil, fmt.Errorf("rest: metrics: %w", err)
		}
		o.metrics = m
	}
	if o.transport == nil {
		a, err := httpclient.New(httpclient.Config{Name: o.name}, httpclient.WithLogger(o.log))
		if err != nil {
			return nil, err
		}
		o.transport = a
	}

	chain := append([]provider.Middleware[*wire.Request, *wire.Response]{
		provider.WithLogging[*wire.Request, *wire.Response](o.log),
		provider.WithTracing[*wire.Request, *wire.Response](o.name),
		provider.WithMetrics[*wire.Request, *wire.Response](o.metrics),
	}, o.middleware...)

	return &Client{
		name:      o.name,
		registry:  registry,
		builder:   builder.New(o.codecs, baseURL),
		filters:   filter.NewPipeline(o.filters...),
		transport: provider.Chain(chain...)(o.transport),
		raw:       o.transport,
		parsers:   response.NewParsers(o.codecs),
		resolver:  fallback.NewResolver(o.codecs),
		metrics:   o.metrics,
		log:       o.log,
	}, nil
}

// Name returns the client's service name.
func (c *Client) Name() string { return c.name }

// Registry returns the client's signature registry.
func (c *Client) Registry() *signature.Registry { return c.registry }

// BaseURL returns the base URL requests are resolved against.
func (c *Client) BaseURL() string { return c.builder.BaseURL() }

// IsAvailable reports whether the transport accepts requests.
func (c *Client) IsAvailable(ctx context.Context) bool {
	return c.raw.IsAvailable(ctx)
}

// Close releases the transport's resources.
func (c *Client) Close(ctx context.Context) error {
	return provider.CloseIfCloseable(ctx, c.raw)
}

// Build resolves name against args and returns the request the builder
// produces, before any filter runs.
func (c *Client) Build(name string, args ...any) (*wire.Request, error) {
	sig, err := c.registry.Resolve(name, args...)
	if err != nil {
		return nil, err
	}
	return c.builder.Build(sig, args...)
}

// Prepare is Build followed by the filter pipeline: the exact request the
// transport would receive.
func (c *Client) Prepare(ctx context.Context, name string, args ...any) (*wire.Request, error) {
	req, err := c.Build(name, args...)
	if err != nil {
		return nil, err
	}
	return c.filters.Apply(ctx, req)
}

// Result describes how an invocation ended.
type Result struct {
	// Operation is the key of the invoked signature.
	Operation string
	// StatusCode is the response status; 0 when no response was received.
	StatusCode int
	// Outcome is "ok", "error" or the fallback outcome kind.
	Outcome string
}

// Absent reports whether the fallback policy replaced the failure with an
// empty result.
func (r Result) Absent() bool {
	return r.Outcome == fallback.KindEmpty.String()
}

// Invoke calls the operation name with args and decodes the result into
// into, which must be a pointer matching the declared parser (or nil).
func (c *Client) Invoke(ctx context.Context, into any, name string, args ...any) error {
	_, err := c.Do(ctx, into, name, args...)
	return err
}

// Do is Invoke returning the invocation Result.
func (c *Client) Do(ctx context.Context, into any, name string, args ...any) (Result, error) {
	sig, err := c.registry.Resolve(name, args...)
	if err != nil {
		return Result{Operation: name, Outcome: OutcomeError}, err
	}
	return c.Exec(ctx, sig, into, args...)
}

// Exec invokes sig directly, bypassing the registry lookup.
func (c *Client) Exec(ctx context.Context, sig *signature.Signature, into any, args ...any) (Result, error) {
	ctx, inv := observability.StartInvocation(ctx, c.name, sig.Key(), c.metrics)
	inv.Annotate(sig.Parser().String(), sig.Fallback().String())

	res := Result{Operation: sig.Key(), Outcome: OutcomeOK}
	req, err := c.exchange(ctx, inv, sig, &res, into, args)
	if err != nil && res.Outcome == OutcomeOK {
		res.Outcome = OutcomeError
	}
	inv.End(ctx, res.Outcome, err)

	fields := logger.Timed(logger.Fields(
		logger.FieldOperation, res.Operation,
		logger.FieldStatusCode, res.StatusCode,
		logger.FieldOutcome, res.Outcome,
	), inv.Duration(), err)
	if req != nil {
		fields[logger.FieldMethod] = req.Method
		fields[logger.FieldURI] = req.URI
	}
	c.log.WithContext(ctx).Debug("operation invoked", fields)
	return res, err
}

// exchange runs one invocation and returns the request it sent, if any.
func (c *Client) exchange(ctx context.Context, inv *observability.Invocation, sig *signature.Signature, res *Result, into any, args []any) (*wire.Request, error) {
	req, err := c.builder.Build(sig, args...)
	if err != nil {
		return nil, err
	}
	req, err = c.filters.Apply(ctx, req)
	if err != nil {
		return req, err
	}

	resp, err := c.transport.Execute(ctx, req)
	if err != nil {
		err = transportFailure(err)
		res.StatusCode = wire.StatusOf(err)
		return req, c.recover(ctx, inv, sig, res, into, err)
	}
	res.StatusCode = resp.StatusCode
	if failure := resp.Classify(); failure != nil {
		return req, c.recover(ctx, inv, sig, res, into, failure)
	}
	if err := c.parsers.Parse(sig, resp, into); err != nil {
		return req, c.recover(ctx, inv, sig, res, into, err)
	}
	return req, nil
}

// recover applies the signature's fallback policy to failure.
func (c *Client) recover(ctx context.Context, inv *observability.Invocation, sig *signature.Signature, res *Result, into any, failure error) error {
	out := c.resolver.Resolve(sig, failure)
	if out.Kind == fallback.KindPropagate {
		return out.Err
	}

	res.Outcome = out.Kind.String()
	inv.Fallback(ctx, sig.Fallback().String(), res.Outcome)
	c.log.WithContext(ctx).Warn("fallback applied", logger.Fields(
		logger.FieldOperation, sig.Key(),
		logger.FieldFallback, sig.Fallback().String(),
		logger.FieldOutcome, out.String(),
		logger.FieldError, failure.Error(),
	))

	switch out.Kind {
	case fallback.KindValue:
		if err := assign(into, out.Value); err != nil {
			return errors.DecodeFailure(sig.Consumes(), err)
		}
	case fallback.KindEmpty:
		reset(into)
	}
	return out.Error()
}

// transportFailure normalizes a transport error into a *wire.Error. Errors
// the transport already classified, including non-2xx statuses surfaced
// by its retry loop, pass through.
func transportFailure(err error) error {
	if _, ok := wire.AsError(err); ok {
		return err
	}
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
		return wire.NewTimeoutError(err)
	}
	return wire.NewConnectionError(err)
}

// assign stores a fallback value into the caller's target.
func assign(into, v any) error {
	if into == nil {
		return nil
	}
	target := reflect.ValueOf(into)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return fmt.Errorf("target %T is not a non-nil pointer", into)
	}
	val := reflect.ValueOf(v)
	if !val.IsValid() {
		target.Elem().SetZero()
		return nil
	}
	if !val.Type().AssignableTo(target.Elem().Type()) {
		return fmt.Errorf("cannot assign %T to %T", v, into)
	}
	target.Elem().Set(val)
	return nil
}

// reset sets the caller's target to its zero value.
func reset(into any) {
	if into == nil {
		return
	}
	target := reflect.ValueOf(into)
	if target.Kind() == reflect.Pointer && !target.IsNil() {
		target.Elem().SetZero()
	}
}

// Describe summarizes the client for startup output.
func (c *Client) Describe() string {
	return fmt.Sprintf("endpoint=%s operations=%d filters=%d", strings.TrimSuffix(c.BaseURL(), "/"), c.registry.Len(), c.filters.Len())
}
