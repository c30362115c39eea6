package rest

import (
	"github.com/kbukum/restwire/codec"
	"github.com/kbukum/restwire/filter"
	"github.com/kbukum/restwire/httpclient"
	"github.com/kbukum/restwire/logger"
	"github.com/kbukum/restwire/observability"
	"github.com/kbukum/restwire/provider"
	"github.com/kbukum/restwire/wire"
)

// Transport executes wire requests. *httpclient.Adapter implements it.
type Transport = provider.RequestResponse[*wire.Request, *wire.Response]

type options struct {
	name       string
	codecs     *codec.Registry
	filters    []filter.Filter
	transport  Transport
	log        *logger.Logger
	metrics    *observability.Metrics
	middleware []provider.Middleware[*wire.Request, *wire.Response]

	transportOpts []httpclient.Option
}

// Option configures a Client.
type Option func(*options)

// WithName sets the service name used in logs, spans and metrics.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithCodecs replaces the default codec registry.
func WithCodecs(r *codec.Registry) Option {
	return func(o *options) { o.codecs = r }
}

// WithFilters appends filters to the pipeline, in order.
func WithFilters(filters ...filter.Filter) Option {
	return func(o *options) { o.filters = append(o.filters, filters...) }
}

// WithTransport sets the transport. The default is an httpclient.Adapter
// with default settings.
func WithTransport(t Transport) Option {
	return func(o *options) { o.transport = t }
}

// WithLogger sets the client logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics sets the invocation metrics. The default records on the
// global meter provider.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithMiddleware wraps the transport inside the client's logging, tracing
// and metrics middlewares.
func WithMiddleware(mw ...provider.Middleware[*wire.Request, *wire.Response]) Option {
	return func(o *options) { o.middleware = append(o.middleware, mw...) }
}

// WithTransportOptions passes options to the httpclient.Adapter a
// Component creates, e.g. httpclient.WithMetrics.
func WithTransportOptions(opts ...httpclient.Option) Option {
	return func(o *options) { o.transportOpts = append(o.transportOpts, opts...) }
}
