package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"golang.org/x/net/http2"

	"github.com/kbukum/restwire/logger"
	"github.com/kbukum/restwire/provider"
	"github.com/kbukum/restwire/resilience"
	"github.com/kbukum/restwire/version"
	"github.com/kbukum/restwire/wire"
)

var (
	_ provider.RequestResponse[*wire.Request, *wire.Response] = (*Adapter)(nil)
	_ provider.Closeable                                      = (*Adapter)(nil)
)

// errServerStatus marks a 5xx response as a failure for the circuit breaker.
var errServerStatus = errors.New("server error status")

// Adapter executes wire requests over net/http.
type Adapter struct {
	httpClient *http.Client
	config     Config
	cb         *resilience.CircuitBreaker
	rl         *resilience.RateLimiter
	metrics    *MetricsCollector
	log        *logger.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(a *Adapter) { a.httpClient = c }
}

// WithMetrics records Prometheus metrics through m.
func WithMetrics(m *MetricsCollector) Option {
	return func(a *Adapter) { a.metrics = m }
}

// WithLogger sets the logger used for retries and breaker transitions.
func WithLogger(l *logger.Logger) Option {
	return func(a *Adapter) { a.log = l }
}

// New creates an Adapter from cfg.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = cfg.MaxIdleConns
	tlsCfg, err := cfg.TLS.Build()
	if err != nil {
		return nil, err
	}
	if tlsCfg != nil {
		transport.TLSClientConfig = tlsCfg
	}
	if cfg.HTTP2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			return nil, fmt.Errorf("httpclient: configure http2: %w", err)
		}
	}

	a := &Adapter{
		httpClient: &http.Client{Transport: transport, Timeout: cfg.Timeout},
		config:     cfg,
		log:        logger.Get("httpclient"),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.WithFields(logger.Fields("client", cfg.Name))

	if cfg.CircuitBreaker != nil {
		cbCfg := *cfg.CircuitBreaker
		user := cbCfg.OnStateChange
		cbCfg.OnStateChange = func(name string, from, to resilience.State) {
			a.log.Warn("circuit breaker state changed", logger.Fields("breaker", name, "from", from.String(), "to", to.String()))
			a.metrics.recordBreakerState(name, to)
			if user != nil {
				user(name, from, to)
			}
		}
		a.cb = resilience.NewCircuitBreaker(cbCfg)
		a.metrics.recordBreakerState(cbCfg.Name, resilience.StateClosed)
	}
	if cfg.RateLimiter != nil {
		a.rl = resilience.NewRateLimiter(*cfg.RateLimiter)
	}
	return a, nil
}

// Execute sends req and returns the response with its body open. The
// caller must release the body.
func (a *Adapter) Execute(ctx context.Context, req *wire.Request) (*wire.Response, error) {
	if a.config.Retry == nil {
		return a.guarded(ctx, req)
	}
	retry := *a.config.Retry
	user := retry.OnRetry
	retry.OnRetry = func(attempt int, err error, backoff time.Duration) {
		a.log.Warn("retrying request", logger.Fields(
			logger.FieldOperation, req.Operation, "attempt", attempt, "backoff_ms", backoff.Milliseconds(), logger.FieldError, err.Error()))
		a.metrics.recordRetry(a.config.Name, req.Operation)
		if user != nil {
			user(attempt, err, backoff)
		}
	}
	return resilience.Retry(ctx, retry, func() (*wire.Response, error) {
		resp, err := a.guarded(ctx, req)
		if err != nil {
			return nil, err
		}
		if isRetryableStatus(resp.StatusCode) {
			return nil, resp.Classify()
		}
		return resp, nil
	})
}

// guarded runs one attempt through the rate limiter and circuit breaker.
func (a *Adapter) guarded(ctx context.Context, req *wire.Request) (*wire.Response, error) {
	if a.rl != nil {
		if err := a.rl.Wait(ctx); err != nil {
			return nil, wire.NewTimeoutError(fmt.Errorf("rate limiter: %w", err))
		}
	}
	if a.cb == nil {
		return a.send(ctx, req)
	}

	var resp *wire.Response
	var sendErr error
	cbErr := a.cb.Execute(func() error {
		resp, sendErr = a.send(ctx, req)
		if sendErr != nil {
			return sendErr
		}
		if resp.StatusCode >= 500 {
			return errServerStatus
		}
		return nil
	})
	if errors.Is(cbErr, resilience.ErrCircuitOpen) {
		a.metrics.recordFailure(a.config.Name, req.Operation, "circuit_open")
		return nil, &wire.Error{Code: wire.ErrCodeConnection, Message: cbErr.Error(), Err: cbErr}
	}
	return resp, sendErr
}

// send performs a single HTTP exchange.
func (a *Adapter) send(ctx context.Context, req *wire.Request) (*wire.Response, error) {
	httpReq, err := a.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	a.metrics.inFlight(a.config.Name, 1)
	start := time.Now()
	resp, err := a.httpClient.Do(httpReq)
	a.metrics.inFlight(a.config.Name, -1)
	if err != nil {
		if ctx.Err() != nil || isTimeout(err) {
			a.metrics.recordFailure(a.config.Name, req.Operation, "timeout")
			return nil, wire.NewTimeoutError(err)
		}
		a.metrics.recordFailure(a.config.Name, req.Operation, "connection")
		return nil, wire.NewConnectionError(err)
	}
	a.metrics.recordResponse(a.config.Name, req.Method, req.Operation, resp.StatusCode, time.Since(start))

	body := resp.Body
	if limit := a.config.ResponseLimit(); limit > 0 {
		body = limitedBody{Reader: io.LimitReader(resp.Body, limit), Closer: resp.Body}
	}
	return &wire.Response{
		StatusCode: resp.StatusCode,
		Headers:    wire.FromHTTP(resp.Header),
		Body:       body,
	}, nil
}

type limitedBody struct {
	io.Reader
	io.Closer
}

// buildRequest converts a wire request into an *http.Request. Configured
// default headers and the User-Agent are added only when the request does
// not carry them.
func (a *Adapter) buildRequest(ctx context.Context, req *wire.Request) (*http.Request, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URI, req.Body())
	if err != nil {
		return nil, wire.NewConnectionError(fmt.Errorf("create request: %w", err))
	}
	httpReq.Header = req.Headers.HTTP()
	for _, name := range sortedNames(a.config.Headers) {
		if httpReq.Header.Get(name) == "" {
			httpReq.Header.Set(name, a.config.Headers[name])
		}
	}
	if httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", version.UserAgent(a.config.Name))
	}
	if req.Payload != nil {
		httpReq.Header.Set(wire.HeaderContentType, req.Payload.MediaType)
	}
	return httpReq, nil
}

// Name returns the adapter name (implements provider.Provider).
func (a *Adapter) Name() string {
	return a.config.Name
}

// IsAvailable reports false while the circuit breaker is open.
func (a *Adapter) IsAvailable(_ context.Context) bool {
	if a.cb != nil {
		return a.cb.State() != resilience.StateOpen
	}
	return true
}

// Close releases idle connections (implements provider.Closeable).
func (a *Adapter) Close(_ context.Context) error {
	a.httpClient.CloseIdleConnections()
	return nil
}

// Unwrap returns the underlying *http.Client.
func (a *Adapter) Unwrap() *http.Client {
	return a.httpClient
}

// GetConfig returns the adapter's configuration.
func (a *Adapter) GetConfig() Config {
	return a.config
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func sortedNames(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}
