package provider_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/restwire/logger"
	"github.com/kbukum/restwire/observability"
	"github.com/kbukum/restwire/provider"
	"github.com/kbukum/restwire/wire"
)

type (
	transport = provider.RequestResponse[*wire.Request, *wire.Response]
	mw        = provider.Middleware[*wire.Request, *wire.Response]
)

func okTransport(status int) transport {
	return provider.Func("http", func(_ context.Context, _ *wire.Request) (*wire.Response, error) {
		return &wire.Response{StatusCode: status}, nil
	})
}

func failingTransport() transport {
	return provider.Func("http", func(_ context.Context, _ *wire.Request) (*wire.Response, error) {
		return nil, wire.NewConnectionError(errors.New("refused"))
	})
}

func listRacks() *wire.Request {
	return &wire.Request{
		Method:    "GET",
		URI:       "http://localhost/api/admin/datacenters/1/racks",
		Operation: "listRacks",
	}
}

func TestChain_Empty(t *testing.T) {
	wrapped := provider.Chain[*wire.Request, *wire.Response]()(okTransport(200))
	if wrapped.Name() != "http" {
		t.Fatalf("expected 'http', got %q", wrapped.Name())
	}
	resp, err := wrapped.Execute(context.Background(), listRacks())
	if err != nil || resp.StatusCode != 200 {
		t.Fatalf("unexpected result %v, %v", resp, err)
	}
}

type orderTracker struct {
	inner transport
	tag   string
	order *[]string
}

func (o *orderTracker) Name() string                         { return o.inner.Name() }
func (o *orderTracker) IsAvailable(ctx context.Context) bool { return o.inner.IsAvailable(ctx) }
func (o *orderTracker) Execute(ctx context.Context, req *wire.Request) (*wire.Response, error) {
	*o.order = append(*o.order, o.tag+":before")
	resp, err := o.inner.Execute(ctx, req)
	*o.order = append(*o.order, o.tag+":after")
	return resp, err
}

func TestChain_Order(t *testing.T) {
	var order []string
	track := func(tag string) mw {
		return func(inner transport) transport {
			return &orderTracker{inner: inner, tag: tag, order: &order}
		}
	}

	wrapped := provider.Chain(track("A"), nil, track("B"), track("C"))(okTransport(200))
	if _, err := wrapped.Execute(context.Background(), listRacks()); err != nil {
		t.Fatal(err)
	}

	want := "A:before B:before C:before C:after B:after A:after"
	if got := strings.Join(order, " "); got != want {
		t.Errorf("order = %q, want %q", got, want)
	}
}

func TestFunc_IsAvailable(t *testing.T) {
	if !okTransport(200).IsAvailable(context.Background()) {
		t.Fatal("Func providers are always available")
	}
}

func TestWithLogging(t *testing.T) {
	tests := []struct {
		name      string
		inner     transport
		wantLevel string
		wantKeys  []string
	}{
		{"success", okTransport(204), `"level":"debug"`, []string{`"status_code":"204"`, `"operation":"listRacks"`, `"method":"GET"`}},
		{"failure", failingTransport(), `"level":"error"`, []string{`"error":"wire: connection: refused"`, `"uri":"http://localhost/api/admin/datacenters/1/racks"`}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "test", &buf)
			wrapped := provider.WithLogging[*wire.Request, *wire.Response](log)(tc.inner)

			_, _ = wrapped.Execute(context.Background(), listRacks())

			out := buf.String()
			if !strings.Contains(out, tc.wantLevel) {
				t.Errorf("expected %s in %s", tc.wantLevel, out)
			}
			for _, k := range tc.wantKeys {
				if !strings.Contains(out, k) {
					t.Errorf("expected %s in %s", k, out)
				}
			}
		})
	}
}

func TestWithTracing(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	ok := provider.WithTracing[*wire.Request, *wire.Response]("abiquo")(okTransport(200))
	if _, err := ok.Execute(context.Background(), listRacks()); err != nil {
		t.Fatal(err)
	}
	bad := provider.WithTracing[*wire.Request, *wire.Response]("abiquo")(failingTransport())
	if _, err := bad.Execute(context.Background(), listRacks()); err == nil {
		t.Fatal("expected error")
	}

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Name != "abiquo.http" {
		t.Errorf("span name = %q", spans[0].Name)
	}
	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	if attrs["http.operation"] != "listRacks" || attrs["http.status_code"] != "200" {
		t.Errorf("unexpected attributes %v", attrs)
	}
	if len(spans[1].Events) == 0 {
		t.Error("expected error event on failed span")
	}
}

func TestWithMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())
	metrics, err := observability.NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatal(err)
	}

	chain := provider.Chain[*wire.Request, *wire.Response](
		provider.WithMetrics[*wire.Request, *wire.Response](metrics),
	)
	_, _ = chain(okTransport(404)).Execute(context.Background(), listRacks())
	_, _ = chain(failingTransport()).Execute(context.Background(), listRacks())

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatal(err)
	}
	statuses := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "restwire.transport.total" {
				continue
			}
			for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
				v, _ := dp.Attributes.Value("status")
				op, _ := dp.Attributes.Value("operation")
				if op.AsString() != "listRacks" {
					t.Errorf("operation label = %q", op.AsString())
				}
				statuses[v.AsString()] += dp.Value
			}
		}
	}
	if statuses["404"] != 1 || statuses["error"] != 1 {
		t.Errorf("unexpected status counts %v", statuses)
	}
}

func TestMiddlewaresDelegate(t *testing.T) {
	inner := okTransport(200)
	log := logger.NewDefault("test")
	wrapped := provider.Chain(
		provider.WithLogging[*wire.Request, *wire.Response](log),
		provider.WithTracing[*wire.Request, *wire.Response]("svc"),
		provider.WithMetrics[*wire.Request, *wire.Response](nil),
	)(inner)

	if wrapped.Name() != "http" || !wrapped.IsAvailable(context.Background()) {
		t.Fatal("expected name and availability to delegate")
	}
}

type closer struct{ closed bool }

func (c *closer) Close(context.Context) error { c.closed = true; return nil }

func TestCloseIfCloseable(t *testing.T) {
	c := &closer{}
	if err := provider.CloseIfCloseable(context.Background(), c); err != nil || !c.closed {
		t.Fatalf("expected Close to be called, err %v", err)
	}
	if err := provider.CloseIfCloseable(context.Background(), okTransport(200)); err != nil {
		t.Fatalf("non-closeable should be a no-op, got %v", err)
	}
}
