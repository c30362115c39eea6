// Package filter provides request mutators applied after a request is built
// and before it is dispatched.
//
// Filters are configured once per client and run on every invocation in
// declaration order. A filter returns a new request rather than mutating
// its input, and re-applying a filter to its own output yields the same
// request: headers it owns are replaced, never duplicated.
package filter

import (
	"context"
	"fmt"

	"github.com/kbukum/restwire/wire"
)

// Filter transforms an outbound request.
type Filter interface {
	Apply(ctx context.Context, req *wire.Request) (*wire.Request, error)
}

// Func adapts a function to Filter.
type Func func(ctx context.Context, req *wire.Request) (*wire.Request, error)

// Apply implements Filter.
func (f Func) Apply(ctx context.Context, req *wire.Request) (*wire.Request, error) {
	return f(ctx, req)
}

// Pipeline is an ordered, immutable list of filters.
type Pipeline struct {
	filters []Filter
}

// NewPipeline creates a pipeline running filters in the given order. Nil
// filters are skipped.
func NewPipeline(filters ...Filter) *Pipeline {
	p := &Pipeline{}
	for _, f := range filters {
		if f != nil {
			p.filters = append(p.filters, f)
		}
	}
	return p
}

// With returns a new pipeline with filters appended.
func (p *Pipeline) With(filters ...Filter) *Pipeline {
	return NewPipeline(append(append([]Filter(nil), p.filters...), filters...)...)
}

// Len returns the number of filters.
func (p *Pipeline) Len() int {
	if p == nil {
		return 0
	}
	return len(p.filters)
}

// Apply runs every filter in order. The first error aborts the pipeline.
func (p *Pipeline) Apply(ctx context.Context, req *wire.Request) (*wire.Request, error) {
	if p == nil {
		return req, nil
	}
	for i, f := range p.filters {
		next, err := f.Apply(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("filter %d: %w", i, err)
		}
		if next == nil {
			return nil, fmt.Errorf("filter %d returned no request", i)
		}
		req = next
	}
	return req, nil
}

// Header sets name to value, replacing any previous value.
func Header(name, value string) Filter {
	return Func(func(_ context.Context, req *wire.Request) (*wire.Request, error) {
		return req.WithHeader(name, value), nil
	})
}

// DefaultHeader sets name to value only when the request has no such header.
func DefaultHeader(name, value string) Filter {
	return Func(func(_ context.Context, req *wire.Request) (*wire.Request, error) {
		if req.Headers.Has(name) {
			return req, nil
		}
		return req.AddHeader(name, value), nil
	})
}

// Headers sets every header of a map, in sorted key order.
func Headers(headers map[string]string) Filter {
	names := sortedKeys(headers)
	return Func(func(_ context.Context, req *wire.Request) (*wire.Request, error) {
		for _, n := range names {
			req = req.WithHeader(n, headers[n])
		}
		return req, nil
	})
}
