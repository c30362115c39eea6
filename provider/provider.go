package provider

import "context"

// Provider is the base interface all providers implement.
type Provider interface {
	// Name returns the provider's unique name.
	Name() string
	// IsAvailable checks if the provider is ready to handle requests.
	IsAvailable(ctx context.Context) bool
}

// RequestResponse takes one input and returns one output. The HTTP
// transport is a RequestResponse[*wire.Request, *wire.Response].
type RequestResponse[I, O any] interface {
	Provider
	Execute(ctx context.Context, input I) (O, error)
}

// Describer is implemented by inputs and outputs that can label logs,
// spans and metrics. Values that do not implement it are described by
// the provider name alone.
type Describer interface {
	Attributes() map[string]string
}

// Func adapts a plain function to RequestResponse. It is always available.
func Func[I, O any](name string, fn func(ctx context.Context, input I) (O, error)) RequestResponse[I, O] {
	return &funcRR[I, O]{name: name, fn: fn}
}

type funcRR[I, O any] struct {
	name string
	fn   func(ctx context.Context, input I) (O, error)
}

func (f *funcRR[I, O]) Name() string                     { return f.name }
func (f *funcRR[I, O]) IsAvailable(context.Context) bool { return true }

func (f *funcRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	return f.fn(ctx, input)
}

func describe(v any) map[string]string {
	if d, ok := v.(Describer); ok {
		return d.Attributes()
	}
	return nil
}
