package rest

import "context"

// Call invokes name and returns its result as a T. A fallback that yields
// an empty result returns the zero T.
//
// T follows the declared parser: a decoded type for StructuredDecode,
// string for PlainText, bool for BooleanOn2xx, []sse.Event for
// StreamDecode, and struct{} for ReleaseOnly.
func Call[T any](ctx context.Context, c *Client, name string, args ...any) (T, error) {
	var out T
	err := c.Invoke(ctx, &out, name, args...)
	return out, err
}

// Find is Call that also reports whether a result was present. It returns
// false when the fallback policy turned the failure into an empty result,
// such as a 404 under NullOnNotFound.
func Find[T any](ctx context.Context, c *Client, name string, args ...any) (T, bool, error) {
	var out T
	res, err := c.Do(ctx, &out, name, args...)
	if err != nil {
		return out, false, err
	}
	return out, !res.Absent(), nil
}

// Exec invokes name for its side effect only.
func Exec(ctx context.Context, c *Client, name string, args ...any) error {
	return c.Invoke(ctx, nil, name, args...)
}
