package filter

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/kbukum/restwire/logger"
	"github.com/kbukum/restwire/wire"
)

// HeaderRequestID carries the correlation id of an invocation.
const HeaderRequestID = "X-Request-Id"

// RequestID adds an X-Request-Id header: the id stored with
// logger.ContextWithRequestID when present, otherwise a random UUID.
// An existing id is kept so re-applying the filter does not change it.
func RequestID() Filter {
	return Func(func(ctx context.Context, req *wire.Request) (*wire.Request, error) {
		if req.Headers.Has(HeaderRequestID) {
			return req, nil
		}
		id := logger.RequestIDFromContext(ctx)
		if id == "" {
			id = uuid.NewString()
		}
		return req.AddHeader(HeaderRequestID, id), nil
	})
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
