// Package compute is a typed client of the flavor operations of a compute
// API. Requests carry an X-Auth-Token obtained from a login session.
package compute

import (
	"context"

	"github.com/kbukum/restwire/filter"
	"github.com/kbukum/restwire/rest"
)

// ServiceName names the client in logs, spans and metrics.
const ServiceName = "compute"

// API is the typed compute client.
type API struct {
	client  *rest.Client
	session *filter.Session
}

// New creates an API against a tenant endpoint. login is called lazily and
// its token is cached until shortly before it expires.
func New(endpoint string, login filter.LoginFunc, opts ...rest.Option) (*API, error) {
	session := filter.NewSession(login)
	opts = append([]rest.Option{
		rest.WithName(ServiceName),
		rest.WithFilters(filter.AuthTokenHeader(session)),
	}, opts...)
	c, err := rest.New(Registry(), endpoint, opts...)
	if err != nil {
		return nil, err
	}
	return &API{client: c, session: session}, nil
}

// Client returns the underlying client.
func (a *API) Client() *rest.Client { return a.client }

// Logout drops the cached token; the next call logs in again.
func (a *API) Logout() { a.session.Invalidate() }

// ListFlavors lists flavor summaries. A missing collection is empty.
func (a *API) ListFlavors(ctx context.Context) ([]Flavor, error) {
	return a.list(ctx, "listFlavors")
}

// ListFlavorsInDetail lists flavors with their hardware details.
func (a *API) ListFlavorsInDetail(ctx context.Context) ([]Flavor, error) {
	return a.list(ctx, "listFlavorsInDetail")
}

// GetFlavor returns the flavor with the given id, or nil if there is none.
func (a *API) GetFlavor(ctx context.Context, id string) (*Flavor, error) {
	doc, ok, err := rest.Find[flavorDocument](ctx, a.client, "getFlavor", id)
	if err != nil || !ok {
		return nil, err
	}
	return &doc.Flavor, nil
}

func (a *API) list(ctx context.Context, name string) ([]Flavor, error) {
	doc, _, err := rest.Find[flavorList](ctx, a.client, name)
	if err != nil {
		return nil, err
	}
	if doc.Flavors == nil {
		return []Flavor{}, nil
	}
	return doc.Flavors, nil
}
