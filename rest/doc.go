// Package rest invokes declared operations against a remote REST service.
//
// A Client resolves the operation in its signature registry, builds the
// wire request, runs the filter pipeline, sends the request through the
// instrumented transport and then either parses the response with the
// declared parser or hands the failure to the declared fallback policy.
//
//	reg := signature.MustRegistry(getDatacenter, listDatacenters)
//	c, err := rest.New(reg, "http://localhost/api", rest.WithFilters(filter.Basic("admin", "xabiquo")))
//	dc, found, err := rest.Find[*Datacenter](ctx, c, "getDatacenter", 1)
//
// Config and Component carry the same wiring for long-running processes:
// configuration is loaded with config.Load and the transport is started
// and stopped through a component.Registry.
package rest
