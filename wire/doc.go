// Package wire defines the concrete HTTP exchange produced and consumed by
// restwire: a fully resolved Request (method, absolute URI, ordered
// non-payload headers, optional payload) and a Response owned by the
// transport. It also classifies failed exchanges into *Error.
//
// A Request is a value handed from the builder to filters and then to the
// transport. Filters never mutate a Request in place; the With* methods
// return modified copies.
package wire
