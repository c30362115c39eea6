// Package fallback decides what a failed invocation turns into: a
// substitute value, an empty result, a domain error or the failure itself.
//
// The decision depends only on the signature's declared policy and on the
// failure; the resolver performs no I/O and keeps no state beyond its codec
// registry.
package fallback

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/kbukum/restwire/codec"
	"github.com/kbukum/restwire/errors"
	"github.com/kbukum/restwire/signature"
	"github.com/kbukum/restwire/wire"
)

// Resolver applies fallback policies.
type Resolver struct {
	codecs *codec.Registry
}

// NewResolver creates a Resolver that decodes remote error documents with
// codecs. A nil registry means codec.Default().
func NewResolver(codecs *codec.Registry) *Resolver {
	if codecs == nil {
		codecs = codec.Default()
	}
	return &Resolver{codecs: codecs}
}

var defaultResolver = NewResolver(nil)

// Resolve applies sig's policy with the default codecs.
func Resolve(sig *signature.Signature, failure error) Outcome {
	return defaultResolver.Resolve(sig, failure)
}

// Resolve applies sig's fallback policy to failure. It is called only for
// failed invocations; a nil failure propagates as nil.
func (r *Resolver) Resolve(sig *signature.Signature, failure error) Outcome {
	if failure == nil {
		return Propagate(nil)
	}
	switch sig.Fallback() {
	case signature.NullOnNotFound:
		if wire.IsNotFound(failure) {
			return Empty()
		}
	case signature.FalseIfUnavailable:
		if Unavailable(failure) {
			return Value(false)
		}
	case signature.MapClientErrorsToDomainErrors:
		if e, ok := clientError(failure); ok {
			return Reclassified(r.mapped(e))
		}
	case signature.PropagateDomainExceptionOnClientOrNotFound:
		if e, ok := clientError(failure); ok {
			return Reclassified(r.remote(e))
		}
	}
	return Propagate(failure)
}

// Unavailable reports whether failure means the remote service or its
// dependency is absent: no response at all, a 404, or any 5xx.
func Unavailable(failure error) bool {
	return wire.IsTransportFailure(failure) || wire.IsNotFound(failure) || wire.IsServerError(failure)
}

func clientError(failure error) (*wire.Error, bool) {
	e, ok := wire.AsError(failure)
	if !ok || e.StatusCode < 400 || e.StatusCode >= 500 {
		return nil, false
	}
	return e, true
}

// mapped derives the domain error code from the status; a decodable error
// document only refines the message.
func (r *Resolver) mapped(e *wire.Error) *errors.DomainError {
	de := &errors.DomainError{
		StatusCode: e.StatusCode,
		Code:       errors.CodeForStatus(e.StatusCode),
		Message:    statusMessage(e.StatusCode),
		Body:       e.Body,
		Cause:      e,
	}
	if doc, ok := r.document(e); ok {
		de.Errors = doc.Errors
		de.Message = doc.Errors[0].Message
	}
	return de
}

// remote surfaces the service's own error document, synthesizing one entry
// from the status when the body holds none.
func (r *Resolver) remote(e *wire.Error) *errors.DomainError {
	de := &errors.DomainError{
		StatusCode: e.StatusCode,
		Code:       errors.ErrCodeRemoteService,
		Body:       e.Body,
		Cause:      e,
	}
	if doc, ok := r.document(e); ok {
		de.Errors = doc.Errors
	} else {
		de.Errors = []errors.ServiceError{{
			Code:    strconv.Itoa(e.StatusCode),
			Message: statusMessage(e.StatusCode),
		}}
	}
	de.Message = de.Errors[0].Message
	return de
}

func (r *Resolver) document(e *wire.Error) (errors.ServiceErrors, bool) {
	var doc errors.ServiceErrors
	if len(e.Body) == 0 || e.ContentType == "" {
		return doc, false
	}
	if err := r.codecs.Decode(e.ContentType, e.Body, &doc); err != nil {
		return doc, false
	}
	return doc, len(doc.Errors) > 0
}

func statusMessage(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", status)
}
