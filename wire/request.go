package wire

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"
)

const (
	// HeaderAccept is the content negotiation header set by the builder.
	HeaderAccept = "Accept"
	// HeaderContentType is emitted only alongside a payload.
	HeaderContentType = "Content-Type"
)

// Payload is a serialized request body with its declared media type.
type Payload struct {
	// Data is the encoded body.
	Data []byte
	// MediaType is sent as the Content-Type header.
	MediaType string
}

// Request is a fully resolved outbound HTTP request.
type Request struct {
	// Method is the HTTP method.
	Method string
	// URI is the absolute request URI including the query string.
	URI string
	// Headers are the non-payload headers. Never nil for built requests.
	Headers Headers
	// Payload is the request body, nil when the operation sends none.
	Payload *Payload
	// Operation names the declared operation that produced the request.
	Operation string
}

// RequestLine renders "METHOD <absolute-uri> HTTP/1.1".
func (r *Request) RequestLine() string {
	return fmt.Sprintf("%s %s HTTP/1.1", r.Method, r.URI)
}

// Clone returns a deep copy of the request.
func (r *Request) Clone() *Request {
	c := *r
	c.Headers = make(Headers, len(r.Headers))
	copy(c.Headers, r.Headers)
	if r.Payload != nil {
		p := *r.Payload
		p.Data = bytes.Clone(r.Payload.Data)
		c.Payload = &p
	}
	return &c
}

// WithHeader returns a copy where name is replaced by a single value.
func (r *Request) WithHeader(name, value string) *Request {
	c := r.Clone()
	c.Headers = r.Headers.Set(name, value)
	return c
}

// AddHeader returns a copy with name: value appended.
func (r *Request) AddHeader(name, value string) *Request {
	c := r.Clone()
	c.Headers = r.Headers.Add(name, value)
	return c
}

// WithoutHeader returns a copy without any header named name.
func (r *Request) WithoutHeader(name string) *Request {
	c := r.Clone()
	c.Headers = r.Headers.Del(name)
	return c
}

// WithQueryParam returns a copy whose URI carries name=value exactly once.
// An existing pair for name is replaced in place; otherwise the pair is
// appended after the existing query.
func (r *Request) WithQueryParam(name, value string) (*Request, error) {
	u, err := url.Parse(r.URI)
	if err != nil {
		return nil, fmt.Errorf("wire: parse uri %q: %w", r.URI, err)
	}
	pair := url.QueryEscape(name) + "=" + url.QueryEscape(value)

	var parts []string
	replaced := false
	if u.RawQuery != "" {
		for _, p := range strings.Split(u.RawQuery, "&") {
			key, _, _ := strings.Cut(p, "=")
			if k, _ := url.QueryUnescape(key); k == name {
				if !replaced {
					parts = append(parts, pair)
					replaced = true
				}
				continue
			}
			parts = append(parts, p)
		}
	}
	if !replaced {
		parts = append(parts, pair)
	}
	u.RawQuery = strings.Join(parts, "&")

	c := r.Clone()
	c.URI = u.String()
	return c, nil
}

// ContentType returns the payload media type, or "" without a payload.
func (r *Request) ContentType() string {
	if r.Payload == nil {
		return ""
	}
	return r.Payload.MediaType
}

// Body returns a fresh reader over the payload, or nil without one.
func (r *Request) Body() io.Reader {
	if r.Payload == nil {
		return nil
	}
	return bytes.NewReader(r.Payload.Data)
}

// Equal reports whether two requests are byte-identical on the wire.
func (r *Request) Equal(o *Request) bool {
	if r.Method != o.Method || r.URI != o.URI || !r.Headers.Equal(o.Headers) {
		return false
	}
	if (r.Payload == nil) != (o.Payload == nil) {
		return false
	}
	if r.Payload == nil {
		return true
	}
	return r.Payload.MediaType == o.Payload.MediaType && bytes.Equal(r.Payload.Data, o.Payload.Data)
}

// String renders the request as it would appear on the wire.
func (r *Request) String() string {
	var b strings.Builder
	b.WriteString(r.RequestLine())
	b.WriteByte('\n')
	b.WriteString(r.Headers.String())
	if r.Payload != nil {
		b.WriteString(HeaderContentType + ": " + r.Payload.MediaType + "\n\n")
		b.Write(r.Payload.Data)
	}
	return b.String()
}

// Attributes describes the request for logs, spans and metric labels.
func (r *Request) Attributes() map[string]string {
	if r == nil {
		return nil
	}
	return map[string]string{
		"operation": r.Operation,
		"method":    r.Method,
		"uri":       r.URI,
	}
}
