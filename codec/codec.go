// Package codec serializes request bodies and decodes response bodies by
// media type. A Registry maps concrete media types and structured-syntax
// suffixes (+xml, +json, +yaml) to codecs.
package codec

import (
	"mime"
	"strings"

	"github.com/kbukum/restwire/errors"
)

// Common media types.
const (
	MediaJSON   = "application/json"
	MediaXML    = "application/xml"
	MediaYAML   = "application/yaml"
	MediaText   = "text/plain"
	MediaSSE    = "text/event-stream"
	MediaNDJSON = "application/x-ndjson"
)

// Codec converts values to and from bytes for one family of media types.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

// EncodeFunc encodes a value.
type EncodeFunc func(v any) ([]byte, error)

// DecodeFunc decodes data into v.
type DecodeFunc func(data []byte, v any) error

// Funcs adapts a pair of functions to Codec.
type Funcs struct {
	EncodeFunc EncodeFunc
	DecodeFunc DecodeFunc
}

// Encode implements Codec.
func (f Funcs) Encode(v any) ([]byte, error) { return f.EncodeFunc(v) }

// Decode implements Codec.
func (f Funcs) Decode(data []byte, v any) error { return f.DecodeFunc(data, v) }

// Registry resolves codecs by media type. Register everything before
// sharing the registry; lookups are safe for concurrent use afterwards.
type Registry struct {
	byType   map[string]Codec
	bySuffix map[string]Codec
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byType:   make(map[string]Codec),
		bySuffix: make(map[string]Codec),
	}
}

// Default returns a registry with the JSON, XML, YAML and plain-text codecs
// and their structured-syntax suffixes registered.
func Default() *Registry {
	r := NewRegistry()
	r.Register(MediaJSON, JSON{})
	r.Register("text/json", JSON{})
	r.RegisterSuffix("json", JSON{})
	r.Register(MediaXML, XML{})
	r.Register("text/xml", XML{})
	r.RegisterSuffix("xml", XML{})
	r.Register(MediaYAML, YAML{})
	r.Register("application/x-yaml", YAML{})
	r.RegisterSuffix("yaml", YAML{})
	r.Register(MediaText, Text{})
	return r
}

// Register binds a concrete media type to a codec.
func (r *Registry) Register(mediaType string, c Codec) *Registry {
	r.byType[normalize(mediaType)] = c
	return r
}

// RegisterSuffix binds a structured-syntax suffix ("xml" for "+xml").
func (r *Registry) RegisterSuffix(suffix string, c Codec) *Registry {
	r.bySuffix[strings.ToLower(strings.TrimPrefix(suffix, "+"))] = c
	return r
}

// Lookup returns the codec for mediaType. Parameters are ignored; an exact
// match wins over a suffix match.
func (r *Registry) Lookup(mediaType string) (Codec, error) {
	mt := normalize(mediaType)
	if c, ok := r.byType[mt]; ok {
		return c, nil
	}
	if i := strings.LastIndexByte(mt, '+'); i >= 0 {
		if c, ok := r.bySuffix[mt[i+1:]]; ok {
			return c, nil
		}
	}
	return nil, errors.UnsupportedMediaType(mediaType)
}

// Encode serializes v as mediaType.
func (r *Registry) Encode(mediaType string, v any) ([]byte, error) {
	c, err := r.Lookup(mediaType)
	if err != nil {
		return nil, err
	}
	data, err := c.Encode(v)
	if err != nil {
		return nil, errors.EncodeFailure(mediaType, err)
	}
	return data, nil
}

// Decode deserializes data of mediaType into v.
func (r *Registry) Decode(mediaType string, data []byte, v any) error {
	c, err := r.Lookup(mediaType)
	if err != nil {
		return err
	}
	if err := c.Decode(data, v); err != nil {
		return errors.DecodeFailure(mediaType, err)
	}
	return nil
}

func normalize(mediaType string) string {
	mt, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		mt, _, _ = strings.Cut(mediaType, ";")
	}
	return strings.ToLower(strings.TrimSpace(mt))
}
