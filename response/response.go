// Package response selects and runs the parser that turns a successful
// wire response into a caller-visible result.
//
// The parser variant is fixed on the signature at declaration time; Select
// never looks at the response itself.
package response

import (
	"fmt"
	"io"
	"strings"

	"github.com/kbukum/restwire/codec"
	"github.com/kbukum/restwire/codec/sse"
	"github.com/kbukum/restwire/errors"
	"github.com/kbukum/restwire/signature"
	"github.com/kbukum/restwire/wire"
)

// Select returns the parser variant declared for sig.
func Select(sig *signature.Signature) signature.ParserVariant {
	return sig.Parser()
}

// Parser decodes a successful response into the caller's target. Every
// Parser closes the response body, whatever the outcome.
type Parser interface {
	Parse(resp *wire.Response, into any) error
}

// ParserFunc adapts a function to Parser.
type ParserFunc func(resp *wire.Response, into any) error

// Parse implements Parser.
func (f ParserFunc) Parse(resp *wire.Response, into any) error { return f(resp, into) }

// Parsers builds the Parser of each variant over one codec registry.
type Parsers struct {
	codecs *codec.Registry
}

// NewParsers creates a Parsers. A nil registry means codec.Default().
func NewParsers(codecs *codec.Registry) *Parsers {
	if codecs == nil {
		codecs = codec.Default()
	}
	return &Parsers{codecs: codecs}
}

// For returns the Parser selected for sig.
func (p *Parsers) For(sig *signature.Signature) Parser {
	switch Select(sig) {
	case signature.StructuredDecode:
		return &structured{codecs: p.codecs, mediaType: sig.Consumes()}
	case signature.StreamDecode:
		return &stream{codecs: p.codecs, mediaType: sig.Consumes()}
	case signature.PlainText:
		return ParserFunc(parseText)
	case signature.BooleanOn2xx:
		return ParserFunc(parseBoolean)
	default:
		return ParserFunc(release)
	}
}

// Parse runs the Parser selected for sig.
func (p *Parsers) Parse(sig *signature.Signature, resp *wire.Response, into any) error {
	return p.For(sig).Parse(resp, into)
}

type structured struct {
	codecs    *codec.Registry
	mediaType string
}

// Parse decodes the body as the consumed media type. An empty body leaves
// the target untouched.
func (s *structured) Parse(resp *wire.Response, into any) error {
	if into == nil {
		return resp.Release()
	}
	data, err := resp.ReadAll()
	if err != nil {
		return wire.NewConnectionError(fmt.Errorf("reading response body: %w", err))
	}
	if len(data) == 0 {
		return nil
	}
	return s.codecs.Decode(s.mediaType, data, into)
}

type stream struct {
	codecs    *codec.Registry
	mediaType string
}

// Parse reads events into a *[]sse.Event or hands each one to a
// func(sse.Event) error. Newline-delimited bodies yield one event per line.
func (s *stream) Parse(resp *wire.Response, into any) error {
	if resp.Body == nil {
		return nil
	}
	var r sse.Reader
	if isLineDelimited(resp.ContentType(), s.mediaType) {
		r = sse.NewLineReader(resp.Body)
	} else {
		r = sse.NewReader(resp.Body)
	}

	switch target := into.(type) {
	case nil:
		return r.Close()
	case *[]sse.Event:
		events, err := sse.ReadAll(r)
		*target = events
		if err != nil {
			return wire.NewConnectionError(fmt.Errorf("reading event stream: %w", err))
		}
		return nil
	case func(sse.Event) error:
		defer func() { _ = r.Close() }()
		for {
			ev, err := r.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return wire.NewConnectionError(fmt.Errorf("reading event stream: %w", err))
			}
			if err := target(*ev); err != nil {
				return err
			}
		}
	default:
		_ = r.Close()
		return errors.DecodeFailure(s.mediaType, fmt.Errorf("cannot stream into %T", into))
	}
}

func isLineDelimited(types ...string) bool {
	for _, t := range types {
		if t == codec.MediaNDJSON || strings.HasSuffix(t, "+ndjson") {
			return true
		}
	}
	return false
}

func parseText(resp *wire.Response, into any) error {
	data, err := resp.ReadAll()
	if err != nil {
		return wire.NewConnectionError(fmt.Errorf("reading response body: %w", err))
	}
	switch target := into.(type) {
	case nil:
		return nil
	case *string:
		*target = string(data)
	case *[]byte:
		*target = data
	default:
		return errors.DecodeFailure(codec.MediaText, fmt.Errorf("cannot decode text into %T", into))
	}
	return nil
}

func parseBoolean(resp *wire.Response, into any) error {
	ok := resp.IsSuccess()
	if err := resp.Release(); err != nil {
		return wire.NewConnectionError(fmt.Errorf("releasing response body: %w", err))
	}
	switch target := into.(type) {
	case nil:
	case *bool:
		*target = ok
	default:
		return errors.DecodeFailure(codec.MediaText, fmt.Errorf("cannot decode boolean into %T", into))
	}
	return nil
}

func release(resp *wire.Response, _ any) error {
	return resp.Release()
}
