// Package builder compiles an operation signature and its argument values
// into a wire request. Building is pure: it performs no I/O and reads no
// shared mutable state, so a Builder is safe for concurrent use.
package builder

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/kbukum/restwire/codec"
	"github.com/kbukum/restwire/errors"
	"github.com/kbukum/restwire/signature"
	"github.com/kbukum/restwire/wire"
)

// TextAccept is the Accept value of operations returning raw text or a
// boolean.
const TextAccept = "text/plain"

// Builder turns signatures into wire requests against one base URL.
type Builder struct {
	codecs  *codec.Registry
	baseURL string
}

// New creates a Builder. baseURL is the absolute prefix of every path
// template, e.g. "http://localhost/api". A nil codec registry means
// codec.Default().
func New(codecs *codec.Registry, baseURL string) *Builder {
	if codecs == nil {
		codecs = codec.Default()
	}
	return &Builder{codecs: codecs, baseURL: strings.TrimRight(baseURL, "/")}
}

// BaseURL returns the base URL requests are resolved against.
func (b *Builder) BaseURL() string { return b.baseURL }

// Build resolves the path, assembles the query and headers in declaration
// order and encodes the payload. It fails with an ARGUMENT_BINDING error
// when args do not match the signature.
func (b *Builder) Build(sig *signature.Signature, args ...any) (*wire.Request, error) {
	op := sig.Key()
	if !sig.Accepts(args) {
		return nil, errors.ArgumentBinding(op, mismatch(sig, args))
	}

	bindings := sig.Bindings()
	base, err := b.resolveBase(sig, bindings, args)
	if err != nil {
		return nil, errors.ArgumentBinding(op, err.Error())
	}

	var query []string
	headers := wire.Headers{}
	if accept := AcceptFor(sig); accept != "" {
		headers = headers.Add(wire.HeaderAccept, accept)
	}

	var payload *wire.Payload
	for _, bd := range bindings {
		v := args[bd.Arg]
		switch bd.Kind {
		case signature.BindQuery:
			s, err := bd.Value(v, bd.Names[0])
			if err != nil {
				return nil, errors.ArgumentBinding(op, fmt.Sprintf("query %s: %v", bd.Names[0], err))
			}
			query = append(query, url.QueryEscape(bd.Names[0])+"="+url.QueryEscape(s))
		case signature.BindHeader:
			s, err := bd.Value(v, bd.Names[0])
			if err != nil {
				return nil, errors.ArgumentBinding(op, fmt.Sprintf("header %s: %v", bd.Names[0], err))
			}
			headers = headers.Add(bd.Names[0], s)
		case signature.BindOptions:
			q, h, err := expandOptions(v)
			if err != nil {
				return nil, errors.ArgumentBinding(op, err.Error())
			}
			query = append(query, q...)
			for _, hd := range h {
				headers = headers.Add(hd.Name, hd.Value)
			}
		case signature.BindBody:
			if isNil(v) {
				return nil, errors.ArgumentBinding(op, "request body is nil")
			}
			data, err := b.codecs.Encode(sig.Produces(), v)
			if err != nil {
				return nil, err
			}
			payload = &wire.Payload{Data: data, MediaType: sig.Produces()}
		}
	}

	uri := base
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(base, "?") {
			sep = "&"
		}
		uri += sep + strings.Join(query, "&")
	}

	return &wire.Request{
		Method:    sig.Method(),
		URI:       uri,
		Headers:   headers,
		Payload:   payload,
		Operation: op,
	}, nil
}

// AcceptFor returns the Accept value derived from the signature: text for
// PlainText and BooleanOn2xx, otherwise the consumed media type ("" when
// none is declared).
func AcceptFor(sig *signature.Signature) string {
	switch sig.Parser() {
	case signature.PlainText, signature.BooleanOn2xx:
		return TextAccept
	default:
		return sig.Consumes()
	}
}

// resolveBase renders the path template against the base URL, or against
// the endpoint link when one is bound.
func (b *Builder) resolveBase(sig *signature.Signature, bindings []signature.Binding, args []any) (string, error) {
	base := b.baseURL
	owner := make(map[string]signature.Binding)
	for _, bd := range bindings {
		switch bd.Kind {
		case signature.BindEndpoint:
			v := args[bd.Arg]
			if isNil(v) {
				return "", fmt.Errorf("endpoint %s: missing value", bd.Names[0])
			}
			href, err := bd.Value(v, bd.Names[0])
			if err != nil {
				return "", fmt.Errorf("endpoint %s: %w", bd.Names[0], err)
			}
			base = strings.TrimRight(href, "/")
		case signature.BindPath:
			for _, n := range bd.Names {
				owner[n] = bd
			}
		}
	}

	var path strings.Builder
	for _, seg := range sig.Path() {
		path.WriteByte('/')
		if !seg.Placeholder {
			path.WriteString(seg.Value)
			continue
		}
		bd, ok := owner[seg.Value]
		if !ok {
			return "", fmt.Errorf("placeholder {%s} is not bound", seg.Value)
		}
		v := args[bd.Arg]
		if isNil(v) {
			return "", fmt.Errorf("placeholder {%s}: missing value", seg.Value)
		}
		s, err := bd.Value(v, seg.Value)
		if err != nil {
			return "", fmt.Errorf("placeholder {%s}: %w", seg.Value, err)
		}
		if s == "" {
			return "", fmt.Errorf("placeholder {%s}: empty value", seg.Value)
		}
		path.WriteString(url.PathEscape(s))
	}
	return base + path.String(), nil
}

func expandOptions(v any) (query []string, headers wire.Headers, err error) {
	if isNil(v) {
		return nil, nil, nil
	}
	opts, ok := v.(signature.Options)
	if !ok {
		return nil, nil, fmt.Errorf("%T is not an options object", v)
	}
	for _, f := range opts.OptionFields() {
		if !f.Set {
			continue
		}
		s, err := signature.Canonical(f.Value)
		if err != nil {
			return nil, nil, fmt.Errorf("option %s: %w", f.Name, err)
		}
		switch f.In {
		case signature.InHeader:
			headers = append(headers, wire.Header{Name: f.Name, Value: s})
		default:
			query = append(query, url.QueryEscape(f.Name)+"="+url.QueryEscape(s))
		}
	}
	return query, headers, nil
}

func mismatch(sig *signature.Signature, args []any) string {
	params := sig.Params()
	if len(args) != len(params) {
		return fmt.Sprintf("expected %d arguments, got %d", len(params), len(args))
	}
	for i, p := range params {
		if !p.Accepts(args[i]) {
			return fmt.Sprintf("argument %d: expected %s, got %T", i, p.Name(), args[i])
		}
	}
	return "arguments do not match"
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func:
		return rv.IsNil()
	}
	return false
}
