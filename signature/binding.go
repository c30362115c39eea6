package signature

import (
	"fmt"
	"strconv"
)

// BindingKind identifies where an argument lands in the wire request.
type BindingKind int

const (
	// BindPath fills one or more path placeholders.
	BindPath BindingKind = iota
	// BindQuery appends one query parameter.
	BindQuery
	// BindHeader appends one header.
	BindHeader
	// BindBody serializes the argument as the payload.
	BindBody
	// BindOptions expands an Options value into query parameters and headers.
	BindOptions
	// BindEndpoint supplies the absolute base URI, replacing the base URL.
	BindEndpoint
)

// String returns the kind's declaration name.
func (k BindingKind) String() string {
	switch k {
	case BindPath:
		return "path"
	case BindQuery:
		return "query"
	case BindHeader:
		return "header"
	case BindBody:
		return "body"
	case BindOptions:
		return "options"
	case BindEndpoint:
		return "endpoint"
	default:
		return fmt.Sprintf("binding(%d)", int(k))
	}
}

// ParseBindingKind converts a declaration name into a BindingKind.
func ParseBindingKind(s string) (BindingKind, error) {
	for k := BindPath; k <= BindEndpoint; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("signature: unknown binding kind %q", s)
}

// Renderer converts an argument into the string bound to name.
type Renderer func(v any, name string) (string, error)

// Binding maps one argument position to a part of the wire request.
type Binding struct {
	// Kind is where the argument lands.
	Kind BindingKind
	// Arg is the zero-based argument position.
	Arg int
	// Names holds the placeholders filled (BindPath), the parameter or
	// header name (BindQuery, BindHeader) or the link relation (BindEndpoint).
	Names []string
	// Render overrides the default rendering. Optional.
	Render Renderer
}

// Value renders v for name using the binding's Renderer, falling back to
// RenderValue.
func (b Binding) Value(v any, name string) (string, error) {
	if b.Render != nil {
		return b.Render(v, name)
	}
	if b.Kind == BindEndpoint {
		return RenderLink(v, name)
	}
	return RenderValue(v, name)
}

// WireNamer is implemented by enumerations that have a wire name distinct
// from their Go representation.
type WireNamer interface {
	WireName() string
}

// PathValuer is implemented by entities that fill path placeholders, such
// as a rack filling both {datacenter} and {rack}.
type PathValuer interface {
	PathValue(name string) (string, bool)
}

// Linker is implemented by entities that carry hypermedia links.
type Linker interface {
	Link(rel string) (string, bool)
}

// RenderValue renders v for the placeholder or parameter name: entities
// answer through PathValuer, everything else through Canonical.
func RenderValue(v any, name string) (string, error) {
	if pv, ok := v.(PathValuer); ok {
		if s, ok := pv.PathValue(name); ok {
			return s, nil
		}
		return "", fmt.Errorf("%T has no value for {%s}", v, name)
	}
	return Canonical(v)
}

// RenderLink resolves the link relation rel on v, or accepts v as an
// absolute URI string.
func RenderLink(v any, rel string) (string, error) {
	if l, ok := v.(Linker); ok {
		if href, ok := l.Link(rel); ok && href != "" {
			return href, nil
		}
		return "", fmt.Errorf("%T has no %q link", v, rel)
	}
	return Canonical(v)
}

// Canonical renders scalars and enumerations in their canonical string
// form. Enumerations render their wire name, never an ordinal.
func Canonical(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", fmt.Errorf("missing value")
	case string:
		return x, nil
	case WireNamer:
		return x.WireName(), nil
	case fmt.Stringer:
		return x.String(), nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int8:
		return strconv.FormatInt(int64(x), 10), nil
	case int16:
		return strconv.FormatInt(int64(x), 10), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("no canonical form for %T", v)
	}
}
