package signature

import "fmt"

// ParserVariant selects how a successful response becomes a result.
type ParserVariant int

const (
	// StructuredDecode decodes the body per the consumed media type.
	StructuredDecode ParserVariant = iota
	// StreamDecode decodes an event-style body one record at a time.
	StreamDecode
	// PlainText returns the raw body as text.
	PlainText
	// BooleanOn2xx returns true for a 2xx status and discards the body.
	BooleanOn2xx
	// ReleaseOnly discards the body and returns nothing.
	ReleaseOnly
)

var parserNames = map[ParserVariant]string{
	StructuredDecode: "structured",
	StreamDecode:     "stream",
	PlainText:        "text",
	BooleanOn2xx:     "boolean",
	ReleaseOnly:      "release",
}

// String returns the variant's declaration name.
func (v ParserVariant) String() string {
	if s, ok := parserNames[v]; ok {
		return s
	}
	return fmt.Sprintf("parser(%d)", int(v))
}

// ParseParserVariant converts a declaration name into a ParserVariant.
func ParseParserVariant(s string) (ParserVariant, error) {
	for v, name := range parserNames {
		if name == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("signature: unknown parser %q", s)
}

// FallbackPolicy selects how a failed exchange is recovered or classified.
type FallbackPolicy int

const (
	// Default propagates every failure unchanged.
	Default FallbackPolicy = iota
	// NullOnNotFound turns a 404 into an empty result.
	NullOnNotFound
	// FalseIfUnavailable turns an unavailable dependency into false.
	FalseIfUnavailable
	// MapClientErrorsToDomainErrors reclassifies any 4xx by status.
	MapClientErrorsToDomainErrors
	// PropagateDomainExceptionOnClientOrNotFound surfaces the remote
	// service's error document for any 4xx, 404 included.
	PropagateDomainExceptionOnClientOrNotFound
	// ReleaseAndDiscard releases the body and propagates failures.
	ReleaseAndDiscard
)

// String returns the policy's declaration name.
func (p FallbackPolicy) String() string {
	switch p {
	case Default:
		return "default"
	case NullOnNotFound:
		return "null-on-not-found"
	case FalseIfUnavailable:
		return "false-if-unavailable"
	case MapClientErrorsToDomainErrors:
		return "map-client-errors"
	case PropagateDomainExceptionOnClientOrNotFound:
		return "propagate-domain-errors"
	case ReleaseAndDiscard:
		return "release-and-discard"
	default:
		return fmt.Sprintf("fallback(%d)", int(p))
	}
}

// ParseFallbackPolicy converts a declaration name into a FallbackPolicy.
func ParseFallbackPolicy(s string) (FallbackPolicy, error) {
	if s == "" {
		return Default, nil
	}
	for p := Default; p <= ReleaseAndDiscard; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("signature: unknown fallback %q", s)
}
