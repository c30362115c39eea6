package wire

import (
	"net/http"
	"sort"
	"strings"
)

// Header is a single header line.
type Header struct {
	Name  string
	Value string
}

// Headers is an ordered header multimap. Duplicate names are allowed and
// insertion order is preserved.
type Headers []Header

// Get returns the first value for name (case-insensitive), or "".
func (h Headers) Get(name string) string {
	for _, hd := range h {
		if strings.EqualFold(hd.Name, name) {
			return hd.Value
		}
	}
	return ""
}

// Values returns every value for name in order.
func (h Headers) Values(name string) []string {
	var out []string
	for _, hd := range h {
		if strings.EqualFold(hd.Name, name) {
			out = append(out, hd.Value)
		}
	}
	return out
}

// Has reports whether at least one header named name is present.
func (h Headers) Has(name string) bool {
	for _, hd := range h {
		if strings.EqualFold(hd.Name, name) {
			return true
		}
	}
	return false
}

// Add returns a copy with name: value appended.
func (h Headers) Add(name, value string) Headers {
	out := make(Headers, len(h), len(h)+1)
	copy(out, h)
	return append(out, Header{Name: name, Value: value})
}

// Set returns a copy where every existing name header is removed and a
// single name: value is appended. Re-applying Set with the same arguments
// yields the same headers.
func (h Headers) Set(name, value string) Headers {
	return h.Del(name).Add(name, value)
}

// Del returns a copy without any header named name.
func (h Headers) Del(name string) Headers {
	out := make(Headers, 0, len(h))
	for _, hd := range h {
		if !strings.EqualFold(hd.Name, name) {
			out = append(out, hd)
		}
	}
	return out
}

// String renders the headers one per line as "Name: value\n".
func (h Headers) String() string {
	var b strings.Builder
	for _, hd := range h {
		b.WriteString(hd.Name)
		b.WriteString(": ")
		b.WriteString(hd.Value)
		b.WriteByte('\n')
	}
	return b.String()
}

// Equal reports whether both header lists hold the same lines in the same order.
func (h Headers) Equal(o Headers) bool {
	if len(h) != len(o) {
		return false
	}
	for i := range h {
		if h[i] != o[i] {
			return false
		}
	}
	return true
}

// HTTP converts the headers into an http.Header preserving value order per name.
func (h Headers) HTTP() http.Header {
	out := make(http.Header, len(h))
	for _, hd := range h {
		out.Add(hd.Name, hd.Value)
	}
	return out
}

// FromHTTP converts an http.Header into Headers sorted by canonical name.
func FromHTTP(src http.Header) Headers {
	names := make([]string, 0, len(src))
	for name := range src {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(Headers, 0, len(src))
	for _, name := range names {
		for _, v := range src[name] {
			out = append(out, Header{Name: name, Value: v})
		}
	}
	return out
}
