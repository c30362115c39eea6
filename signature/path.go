package signature

import (
	"fmt"
	"strings"
)

// Segment is one element of a path template: a literal or a placeholder.
type Segment struct {
	// Value is the literal text, or the placeholder name.
	Value string
	// Placeholder marks a {name} segment.
	Placeholder bool
}

// PathTemplate is an ordered sequence of segments rendered as
// "/seg1/seg2/...".
type PathTemplate []Segment

// ParsePath parses "/a/{b}/c" into a PathTemplate. Placeholders must span
// a whole segment and carry a non-empty name.
func ParsePath(path string) (PathTemplate, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return PathTemplate{}, nil
	}

	parts := strings.Split(trimmed, "/")
	tpl := make(PathTemplate, 0, len(parts))
	seen := make(map[string]bool)
	for _, p := range parts {
		switch {
		case p == "":
			return nil, fmt.Errorf("signature: empty segment in path %q", path)
		case strings.HasPrefix(p, "{") && strings.HasSuffix(p, "}"):
			name := p[1 : len(p)-1]
			if name == "" || strings.ContainsAny(name, "{}") {
				return nil, fmt.Errorf("signature: bad placeholder %q in path %q", p, path)
			}
			if seen[name] {
				return nil, fmt.Errorf("signature: placeholder {%s} repeated in path %q", name, path)
			}
			seen[name] = true
			tpl = append(tpl, Segment{Value: name, Placeholder: true})
		case strings.ContainsAny(p, "{}"):
			return nil, fmt.Errorf("signature: placeholder must span a whole segment, got %q", p)
		default:
			tpl = append(tpl, Segment{Value: p})
		}
	}
	return tpl, nil
}

// Placeholders returns the placeholder names in template order.
func (t PathTemplate) Placeholders() []string {
	var names []string
	for _, s := range t {
		if s.Placeholder {
			names = append(names, s.Value)
		}
	}
	return names
}

// String renders the template with placeholders in braces.
func (t PathTemplate) String() string {
	var b strings.Builder
	for _, s := range t {
		b.WriteByte('/')
		if s.Placeholder {
			b.WriteString("{" + s.Value + "}")
		} else {
			b.WriteString(s.Value)
		}
	}
	return b.String()
}
