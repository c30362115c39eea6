package codec

import (
	"encoding/xml"
	"fmt"

	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v3"
)

// XMLHeader prefixes every encoded XML payload.
const XMLHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`

// JSON encodes with goccy/go-json.
type JSON struct{}

// Encode implements Codec.
func (JSON) Encode(v any) ([]byte, error) { return json.Marshal(v) }

// Decode implements Codec.
func (JSON) Decode(data []byte, v any) error { return json.Unmarshal(data, v) }

// XML encodes with encoding/xml and prepends the standalone declaration.
type XML struct{}

// Encode implements Codec.
func (XML) Encode(v any) ([]byte, error) {
	data, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append([]byte(XMLHeader), data...), nil
}

// Decode implements Codec.
func (XML) Decode(data []byte, v any) error { return xml.Unmarshal(data, v) }

// YAML encodes with go.yaml.in/yaml/v3.
type YAML struct{}

// Encode implements Codec.
func (YAML) Encode(v any) ([]byte, error) { return yaml.Marshal(v) }

// Decode implements Codec.
func (YAML) Decode(data []byte, v any) error { return yaml.Unmarshal(data, v) }

// Text passes strings and byte slices through unchanged.
type Text struct{}

// Encode implements Codec.
func (Text) Encode(v any) ([]byte, error) {
	switch x := v.(type) {
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case fmt.Stringer:
		return []byte(x.String()), nil
	default:
		return nil, fmt.Errorf("codec: text cannot encode %T", v)
	}
}

// Decode implements Codec.
func (Text) Decode(data []byte, v any) error {
	switch x := v.(type) {
	case *string:
		*x = string(data)
	case *[]byte:
		*x = append((*x)[:0], data...)
	default:
		return fmt.Errorf("codec: text cannot decode into %T", v)
	}
	return nil
}
