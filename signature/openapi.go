package signature

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// OpenAPI extensions understood by FromOpenAPI.
const (
	// ExtParser overrides the parser variant ("structured", "text", ...).
	ExtParser = "x-parser"
	// ExtFallback sets the fallback policy ("null-on-not-found", ...).
	ExtFallback = "x-fallback"
	// ExtArgType names the parameter or body type in the TypeTable.
	ExtArgType = "x-arg-type"
)

// LoadOpenAPIFile loads, validates and converts an OpenAPI 3 document.
func LoadOpenAPIFile(path string, types TypeTable) ([]*Signature, error) {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = false

	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("signature: loading %s: %w", path, err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("signature: validating %s: %w", path, err)
	}
	return FromOpenAPI(doc, types)
}

// LoadOpenAPIData is LoadOpenAPIFile for an in-memory document.
func LoadOpenAPIData(data []byte, types TypeTable) ([]*Signature, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("signature: loading document: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("signature: validating document: %w", err)
	}
	return FromOpenAPI(doc, types)
}

// FromOpenAPI converts every operation carrying an operationId into a
// Signature. Arguments follow the parameter order (path-item parameters
// first), then the request body.
func FromOpenAPI(doc *openapi3.T, types TypeTable) ([]*Signature, error) {
	if doc.Paths == nil {
		return nil, nil
	}
	pathMap := doc.Paths.Map()
	paths := make([]string, 0, len(pathMap))
	for p := range pathMap {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var sigs []*Signature
	for _, path := range paths {
		item := pathMap[path]
		ops := item.Operations()
		methods := make([]string, 0, len(ops))
		for m := range ops {
			methods = append(methods, m)
		}
		sort.Strings(methods)

		for _, method := range methods {
			op := ops[method]
			if op.OperationID == "" {
				continue
			}
			s, err := fromOperation(path, method, item.Parameters, op, types)
			if err != nil {
				return nil, err
			}
			sigs = append(sigs, s)
		}
	}
	return sigs, nil
}

// mergeParameters lists the path item's parameters followed by the
// operation's. An operation parameter with the same name and location as a
// path item one replaces it in place.
func mergeParameters(shared, own openapi3.Parameters) ([]*openapi3.Parameter, error) {
	type key struct{ name, in string }
	var merged []*openapi3.Parameter
	index := make(map[key]int)
	for _, ref := range slices.Concat(shared, own) {
		if ref == nil || ref.Value == nil {
			name := "<nil>"
			if ref != nil && ref.Ref != "" {
				name = ref.Ref
			}
			return nil, fmt.Errorf("parameter %s is not resolved", name)
		}
		k := key{ref.Value.Name, ref.Value.In}
		if i, ok := index[k]; ok {
			merged[i] = ref.Value
			continue
		}
		index[k] = len(merged)
		merged = append(merged, ref.Value)
	}
	return merged, nil
}

func fromOperation(path, method string, shared openapi3.Parameters, op *openapi3.Operation, types TypeTable) (*Signature, error) {
	d := Declare(op.OperationID, method, path)

	merged, err := mergeParameters(shared, op.Parameters)
	if err != nil {
		return nil, fmt.Errorf("signature %s: %w", op.OperationID, err)
	}

	var params []ArgType
	for _, p := range merged {
		at, err := paramType(p, types)
		if err != nil {
			return nil, fmt.Errorf("signature %s: %w", op.OperationID, err)
		}
		arg := len(params)
		params = append(params, at)
		switch p.In {
		case openapi3.ParameterInPath:
			d.Path(arg, p.Name)
		case openapi3.ParameterInQuery:
			d.Query(arg, p.Name)
		case openapi3.ParameterInHeader:
			d.Header(arg, p.Name)
		default:
			return nil, fmt.Errorf("signature %s: parameter %s in %s is not supported", op.OperationID, p.Name, p.In)
		}
	}

	if op.RequestBody != nil && op.RequestBody.Value != nil {
		body := op.RequestBody.Value
		at := Any
		if name, ok := extString(body.Extensions, ExtArgType); ok {
			t, found := types[name]
			if !found {
				return nil, fmt.Errorf("signature %s: unknown body type %q", op.OperationID, name)
			}
			at = t
		}
		d.Body(len(params))
		params = append(params, at)
		d.Produces(firstMediaType(body.Content))
	}
	d.Params(params...)

	consumes, hasContent := successMediaType(op.Responses)
	d.Consumes(consumes)
	switch {
	case !hasContent:
		d.Parser(ReleaseOnly)
	case consumes == "text/plain":
		d.Parser(PlainText)
	case consumes == "text/event-stream" || consumes == "application/x-ndjson":
		d.Parser(StreamDecode)
	}
	if method == http.MethodHead {
		d.Parser(BooleanOn2xx)
	}

	if v, ok := extString(op.Extensions, ExtParser); ok {
		pv, err := ParseParserVariant(v)
		if err != nil {
			return nil, err
		}
		d.Parser(pv)
	}
	if v, ok := extString(op.Extensions, ExtFallback); ok {
		fp, err := ParseFallbackPolicy(v)
		if err != nil {
			return nil, err
		}
		d.Fallback(fp)
	}
	return d.Build()
}

func paramType(p *openapi3.Parameter, types TypeTable) (ArgType, error) {
	if name, ok := extString(p.Extensions, ExtArgType); ok {
		if at, found := types[name]; found {
			return at, nil
		}
		return nil, fmt.Errorf("parameter %s: unknown type %q", p.Name, name)
	}
	if p.Schema == nil || p.Schema.Value == nil || p.Schema.Value.Type == nil {
		return String, nil
	}
	t := p.Schema.Value.Type
	switch {
	case t.Is(openapi3.TypeInteger):
		return Int, nil
	case t.Is(openapi3.TypeBoolean):
		return Bool, nil
	case t.Is(openapi3.TypeNumber):
		return Float64, nil
	default:
		return String, nil
	}
}

// successMediaType returns the first media type of the lowest 2xx response.
func successMediaType(responses *openapi3.Responses) (string, bool) {
	if responses == nil {
		return "", false
	}
	m := responses.Map()
	codes := make([]string, 0, len(m))
	for code := range m {
		if strings.HasPrefix(code, "2") {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	for _, code := range codes {
		ref := m[code]
		if ref == nil || ref.Value == nil || len(ref.Value.Content) == 0 {
			continue
		}
		return firstMediaType(ref.Value.Content), true
	}
	return "", false
}

func firstMediaType(content openapi3.Content) string {
	types := make([]string, 0, len(content))
	for mt := range content {
		types = append(types, mt)
	}
	sort.Strings(types)
	if len(types) == 0 {
		return ""
	}
	return types[0]
}

func extString(ext map[string]any, key string) (string, bool) {
	v, ok := ext[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}
