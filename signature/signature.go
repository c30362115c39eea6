package signature

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// Signature is the immutable wire mapping of one declared operation.
type Signature struct {
	name     string
	method   string
	path     PathTemplate
	params   []ArgType
	bindings []Binding
	produces string
	consumes string
	parser   ParserVariant
	fallback FallbackPolicy
}

// Name returns the operation name.
func (s *Signature) Name() string { return s.name }

// Method returns the HTTP method.
func (s *Signature) Method() string { return s.method }

// Path returns the path template.
func (s *Signature) Path() PathTemplate { return append(PathTemplate(nil), s.path...) }

// Params returns the declared parameter types in order.
func (s *Signature) Params() []ArgType { return append([]ArgType(nil), s.params...) }

// Bindings returns the argument bindings in declaration order.
func (s *Signature) Bindings() []Binding { return cloneBindings(s.bindings) }

// cloneBindings copies bs and each binding's Names.
func cloneBindings(bs []Binding) []Binding {
	out := slices.Clone(bs)
	for i := range out {
		out[i].Names = slices.Clone(bs[i].Names)
	}
	return out
}

// Produces returns the media type of the request payload.
func (s *Signature) Produces() string { return s.produces }

// Consumes returns the media type expected of the response.
func (s *Signature) Consumes() string { return s.consumes }

// Parser returns the response parser variant.
func (s *Signature) Parser() ParserVariant { return s.parser }

// Fallback returns the fallback policy.
func (s *Signature) Fallback() FallbackPolicy { return s.fallback }

// Key returns the registry key: the name followed by the parameter type
// names, e.g. "getRack(Datacenter,int)".
func (s *Signature) Key() string {
	names := make([]string, len(s.params))
	for i, p := range s.params {
		names[i] = p.Name()
	}
	return Key(s.name, names...)
}

// Accepts reports whether args match the parameter list in arity and type.
func (s *Signature) Accepts(args []any) bool {
	if len(args) != len(s.params) {
		return false
	}
	for i, p := range s.params {
		if !p.Accepts(args[i]) {
			return false
		}
	}
	return true
}

// String renders "METHOD /path key".
func (s *Signature) String() string {
	return fmt.Sprintf("%s %s %s", s.method, s.path, s.Key())
}

// Key builds an operation key from a name and parameter type names.
func Key(name string, paramTypes ...string) string {
	return name + "(" + strings.Join(paramTypes, ",") + ")"
}

// Decl declares a Signature step by step. Errors are collected and
// reported by Build.
type Decl struct {
	sig  Signature
	errs []string
}

// Declare starts the declaration of an operation.
func Declare(name, method, path string) *Decl {
	d := &Decl{sig: Signature{name: name, method: strings.ToUpper(method)}}
	tpl, err := ParsePath(path)
	if err != nil {
		d.errs = append(d.errs, err.Error())
	}
	d.sig.path = tpl
	return d
}

// Params sets the parameter types in order.
func (d *Decl) Params(types ...ArgType) *Decl {
	d.sig.params = append(d.sig.params[:0], types...)
	return d
}

// Path binds argument arg to the given placeholders.
func (d *Decl) Path(arg int, placeholders ...string) *Decl {
	return d.bind(Binding{Kind: BindPath, Arg: arg, Names: placeholders})
}

// Query binds argument arg to query parameter name.
func (d *Decl) Query(arg int, name string) *Decl {
	return d.bind(Binding{Kind: BindQuery, Arg: arg, Names: []string{name}})
}

// Header binds argument arg to header name.
func (d *Decl) Header(arg int, name string) *Decl {
	return d.bind(Binding{Kind: BindHeader, Arg: arg, Names: []string{name}})
}

// Body binds argument arg to the request payload.
func (d *Decl) Body(arg int) *Decl {
	return d.bind(Binding{Kind: BindBody, Arg: arg})
}

// Options binds argument arg as an options object.
func (d *Decl) Options(arg int) *Decl {
	return d.bind(Binding{Kind: BindOptions, Arg: arg})
}

// Endpoint binds argument arg as the absolute base of the request,
// resolved through the link relation rel. The path template is then
// resolved relative to the link; "/" adds nothing.
func (d *Decl) Endpoint(arg int, rel string) *Decl {
	return d.bind(Binding{Kind: BindEndpoint, Arg: arg, Names: []string{rel}})
}

// Bind adds an arbitrary binding.
func (d *Decl) Bind(b Binding) *Decl {
	return d.bind(b)
}

// RenderWith sets the renderer of the most recent binding.
func (d *Decl) RenderWith(r Renderer) *Decl {
	if len(d.sig.bindings) == 0 {
		d.errs = append(d.errs, "RenderWith before any binding")
		return d
	}
	d.sig.bindings[len(d.sig.bindings)-1].Render = r
	return d
}

// Produces sets the payload media type.
func (d *Decl) Produces(mediaType string) *Decl {
	d.sig.produces = mediaType
	return d
}

// Consumes sets the expected response media type.
func (d *Decl) Consumes(mediaType string) *Decl {
	d.sig.consumes = mediaType
	return d
}

// Parser sets the response parser variant. StructuredDecode by default.
func (d *Decl) Parser(v ParserVariant) *Decl {
	d.sig.parser = v
	return d
}

// Fallback sets the fallback policy. Default by default.
func (d *Decl) Fallback(p FallbackPolicy) *Decl {
	d.sig.fallback = p
	return d
}

func (d *Decl) bind(b Binding) *Decl {
	b.Names = slices.Clone(b.Names)
	d.sig.bindings = append(d.sig.bindings, b)
	return d
}

// Build validates the declaration and returns the immutable Signature.
func (d *Decl) Build() (*Signature, error) {
	errs := append([]string(nil), d.errs...)
	errs = append(errs, d.check()...)
	if len(errs) > 0 {
		return nil, fmt.Errorf("signature %s: %s", d.sig.name, strings.Join(errs, "; "))
	}
	sig := d.sig
	sig.path = append(PathTemplate(nil), d.sig.path...)
	sig.params = append([]ArgType(nil), d.sig.params...)
	sig.bindings = cloneBindings(d.sig.bindings)
	return &sig, nil
}

// MustBuild is Build for static tables; it panics on an invalid declaration.
func (d *Decl) MustBuild() *Signature {
	sig, err := d.Build()
	if err != nil {
		panic(err)
	}
	return sig
}

var methods = map[string]bool{
	http.MethodGet: true, http.MethodHead: true, http.MethodPost: true, http.MethodPut: true,
	http.MethodPatch: true, http.MethodDelete: true, http.MethodOptions: true,
}

func (d *Decl) check() []string {
	s := &d.sig
	var errs []string
	if s.name == "" {
		errs = append(errs, "name is required")
	}
	if !methods[s.method] {
		errs = append(errs, fmt.Sprintf("unsupported method %q", s.method))
	}

	placeholders := make(map[string]int)
	for _, p := range s.path.Placeholders() {
		placeholders[p] = 0
	}

	var bodies, endpoints int
	for i, b := range s.bindings {
		if b.Arg < 0 || b.Arg >= len(s.params) {
			errs = append(errs, fmt.Sprintf("binding %d refers to argument %d of %d", i, b.Arg, len(s.params)))
		}
		switch b.Kind {
		case BindPath:
			if len(b.Names) == 0 {
				errs = append(errs, fmt.Sprintf("path binding %d names no placeholder", i))
			}
			for _, n := range b.Names {
				if _, ok := placeholders[n]; !ok {
					errs = append(errs, fmt.Sprintf("placeholder {%s} not in path %s", n, s.path))
					continue
				}
				placeholders[n]++
			}
		case BindQuery, BindHeader, BindEndpoint:
			if len(b.Names) != 1 || b.Names[0] == "" {
				errs = append(errs, fmt.Sprintf("%s binding %d needs exactly one name", b.Kind, i))
			}
			if b.Kind == BindEndpoint {
				endpoints++
			}
		case BindBody:
			bodies++
		case BindOptions:
		default:
			errs = append(errs, fmt.Sprintf("binding %d has unknown kind", i))
		}
	}

	if bodies > 1 {
		errs = append(errs, "more than one body binding")
	}
	if bodies == 1 && s.produces == "" {
		errs = append(errs, "body binding without a produced media type")
	}
	if endpoints > 1 {
		errs = append(errs, "more than one endpoint binding")
	}
	for _, n := range s.path.Placeholders() {
		switch placeholders[n] {
		case 0:
			errs = append(errs, fmt.Sprintf("placeholder {%s} is not bound", n))
		case 1:
		default:
			errs = append(errs, fmt.Sprintf("placeholder {%s} is bound more than once", n))
		}
	}

	if s.parser < StructuredDecode || s.parser > ReleaseOnly {
		errs = append(errs, fmt.Sprintf("unknown parser %d", s.parser))
	}
	if (s.parser == StructuredDecode || s.parser == StreamDecode) && s.consumes == "" {
		errs = append(errs, fmt.Sprintf("%s parser needs a consumed media type", s.parser))
	}
	if s.fallback < Default || s.fallback > ReleaseAndDiscard {
		errs = append(errs, fmt.Sprintf("unknown fallback %d", s.fallback))
	}
	return errs
}
