package signature

import (
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/restwire/validation"
)

// Table is the YAML form of a list of operation declarations.
//
//	operations:
//	  - name: getDatacenter
//	    method: GET
//	    path: /admin/datacenters/{datacenter}
//	    params: [int]
//	    bindings:
//	      - {kind: path, arg: 0, names: [datacenter]}
//	    consumes: application/vnd.abiquo.datacenter+xml
//	    fallback: null-on-not-found
type Table struct {
	Operations []Operation `yaml:"operations" json:"operations" validate:"required,dive"`
}

// Operation is the YAML form of one declaration.
type Operation struct {
	Name     string         `yaml:"name" json:"name" validate:"required"`
	Method   string         `yaml:"method" json:"method" validate:"required,oneof=GET HEAD POST PUT PATCH DELETE OPTIONS"`
	Path     string         `yaml:"path" json:"path"`
	Params   []string       `yaml:"params" json:"params"`
	Bindings []BindingEntry `yaml:"bindings" json:"bindings" validate:"dive"`
	Produces string         `yaml:"produces" json:"produces"`
	Consumes string         `yaml:"consumes" json:"consumes"`
	Parser   string         `yaml:"parser" json:"parser" validate:"omitempty,oneof=structured stream text boolean release"`
	Fallback string         `yaml:"fallback" json:"fallback"`
}

// BindingEntry is the YAML form of a Binding.
type BindingEntry struct {
	Kind  string   `yaml:"kind" json:"kind" validate:"required,oneof=path query header body options endpoint"`
	Arg   int      `yaml:"arg" json:"arg" validate:"min=0"`
	Names []string `yaml:"names" json:"names"`
}

// LoadYAML reads a Table from r and builds its signatures. Parameter type
// names are resolved through types.
func LoadYAML(r io.Reader, types TypeTable) ([]*Signature, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("signature: read table: %w", err)
	}
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("signature: parse table: %w", err)
	}
	return t.Signatures(types)
}

// LoadYAMLFile reads a Table from path.
func LoadYAMLFile(path string, types TypeTable) ([]*Signature, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("signature: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return LoadYAML(f, types)
}

// Signatures validates the table and builds every declaration.
func (t *Table) Signatures(types TypeTable) ([]*Signature, error) {
	if err := validation.Validate(t); err != nil {
		return nil, fmt.Errorf("signature: invalid table: %w", err)
	}
	sigs := make([]*Signature, 0, len(t.Operations))
	for _, op := range t.Operations {
		s, err := op.Signature(types)
		if err != nil {
			return nil, err
		}
		sigs = append(sigs, s)
	}
	return sigs, nil
}

// Signature builds the declared operation.
func (op *Operation) Signature(types TypeTable) (*Signature, error) {
	params := make([]ArgType, len(op.Params))
	for i, name := range op.Params {
		at, ok := types[name]
		if !ok {
			return nil, fmt.Errorf("signature %s: unknown parameter type %q", op.Name, name)
		}
		params[i] = at
	}

	d := Declare(op.Name, op.Method, op.Path).
		Params(params...).
		Produces(op.Produces).
		Consumes(op.Consumes)

	for _, be := range op.Bindings {
		kind, err := ParseBindingKind(be.Kind)
		if err != nil {
			return nil, err
		}
		d.Bind(Binding{Kind: kind, Arg: be.Arg, Names: be.Names})
	}
	if op.Parser != "" {
		v, err := ParseParserVariant(op.Parser)
		if err != nil {
			return nil, err
		}
		d.Parser(v)
	}
	p, err := ParseFallbackPolicy(op.Fallback)
	if err != nil {
		return nil, err
	}
	return d.Fallback(p).Build()
}
