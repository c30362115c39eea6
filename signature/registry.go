package signature

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kbukum/restwire/errors"
)

// Registry indexes signatures by operation key and by name. It is built
// once and never modified, so lookups need no synchronization.
type Registry struct {
	byKey  map[string]*Signature
	byName map[string][]*Signature
	keys   []string
}

// NewRegistry builds a registry from signatures. Duplicate keys are an error.
func NewRegistry(sigs ...*Signature) (*Registry, error) {
	r := &Registry{
		byKey:  make(map[string]*Signature, len(sigs)),
		byName: make(map[string][]*Signature),
	}
	for _, s := range sigs {
		if s == nil {
			return nil, fmt.Errorf("signature: nil signature")
		}
		key := s.Key()
		if _, dup := r.byKey[key]; dup {
			return nil, fmt.Errorf("signature: duplicate operation %s", key)
		}
		r.byKey[key] = s
		r.byName[s.name] = append(r.byName[s.name], s)
		r.keys = append(r.keys, key)
	}
	sort.Strings(r.keys)
	return r, nil
}

// MustRegistry is NewRegistry for static tables.
func MustRegistry(sigs ...*Signature) *Registry {
	r, err := NewRegistry(sigs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Merge returns a new registry holding the signatures of all registries.
func Merge(regs ...*Registry) (*Registry, error) {
	var all []*Signature
	for _, r := range regs {
		all = append(all, r.Signatures()...)
	}
	return NewRegistry(all...)
}

// Lookup returns the signature for an exact operation key such as
// "getRack(Datacenter,int)".
func (r *Registry) Lookup(key string) (*Signature, error) {
	if s, ok := r.byKey[key]; ok {
		return s, nil
	}
	return nil, errors.UnknownOperation(key)
}

// LookupOperation returns the signature for name and parameter type names.
func (r *Registry) LookupOperation(name string, paramTypes ...string) (*Signature, error) {
	return r.Lookup(Key(name, paramTypes...))
}

// Resolve picks the overload of name whose parameter types accept args.
// An unknown name fails with UnknownOperation; arguments no overload
// accepts, or more than one accepts, fail with ArgumentBinding.
func (r *Registry) Resolve(name string, args ...any) (*Signature, error) {
	candidates, ok := r.byName[name]
	if !ok {
		return nil, errors.UnknownOperation(name)
	}

	var match *Signature
	for _, s := range candidates {
		if !s.Accepts(args) {
			continue
		}
		if match != nil {
			return nil, errors.ArgumentBinding(name,
				fmt.Sprintf("ambiguous arguments (%s) match %s and %s", typeList(args), match.Key(), s.Key()))
		}
		match = s
	}
	if match == nil {
		return nil, errors.ArgumentBinding(name, fmt.Sprintf("no overload accepts (%s)", typeList(args)))
	}
	return match, nil
}

// Signatures returns every signature ordered by key.
func (r *Registry) Signatures() []*Signature {
	out := make([]*Signature, len(r.keys))
	for i, k := range r.keys {
		out[i] = r.byKey[k]
	}
	return out
}

// Keys returns every operation key in sorted order.
func (r *Registry) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Len returns the number of signatures.
func (r *Registry) Len() int { return len(r.keys) }

func typeList(args []any) string {
	names := make([]string, len(args))
	for i, a := range args {
		names[i] = fmt.Sprintf("%T", a)
	}
	return strings.Join(names, ",")
}
