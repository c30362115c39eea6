package compute

import (
	"bytes"
	_ "embed"
	"sync"

	"github.com/kbukum/restwire/signature"
)

//go:embed operations.yaml
var operationsYAML []byte

var registry = sync.OnceValue(func() *signature.Registry {
	return signature.MustRegistry(Signatures()...)
})

// Registry returns the registry of the compute API, built on first use.
func Registry() *signature.Registry { return registry() }

// Signatures loads the embedded operation table. It panics if the table is
// invalid.
func Signatures() []*signature.Signature {
	sigs, err := signature.LoadYAML(bytes.NewReader(operationsYAML), signature.Builtins())
	if err != nil {
		panic(err)
	}
	return sigs
}
