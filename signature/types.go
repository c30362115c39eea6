package signature

// ArgType is the declared type of one operation parameter. Its name takes
// part in the operation key, so overloads differ by parameter type names.
type ArgType interface {
	// Name is the type name used in operation keys.
	Name() string
	// Accepts reports whether v is a value of this type.
	Accepts(v any) bool
}

type argType[T any] struct {
	name string
}

func (a argType[T]) Name() string { return a.name }

func (a argType[T]) Accepts(v any) bool {
	_, ok := v.(T)
	return ok
}

// TypeOf declares an ArgType for Go type T under the given name.
func TypeOf[T any](name string) ArgType {
	return argType[T]{name: name}
}

type anyType struct{}

func (anyType) Name() string       { return "any" }
func (anyType) Accepts(v any) bool { return v != nil }

// Builtin argument types.
var (
	String  = TypeOf[string]("string")
	Int     = TypeOf[int]("int")
	Int64   = TypeOf[int64]("int64")
	Bool    = TypeOf[bool]("bool")
	Float64 = TypeOf[float64]("float64")
	// Any accepts every non-nil value.
	Any ArgType = anyType{}
)

// TypeTable resolves type names used by declarative loaders.
type TypeTable map[string]ArgType

// Builtins returns a table holding the builtin argument types.
func Builtins() TypeTable {
	return TypeTable{
		String.Name():  String,
		Int.Name():     Int,
		Int64.Name():   Int64,
		Bool.Name():    Bool,
		Float64.Name(): Float64,
		Any.Name():     Any,
	}
}

// With returns a copy of the table extended with types.
func (t TypeTable) With(types ...ArgType) TypeTable {
	out := make(TypeTable, len(t)+len(types))
	for k, v := range t {
		out[k] = v
	}
	for _, at := range types {
		out[at.Name()] = at
	}
	return out
}
