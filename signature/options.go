package signature

// Location is where an option field lands.
type Location int

const (
	// InQuery emits the field as a query parameter.
	InQuery Location = iota
	// InHeader emits the field as a header.
	InHeader
)

// OptionField is one field of an options object. A field contributes a
// pair only when Set is true.
type OptionField struct {
	In    Location
	Name  string
	Value any
	Set   bool
}

// Options is an optional structured argument. OptionFields must return
// every field, set or not, in a fixed declared order.
type Options interface {
	OptionFields() []OptionField
}

// QueryOption describes a query field backed by a tri-state pointer: nil
// means unset.
func QueryOption[T any](name string, v *T) OptionField {
	return option(InQuery, name, v)
}

// HeaderOption describes a header field backed by a tri-state pointer.
func HeaderOption[T any](name string, v *T) OptionField {
	return option(InHeader, name, v)
}

func option[T any](in Location, name string, v *T) OptionField {
	f := OptionField{In: in, Name: name}
	if v != nil {
		f.Value = *v
		f.Set = true
	}
	return f
}
