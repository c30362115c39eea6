package fallback

import "fmt"

// OutcomeKind tags an Outcome.
type OutcomeKind int

const (
	// KindPropagate surfaces the original failure unchanged.
	KindPropagate OutcomeKind = iota
	// KindValue recovers with a substitute result.
	KindValue
	// KindEmpty recovers with an absent result.
	KindEmpty
	// KindReclassified surfaces a domain error in place of the failure.
	KindReclassified
)

// String returns the kind name used in logs and metrics.
func (k OutcomeKind) String() string {
	switch k {
	case KindPropagate:
		return "propagate"
	case KindValue:
		return "value"
	case KindEmpty:
		return "empty"
	case KindReclassified:
		return "reclassified"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// Outcome is the resolver's decision for one failure.
type Outcome struct {
	Kind OutcomeKind
	// Value is the substitute result of a KindValue outcome.
	Value any
	// Err is the error to surface for KindPropagate and KindReclassified.
	Err error
}

// Value recovers with v.
func Value(v any) Outcome { return Outcome{Kind: KindValue, Value: v} }

// Empty recovers with an absent result.
func Empty() Outcome { return Outcome{Kind: KindEmpty} }

// Reclassified surfaces err in place of the original failure.
func Reclassified(err error) Outcome { return Outcome{Kind: KindReclassified, Err: err} }

// Propagate surfaces err unchanged.
func Propagate(err error) Outcome { return Outcome{Kind: KindPropagate, Err: err} }

// Recovered reports whether the outcome replaces the failure with a result.
func (o Outcome) Recovered() bool {
	return o.Kind == KindValue || o.Kind == KindEmpty
}

// Error returns the error to surface, or nil for recovered outcomes.
func (o Outcome) Error() error {
	if o.Recovered() {
		return nil
	}
	return o.Err
}

func (o Outcome) String() string {
	switch o.Kind {
	case KindValue:
		return fmt.Sprintf("value(%v)", o.Value)
	case KindPropagate, KindReclassified:
		return fmt.Sprintf("%s(%v)", o.Kind, o.Err)
	default:
		return o.Kind.String()
	}
}
