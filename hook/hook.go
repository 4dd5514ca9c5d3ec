// Package hook provides the action/filter registry that wphooks is built
// around. Callbacks attach to a named tag at a numeric priority and are later
// invoked either to transform a value through a chain (filters) or to fan out
// a notification (actions).
//
// A Registry is an explicit value. Create one per application context and
// pass it to whatever needs to register or dispatch, either directly or via
// [WithRegistry] and [FromContext]:
//
//	r := hook.New()
//	r.AddFilter("greet", func(v any, _ ...any) any {
//		return strings.ToUpper(v.(string))
//	}, hook.DefaultPriority)
//	r.ApplyFilters("greet", "hello") // "HELLO"
//
// # Ordering
//
// Lower priorities run first. Callbacks sharing a priority run in the order
// they were registered. A tag nobody registered behaves as if absent: filters
// return the input unchanged and actions do nothing.
//
// # Dispatch
//
// Dispatch is synchronous and runs to completion on the calling goroutine.
// Callbacks run outside the registry lock on a snapshot taken when dispatch
// starts, so a callback may register further hooks, but those are only seen
// by later dispatches. A panicking callback is not recovered: the panic
// reaches the caller and the remaining callbacks for that dispatch are
// skipped. A callback that starts a goroutine is not waited for; whatever it
// returns synchronously is what the filter chain continues with.
//
// There is no removal API. Registrations live as long as the Registry.
package hook

import (
	"math"
	"strconv"
)

// Priority orders callbacks on a tag; lower runs earlier. It is a float so
// fractional priorities keep their relative order. NaN has no order and is
// registered as DefaultPriority.
type Priority float64

// DefaultPriority is the priority used by callers that don't choose one.
const DefaultPriority Priority = 10

// String formats p without trailing zeros: "10", "0.5", "-Inf".
func (p Priority) String() string {
	return strconv.FormatFloat(float64(p), 'g', -1, 64)
}

// MarshalJSON encodes finite priorities as numbers and infinities as the
// strings "+Inf" and "-Inf", which JSON numbers cannot represent.
func (p Priority) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(p), 0) {
		return strconv.AppendQuote(nil, p.String()), nil
	}
	return []byte(p.String()), nil
}

func (p Priority) normalise() Priority {
	if math.IsNaN(float64(p)) {
		return DefaultPriority
	}
	return p
}

// Namespace separates actions from filters. The same tag may exist in both
// without interfering.
type Namespace string

const (
	NamespaceAction Namespace = "action"
	NamespaceFilter Namespace = "filter"
)

// FilterFunc transforms value. args are the extra arguments passed to
// ApplyFilters and are identical for every callback in one dispatch.
type FilterFunc func(value any, args ...any) any

// ActionFunc reacts to an action. Every callback in one dispatch receives the
// same args.
type ActionFunc func(args ...any)

// Entry is one registration. Exactly one of Filter and Action is set,
// matching the namespace it was registered in. Either may be nil, in which
// case dispatch skips the entry.
type Entry struct {
	Priority Priority
	Filter   FilterFunc
	Action   ActionFunc
	Seq      uint64 // registry-wide registration order
}

// Callable reports whether dispatch will invoke this entry.
func (e Entry) Callable() bool {
	return e.Filter != nil || e.Action != nil
}
