// registry.go implements the Registry type and its registration methods.
//
// Separated from dispatch.go to keep mutation (registration) apart from
// invocation. Both share the same lock and stores.
//
// Design: The Registry is a value, not package state. Tests and embedders get
// independent instances; the CLI builds exactly one per process and hands it
// to extensions through their Context.

package hook

import "sync"

// Registry holds every action and filter registration for one application
// context. The zero value is not usable; call New.
type Registry struct {
	mu      sync.RWMutex
	actions *store
	filters *store
	seq     uint64

	did   map[string]int // DoAction call counts per tag
	doing map[string]int // in-flight dispatches per tag
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{
		actions: newStore(),
		filters: newStore(),
		did:     make(map[string]int),
		doing:   make(map[string]int),
	}
}

// AddFilter attaches fn to the filter tag at the given priority.
// Use DefaultPriority when the caller has no preference.
func (r *Registry) AddFilter(tag string, fn FilterFunc, priority Priority) {
	r.add(NamespaceFilter, tag, Entry{Priority: priority, Filter: fn})
}

// AddAction attaches fn to the action tag at the given priority.
// Use DefaultPriority when the caller has no preference.
func (r *Registry) AddAction(tag string, fn ActionFunc, priority Priority) {
	r.add(NamespaceAction, tag, Entry{Priority: priority, Action: fn})
}

// add is the single registration path for both namespaces.
func (r *Registry) add(ns Namespace, tag string, e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	e.Seq = r.seq
	e.Priority = e.Priority.normalise()
	r.storeFor(ns).append(tag, e)
}

func (r *Registry) storeFor(ns Namespace) *store {
	if ns == NamespaceAction {
		return r.actions
	}
	return r.filters
}

// Has reports whether anything was ever registered for tag in ns.
func (r *Registry) Has(ns Namespace, tag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.storeFor(ns).has(tag)
}

// Count returns the number of callbacks registered for tag in ns.
func (r *Registry) Count(ns Namespace, tag string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.storeFor(ns).count(tag)
}

// Tags returns every tag registered in ns, sorted.
func (r *Registry) Tags(ns Namespace) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.storeFor(ns).names()
}

// Entries returns the registrations for tag in ns in the order dispatch
// would visit them.
func (r *Registry) Entries(ns Namespace, tag string) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.storeFor(ns).snapshot(tag)
}
