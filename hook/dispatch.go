// dispatch.go implements filter and action invocation.
//
// Separated from registry.go because dispatch has different locking rules:
// the lock is held only long enough to snapshot a tag's entries, then
// released before any callback runs. Callbacks are free to register hooks or
// dispatch other tags without deadlocking.

package hook

// ApplyFilters passes value through every filter registered for tag and
// returns the result. Each callback receives the current value followed by
// args; its return value becomes the current value for the next callback.
// An unregistered tag returns value unchanged.
func (r *Registry) ApplyFilters(tag string, value any, args ...any) any {
	entries := r.begin(NamespaceFilter, tag)
	if entries == nil {
		return value
	}
	defer r.end(tag)

	for _, e := range entries {
		if e.Filter == nil {
			continue
		}
		value = e.Filter(value, args...)
	}
	return value
}

// DoAction calls every action registered for tag with args. Return values
// don't exist, so no callback can influence another. An unregistered tag
// does nothing beyond being counted by DidAction.
func (r *Registry) DoAction(tag string, args ...any) {
	r.mu.Lock()
	r.did[tag]++
	r.mu.Unlock()

	entries := r.begin(NamespaceAction, tag)
	if entries == nil {
		return
	}
	defer r.end(tag)

	for _, e := range entries {
		if e.Action == nil {
			continue
		}
		e.Action(args...)
	}
}

// DidAction returns how many times DoAction has been called for tag,
// whether or not anything was registered.
func (r *Registry) DidAction(tag string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.did[tag]
}

// Doing reports whether a dispatch for tag is currently running on this
// registry, in either namespace.
func (r *Registry) Doing(tag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.doing[tag] > 0
}

// begin snapshots the entries for tag and marks the dispatch as in flight.
// It returns nil without marking anything when the tag is unknown.
func (r *Registry) begin(ns Namespace, tag string) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.storeFor(ns).snapshot(tag)
	if entries == nil {
		return nil
	}
	r.doing[tag]++
	return entries
}

// end is deferred by dispatchers so the in-flight count stays correct when a
// callback panics.
func (r *Registry) end(tag string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.doing[tag] <= 1 {
		delete(r.doing, tag)
		return
	}
	r.doing[tag]--
}
