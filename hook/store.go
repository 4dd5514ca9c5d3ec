// store.go implements the per-namespace storage of prioritised callbacks.
//
// Separated from registry.go so the bucket layout (tag -> priority -> entries)
// can be reasoned about without the locking and public API around it.
//
// Design: Buckets are created lazily on first registration and never removed.
// Priority keys are sorted explicitly on every read; Go map iteration order
// is random and must never leak into dispatch order.

package hook

import (
	"maps"
	"slices"
)

// store holds one namespace. It is not safe for concurrent use on its own;
// Registry guards it.
type store struct {
	tags map[string]map[Priority][]Entry
}

func newStore() *store {
	return &store{tags: make(map[string]map[Priority][]Entry)}
}

// ensureBucket creates the tag and priority bucket if either is missing and
// returns the bucket map for the tag. Calling it repeatedly is harmless.
func (s *store) ensureBucket(tag string, priority Priority) map[Priority][]Entry {
	buckets, ok := s.tags[tag]
	if !ok {
		buckets = make(map[Priority][]Entry)
		s.tags[tag] = buckets
	}
	if _, ok := buckets[priority]; !ok {
		buckets[priority] = nil
	}
	return buckets
}

// append adds e to the end of its priority bucket under tag.
func (s *store) append(tag string, e Entry) {
	buckets := s.ensureBucket(tag, e.Priority)
	buckets[e.Priority] = append(buckets[e.Priority], e)
}

// snapshot returns the entries for tag in dispatch order: ascending
// priority, then registration order. The result is a fresh slice the caller
// may keep. Unknown tags return nil.
func (s *store) snapshot(tag string) []Entry {
	buckets, ok := s.tags[tag]
	if !ok {
		return nil
	}
	var out []Entry
	for _, p := range slices.Sorted(maps.Keys(buckets)) {
		out = append(out, buckets[p]...)
	}
	return out
}

// has reports whether tag has been registered at least once.
func (s *store) has(tag string) bool {
	_, ok := s.tags[tag]
	return ok
}

// count returns the number of entries registered under tag.
func (s *store) count(tag string) int {
	n := 0
	for _, b := range s.tags[tag] {
		n += len(b)
	}
	return n
}

// names returns all registered tags, sorted.
func (s *store) names() []string {
	return slices.Sorted(maps.Keys(s.tags))
}
