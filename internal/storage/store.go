// Package storage provides an ephemeral, thread-safe, in-memory store of
// per-owner buckets.
//
// A host keeps one Store for its lifetime. Elements own the buckets that
// record which aspect instances are applied to them; aspect descriptors own
// the buckets that cache their merged resources.
//
// Owners and keys must be comparable. Values of a bucket are reported in
// insertion order, which is the order aspects were applied in and hence the
// reverse of the order they must be undone in.
package storage

import (
	"slices"
	"sync"
)

// Store maps owners to buckets. The zero value is ready to use.
type Store struct {
	mu      sync.Mutex
	buckets map[any]*bucket
}

// bucket keeps its entries plus the order the keys were first set in.
type bucket struct {
	keys    []any
	entries map[any]any
}

// New creates a new, empty store.
func New() *Store {
	return &Store{}
}

// Bucket is the view of one owner's entries. It is cheap to create and
// holds no state besides the owner.
type Bucket struct {
	store *Store
	owner any
}

// From returns the bucket of owner. Nothing is allocated until a value is
// set.
func (s *Store) From(owner any) Bucket {
	return Bucket{store: s, owner: owner}
}

// Remove drops owner's bucket and reports whether it existed.
func (s *Store) Remove(owner any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.buckets[owner]
	delete(s.buckets, owner)
	return ok
}

// Clear drops every bucket.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buckets = nil
}

// Get returns the value stored under key.
func (b Bucket) Get(key any) (any, bool) {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	bk, ok := b.store.buckets[b.owner]
	if !ok {
		return nil, false
	}
	v, ok := bk.entries[key]
	return v, ok
}

// Set stores value under key. Overwriting a key keeps its original position.
func (b Bucket) Set(key, value any) {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	if b.store.buckets == nil {
		b.store.buckets = make(map[any]*bucket)
	}
	bk, ok := b.store.buckets[b.owner]
	if !ok {
		bk = &bucket{entries: make(map[any]any)}
		b.store.buckets[b.owner] = bk
	}
	if _, exists := bk.entries[key]; !exists {
		bk.keys = append(bk.keys, key)
	}
	bk.entries[key] = value
}

// Remove deletes key and reports whether it was present.
func (b Bucket) Remove(key any) bool {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	bk, ok := b.store.buckets[b.owner]
	if !ok {
		return false
	}
	if _, exists := bk.entries[key]; !exists {
		return false
	}
	delete(bk.entries, key)
	bk.keys = slices.DeleteFunc(bk.keys, func(k any) bool { return k == key })
	return true
}

// Clear deletes every entry of the bucket.
func (b Bucket) Clear() {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	delete(b.store.buckets, b.owner)
}

// Values returns a snapshot of the bucket's values in insertion order.
func (b Bucket) Values() []any {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	bk, ok := b.store.buckets[b.owner]
	if !ok {
		return nil
	}
	out := make([]any, 0, len(bk.keys))
	for _, k := range bk.keys {
		out = append(out, bk.entries[k])
	}
	return out
}
