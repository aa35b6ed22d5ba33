package table

import (
	"errors"
	"sync"
)

// ErrFrozen is returned when a frozen table is modified.
var ErrFrozen = errors.New("table: frozen")

// Table is a thread-safe table of values indexed by key.
// Keys iterate in insertion order. Once frozen, writes fail with ErrFrozen.
type Table[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
	order   []K
	frozen  bool
}

// New creates a new empty table.
func New[K comparable, V any]() *Table[K, V] {
	return &Table[K, V]{
		entries: make(map[K]V),
	}
}

// Register adds or replaces a value. A replaced key keeps its position.
func (t *Table[K, V]) Register(key K, value V) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.frozen {
		return ErrFrozen
	}
	if _, ok := t.entries[key]; !ok {
		t.order = append(t.order, key)
	}
	t.entries[key] = value
	return nil
}

// Get returns the value for a key and whether it exists.
func (t *Table[K, V]) Get(key K) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.entries[key]
	return v, ok
}

// Has returns true if the key exists in the table.
func (t *Table[K, V]) Has(key K) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.entries[key]
	return ok
}

// Delete removes a key from the table and reports whether it was present.
func (t *Table[K, V]) Delete(key K) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.frozen {
		return false, ErrFrozen
	}
	if _, ok := t.entries[key]; !ok {
		return false, nil
	}
	delete(t.entries, key)
	for i, k := range t.order {
		if k == key {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// Keys returns all keys in insertion order.
func (t *Table[K, V]) Keys() []K {
	t.mu.RLock()
	defer t.mu.RUnlock()
	keys := make([]K, len(t.order))
	copy(keys, t.order)
	return keys
}

// Len returns the number of entries in the table.
func (t *Table[K, V]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Range calls fn for each entry in insertion order until fn returns false.
//
// Range iterates over a snapshot, so fn may call Register or Delete
// without affecting the current iteration.
func (t *Table[K, V]) Range(fn func(K, V) bool) {
	t.mu.RLock()
	keys := make([]K, len(t.order))
	vals := make([]V, len(t.order))
	for i, k := range t.order {
		keys[i] = k
		vals[i] = t.entries[k]
	}
	t.mu.RUnlock()

	for i := range keys {
		if !fn(keys[i], vals[i]) {
			return
		}
	}
}

// GetOrCreate returns the value for a key, creating it with factory if it
// doesn't exist. The factory is called at most once per key. A frozen table
// returns the factory result without storing it.
func (t *Table[K, V]) GetOrCreate(key K, factory func() V) V {
	t.mu.RLock()
	v, ok := t.entries[key]
	t.mu.RUnlock()
	if ok {
		return v
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if v, ok := t.entries[key]; ok {
		return v
	}

	v = factory()
	if !t.frozen {
		t.order = append(t.order, key)
		t.entries[key] = v
	}
	return v
}

// Freeze rejects all further writes.
func (t *Table[K, V]) Freeze() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.frozen = true
}

// Frozen reports whether Freeze has been called.
func (t *Table[K, V]) Frozen() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.frozen
}
