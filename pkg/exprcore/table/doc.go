// Package table provides a generic thread-safe table of values indexed by key.
//
// Table is designed for read-heavy workloads using sync.RWMutex. Unlike a
// plain map it remembers insertion order, so listings are stable, and it can
// be frozen once setup is complete.
//
// # Basic Usage
//
//	t := table.New[string, int]()
//	_ = t.Register("one", 1)
//	_ = t.Register("two", 2)
//
//	value, ok := t.Get("one")
//	keys := t.Keys() // [one two]
//
// # Freezing
//
// A table populated at startup can be frozen so later code cannot change it:
//
//	t.Freeze()
//	err := t.Register("three", 3) // table.ErrFrozen
//
// # Thread Safety
//
// All Table methods are safe for concurrent use. Range iterates over a
// snapshot, allowing mutations during iteration without affecting the
// iteration itself.
package table
