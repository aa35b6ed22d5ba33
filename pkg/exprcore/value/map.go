package value

// Map is a mutable, insertion-ordered mapping keyed by value equality.
// A *Map is shared by every variable bound to it.
type Map struct {
	keys  []Value
	vals  []Value
	index map[uint64][]int
}

// NewMap creates an empty map.
func NewMap() *Map {
	return &Map{index: make(map[uint64][]int)}
}

// MapOf creates a map from alternating key, value arguments.
// A trailing key without a value maps to Null.
func MapOf(kv ...Value) *Map {
	m := NewMap()
	for i := 0; i < len(kv); i += 2 {
		v := NullValue
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		m.Put(kv[i], v)
	}
	return m
}

func (*Map) Kind() Kind     { return KindMap }
func (*Map) isValue()       {}
func (m *Map) Truthy() bool { return len(m.keys) > 0 }

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order. Callers must not modify the slice.
func (m *Map) Keys() []Value { return m.keys }

func (m *Map) find(key Value) int {
	for _, i := range m.index[Hash(key)] {
		if Equal(m.keys[i], key) {
			return i
		}
	}
	return -1
}

// Lookup returns the value stored under key.
func (m *Map) Lookup(key Value) (Value, bool) {
	if i := m.find(key); i >= 0 {
		return m.vals[i], true
	}
	return nil, false
}

// Has reports whether key is present.
func (m *Map) Has(key Value) bool { return m.find(key) >= 0 }

// Get returns the value stored under key, or Null.
func (m *Map) Get(key Value) Value {
	if v, ok := m.Lookup(key); ok {
		return v
	}
	return NullValue
}

// Put stores v under key. Maps accept every write.
func (m *Map) Put(key Value, v Value) bool {
	key, _ = detach(m, Unwrap(key))
	v, _ = detach(m, Unwrap(v))
	if i := m.find(key); i >= 0 {
		m.vals[i] = v
		return true
	}
	h := Hash(key)
	m.index[h] = append(m.index[h], len(m.keys))
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, v)
	return true
}

// Delete removes key and reports whether it was present.
func (m *Map) Delete(key Value) bool {
	i := m.find(key)
	if i < 0 {
		return false
	}
	m.keys = append(m.keys[:i], m.keys[i+1:]...)
	m.vals = append(m.vals[:i], m.vals[i+1:]...)
	m.reindex()
	return true
}

func (m *Map) reindex() {
	m.index = make(map[uint64][]int, len(m.keys))
	for i, k := range m.keys {
		h := Hash(k)
		m.index[h] = append(m.index[h], i)
	}
}

// Append adds v in place. A two element list is a key, value pair; any other
// value becomes a key mapped to Null.
func (m *Map) Append(v Value) {
	if l, ok := Unwrap(v).(*List); ok && l.Len() == 2 {
		m.Put(l.items[0], l.items[1])
		return
	}
	m.Put(v, NullValue)
}

func (m *Map) clone() *Map {
	c := NewMap()
	for i := range m.keys {
		c.Put(m.keys[i], m.vals[i])
	}
	return c
}

// Pairs returns the entries as [key, value] lists in insertion order.
func (m *Map) Pairs() []Value {
	pairs := make([]Value, len(m.keys))
	for i := range m.keys {
		pairs[i] = NewList(m.keys[i], m.vals[i])
	}
	return pairs
}

func (m *Map) String() string { return m.render(Value.String) }
func (m *Map) Pretty() string { return m.render(Value.Pretty) }

func (m *Map) render(f func(Value) string) string {
	entries := make([]Value, len(m.keys))
	for i := range m.keys {
		entries[i] = String(f(m.keys[i]) + ": " + f(m.vals[i]))
	}
	return "{" + joinValues(entries, Value.String) + "}"
}
