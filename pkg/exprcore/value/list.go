package value

import (
	"strings"
)

// prettyLimit is the list length above which Pretty elides the middle.
const prettyLimit = 8

// List is a mutable sequence. A *List is shared by every variable bound to it.
// Storing a list inside itself, directly or through nested containers, stores
// a copy of its current contents instead.
type List struct {
	items []Value
}

// NewList creates a list holding items.
func NewList(items ...Value) *List {
	l := &List{items: make([]Value, 0, len(items))}
	for _, v := range items {
		l.items = append(l.items, Unwrap(v))
	}
	return l
}

// ListOf wraps items without copying.
func ListOf(items []Value) *List {
	return &List{items: items}
}

func (*List) Kind() Kind     { return KindList }
func (*List) isValue()       {}
func (l *List) Truthy() bool { return len(l.items) > 0 }

// Len returns the number of elements.
func (l *List) Len() int { return len(l.items) }

// Items returns the backing elements. Callers must not modify the slice.
func (l *List) Items() []Value { return l.items }

// Append adds v at the end in place.
func (l *List) Append(v Value) {
	v, _ = detach(l, Unwrap(v))
	l.items = append(l.items, v)
}

// Get returns the element at address, wrapping the index modulo the length.
// An empty list or a non-numeric address yields Null.
func (l *List) Get(address Value) Value {
	if len(l.items) == 0 {
		return NullValue
	}
	n, ok := AsNumber(address)
	if !ok {
		return NullValue
	}
	return l.items[floorMod(n.Int64(), int64(len(l.items)))]
}

// Put writes v at address. A Null address or an address equal to the length
// appends; negative addresses count from the end. Any other address outside
// the list is refused.
func (l *List) Put(address Value, v Value) bool {
	v, _ = detach(l, Unwrap(v))
	if IsNull(address) {
		l.items = append(l.items, v)
		return true
	}
	n, ok := AsNumber(address)
	if !ok {
		return false
	}
	size := int64(len(l.items))
	idx := n.Int64()
	if idx < 0 {
		idx += size
		if idx < 0 {
			return false
		}
	}
	switch {
	case idx > size:
		return false
	case idx == size:
		l.items = append(l.items, v)
	default:
		l.items[idx] = v
	}
	return true
}

func (l *List) String() string {
	return "[" + joinValues(l.items, Value.String) + "]"
}

func (l *List) Pretty() string {
	if len(l.items) <= prettyLimit {
		return "[" + joinValues(l.items, Value.Pretty) + "]"
	}
	head := joinValues(l.items[:prettyLimit/2], Value.Pretty)
	tail := joinValues(l.items[len(l.items)-2:], Value.Pretty)
	return "[" + head + ", ..., " + tail + "]"
}

// ListConstructor is a list produced by literal list syntax in assignable
// context. Its items are the evaluated targets of a destructuring assignment.
type ListConstructor struct {
	*List
}

// NewListConstructor creates a destructuring pattern over targets.
func NewListConstructor(targets ...Value) ListConstructor {
	return ListConstructor{List: &List{items: targets}}
}

func (ListConstructor) Kind() Kind { return KindListConstructor }

// Targets returns the pattern elements as evaluated, refs included.
func (c ListConstructor) Targets() []Value { return c.items }

func joinValues(items []Value, render func(Value) string) string {
	var sb strings.Builder
	for i, v := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(render(v))
	}
	return sb.String()
}
