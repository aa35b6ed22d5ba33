package value

// Container is an addressable value that assignment syntax can write into.
// Hosts implement it to expose their own mutable objects.
type Container interface {
	// Get returns the value at address, or Null when absent.
	Get(address Value) Value

	// Put writes v at address and reports whether the write was accepted.
	Put(address Value, v Value) bool
}

// Appender is implemented by containers that grow in place under +=.
type Appender interface {
	Append(v Value)
}

var (
	_ Container = (*List)(nil)
	_ Container = (*Map)(nil)
	_ Appender  = (*List)(nil)
	_ Appender  = (*Map)(nil)
)

// AnnotationType identifies what a signature annotation marks.
type AnnotationType int

const (
	// AnnotationVararg marks a variadic parameter.
	AnnotationVararg AnnotationType = iota
)

func (t AnnotationType) String() string {
	if t == AnnotationVararg {
		return "vararg"
	}
	return "unknown"
}

// Annotation marks an expression as part of a function signature.
type Annotation struct {
	Type  AnnotationType
	Inner Value
}

func (Annotation) Kind() Kind       { return KindAnnotation }
func (Annotation) isValue()         {}
func (Annotation) Truthy() bool     { return true }
func (a Annotation) String() string { return "..." + Unwrap(a.Inner).String() }
func (a Annotation) Pretty() string { return a.String() }

// Unpacked carries the elements produced by the spread operator for the
// enclosing call to consume positionally.
type Unpacked struct {
	items []Value
}

// NewUnpacked creates a spread carrier over items.
func NewUnpacked(items []Value) Unpacked {
	return Unpacked{items: items}
}

func (Unpacked) Kind() Kind       { return KindUnpacked }
func (Unpacked) isValue()         {}
func (u Unpacked) Truthy() bool   { return len(u.items) > 0 }
func (u Unpacked) Items() []Value { return u.items }
func (u Unpacked) Len() int       { return len(u.items) }
func (u Unpacked) String() string { return "..." + joinValues(u.items, Value.String) }
func (u Unpacked) Pretty() string { return "..." + joinValues(u.items, Value.Pretty) }

// LContainer is an assignable location inside a container.
type LContainer struct {
	Container Container
	Address   Value
}

func (LContainer) Kind() Kind { return KindLContainer }
func (LContainer) isValue()   {}

// Current reads the location. A nil container reads as Null.
func (c LContainer) Current() Value {
	if c.Container == nil {
		return NullValue
	}
	return Unwrap(c.Container.Get(c.Address))
}

func (c LContainer) String() string { return c.Current().String() }
func (c LContainer) Pretty() string { return c.Current().Pretty() }
func (c LContainer) Truthy() bool   { return c.Current().Truthy() }

// Elements returns the elements of a sequence-like value: list items, map
// entries as [key, value] pairs, or spread items.
func Elements(v Value) ([]Value, bool) {
	switch x := Unwrap(v).(type) {
	case *List:
		return x.items, true
	case ListConstructor:
		return x.items, true
	case *Map:
		return x.Pairs(), true
	case Unpacked:
		return x.items, true
	default:
		return nil, false
	}
}
