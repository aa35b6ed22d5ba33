package value

// Null is the absent value.
type Null struct{}

// NullValue is the shared Null instance.
var NullValue Value = Null{}

func (Null) Kind() Kind     { return KindNull }
func (Null) String() string { return "null" }
func (Null) Pretty() string { return "null" }
func (Null) Truthy() bool   { return false }
func (Null) isValue()       {}
func (Null) Native() any    { return nil }

// Bool is the boolean variant. In arithmetic it behaves as exact 0 or 1.
type Bool bool

const (
	True  Bool = true
	False Bool = false
)

// BoolOf converts b to a Bool value.
func BoolOf(b bool) Bool { return Bool(b) }

func (Bool) Kind() Kind { return KindBool }
func (Bool) isValue()   {}

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

func (b Bool) Pretty() string { return b.String() }
func (b Bool) Truthy() bool   { return bool(b) }

// Number returns the exact numeric form, 1 or 0.
func (b Bool) Number() Number {
	if b {
		return Int(1)
	}
	return Int(0)
}

// String is the text variant.
type String string

func (String) Kind() Kind       { return KindString }
func (String) isValue()         {}
func (s String) String() string { return string(s) }
func (s String) Pretty() string { return string(s) }
func (s String) Truthy() bool   { return s != "" }
func (s String) Len() int       { return len([]rune(string(s))) }
