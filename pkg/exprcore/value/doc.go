/*
Package value provides the value model for the expression runtime.

# Overview

Every evaluation produces a Value. The set of variants is closed:

	Null             the absent value
	Number           double precision, optionally carrying an exact int64
	Bool             true / false (participates in arithmetic as exact 0 / 1)
	String           immutable text
	*List            mutable, shared sequence
	ListConstructor  a list produced by literal list syntax, used as a destructuring target
	*Map             mutable, shared, insertion-ordered mapping keyed by Value
	Annotation       marks a signature parameter (vararg)
	Unpacked         elements produced by the spread operator
	LContainer       an assignable {container, address} location

ListConstructor and LContainer are transient: they exist only as the result of
evaluating an assignment target and are consumed by the assignment operator in
the same step. They are never stored in variables.

A Ref wraps any variant with the name of the variable it is bound to. It is the
shape a plain variable takes in assignable context and the shape every value
takes after it is bound. All operations in this package look through refs.

# Numeric tower

A Number always carries a float64 and optionally an exact int64:

	value.Int(3)      exact
	value.Float(3)    approximate
	value.ParseNumber("2.0")   exact 2
	value.ParseNumber("2.5")   approximate

Add, Subtract and Multiply stay exact while both operands are exact. Any
approximate operand makes the result approximate, and exactness is never
reconstructed from a float result. Divide is always approximate and follows
IEEE-754 (1/0 is +Inf). Modulo uses floor-mod on exact operands and
x - floor(x/y)*y otherwise, failing with an arithmetic error on a zero divisor.

Equality and truthiness tolerate float round-off:

	|a - b| <= epsilon   equal
	|v| > epsilon        true

# Shared containers

*List and *Map are reference values. Binding the same list to two variables
makes both observe in-place appends:

	l := value.NewList(value.Int(1), value.Int(2))
	alias := l
	l.Append(value.Int(3))
	// alias.Len() == 3

# Hashing

Hash is consistent with Equal for every variant: values that compare equal hash
equal, including an exact integer and an approximate number within epsilon of it.
*/
package value
