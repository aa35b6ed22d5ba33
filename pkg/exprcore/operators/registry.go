package operators

import (
	exerrors "github.com/randalmurphal/exprcore/pkg/exprcore/errors"
	"github.com/randalmurphal/exprcore/pkg/exprcore/table"
	"github.com/randalmurphal/exprcore/pkg/exprcore/value"
)

// Eager function shapes receive evaluated operands.
type (
	BinaryFunc func(a, b value.Value) (value.Value, error)
	UnaryFunc  func(v value.Value) (value.Value, error)
	Func       func(args []value.Value) (value.Value, error)
)

// Lazy function shapes receive suspended operands and the caller's context.
type (
	LazyBinaryFunc func(s Scope, t ContextType, lhs, rhs Thunk) (Thunk, error)
	LazyUnaryFunc  func(s Scope, t ContextType, operand Thunk) (Thunk, error)
	LazyFunc       func(s Scope, t ContextType, args []Thunk) (Thunk, error)
)

// Variadic is the arity of a function accepting any number of arguments.
const Variadic = -1

// OperatorInfo describes a registered operator.
type OperatorInfo struct {
	Symbol       string
	Precedence   Precedence
	LeftAssoc    bool
	Lazy         bool
	ShortCircuit bool
}

// FunctionInfo describes a registered function.
type FunctionInfo struct {
	Name  string
	Arity int
	Lazy  bool
}

// BinaryOp is a registered infix operator.
type BinaryOp interface {
	Info() OperatorInfo

	// Context returns the context operands are evaluated in.
	Context(caller ContextType) ContextType

	// Apply evaluates the operator. Eager operators force lhs then rhs in
	// ContextNone before dispatch.
	Apply(s Scope, t ContextType, lhs, rhs Thunk) (Thunk, error)

	sealed()
}

// UnaryOp is a registered prefix operator.
type UnaryOp interface {
	Info() OperatorInfo
	Context(caller ContextType) ContextType
	Apply(s Scope, t ContextType, operand Thunk) (Thunk, error)
	sealed()
}

// Callable is a registered function.
type Callable interface {
	Info() FunctionInfo
	Context(caller ContextType) ContextType

	// Apply evaluates the call. Eager functions force arguments left to right
	// and splice spread arguments in place before checking arity.
	Apply(s Scope, t ContextType, args []Thunk) (Thunk, error)

	sealed()
}

type eagerBinary struct {
	info OperatorInfo
	fn   BinaryFunc
}

func (o *eagerBinary) Info() OperatorInfo              { return o.info }
func (o *eagerBinary) Context(ContextType) ContextType { return ContextNone }
func (o *eagerBinary) sealed()                         {}

func (o *eagerBinary) Apply(s Scope, _ ContextType, lhs, rhs Thunk) (Thunk, error) {
	a, err := lhs.Eval(s, ContextNone)
	if err != nil {
		return nil, err
	}
	b, err := rhs.Eval(s, ContextNone)
	if err != nil {
		return nil, err
	}
	v, err := o.fn(a, b)
	if err != nil {
		return nil, err
	}
	return Const(v), nil
}

type lazyBinary struct {
	info     OperatorInfo
	selector Selector
	fn       LazyBinaryFunc
}

func (o *lazyBinary) Info() OperatorInfo { return o.info }
func (o *lazyBinary) sealed()            {}

func (o *lazyBinary) Context(caller ContextType) ContextType {
	return selectContext(o.selector, caller)
}

func (o *lazyBinary) Apply(s Scope, t ContextType, lhs, rhs Thunk) (Thunk, error) {
	return o.fn(s, t, lhs, rhs)
}

type eagerUnary struct {
	info OperatorInfo
	fn   UnaryFunc
}

func (o *eagerUnary) Info() OperatorInfo              { return o.info }
func (o *eagerUnary) Context(ContextType) ContextType { return ContextNone }
func (o *eagerUnary) sealed()                         {}

func (o *eagerUnary) Apply(s Scope, _ ContextType, operand Thunk) (Thunk, error) {
	v, err := operand.Eval(s, ContextNone)
	if err != nil {
		return nil, err
	}
	r, err := o.fn(v)
	if err != nil {
		return nil, err
	}
	return Const(r), nil
}

type lazyUnary struct {
	info     OperatorInfo
	selector Selector
	fn       LazyUnaryFunc
}

func (o *lazyUnary) Info() OperatorInfo { return o.info }
func (o *lazyUnary) sealed()            {}

func (o *lazyUnary) Context(caller ContextType) ContextType {
	return selectContext(o.selector, caller)
}

func (o *lazyUnary) Apply(s Scope, t ContextType, operand Thunk) (Thunk, error) {
	return o.fn(s, t, operand)
}

type eagerFunction struct {
	info FunctionInfo
	fn   Func
}

func (f *eagerFunction) Info() FunctionInfo              { return f.info }
func (f *eagerFunction) Context(ContextType) ContextType { return ContextNone }
func (f *eagerFunction) sealed()                         {}

func (f *eagerFunction) Apply(s Scope, _ ContextType, args []Thunk) (Thunk, error) {
	vals := make([]value.Value, 0, len(args))
	for _, arg := range args {
		v, err := arg.Eval(s, ContextNone)
		if err != nil {
			return nil, err
		}
		if u, ok := value.Unwrap(v).(value.Unpacked); ok {
			vals = append(vals, u.Items()...)
			continue
		}
		vals = append(vals, v)
	}
	if err := checkArity(f.info, len(vals)); err != nil {
		return nil, err
	}
	r, err := f.fn(vals)
	if err != nil {
		return nil, err
	}
	return Const(r), nil
}

type lazyFunction struct {
	info     FunctionInfo
	selector Selector
	fn       LazyFunc
}

func (f *lazyFunction) Info() FunctionInfo { return f.info }
func (f *lazyFunction) sealed()            {}

func (f *lazyFunction) Context(caller ContextType) ContextType {
	return selectContext(f.selector, caller)
}

func (f *lazyFunction) Apply(s Scope, t ContextType, args []Thunk) (Thunk, error) {
	if err := checkArity(f.info, len(args)); err != nil {
		return nil, err
	}
	return f.fn(s, t, args)
}

func checkArity(info FunctionInfo, n int) error {
	if info.Arity == Variadic || info.Arity == n {
		return nil
	}
	return exerrors.Expression(exerrors.ErrArity, "%s expects %d arguments, got %d", info.Name, info.Arity, n)
}

func selectContext(sel Selector, caller ContextType) ContextType {
	if sel == nil {
		return caller
	}
	return sel(caller)
}

// Registry binds operator symbols and function names to their semantics.
// A Registry is an ordinary value: independent language instances each own
// one. It is safe for concurrent lookups.
type Registry struct {
	binary      *table.Table[string, BinaryOp]
	unary       *table.Table[string, UnaryOp]
	functions   *table.Table[string, Callable]
	equivalents *table.Table[string, string]
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		binary:      table.New[string, BinaryOp](),
		unary:       table.New[string, UnaryOp](),
		functions:   table.New[string, Callable](),
		equivalents: table.New[string, string](),
	}
}

// AddBinaryOperator registers an eager infix operator.
func (r *Registry) AddBinaryOperator(symbol string, p Precedence, leftAssoc bool, fn BinaryFunc) error {
	return r.binary.Register(symbol, &eagerBinary{
		info: OperatorInfo{Symbol: symbol, Precedence: p, LeftAssoc: leftAssoc},
		fn:   fn,
	})
}

// AddLazyBinaryOperator registers an infix operator that controls the
// evaluation of its operands.
func (r *Registry) AddLazyBinaryOperator(symbol string, p Precedence, leftAssoc, shortCircuit bool, sel Selector, fn LazyBinaryFunc) error {
	return r.binary.Register(symbol, &lazyBinary{
		info:     OperatorInfo{Symbol: symbol, Precedence: p, LeftAssoc: leftAssoc, Lazy: true, ShortCircuit: shortCircuit},
		selector: sel,
		fn:       fn,
	})
}

// AddUnaryOperator registers an eager prefix operator at unary precedence.
func (r *Registry) AddUnaryOperator(symbol string, leftAssoc bool, fn UnaryFunc) error {
	return r.unary.Register(symbol, &eagerUnary{
		info: OperatorInfo{Symbol: symbol, Precedence: PrecedenceUnary, LeftAssoc: leftAssoc},
		fn:   fn,
	})
}

// AddLazyUnaryOperator registers a prefix operator that controls the
// evaluation of its operand.
func (r *Registry) AddLazyUnaryOperator(symbol string, p Precedence, leftAssoc, shortCircuit bool, sel Selector, fn LazyUnaryFunc) error {
	return r.unary.Register(symbol, &lazyUnary{
		info:     OperatorInfo{Symbol: symbol, Precedence: p, LeftAssoc: leftAssoc, Lazy: true, ShortCircuit: shortCircuit},
		selector: sel,
		fn:       fn,
	})
}

// AddFunction registers an eager function. Use Variadic for any arity.
func (r *Registry) AddFunction(name string, arity int, fn Func) error {
	return r.functions.Register(name, &eagerFunction{
		info: FunctionInfo{Name: name, Arity: arity},
		fn:   fn,
	})
}

// AddUnaryFunction registers an eager one-argument function.
func (r *Registry) AddUnaryFunction(name string, fn UnaryFunc) error {
	return r.AddFunction(name, 1, func(args []value.Value) (value.Value, error) {
		return fn(args[0])
	})
}

// AddBinaryFunction registers an eager two-argument function.
func (r *Registry) AddBinaryFunction(name string, fn BinaryFunc) error {
	return r.AddFunction(name, 2, func(args []value.Value) (value.Value, error) {
		return fn(args[0], args[1])
	})
}

// AddLazyFunction registers a function that controls the evaluation of its
// arguments.
func (r *Registry) AddLazyFunction(name string, arity int, sel Selector, fn LazyFunc) error {
	return r.functions.Register(name, &lazyFunction{
		info:     FunctionInfo{Name: name, Arity: arity, Lazy: true},
		selector: sel,
		fn:       fn,
	})
}

// AddMathematicalBinaryIntFunction registers a two-argument function over
// the 64-bit integer forms of its numeric operands.
func (r *Registry) AddMathematicalBinaryIntFunction(name string, fn func(a, b int64) int64) error {
	return r.AddBinaryFunction(name, func(a, b value.Value) (value.Value, error) {
		x, err := value.RequireNumber(a)
		if err != nil {
			return nil, err
		}
		y, err := value.RequireNumber(b)
		if err != nil {
			return nil, err
		}
		return value.Int(fn(x.Int64(), y.Int64())), nil
	})
}

// AddMathematicalUnaryIntFunction registers a one-argument function over the
// 64-bit integer form of its numeric operand.
func (r *Registry) AddMathematicalUnaryIntFunction(name string, fn func(int64) int64) error {
	return r.AddUnaryFunction(name, func(v value.Value) (value.Value, error) {
		x, err := value.RequireNumber(v)
		if err != nil {
			return nil, err
		}
		return value.Int(fn(x.Int64())), nil
	})
}

// AddFunctionalEquivalence declares that the binary operator symbol and the
// function name compute the same result for two arguments. Both must be
// registered.
func (r *Registry) AddFunctionalEquivalence(symbol, name string) error {
	if !r.binary.Has(symbol) {
		return exerrors.Expression(exerrors.ErrUnknownFunction, "no binary operator %q", symbol)
	}
	if !r.functions.Has(name) {
		return exerrors.Expression(exerrors.ErrUnknownFunction, "no function %q", name)
	}
	return r.equivalents.Register(symbol, name)
}

// BinaryOperator looks up an infix operator.
func (r *Registry) BinaryOperator(symbol string) (BinaryOp, bool) {
	return r.binary.Get(symbol)
}

// UnaryOperator looks up a prefix operator.
func (r *Registry) UnaryOperator(symbol string) (UnaryOp, bool) {
	return r.unary.Get(symbol)
}

// Function looks up a function.
func (r *Registry) Function(name string) (Callable, bool) {
	return r.functions.Get(name)
}

// FunctionalEquivalent returns the function declared equivalent to symbol.
func (r *Registry) FunctionalEquivalent(symbol string) (string, bool) {
	return r.equivalents.Get(symbol)
}

// BinaryOperators lists infix operators in registration order.
func (r *Registry) BinaryOperators() []OperatorInfo {
	var out []OperatorInfo
	r.binary.Range(func(_ string, op BinaryOp) bool {
		out = append(out, op.Info())
		return true
	})
	return out
}

// UnaryOperators lists prefix operators in registration order.
func (r *Registry) UnaryOperators() []OperatorInfo {
	var out []OperatorInfo
	r.unary.Range(func(_ string, op UnaryOp) bool {
		out = append(out, op.Info())
		return true
	})
	return out
}

// Functions lists functions in registration order.
func (r *Registry) Functions() []FunctionInfo {
	var out []FunctionInfo
	r.functions.Range(func(_ string, fn Callable) bool {
		out = append(out, fn.Info())
		return true
	})
	return out
}

// Unregister removes every operator and function registered under name,
// along with any equivalence naming it.
func (r *Registry) Unregister(name string) (bool, error) {
	removed := false
	for _, del := range []func(string) (bool, error){r.binary.Delete, r.unary.Delete, r.functions.Delete, r.equivalents.Delete} {
		ok, err := del(name)
		if err != nil {
			return removed, err
		}
		removed = removed || ok
	}

	var stale []string
	r.equivalents.Range(func(symbol, fn string) bool {
		if fn == name {
			stale = append(stale, symbol)
		}
		return true
	})
	for _, symbol := range stale {
		if _, err := r.equivalents.Delete(symbol); err != nil {
			return removed, err
		}
	}
	return removed, nil
}

// Disable unregisters each name. Unknown names are ignored.
func (r *Registry) Disable(names ...string) error {
	for _, name := range names {
		if _, err := r.Unregister(name); err != nil {
			return err
		}
	}
	return nil
}

// Freeze rejects further registration and removal.
func (r *Registry) Freeze() {
	r.binary.Freeze()
	r.unary.Freeze()
	r.functions.Freeze()
	r.equivalents.Freeze()
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	return r.functions.Frozen()
}
