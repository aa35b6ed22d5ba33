/*
Package exprcore hosts the operator and value layer of an embeddable
expression language.

# Overview

The language evaluates expression trees whose nodes are suspended
computations (operators.Thunk). Operators and functions live in a Registry;
each language instance owns its own. Values are dynamically typed: numbers
with an exact 64-bit form, strings, booleans, null, and mutable lists and maps
shared by reference.

Runtime bundles a frozen registry with logging, metrics, tracing and a store
for module data:

	rt, err := exprcore.New(exprcore.WithLogger(logger))
	if err != nil {
	    return err
	}
	defer rt.Close()

	reg := rt.Registry()
	prog := scope.Seq(
	    scope.Binary(reg, "=", scope.Var("xs"), scope.Lit(value.NewList())),
	    scope.Binary(reg, "+=", scope.Var("xs"), scope.Lit(value.Int(1))),
	    scope.Call(reg, "sum", scope.Unary(reg, "...", scope.Var("xs")), scope.Lit(value.Int(2))),
	)
	v, err := rt.Evaluate(ctx, rt.NewScope(), prog) // 3

# Calling Built-ins

Call applies a function, or an operator when no function has the name, to
already evaluated arguments:

	v, err := rt.Call(ctx, nil, "bitwise_roll_left", value.Int(1), value.Int(1)) // 2
	v, err = rt.Call(ctx, nil, "%", value.Int(5), value.Float(0))               // arithmetic error

# Configuration

Settings come from the config package; WithSettings applies them:

	settings, _ := config.LoadSettings("exprcore.yaml")
	rt, err := exprcore.New(exprcore.WithSettings(settings))

Disabled names are removed from the registry before it is frozen, metrics and
tracing switch on OpenTelemetry recorders, and globals seed every scope made
by NewScope.

# Module Data

Each module may persist one value. The store defaults to memory; a SQLite
path in settings makes it durable:

	err := rt.SaveModuleData(ctx, mod, state)
	state, err := rt.LoadModuleData(ctx, mod) // Null when nothing was saved

# Errors

Evaluation failures are returned as *EvalError wrapping the underlying
semantic or arithmetic error (see the errors package). Panics raised by host
thunks are recovered into *PanicError. Nothing is retried.
*/
package exprcore
