package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/exprcore/pkg/exprcore/operators"
)

type ops struct {
	app *app
}

func newOpsCommand(a *app) *cobra.Command {
	o := &ops{app: a}
	return &cobra.Command{
		Use:   "ops",
		Short: "List operators and functions in registration order",
		Args:  cobra.NoArgs,
		RunE:  o.Run,
	}
}

func (o *ops) Run(cmd *cobra.Command, _ []string) error {
	rt, err := o.app.runtime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()
	reg := rt.Registry()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "BINARY\tPRECEDENCE\tASSOC\tFLAGS\tFUNCTION")
	for _, info := range reg.BinaryOperators() {
		fn, _ := reg.FunctionalEquivalent(info.Symbol)
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", info.Symbol, info.Precedence, assoc(info), flags(info.Lazy, info.ShortCircuit), fn)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "UNARY\tPRECEDENCE\tASSOC\tFLAGS\t")
	for _, info := range reg.UnaryOperators() {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t\n", info.Symbol, info.Precedence, assoc(info), flags(info.Lazy, info.ShortCircuit))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "FUNCTION\tARITY\t\tFLAGS\t")
	for _, info := range reg.Functions() {
		arity := fmt.Sprint(info.Arity)
		if info.Arity == operators.Variadic {
			arity = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t\t%s\t\n", info.Name, arity, flags(info.Lazy, false))
	}
	return w.Flush()
}

func assoc(info operators.OperatorInfo) string {
	if info.LeftAssoc {
		return "left"
	}
	return "right"
}

func flags(lazy, shortCircuit bool) string {
	var out []string
	if lazy {
		out = append(out, "lazy")
	}
	if shortCircuit {
		out = append(out, "short-circuit")
	}
	if len(out) == 0 {
		return "-"
	}
	return strings.Join(out, ",")
}
