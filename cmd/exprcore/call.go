package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/exprcore/pkg/exprcore/value"
)

const callLong = `Apply a function or operator to literal arguments.

Each argument is decoded as JSON; anything that is not valid JSON is passed
as a string. Operators are chosen by argument count, so "-" with one
argument negates and with two subtracts.`

const callExample = `  exprcore call bitwise_roll_left 1 1
  exprcore call + '[1, 2]' '[10, 20]'
  exprcore call unique '[1, 2, 1.0, "a"]'`

type call struct {
	app    *app
	pretty bool
}

func newCallCommand(a *app) *cobra.Command {
	c := &call{app: a}
	cmd := &cobra.Command{
		Use:     "call NAME [ARG...]",
		Short:   "Apply a function or operator to literal arguments",
		Long:    callLong,
		Example: callExample,
		Args:    cobra.MinimumNArgs(1),
		RunE:    c.Run,
	}
	cmd.Flags().BoolVarP(&c.pretty, "pretty", "p", false, "print numbers and lists in short form")
	return cmd
}

func (c *call) Run(cmd *cobra.Command, args []string) error {
	rt, err := c.app.runtime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	values := make([]value.Value, len(args)-1)
	for i, arg := range args[1:] {
		values[i] = parseArg(arg)
	}
	v, err := rt.Call(cmd.Context(), nil, args[0], values...)
	if err != nil {
		return err
	}
	if c.pretty {
		fmt.Fprintln(cmd.OutOrStdout(), v.Pretty())
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), v.String())
	}
	return nil
}

func parseArg(arg string) value.Value {
	v, err := value.FromJSON([]byte(arg))
	if err != nil {
		return value.String(arg)
	}
	return v
}
