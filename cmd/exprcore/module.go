package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/exprcore/pkg/exprcore/module"
)

func newModuleCommand(*app) *cobra.Command {
	return &cobra.Command{
		Use:   "module FILE",
		Short: "Show the name and kind a source file loads as",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := module.FromPath(args[0])
			if err != nil {
				return err
			}
			kind := "app"
			if m.Library {
				kind = "library"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "name: %s\nkind: %s\nsize: %d\n", m.Name, kind, len(m.Code))
			return nil
		},
	}
}
