package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/exprcore/pkg/exprcore/module"
)

func newDataCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Manage persisted module data",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "get MODULE",
			Short: "Print the data saved for a module",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				rt, err := a.runtime(cmd)
				if err != nil {
					return err
				}
				defer rt.Close()

				m, err := moduleNamed(args[0])
				if err != nil {
					return err
				}
				v, err := rt.LoadModuleData(cmd.Context(), m)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), v.String())
				return nil
			},
		},
		&cobra.Command{
			Use:   "set MODULE JSON",
			Short: "Replace the data saved for a module",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				rt, err := a.runtime(cmd)
				if err != nil {
					return err
				}
				defer rt.Close()

				m, err := moduleNamed(args[0])
				if err != nil {
					return err
				}
				return rt.SaveModuleData(cmd.Context(), m, parseArg(args[1]))
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List modules with saved data",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				rt, err := a.runtime(cmd)
				if err != nil {
					return err
				}
				defer rt.Close()

				infos, err := rt.Store().List()
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "MODULE\tREVISION\tSIZE\tSAVED")
				for _, info := range infos {
					fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", info.Module, info.Revision, info.Size, info.Timestamp.Format(time.RFC3339))
				}
				return w.Flush()
			},
		},
		&cobra.Command{
			Use:   "delete MODULE",
			Short: "Remove the data saved for a module",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				rt, err := a.runtime(cmd)
				if err != nil {
					return err
				}
				defer rt.Close()

				m, err := moduleNamed(args[0])
				if err != nil {
					return err
				}
				return rt.Store().Delete(m.Name)
			},
		},
	)
	return cmd
}

// moduleNamed accepts a bare module name or a source file name such as
// "Counter.sc"; the extension is stripped and the name lowercased.
func moduleNamed(arg string) (module.Module, error) {
	name, library := module.ParseName(arg)
	return module.New(name, "", library)
}
