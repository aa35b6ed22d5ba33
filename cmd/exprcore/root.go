package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/exprcore/pkg/exprcore"
	"github.com/randalmurphal/exprcore/pkg/exprcore/config"
)

// app holds the flags shared by every subcommand.
type app struct {
	configPath string
	logLevel   string
	store      string
	disabled   []string
}

func newRootCommand() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:          "exprcore",
		Short:        "Inspect and apply expression operators",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Usage()
		},
	}
	cmd.CompletionOptions.HiddenDefaultCmd = true

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "YAML or JSON settings file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&a.store, "store", "", `module data store: "memory" or a SQLite path`)
	flags.StringSliceVar(&a.disabled, "disable", nil, "operators or functions to remove")

	cmd.AddCommand(
		newOpsCommand(a),
		newCallCommand(a),
		newModuleCommand(a),
		newDataCommand(a),
	)
	return cmd
}

// settings loads the config file, then applies flag overrides.
func (a *app) settings() (config.Settings, error) {
	s, err := config.LoadSettings(a.configPath)
	if err != nil {
		return config.Settings{}, err
	}
	if a.logLevel != "" {
		level, err := config.ParseLevel(a.logLevel)
		if err != nil {
			return config.Settings{}, err
		}
		s.LogLevel = level
	}
	if a.store != "" {
		s.ModuleStore = a.store
	}
	s.Disabled = append(s.Disabled, a.disabled...)
	return s, nil
}

// runtime builds a runtime logging to the command's error stream.
func (a *app) runtime(cmd *cobra.Command) (*exprcore.Runtime, error) {
	s, err := a.settings()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: s.LogLevel}))
	return exprcore.New(exprcore.WithSettings(s), exprcore.WithLogger(logger))
}
