package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/randalmurphal/exprcore/pkg/exprcore/value"
)

// Settings configures a runtime.
type Settings struct {
	// Disabled names operators and functions removed from the registry.
	Disabled []string

	Metrics bool
	Tracing bool

	// ModuleStore is "" or "memory" for an in-memory store, otherwise the
	// path of a SQLite database.
	ModuleStore string

	LogLevel slog.Level

	// Globals are bound in every scope the runtime creates.
	Globals map[string]value.Value
}

// Default returns the settings used when no configuration is supplied.
func Default() Settings {
	return Settings{LogLevel: slog.LevelInfo}
}

// InMemoryStore reports whether module data stays in process.
func (s Settings) InMemoryStore() bool {
	return s.ModuleStore == "" || s.ModuleStore == "memory"
}

// Settings decodes the recognized keys. Unknown keys are ignored.
func (c Config) Settings() (Settings, error) {
	s := Default()
	s.Disabled = c.StringSlice("disabled", nil)
	s.Metrics = c.Bool("metrics", false)
	s.Tracing = c.Bool("tracing", false)
	s.ModuleStore = c.String("module_store", "")

	level, err := ParseLevel(c.String("log_level", "info"))
	if err != nil {
		return Settings{}, err
	}
	s.LogLevel = level

	globals := c.Section("globals")
	if len(globals.Raw()) > 0 {
		s.Globals = make(map[string]value.Value, len(globals.Raw()))
		for _, name := range globals.Keys() {
			v, err := globals.Value(name)
			if err != nil {
				return Settings{}, fmt.Errorf("global %q: %w", name, err)
			}
			s.Globals[name] = v
		}
	}
	return s, nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}
