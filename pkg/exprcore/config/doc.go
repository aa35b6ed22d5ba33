/*
Package config reads runtime settings from decoded YAML or JSON data.

# Accessors

Config wraps a map[string]any. Each accessor takes a default that is returned
when the key is missing or holds a value of the wrong shape:

	cfg := config.New(map[string]any{
	    "metrics":  true,
	    "disabled": []any{"<>", "bitwise_not"},
	})

	cfg.Bool("metrics", false)           // true
	cfg.StringSlice("disabled", nil)     // ["<>", "bitwise_not"]
	cfg.String("module_store", "memory") // "memory"

Nested tables are reached with Section, and any entry can be read as an
expression value with Value.

# Settings

Settings is the typed form consumed by the runtime:

	settings, err := config.LoadSettings("exprcore.yaml")
	if err != nil {
	    return err
	}

Recognized keys:

	disabled      list of operator symbols and function names to remove
	metrics       record OpenTelemetry metrics
	tracing       record OpenTelemetry spans
	module_store  "" or "memory" for an in-memory store, otherwise a SQLite path
	log_level     debug, info, warn or error
	globals       table of variables every new scope starts with

# Files

LoadSettings picks the format by extension (.yaml, .yml, .json) and wraps
decode errors with the file path. Parse decodes in-memory documents. JSON
numbers are kept as json.Number until Settings converts them, so 64-bit
integer globals survive exactly.
*/
package config
