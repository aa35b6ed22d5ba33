package exprcore

import (
	"log/slog"

	"github.com/randalmurphal/exprcore/pkg/exprcore/config"
	"github.com/randalmurphal/exprcore/pkg/exprcore/module"
	"github.com/randalmurphal/exprcore/pkg/exprcore/observability"
	"github.com/randalmurphal/exprcore/pkg/exprcore/operators"
)

// runtimeConfig collects options before the runtime is built.
type runtimeConfig struct {
	id       string
	logger   *slog.Logger
	metrics  observability.MetricsRecorder
	spans    observability.SpanManager
	store    module.Store
	registry *operators.Registry
	settings config.Settings
}

func defaultRuntimeConfig() runtimeConfig {
	return runtimeConfig{settings: config.Default()}
}

// Option configures a Runtime.
type Option func(*runtimeConfig)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *runtimeConfig) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics recorder, overriding the metrics setting.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *runtimeConfig) {
		c.metrics = m
	}
}

// WithSpans sets the span manager, overriding the tracing setting.
func WithSpans(s observability.SpanManager) Option {
	return func(c *runtimeConfig) {
		c.spans = s
	}
}

// WithStore sets the module data store, overriding the module_store setting.
// The caller keeps ownership; Close does not close it.
func WithStore(s module.Store) Option {
	return func(c *runtimeConfig) {
		c.store = s
	}
}

// WithRegistry starts from r instead of the built-in registry. Disabled names
// are still removed and r is frozen.
func WithRegistry(r *operators.Registry) Option {
	return func(c *runtimeConfig) {
		c.registry = r
	}
}

// WithSettings applies settings loaded from configuration.
func WithSettings(s config.Settings) Option {
	return func(c *runtimeConfig) {
		c.settings = s
	}
}

// WithRuntimeID sets the runtime ID. Default: a random UUID.
func WithRuntimeID(id string) Option {
	return func(c *runtimeConfig) {
		if id != "" {
			c.id = id
		}
	}
}
