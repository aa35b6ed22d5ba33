package config

import (
	"github.com/randalmurphal/exprcore/pkg/exprcore/value"
)

// Config is a read-only view over decoded settings data.
type Config struct {
	data map[string]any
}

// New wraps data. A nil map yields an empty Config.
func New(data map[string]any) Config {
	if data == nil {
		data = make(map[string]any)
	}
	return Config{data: data}
}

// String returns the string at key, or defaultVal.
func (c Config) String(key, defaultVal string) string {
	if s, ok := c.data[key].(string); ok {
		return s
	}
	return defaultVal
}

// Bool returns the bool at key, or defaultVal.
func (c Config) Bool(key string, defaultVal bool) bool {
	if b, ok := c.data[key].(bool); ok {
		return b
	}
	return defaultVal
}

// StringSlice returns the list of strings at key, or defaultVal if the entry
// is missing or any element is not a string.
func (c Config) StringSlice(key string, defaultVal []string) []string {
	switch v := c.data[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return defaultVal
			}
			out = append(out, s)
		}
		return out
	}
	return defaultVal
}

// Section returns the nested table at key. A missing or non-table entry
// yields an empty Config.
func (c Config) Section(key string) Config {
	m, _ := c.data[key].(map[string]any)
	return New(m)
}

// Value converts the entry at key to an expression value. A missing key is
// Null.
func (c Config) Value(key string) (value.Value, error) {
	raw, ok := c.data[key]
	if !ok {
		return value.NullValue, nil
	}
	return value.FromNative(raw)
}

// Has reports whether key is present.
func (c Config) Has(key string) bool {
	_, ok := c.data[key]
	return ok
}

// Keys lists the top-level keys in unspecified order.
func (c Config) Keys() []string {
	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	return keys
}

// Raw returns the underlying map. Callers must not modify it.
func (c Config) Raw() map[string]any {
	return c.data
}
