package config

import (
	"strings"

	"github.com/ponyatov/kb/pkg/common/logger"
	"github.com/ponyatov/kb/pkg/numdemo"
)

// TypedConfig provides type-safe access to the known configuration keys.
// Values that fail to parse fall back to the builtin default.
type TypedConfig struct {
	manager *Manager
}

// NewTypedConfig creates a new TypedConfig wrapper around a Manager
func NewTypedConfig(manager *Manager) *TypedConfig {
	return &TypedConfig{manager: manager}
}

// DemoVariant returns demo.variant
func (tc *TypedConfig) DemoVariant() numdemo.Variant {
	if entry := tc.manager.Get(KeyDemoVariant); entry != nil {
		if v, err := numdemo.ParseVariant(entry.AsString()); err == nil {
			return v
		}
	}
	return numdemo.VariantParity
}

// OutputFormat returns output.format, either OutputPlain or OutputTable
func (tc *TypedConfig) OutputFormat() string {
	if entry := tc.manager.Get(KeyOutputFormat); entry != nil {
		if f := strings.ToLower(strings.TrimSpace(entry.AsString())); f == OutputTable {
			return OutputTable
		}
	}
	return OutputPlain
}

// LogLevel returns log.level
func (tc *TypedConfig) LogLevel() logger.Level {
	if entry := tc.manager.Get(KeyLogLevel); entry != nil {
		if l, err := logger.ParseLevel(entry.AsString()); err == nil {
			return l
		}
	}
	return logger.LevelInfo
}

// LogFormat returns log.format
func (tc *TypedConfig) LogFormat() logger.Format {
	if entry := tc.manager.Get(KeyLogFormat); entry != nil {
		if f, err := logger.ParseFormat(entry.AsString()); err == nil {
			return f
		}
	}
	return logger.FormatText
}

// GetString returns a configuration value as a string
func (tc *TypedConfig) GetString(key string) string {
	entry := tc.manager.Get(key)
	if entry == nil {
		return ""
	}
	return entry.AsString()
}
