package config

import (
	"fmt"
	"strings"

	"github.com/ponyatov/kb/pkg/common/logger"
	"github.com/ponyatov/kb/pkg/numdemo"
)

// Known configuration keys
const (
	KeyDemoVariant  = "demo.variant"
	KeyOutputFormat = "output.format"
	KeyLogLevel     = "log.level"
	KeyLogFormat    = "log.format"
)

// Output formats accepted by output.format
const (
	OutputPlain = "plain"
	OutputTable = "table"
)

// Validator provides semantic validation for configuration values
type Validator struct{}

// ValidateKeyValue validates a configuration key-value pair
func (v *Validator) ValidateKeyValue(key, value string) error {
	parts := strings.Split(key, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return NewConfigError("validate", CodeInvalidKeyErr, key, "", "", fmt.Errorf("%w: key must have section.name format", ErrInvalidKey))
	}

	switch parts[0] {
	case "demo":
		return v.validateDemo(key, parts[1], value)
	case "output":
		return v.validateOutput(key, parts[1], value)
	case "log":
		return v.validateLog(key, parts[1], value)
	default:
		return NewConfigError("validate", CodeInvalidKeyErr, key, "", "", ErrInvalidKey)
	}
}

func (v *Validator) validateDemo(key, name, value string) error {
	switch name {
	case "variant":
		if _, err := numdemo.ParseVariant(value); err != nil {
			return NewInvalidValueError(key, err)
		}
		return nil
	default:
		return NewConfigError("validate", CodeInvalidKeyErr, key, "", "", ErrInvalidKey)
	}
}

func (v *Validator) validateOutput(key, name, value string) error {
	switch name {
	case "format":
		return v.validateEnum(key, value, OutputPlain, OutputTable)
	default:
		return NewConfigError("validate", CodeInvalidKeyErr, key, "", "", ErrInvalidKey)
	}
}

func (v *Validator) validateLog(key, name, value string) error {
	switch name {
	case "level":
		if _, err := logger.ParseLevel(value); err != nil {
			return NewInvalidValueError(key, err)
		}
		return nil
	case "format":
		if _, err := logger.ParseFormat(value); err != nil {
			return NewInvalidValueError(key, err)
		}
		return nil
	default:
		return NewConfigError("validate", CodeInvalidKeyErr, key, "", "", ErrInvalidKey)
	}
}

func (v *Validator) validateEnum(key, value string, allowed ...string) error {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if normalized == a {
			return nil
		}
	}
	return NewInvalidValueError(key, fmt.Errorf("%q is not one of %s", value, strings.Join(allowed, ", ")))
}
