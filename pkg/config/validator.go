package config

import (
	"errors"
	"fmt"
)

// ConfigValidator provides a fluent interface for cross-field checks
// that struct tags cannot express. It collects all validation errors
// rather than failing on the first one.
type ConfigValidator struct {
	errors []error
	name   string // config struct name for error messages
}

// NewConfigValidator creates a new config validator with the given config name.
func NewConfigValidator(configName string) *ConfigValidator {
	return &ConfigValidator{
		name:   configName,
		errors: make([]error, 0),
	}
}

// LessOrEqualInt32 validates that lo does not exceed hi.
func (cv *ConfigValidator) LessOrEqualInt32(field string, lo, hi int32) *ConfigValidator {
	if lo > hi {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: %d exceeds its upper bound %d", cv.name, field, lo, hi))
	}
	return cv
}

// Positive validates that an int field is positive (> 0).
func (cv *ConfigValidator) Positive(field string, value int) *ConfigValidator {
	if value <= 0 {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: value %d must be positive", cv.name, field, value))
	}
	return cv
}

// NonNegative validates that an int field is non-negative (>= 0).
func (cv *ConfigValidator) NonNegative(field string, value int) *ConfigValidator {
	if value < 0 {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: value %d must be non-negative", cv.name, field, value))
	}
	return cv
}

// Validate returns the collected errors joined, or nil when all
// checks passed.
func (cv *ConfigValidator) Validate() error {
	if len(cv.errors) == 0 {
		return nil
	}
	return errors.Join(cv.errors...)
}
