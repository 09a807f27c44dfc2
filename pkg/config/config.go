// Package config loads and validates the chunk pipeline configuration.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/voxelmesh/chunkstore/pkg/chunk"
	"github.com/voxelmesh/chunkstore/pkg/logging"
)

// validate is a singleton validator instance
var validate = validator.New()

// Config is the root configuration for the chunk pipeline.
type Config struct {
	Cache   CacheConfig   `yaml:"cache"`
	Pool    PoolConfig    `yaml:"pool"`
	Memory  MemoryConfig  `yaml:"memory"`
	Logging LoggingConfig `yaml:"logging"`
	Bounds  BoundsConfig  `yaml:"bounds"`
}

// CacheConfig configures the chunk cache.
type CacheConfig struct {
	// Size is the cache capacity in chunks; 0 derives it from the
	// memory budget.
	Size int `yaml:"size" validate:"min=0,max=100000"`
}

// PoolConfig configures the block carrier pool.
type PoolConfig struct {
	// Size bounds the pool; 0 uses the built-in default.
	Size int `yaml:"size" validate:"min=0,max=65536"`
}

// MemoryConfig configures the memory budget.
type MemoryConfig struct {
	// BudgetMB is the memory budget in mebibytes; 0 falls back to the
	// runtime's limit.
	BudgetMB int `yaml:"budget_mb" validate:"min=0"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// BoundsConfig is the inclusive chunk-grid area to serve.
type BoundsConfig struct {
	MinX int32 `yaml:"min_x"`
	MaxX int32 `yaml:"max_x"`
	MinZ int32 `yaml:"min_z"`
	MaxZ int32 `yaml:"max_z"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Pool: PoolConfig{
			Size: chunk.DefaultPoolSize,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Bounds: BoundsConfig{
			MinX: -32, MaxX: 32,
			MinZ: -32, MaxZ: 32,
		},
	}
}

// Load reads a YAML config file, applying defaults for absent fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and cross-field consistency.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}

	return NewConfigValidator("Config").
		LessOrEqualInt32("Bounds.MinX", c.Bounds.MinX, c.Bounds.MaxX).
		LessOrEqualInt32("Bounds.MinZ", c.Bounds.MinZ, c.Bounds.MaxZ).
		Validate()
}

// BufferConfig converts the file config into a chunk buffer config.
func (c *Config) BufferConfig() chunk.BufferConfig {
	return chunk.BufferConfig{
		CacheSize:    c.Cache.Size,
		PoolSize:     c.Pool.Size,
		MemoryBudget: uint64(c.Memory.BudgetMB) * 1024 * 1024,
	}
}

// BufferBounds converts the file config into chunk buffer bounds.
func (c *Config) BufferBounds() chunk.Bounds {
	return chunk.Bounds{
		MinX: c.Bounds.MinX, MaxX: c.Bounds.MaxX,
		MinZ: c.Bounds.MinZ, MaxZ: c.Bounds.MaxZ,
	}
}

// LogLevel returns the configured logging level.
func (c *Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.Logging.Level)
}

// formatValidationError turns validator errors into readable messages.
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must be at most %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		default:
			return fmt.Errorf("%s: failed %s validation", field, tag)
		}
	}
	return err
}
