package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/voxelmesh/chunkstore/pkg/chunk"
	"github.com/voxelmesh/chunkstore/pkg/logging"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chunkstore.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
	if cfg.Pool.Size != chunk.DefaultPoolSize {
		t.Errorf("Pool.Size = %d, want %d", cfg.Pool.Size, chunk.DefaultPoolSize)
	}
	if cfg.LogLevel() != logging.InfoLevel {
		t.Errorf("LogLevel() = %v, want info", cfg.LogLevel())
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
cache:
  size: 200
memory:
  budget_mb: 512
logging:
  level: debug
bounds:
  min_x: -4
  max_x: 4
  min_z: 0
  max_z: 8
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Cache.Size != 200 {
		t.Errorf("Cache.Size = %d, want 200", cfg.Cache.Size)
	}
	if cfg.LogLevel() != logging.DebugLevel {
		t.Errorf("LogLevel() = %v, want debug", cfg.LogLevel())
	}

	bc := cfg.BufferConfig()
	if bc.MemoryBudget != 512*1024*1024 {
		t.Errorf("MemoryBudget = %d, want 512 MiB", bc.MemoryBudget)
	}
	if bc.CacheSize != 200 {
		t.Errorf("CacheSize = %d, want 200", bc.CacheSize)
	}

	bounds := cfg.BufferBounds()
	if !bounds.Contains(chunk.Coord{X: 0, Z: 5}) {
		t.Error("configured bounds should contain (0,5)")
	}
	if bounds.Contains(chunk.Coord{X: 0, Z: -1}) {
		t.Error("configured bounds should not contain (0,-1)")
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "cache:\n  size: 80\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Pool.Size != chunk.DefaultPoolSize {
		t.Errorf("Pool.Size = %d, want default %d", cfg.Pool.Size, chunk.DefaultPoolSize)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadRejectsBadLevel(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: loud\n")

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for invalid log level")
	}
	if !strings.Contains(err.Error(), "Level") {
		t.Errorf("error should name the field, got %v", err)
	}
}

func TestLoadRejectsInvertedBounds(t *testing.T) {
	path := writeConfig(t, "bounds:\n  min_x: 10\n  max_x: -10\n")

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for inverted bounds")
	}
	if !strings.Contains(err.Error(), "MinX") {
		t.Errorf("error should name the field, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidatorCollectsAllErrors(t *testing.T) {
	err := NewConfigValidator("Test").
		Positive("A", -1).
		NonNegative("B", -2).
		Validate()
	if err == nil {
		t.Fatal("expected errors")
	}
	msg := err.Error()
	if !strings.Contains(msg, "Test.A") || !strings.Contains(msg, "Test.B") {
		t.Errorf("expected both errors reported, got %v", msg)
	}
}
