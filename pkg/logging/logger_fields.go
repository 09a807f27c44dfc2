package logging

import (
	"fmt"
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

func Uint64(key string, value uint64) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Component field helpers for common component names
func Component(name string) Field {
	return String("component", name)
}

// Chunk identifies a chunk by its grid coordinate
func Chunk(x, z int32) Field {
	return String("chunk", fmt.Sprintf("%d,%d", x, z))
}

// Section names an NBT section tag
func Section(name string) Field {
	return String("section", name)
}

func Operation(op string) Field {
	return String("operation", op)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

// CacheSize reports current versus maximum cache occupancy
func CacheSize(size, capacity int) Field {
	return String("cache_size", fmt.Sprintf("%d/%d", size, capacity))
}

// Utilization reports a memory-utilization ratio as a percentage
func Utilization(ratio float64) Field {
	return Float64("memory_pct", ratio*100)
}

func Path(p string) Field {
	return String("path", p)
}
