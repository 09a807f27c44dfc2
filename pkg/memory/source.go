// Package memory provides ambient memory-pressure sampling for the chunk
// conversion pipeline. Pressure consumers take a PressureSource so that
// eviction behavior can be tested deterministically, independent of the
// real allocator.
package memory

import (
	"math"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// PressureSource reports ambient memory utilization. Implementations must
// be cheap, side-effect-free on sampling, and safe to call frequently from
// multiple goroutines.
type PressureSource interface {
	// Utilization returns used/max in [0,1]. ok is false when no memory
	// budget is known; callers skip pressure-driven behavior entirely.
	Utilization() (ratio float64, ok bool)

	// SuggestReclaim issues a best-effort, non-blocking hint that now is a
	// good time to return memory to the OS. Never required for correctness.
	SuggestReclaim()
}

// HintReporter is implemented by sources that count the reclaim hints
// they have received. Metrics mirroring is the intended consumer.
type HintReporter interface {
	ReclaimHints() uint64
}

// RuntimeSource samples the Go heap via runtime.ReadMemStats against a
// configured byte budget. With no explicit budget it falls back to the
// soft memory limit (GOMEMLIMIT); an unset limit means utilization is
// unavailable.
type RuntimeSource struct {
	maxBytes   uint64
	reclaiming atomic.Bool
	hints      atomic.Uint64
}

// NewRuntimeSource creates a source with the given budget in bytes.
// A zero budget defers to the runtime's soft memory limit.
func NewRuntimeSource(maxBytes uint64) *RuntimeSource {
	return &RuntimeSource{maxBytes: maxBytes}
}

// Utilization returns heap-allocated bytes over the budget.
func (s *RuntimeSource) Utilization() (float64, bool) {
	max := s.maxBytes
	if max == 0 {
		limit := debug.SetMemoryLimit(-1)
		if limit <= 0 || limit == math.MaxInt64 {
			return 0, false
		}
		max = uint64(limit)
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return float64(m.HeapAlloc) / float64(max), true
}

// SuggestReclaim triggers debug.FreeOSMemory on a background goroutine.
// At most one reclaim is in flight at a time; extra hints are dropped.
func (s *RuntimeSource) SuggestReclaim() {
	s.hints.Add(1)
	if !s.reclaiming.CompareAndSwap(false, true) {
		return
	}
	go func() {
		debug.FreeOSMemory()
		s.reclaiming.Store(false)
	}()
}

// ReclaimHints returns how many reclaim hints were received, including
// hints dropped because a reclaim was already in flight.
func (s *RuntimeSource) ReclaimHints() uint64 {
	return s.hints.Load()
}

// FixedSource reports a fixed utilization ratio. Used by tests and
// benchmarks to drive eviction tiers deterministically.
type FixedSource struct {
	mu       sync.Mutex
	ratio    float64
	ok       bool
	reclaims atomic.Uint64
}

// NewFixedSource creates a source pinned at the given ratio.
func NewFixedSource(ratio float64) *FixedSource {
	return &FixedSource{ratio: ratio, ok: true}
}

// NewUnavailableSource creates a source that reports no utilization.
func NewUnavailableSource() *FixedSource {
	return &FixedSource{}
}

// Utilization returns the pinned ratio.
func (s *FixedSource) Utilization() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ratio, s.ok
}

// SetRatio repins the reported ratio.
func (s *FixedSource) SetRatio(ratio float64) {
	s.mu.Lock()
	s.ratio = ratio
	s.ok = true
	s.mu.Unlock()
}

// SuggestReclaim records the hint without doing any work.
func (s *FixedSource) SuggestReclaim() {
	s.reclaims.Add(1)
}

// ReclaimHints returns how many reclaim hints were issued.
func (s *FixedSource) ReclaimHints() uint64 {
	return s.reclaims.Load()
}
