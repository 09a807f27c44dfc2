// Package cache provides a bounded LRU cache that reacts to ambient memory
// pressure, not just entry count. It fronts the chunk decode pipeline:
// decoded block data is expensive to produce and large at rest, so the
// cache keeps the working set hot while shedding entries aggressively when
// the process approaches its memory budget.
package cache

import (
	"container/list"
	"sync"
	"sync/atomic"
	"time"

	"github.com/voxelmesh/chunkstore/pkg/memory"
)

// Memory thresholds for pressure-driven cleanup
const (
	// HighUtilization triggers a cleanup pass down to the low-water mark
	HighUtilization = 0.80
	// CriticalUtilization triggers an aggressive pass down to a quarter of
	// the current size, followed by a reclaim hint
	CriticalUtilization = 0.90
)

// Cache is a bounded associative cache with LRU eviction and two-tier,
// memory-pressure-driven cleanup. All operations are safe for concurrent
// use; recency bookkeeping is serialized behind one short-lived lock that
// is never held across decode or I/O.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	lowWater int
	entries  map[K]*list.Element
	lru      *list.List // front = most recently used
	pressure memory.PressureSource

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
	cleanups  atomic.Uint64
}

type entry[K comparable, V any] struct {
	key        K
	value      V
	lastAccess time.Time
}

// New creates a cache holding at most capacity entries. The pressure
// source may be nil, in which case only hard-capacity LRU bounding
// applies.
func New[K comparable, V any](capacity int, pressure memory.PressureSource) *Cache[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache[K, V]{
		capacity: capacity,
		lowWater: maxInt(1, capacity/2),
		entries:  make(map[K]*list.Element),
		lru:      list.New(),
		pressure: pressure,
	}
}

// Get retrieves a value, refreshing its recency on a hit.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		ent := elem.Value.(*entry[K, V])
		ent.lastAccess = time.Now()
		c.lru.MoveToFront(elem)
		c.hits.Add(1)
		return ent.value, true
	}

	c.misses.Add(1)
	var zero V
	return zero, false
}

// Put inserts or replaces a value, refreshing its recency. Absent (nil)
// values are ignored. When ambient utilization is above the high
// threshold a cleanup pass runs before the insert; independently of that,
// the configured capacity is a hard ceiling enforced after every insert by
// evicting the least-recently-used entry.
func (c *Cache[K, V]) Put(key K, value V) {
	if isNil(value) {
		return
	}

	c.mu.Lock()

	critical := false
	if c.pressure != nil {
		if ratio, ok := c.pressure.Utilization(); ok && ratio > HighUtilization {
			_, exists := c.entries[key]
			critical = c.cleanupLocked(ratio, !exists)
		}
	}

	if elem, ok := c.entries[key]; ok {
		ent := elem.Value.(*entry[K, V])
		ent.value = value
		ent.lastAccess = time.Now()
		c.lru.MoveToFront(elem)
	} else {
		elem := c.lru.PushFront(&entry[K, V]{key: key, value: value, lastAccess: time.Now()})
		c.entries[key] = elem
	}

	// Hard capacity bound, independent of pressure cleanup
	if c.lru.Len() > c.capacity {
		c.evictOldestLocked()
	}

	c.mu.Unlock()

	if critical {
		// Advisory only, issued outside the lock and never awaited
		c.pressure.SuggestReclaim()
	}
}

// cleanupLocked evicts oldest entries until the tier target is reached.
// The target applies to the cache state at the end of the surrounding put:
// when the put is about to insert a new key, the pass reserves room for it
// so the post-insert size still meets the target. Returns true when the
// critical tier fired.
func (c *Cache[K, V]) cleanupLocked(ratio float64, pendingInsert bool) bool {
	critical := ratio > CriticalUtilization

	target := c.lowWater
	if critical {
		target = maxInt(1, c.lru.Len()/4)
	}
	if pendingInsert {
		target--
	}

	for c.lru.Len() > target && c.lru.Len() > 0 {
		c.evictOldestLocked()
	}

	c.cleanups.Add(1)
	return critical
}

// evictOldestLocked removes the least recently used entry.
func (c *Cache[K, V]) evictOldestLocked() {
	oldest := c.lru.Back()
	if oldest == nil {
		return
	}
	ent := oldest.Value.(*entry[K, V])
	c.lru.Remove(oldest)
	delete(c.entries, ent.key)
	c.evictions.Add(1)
}

// Remove drops the entry for key if present.
func (c *Cache[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.lru.Remove(elem)
		delete(c.entries, key)
	}
}

// Clear drops all entries and recency bookkeeping. Statistics counters
// are monotonic and survive a clear.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*list.Element)
	c.lru = list.New()
}

// Size returns the current number of entries.
func (c *Cache[K, V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Capacity returns the configured maximum entry count.
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
