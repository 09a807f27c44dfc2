package pools

import (
	"sync"
)

// Buffer size classes for efficient reuse. Classes follow the payload
// shapes seen while decoding chunk tag trees: tag names and short strings,
// leaf payloads, per-section nibble and byte arrays, and whole-section
// block state arrays.
const (
	TinySize   = 32     // Tag names, short strings
	SmallSize  = 256    // Leaf payloads, palette entries
	MediumSize = 2048   // Small section arrays
	LargeSize  = 4096   // Per-section byte arrays (16x16x16)
	HugeSize   = 16384  // Long-array payloads, heightmaps
	MaxPool    = 131072 // Don't pool buffers larger than this
)

// BytePool provides size-class based pooling for byte slices.
// This reduces GC pressure by reusing decode scratch buffers.
type BytePool struct {
	tiny   sync.Pool // <= 32 bytes
	small  sync.Pool // <= 256 bytes
	medium sync.Pool // <= 2048 bytes
	large  sync.Pool // <= 4096 bytes
	huge   sync.Pool // <= 16384 bytes
}

// NewBytePool creates a new byte pool with pre-allocated buffers.
func NewBytePool() *BytePool {
	return &BytePool{
		tiny: sync.Pool{
			New: func() any {
				b := make([]byte, 0, TinySize)
				return &b
			},
		},
		small: sync.Pool{
			New: func() any {
				b := make([]byte, 0, SmallSize)
				return &b
			},
		},
		medium: sync.Pool{
			New: func() any {
				b := make([]byte, 0, MediumSize)
				return &b
			},
		},
		large: sync.Pool{
			New: func() any {
				b := make([]byte, 0, LargeSize)
				return &b
			},
		},
		huge: sync.Pool{
			New: func() any {
				b := make([]byte, 0, HugeSize)
				return &b
			},
		},
	}
}

// Get returns a byte slice with at least the requested capacity.
// The returned slice has length 0 and the specified capacity.
func (p *BytePool) Get(size int) []byte {
	var pool *sync.Pool
	switch {
	case size <= TinySize:
		pool = &p.tiny
	case size <= SmallSize:
		pool = &p.small
	case size <= MediumSize:
		pool = &p.medium
	case size <= LargeSize:
		pool = &p.large
	case size <= HugeSize:
		pool = &p.huge
	default:
		// Too large to pool, allocate directly
		return make([]byte, 0, size)
	}

	bp, ok := pool.Get().(*[]byte)
	if !ok || cap(*bp) < size {
		return make([]byte, 0, size)
	}
	return (*bp)[:0]
}

// GetSized returns a byte slice with exactly the requested length.
func (p *BytePool) GetSized(size int) []byte {
	b := p.Get(size)
	return b[:size]
}

// Put returns a byte slice to the pool for reuse.
// Slices larger than MaxPool are not pooled.
func (p *BytePool) Put(b []byte) {
	c := cap(b)
	if c > MaxPool {
		return
	}

	b = b[:0]

	var pool *sync.Pool
	switch {
	case c <= TinySize:
		pool = &p.tiny
	case c <= SmallSize:
		pool = &p.small
	case c <= MediumSize:
		pool = &p.medium
	case c <= LargeSize:
		pool = &p.large
	case c <= HugeSize:
		pool = &p.huge
	default:
		return
	}

	pool.Put(&b)
}

// Default global byte pool
var defaultBytePool = NewBytePool()

// GetBytes returns a byte slice from the default pool.
func GetBytes(size int) []byte {
	return defaultBytePool.Get(size)
}

// GetBytesSized returns a byte slice with exact length from the default pool.
func GetBytesSized(size int) []byte {
	return defaultBytePool.GetSized(size)
}

// PutBytes returns a byte slice to the default pool.
func PutBytes(b []byte) {
	defaultBytePool.Put(b)
}
