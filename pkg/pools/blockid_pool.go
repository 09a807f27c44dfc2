package pools

import (
	"sync"
)

// Block-ID slice capacities. A section is 16x16x16 blocks; a full column
// holds up to 24 sections.
const (
	SectionBlocks = 4096
	ColumnBlocks  = 24 * SectionBlocks
)

// BlockIDPool pools []uint16 slices for decompressed block-ID arrays.
type BlockIDPool struct {
	section sync.Pool // <= one section
	column  sync.Pool // <= one full column
}

// NewBlockIDPool creates a new block-ID slice pool.
func NewBlockIDPool() *BlockIDPool {
	return &BlockIDPool{
		section: sync.Pool{
			New: func() any {
				s := make([]uint16, 0, SectionBlocks)
				return &s
			},
		},
		column: sync.Pool{
			New: func() any {
				s := make([]uint16, 0, ColumnBlocks)
				return &s
			},
		},
	}
}

// Get returns a block-ID slice with at least the requested capacity.
func (p *BlockIDPool) Get(size int) []uint16 {
	var pool *sync.Pool
	switch {
	case size <= SectionBlocks:
		pool = &p.section
	case size <= ColumnBlocks:
		pool = &p.column
	default:
		return make([]uint16, 0, size)
	}

	sp, ok := pool.Get().(*[]uint16)
	if !ok || cap(*sp) < size {
		return make([]uint16, 0, size)
	}
	return (*sp)[:0]
}

// Put returns a block-ID slice to the pool.
func (p *BlockIDPool) Put(s []uint16) {
	c := cap(s)

	var pool *sync.Pool
	switch {
	case c <= SectionBlocks:
		pool = &p.section
	case c <= ColumnBlocks:
		pool = &p.column
	default:
		return // Don't pool oversized slices
	}

	s = s[:0]
	pool.Put(&s)
}

// Default global block-ID pool
var defaultBlockIDPool = NewBlockIDPool()

// GetBlockIDs returns a block-ID slice from the default pool.
func GetBlockIDs(size int) []uint16 {
	return defaultBlockIDPool.Get(size)
}

// PutBlockIDs returns a block-ID slice to the default pool.
func PutBlockIDs(s []uint16) {
	defaultBlockIDPool.Put(s)
}
