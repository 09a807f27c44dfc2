package chunk

import "github.com/voxelmesh/chunkstore/pkg/pools"

// DefaultPoolSize bounds the shared block pool.
const DefaultPoolSize = 32

// PooledBlocks is a reusable carrier for decoded block data. The
// carrier itself is recycled; the data it points at is swapped per use.
type PooledBlocks struct {
	data *BlockData
}

// SetData installs the block data this carrier wraps.
func (p *PooledBlocks) SetData(data *BlockData) {
	p.data = data
}

// Data returns the wrapped block data, or nil when empty.
func (p *PooledBlocks) Data() *BlockData {
	return p.data
}

// HasData reports whether the carrier currently wraps block data.
func (p *PooledBlocks) HasData() bool {
	return p.data != nil
}

// Reset clears the wrapped data so the carrier can be reused.
func (p *PooledBlocks) Reset() {
	p.data = nil
}

// BlockPool recycles PooledBlocks carriers to avoid churning
// allocations while chunks stream through the pipeline.
type BlockPool struct {
	pool *pools.Pool[*PooledBlocks]
}

// NewBlockPool creates a pool holding at most maxSize carriers.
func NewBlockPool(maxSize int) *BlockPool {
	if maxSize < 1 {
		maxSize = DefaultPoolSize
	}
	return &BlockPool{
		pool: pools.NewPool(func() *PooledBlocks {
			return &PooledBlocks{}
		}, maxSize),
	}
}

// Borrow takes an empty carrier from the pool.
func (p *BlockPool) Borrow() *PooledBlocks {
	return p.pool.Borrow()
}

// BorrowWith takes a carrier from the pool with data already installed.
func (p *BlockPool) BorrowWith(data *BlockData) *PooledBlocks {
	obj := p.pool.Borrow()
	obj.SetData(data)
	return obj
}

// Return gives a carrier back to the pool. The pool counts the return
// even when the carrier is discarded because the pool is full.
func (p *BlockPool) Return(obj *PooledBlocks) {
	p.pool.Return(obj)
}

// Clear discards all pooled carriers.
func (p *BlockPool) Clear() {
	p.pool.Clear()
}

// Size returns the number of carriers currently stored.
func (p *BlockPool) Size() int {
	return p.pool.Size()
}

// Stats returns a snapshot of the pool counters.
func (p *BlockPool) Stats() pools.PoolStats {
	return p.pool.Stats()
}
