package chunk

import (
	"encoding/binary"
	"fmt"

	"github.com/golang/snappy"

	"github.com/voxelmesh/chunkstore/pkg/pools"
)

// CompressedBlockData stores a chunk column's block contents in
// snappy-compressed form, suitable for holding many chunks resident
// without paying the full decoded footprint.
type CompressedBlockData struct {
	Coord      Coord
	MinY       int32
	Blocks     []byte // Snappy-compressed big-endian block IDs
	Biomes     []byte // Snappy-compressed biome bytes, nil when absent
	BlockCount int
}

// Compress creates a compressed copy of the block data.
// Uses buffer pooling to reduce GC pressure.
func Compress(b *BlockData) *CompressedBlockData {
	c := &CompressedBlockData{
		Coord:      b.Coord,
		MinY:       b.MinY,
		BlockCount: len(b.Blocks),
	}

	if len(b.Blocks) > 0 {
		raw := pools.GetBytesSized(len(b.Blocks) * 2)
		for i, id := range b.Blocks {
			binary.BigEndian.PutUint16(raw[i*2:], id)
		}
		c.Blocks = snappy.Encode(nil, raw)
		pools.PutBytes(raw)
	}

	if len(b.Biomes) > 0 {
		c.Biomes = snappy.Encode(nil, b.Biomes)
	}

	return c
}

// Decompress returns the original block data. The block slice comes
// from the shared pool; release it with BlockData.Release when done.
func (c *CompressedBlockData) Decompress() (*BlockData, error) {
	b := &BlockData{
		Coord: c.Coord,
		MinY:  c.MinY,
	}

	if c.BlockCount > 0 {
		raw, err := snappy.Decode(nil, c.Blocks)
		if err != nil {
			return nil, fmt.Errorf("decompress blocks for chunk %s: %w", c.Coord, err)
		}
		if len(raw) != c.BlockCount*2 {
			return nil, fmt.Errorf("decompress blocks for chunk %s: got %d bytes, want %d",
				c.Coord, len(raw), c.BlockCount*2)
		}

		ids := pools.GetBlockIDs(c.BlockCount)
		ids = ids[:c.BlockCount]
		for i := range ids {
			ids[i] = binary.BigEndian.Uint16(raw[i*2:])
		}
		b.Blocks = ids
	}

	if len(c.Biomes) > 0 {
		biomes, err := snappy.Decode(nil, c.Biomes)
		if err != nil {
			return nil, fmt.Errorf("decompress biomes for chunk %s: %w", c.Coord, err)
		}
		b.Biomes = biomes
	}

	return b, nil
}

// Count returns the number of blocks in the compressed column.
func (c *CompressedBlockData) Count() int {
	return c.BlockCount
}

// Size returns the approximate memory size in bytes.
func (c *CompressedBlockData) Size() int {
	return 8 + 4 + len(c.Blocks) + len(c.Biomes) + 4 // coord (8) + minY (4) + payloads + count (4)
}

// UncompressedSize returns the size if this column was uncompressed.
func (c *CompressedBlockData) UncompressedSize() int {
	return c.BlockCount * 2 // Each block ID is 2 bytes
}
