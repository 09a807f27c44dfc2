package chunk

import "github.com/voxelmesh/chunkstore/pkg/pools"

// Chunk geometry. A column is 16x16 blocks horizontally and spans
// SectionHeight blocks per vertical section.
const (
	SectionWidth  = 16
	SectionHeight = 16
	SectionVolume = SectionWidth * SectionWidth * SectionHeight
)

// BlockData holds the decoded block contents of one chunk column.
// Blocks is section-major: index ((y-MinY)*16+z)*16+x.
type BlockData struct {
	Coord  Coord
	MinY   int32
	Blocks []uint16
	Biomes []byte
}

// Block returns the block ID at column-local coordinates, or 0 when
// the position lies outside the decoded volume.
func (b *BlockData) Block(x, y, z int) uint16 {
	if x < 0 || x >= SectionWidth || z < 0 || z >= SectionWidth {
		return 0
	}
	idx := ((y-int(b.MinY))*SectionWidth+z)*SectionWidth + x
	if idx < 0 || idx >= len(b.Blocks) {
		return 0
	}
	return b.Blocks[idx]
}

// Height returns the vertical extent of the decoded volume in blocks.
func (b *BlockData) Height() int {
	return len(b.Blocks) / (SectionWidth * SectionWidth)
}

// Release returns the block slice to the shared pool and clears the
// reference. The data must not be used afterwards.
func (b *BlockData) Release() {
	if b.Blocks != nil {
		pools.PutBlockIDs(b.Blocks)
		b.Blocks = nil
	}
	b.Biomes = nil
}
