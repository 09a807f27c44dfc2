// Package chunk provides the decoded chunk representation and the
// memory-aware buffer that fronts chunk loading with caching and
// object pooling.
package chunk

import "fmt"

// Coord identifies a chunk column by its chunk-grid position.
type Coord struct {
	X int32
	Z int32
}

func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Z)
}

// Region returns the region-grid position containing this chunk.
// Regions are 32x32 chunks.
func (c Coord) Region() (int32, int32) {
	return c.X >> 5, c.Z >> 5
}
