// Package pools provides object pooling for reducing GC pressure.
//
// This package contains the pool implementations used by the chunk decode
// pipeline:
//
//   - Pool: Bounded pool of Recyclable instances with usage statistics
//   - BytePool: Size-class based byte slice pooling for decode scratch buffers
//   - BlockIDPool: Pooling for block-ID slices (section and column sized)
package pools
