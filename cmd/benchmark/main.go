package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/voxelmesh/chunkstore/pkg/chunk"
	"github.com/voxelmesh/chunkstore/pkg/logging"
	"github.com/voxelmesh/chunkstore/pkg/memory"
	"github.com/voxelmesh/chunkstore/pkg/metrics"
	"github.com/voxelmesh/chunkstore/pkg/nbt"
)

func main() {
	chunks := flag.Int("chunks", 2000, "Number of distinct chunks in the working set")
	accesses := flag.Int("accesses", 20000, "Number of chunk accesses to perform")
	locality := flag.Float64("locality", 0.8, "Fraction of accesses that revisit recent chunks")
	cacheSize := flag.Int("cache", 0, "Cache capacity in chunks (0 = derive from budget)")
	budgetMB := flag.Int("budget", 1024, "Memory budget in MiB")
	cycles := flag.Int("cycles", 5000, "Pool and compression cycles")
	nbtFile := flag.String("nbt", "", "Optional NBT file to benchmark decoding against")
	flag.Parse()

	runID := uuid.New().String()[:8]
	budget := uint64(*budgetMB) * 1024 * 1024

	fmt.Printf("🔥 Chunkstore Benchmark (run %s)\n", runID)
	fmt.Printf("================================\n\n")
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Chunks: %d\n", *chunks)
	fmt.Printf("  Accesses: %d\n", *accesses)
	fmt.Printf("  Locality: %.2f\n", *locality)
	fmt.Printf("  Memory Budget: %d MiB\n\n", *budgetMB)

	// Benchmark 1: Cache Under Load
	fmt.Printf("📦 Benchmark 1: Chunk Cache\n")
	side := int32(1)
	for side*side < int32(*chunks) {
		side++
	}
	bounds := chunk.Bounds{MinX: 0, MaxX: side - 1, MinZ: 0, MaxZ: side - 1}

	loader := chunk.LoaderFunc(func(c chunk.Coord) (*chunk.BlockData, error) {
		blocks := make([]uint16, chunk.SectionVolume)
		for i := range blocks {
			blocks[i] = uint16((int32(i) + c.X*31 + c.Z*17) % 256)
		}
		return &chunk.BlockData{Coord: c, Blocks: blocks}, nil
	})

	reg := metrics.NewRegistry()
	buf, err := chunk.NewBuffer(bounds, loader, chunk.BufferConfig{
		CacheSize:    *cacheSize,
		MemoryBudget: budget,
		Pressure:     memory.NewRuntimeSource(budget),
		Logger:       logging.NopLogger{},
		Metrics:      reg,
	})
	if err != nil {
		log.Fatalf("Failed to create buffer: %v", err)
	}

	coordAt := func(i int) chunk.Coord {
		return chunk.Coord{X: int32(i) % side, Z: int32(i) / side}
	}

	start := time.Now()
	recent := make([]int, 0, 64)
	for i := 0; i < *accesses; i++ {
		var idx int
		if len(recent) > 0 && rand.Float64() < *locality {
			idx = recent[rand.Intn(len(recent))]
		} else {
			idx = rand.Intn(*chunks)
		}
		if _, err := buf.GetBlocks(coordAt(idx)); err != nil {
			log.Fatalf("Failed to get chunk: %v", err)
		}

		if len(recent) < cap(recent) {
			recent = append(recent, idx)
		} else {
			recent[i%cap(recent)] = idx
		}

		if (i+1)%5000 == 0 {
			buf.Maintenance()
		}
	}
	duration := time.Since(start)

	stats := buf.Stats()
	fmt.Printf("  ✅ %d accesses in %v\n", *accesses, duration)
	fmt.Printf("  ⚡ Average: %.2fμs per access\n", float64(duration.Microseconds())/float64(*accesses))
	fmt.Printf("  🎯 Hit ratio: %.1f%% (%d hits, %d misses)\n",
		stats.Cache.HitRatio*100, stats.Cache.Hits, stats.Cache.Misses)
	fmt.Printf("  🧹 Evictions: %d, pressure cleanups: %d\n",
		stats.Cache.Evictions, stats.Cache.Cleanups)

	// Benchmark 2: Carrier Pool
	fmt.Printf("\n♻️  Benchmark 2: Carrier Pool\n")
	start = time.Now()
	for i := 0; i < *cycles; i++ {
		obj := buf.Borrow(&chunk.BlockData{Coord: coordAt(i % *chunks)})
		buf.Release(obj)
	}
	duration = time.Since(start)

	pool := buf.Stats().Pool
	fmt.Printf("  ✅ %d borrow/return cycles in %v\n", *cycles, duration)
	fmt.Printf("  ⚡ Average: %.0fns per cycle\n", float64(duration.Nanoseconds())/float64(*cycles))
	fmt.Printf("  🏭 Created: %d (reuse saved %d allocations)\n",
		pool.Created, pool.Borrowed-pool.Created)

	// Benchmark 3: Block Compression
	fmt.Printf("\n🗜️  Benchmark 3: Block Compression\n")
	sample, err := loader.LoadBlocks(chunk.Coord{X: 1, Z: 1})
	if err != nil {
		log.Fatalf("Failed to build sample chunk: %v", err)
	}

	start = time.Now()
	var compressed *chunk.CompressedBlockData
	for i := 0; i < *cycles; i++ {
		compressed = chunk.Compress(sample)
	}
	compressDur := time.Since(start)

	start = time.Now()
	for i := 0; i < *cycles; i++ {
		decoded, err := compressed.Decompress()
		if err != nil {
			log.Fatalf("Failed to decompress: %v", err)
		}
		decoded.Release()
	}
	decompressDur := time.Since(start)

	fmt.Printf("  ✅ %d compress cycles in %v, %d decompress cycles in %v\n",
		*cycles, compressDur, *cycles, decompressDur)
	fmt.Printf("  📉 Ratio: %d -> %d bytes (%.1f%%)\n",
		compressed.UncompressedSize(), compressed.Size(),
		float64(compressed.Size())/float64(compressed.UncompressedSize())*100)

	// Benchmark 4: Tag Stream Decoding (optional)
	if *nbtFile != "" {
		fmt.Printf("\n🧱 Benchmark 4: Tag Stream Decoding\n")
		src, err := nbt.Open(*nbtFile)
		if err != nil {
			log.Fatalf("Failed to open %s: %v", *nbtFile, err)
		}

		start = time.Now()
		compounds := 0
		var decodeErr error
		nbt.NewParser(src).Parse(nbt.VisitorFuncs{
			Compound: func(name string, tag *nbt.Tag) bool {
				compounds++
				return true
			},
			Error: func(err error) {
				decodeErr = err
			},
		})
		duration = time.Since(start)

		status := "success"
		if decodeErr != nil {
			status = "error"
			fmt.Printf("  ⚠️  Decode fault: %v\n", decodeErr)
		}
		reg.RecordDecode(status, duration)
		fmt.Printf("  ✅ Decoded %d compounds in %v\n", compounds, duration)
	}

	fmt.Printf("\n🏁 Benchmark complete (run %s)\n", runID)
}
