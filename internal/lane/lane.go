package lane

import "fmt"

// DefaultBlockSize is the number of lanes per block when no explicit size is
// configured. 16 matches the widest common host SIMD width for 32-bit lanes
// (AVX-512) and divides evenly into the narrower widths.
const DefaultBlockSize = 16

// Value constrains the numeric lane types a store can hold.
//
// Kernels over floats cover the arithmetic/transcendental catalogue; integer
// lanes exist for bitwise/logical kernels and integer reductions.
type Value interface {
	~int32 | ~int64 | ~float32 | ~float64
}

// Locate translates an entity index into (block, lane) coordinates for the
// given block size: entity = block*blockSize + lane.
//
// Every node in a connected subgraph must share one block size so that Locate
// is identical across all of them; the graph package enforces this at
// construction time.
//
// Panics on a negative entity index or non-positive block size - both are
// programmer errors, not data conditions.
func Locate(entity, blockSize int) (block, ln int) {
	if entity < 0 {
		panic(fmt.Sprintf("lane: negative entity index %d", entity))
	}
	if blockSize <= 0 {
		panic(fmt.Sprintf("lane: non-positive block size %d", blockSize))
	}
	return entity / blockSize, entity % blockSize
}

// Blocks returns the number of blocks needed to cover capacity entities:
// ceil(capacity / blockSize).
func Blocks(capacity, blockSize int) int {
	return (capacity + blockSize - 1) / blockSize
}
