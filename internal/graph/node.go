package graph

import "github.com/roach88/laneflow/internal/lane"

// BlockNode is the pull interface shared by block leaves and derived block
// nodes.
//
// Both RecalculateBlock and TryGetBlock report presence explicitly: an absent
// block means "not yet computed / no data for this range", which is a
// legitimate silent state, never an error. Returned blocks are owned by the
// node; callers must treat them as read-only and must not retain them across
// writes.
type BlockNode[V lane.Value] interface {
	// BlockSize returns the number of lanes per block.
	BlockSize() int

	// BlockCount returns the number of block slots covering the node's
	// entity range.
	BlockCount() int

	// RecalculateBlock freshens and returns the block at the given index.
	// For leaves this is a read; for derived nodes it runs the pull
	// algorithm (recursive upstream freshen, then kernel) if the block is
	// stale. Returns false if the block is absent.
	RecalculateBlock(block int) ([]V, bool)

	// TryGetBlock returns the cached block at the given index without
	// recomputing. Returns false if the block is absent.
	TryGetBlock(block int) ([]V, bool)

	// observeBlocks subscribes to staleness notifications. The callback
	// receives the invalidated block index and must only propagate marks,
	// never recompute. Unexported: nodes are constructed by this package,
	// which keeps the graph acyclic and the staleness protocol closed.
	observeBlocks(fn func(block int))
}

// ScalarNode is the pull interface shared by scalar leaves and reductions.
type ScalarNode[V lane.Value] interface {
	// Recalculate freshens and returns the scalar. Returns false while no
	// value has been set/computed.
	Recalculate() (V, bool)

	// TryGet returns the cached scalar without recomputing.
	TryGet() (V, bool)

	// observeScalar subscribes to change notifications. A scalar change
	// invalidates all blocks of every consumer, unlike a block change which
	// invalidates only the matching index.
	observeScalar(fn func())
}
