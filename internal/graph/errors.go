package graph

import "errors"

// Sentinel errors for graph construction. All of these are configuration
// errors: they fail fast at construction time and have no runtime analogue.
var (
	// ErrNilUpstream indicates a derived node was given a nil upstream.
	ErrNilUpstream = errors.New("graph: nil upstream node")

	// ErrNilScalar indicates a scalar-augmented node was given a nil scalar.
	ErrNilScalar = errors.New("graph: nil upstream scalar")

	// ErrNilKernel indicates a derived node was given a nil kernel.
	ErrNilKernel = errors.New("graph: nil kernel")

	// ErrNilReducer indicates a reduction was given a nil reducer or aggregator.
	ErrNilReducer = errors.New("graph: nil reducer or aggregator")

	// ErrBlockSizeMismatch indicates upstream nodes disagree on block size.
	// Every node in a connected subgraph must share one block size.
	ErrBlockSizeMismatch = errors.New("graph: block size mismatch across dependency edge")

	// ErrBlockCountMismatch indicates upstream nodes cover different entity
	// ranges; derived nodes require congruent upstream extents.
	ErrBlockCountMismatch = errors.New("graph: block count mismatch across dependency edge")
)
