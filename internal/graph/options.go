package graph

import "github.com/roach88/laneflow/internal/lane"

// Option configures a node's storage at construction.
//
// Options are shared subgraph configuration: fill value, allocation mode,
// and block size. Every node in a connected subgraph must be constructed
// with the same block size; derived constructors verify this against their
// upstreams and fail fast on mismatch.
type Option[V lane.Value] func(*lane.Config[V])

// WithBlockSize sets the number of lanes per block.
// Default: lane.DefaultBlockSize (host SIMD width).
func WithBlockSize[V lane.Value](n int) Option[V] {
	return func(c *lane.Config[V]) { c.BlockSize = n }
}

// WithFill sets the value unwritten lanes hold once their block is allocated.
// Default: the zero value of V.
func WithFill[V lane.Value](v V) Option[V] {
	return func(c *lane.Config[V]) { c.Fill = v }
}

// WithDense pre-allocates every block at construction instead of allocating
// lazily on first write/recompute.
func WithDense[V lane.Value]() Option[V] {
	return func(c *lane.Config[V]) { c.Dense = true }
}

func applyOptions[V lane.Value](opts []Option[V]) lane.Config[V] {
	var cfg lane.Config[V]
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
