// Package lane implements block/lane addressing and the sparse block store
// that backs every node in a laneflow graph.
//
// Entity values are grouped into fixed-length blocks (default: 16 lanes, the
// host SIMD width). A block is the unit of allocation, staleness, and
// recomputation. The store distinguishes an absent block ("no entity in this
// range has data yet") from a present block whose unwritten lanes hold the
// configured fill value - absence is never encoded as a numeric default.
//
// STALENESS MODEL:
//
// Each block carries one staleness flag. The invariant consumers rely on:
// a cached block at index i is valid iff its flag at i is clear. Flags start
// stale, are set by MarkStale/MarkAllStale, and are cleared only after a
// successful write or recompute.
//
// MarkStale also notifies registered observers without recomputing anything.
// This is the cheap half of staleness propagation: a write to one node marks
// its downstream chain stale in O(depth), and recomputation happens only when
// a consumer later pulls.
//
// Thread-safety: none. The store expects a single logical writer/reader per
// tick (see the graph package's concurrency notes).
package lane
