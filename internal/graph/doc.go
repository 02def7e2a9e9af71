// Package graph implements the lazy, pull-based dataflow node contracts:
// mutable block leaves, derived block nodes, scalar leaves, and reductions.
//
// ARCHITECTURE:
//
// Nodes form an acyclic dependency graph constructed once by the caller.
// Mutable leaves are written many times per tick; derived nodes recompute one
// block at a time, only when pulled, and only when stale. The two halves of
// the protocol:
//
// Push (cheap): a write that changes a value marks the owning block stale and
// notifies subscribers, which mark their matching block stale in turn. No
// recomputation happens on this path - one write invalidates a whole
// downstream chain in O(depth) bool writes.
//
// Pull (on demand): RecalculateBlock(i) recursively freshens upstream block i
// bottom-up, then runs the node's kernel over the gathered input blocks. If
// any operand is absent the recompute is abandoned silently - sparsity
// propagates by omission and is never an error.
//
// Scalar operands are the one exception to per-block invalidation: a scalar
// change invalidates every block of its consumers, since each lane of each
// block depends on it.
//
// ABSENT-OPERAND POLICY:
//
// When a pull finds an operand absent, the node's previously computed block
// at that index (if any) is released back to absent. A present block
// therefore always derives from currently present operands; consumers never
// observe stale leftovers of an operand that has since gone away.
//
// KERNEL CONTRACT:
//
// Kernels are pure and allocation-free: they read 1-3 input blocks (plus
// optionally one scalar) and write exactly one output block of the same
// length, with no state outside their arguments. This is what permits a
// single batched vector-width operation per call. The base contracts never
// inspect numeric semantics; those live entirely in the kernel (see the ops
// package for the catalogue).
//
// CYCLES:
//
// Upstream references are required at construction and nodes never hold
// references to downstream consumers (observers receive only a callback), so
// a cycle cannot be constructed through this API. There is no runtime cycle
// check.
//
// Thread-safety: none. All writes and pulls belong to one logical thread per
// tick; writes preceding a pull are visible to it, writes following a
// completed pull are not visible until the next pull.
package graph
