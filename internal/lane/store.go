package lane

import "fmt"

// Config holds the storage parameters shared by every node in a subgraph.
type Config[V Value] struct {
	// BlockSize is the number of lanes per block. Zero selects
	// DefaultBlockSize; negative values are rejected.
	BlockSize int

	// Fill is the value unwritten lanes hold once their block is allocated.
	Fill V

	// Dense pre-allocates every block at construction. The default (sparse)
	// allocates a block on its first successful write or recompute.
	Dense bool
}

// Store owns the optional lane blocks and per-block staleness flags for one
// node.
//
// INVARIANTS:
//   - A block is either absent (nil) or exactly blockSize lanes long.
//   - A cached block at index i is valid iff stale[i] is false.
//   - Flags start stale; only the owner clears them (after a successful
//     write or recompute).
//
// Thread-safety: none; single logical writer/reader per tick.
type Store[V Value] struct {
	blockSize int
	fill      V
	dense     bool
	blocks    [][]V
	stale     []bool
	observers []func(block int)
}

// NewStore creates a store covering capacity entities.
func NewStore[V Value](capacity int, cfg Config[V]) (*Store[V], error) {
	if capacity <= 0 {
		return nil, ErrBadCapacity
	}
	size := cfg.BlockSize
	if size == 0 {
		size = DefaultBlockSize
	}
	if size < 0 {
		return nil, ErrBadBlockSize
	}

	n := Blocks(capacity, size)
	s := &Store[V]{
		blockSize: size,
		fill:      cfg.Fill,
		dense:     cfg.Dense,
		blocks:    make([][]V, n),
		stale:     make([]bool, n),
	}
	for i := range s.stale {
		s.stale[i] = true
	}
	if cfg.Dense {
		for i := range s.blocks {
			s.blocks[i] = s.newBlock()
		}
	}
	return s, nil
}

// BlockSize returns the number of lanes per block.
func (s *Store[V]) BlockSize() int { return s.blockSize }

// BlockCount returns the number of block slots (present or absent).
func (s *Store[V]) BlockCount() int { return len(s.blocks) }

// Fill returns the configured fill value.
func (s *Store[V]) Fill() V { return s.fill }

// TryGetBlock returns the block at the given index, or false if it is absent.
// Absent means no entity in the block's range has data yet - never "all zero".
func (s *Store[V]) TryGetBlock(block int) ([]V, bool) {
	s.check(block)
	b := s.blocks[block]
	return b, b != nil
}

// Block returns the block at the given index, allocating it (filled with the
// fill value) if absent. Allocation alone does not touch the staleness flag.
func (s *Store[V]) Block(block int) []V {
	s.check(block)
	if s.blocks[block] == nil {
		s.blocks[block] = s.newBlock()
	}
	return s.blocks[block]
}

// Stale reports whether the block at the given index is stale.
func (s *Store[V]) Stale(block int) bool {
	s.check(block)
	return s.stale[block]
}

// MarkStale flags one block stale and notifies every observer.
//
// The flag write is idempotent. Notification is unconditional: observers'
// own marks are idempotent bool writes, so repeated notification costs
// O(downstream depth) and recomputes nothing.
func (s *Store[V]) MarkStale(block int) {
	s.check(block)
	s.stale[block] = true
	for _, fn := range s.observers {
		fn(block)
	}
}

// MarkAllStale flags every block stale and notifies observers once per block.
// Used when a scalar operand changes, which invalidates all blocks at once.
func (s *Store[V]) MarkAllStale() {
	for i := range s.stale {
		s.stale[i] = true
		for _, fn := range s.observers {
			fn(i)
		}
	}
}

// ClearStale marks one block fresh. Callers must only do this after a
// successful write or recompute of that block.
func (s *Store[V]) ClearStale(block int) {
	s.check(block)
	s.stale[block] = false
}

// Drop releases the block at the given index, returning it to the absent
// state, and flags it stale so a later pull recomputes from scratch.
//
// Derived nodes use this when an operand went absent: the previously computed
// output must not masquerade as current data.
func (s *Store[V]) Drop(block int) {
	s.check(block)
	s.blocks[block] = nil
	s.stale[block] = true
}

// Observe registers a staleness observer. Observers are invoked synchronously
// from MarkStale/MarkAllStale with the affected block index; they must not
// recompute anything, only propagate marks.
//
// Observers are registered at graph construction and never removed - upstream
// stores never learn who their downstream consumers are beyond this callback,
// which keeps the dependency graph acyclic by construction.
func (s *Store[V]) Observe(fn func(block int)) {
	s.observers = append(s.observers, fn)
}

func (s *Store[V]) newBlock() []V {
	b := make([]V, s.blockSize)
	if s.fill != *new(V) {
		for i := range b {
			b[i] = s.fill
		}
	}
	return b
}

// check panics on an out-of-range block index. Range violations are
// programmer errors (the entity registry hands out indices within capacity),
// so this fails fast rather than returning an error.
func (s *Store[V]) check(block int) {
	if block < 0 || block >= len(s.blocks) {
		panic(fmt.Sprintf("lane: block index %d out of range [0,%d)", block, len(s.blocks)))
	}
}
