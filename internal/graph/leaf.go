package graph

import "github.com/roach88/laneflow/internal/lane"

// Leaf is a mutable block leaf: the externally written entry point of a
// subgraph. Gameplay systems write per-entity values into it; derived nodes
// read whole blocks out of it.
type Leaf[V lane.Value] struct {
	store *lane.Store[V]
}

// NewLeaf creates a mutable block leaf covering capacity entities.
func NewLeaf[V lane.Value](capacity int, opts ...Option[V]) (*Leaf[V], error) {
	store, err := lane.NewStore(capacity, applyOptions(opts))
	if err != nil {
		return nil, err
	}
	return &Leaf[V]{store: store}, nil
}

// Set writes one entity's value.
//
// Writing the value a lane already holds is a no-op: the block is not marked
// stale and no subscriber is notified, which prevents a needless downstream
// invalidation cascade. The first write to an absent block allocates it with
// the fill value.
func (l *Leaf[V]) Set(entity int, v V) {
	block, ln := lane.Locate(entity, l.store.BlockSize())
	b := l.store.Block(block)
	if b[ln] == v {
		return
	}
	b[ln] = v
	l.store.MarkStale(block)
}

// Get reads one entity's value. Returns false if the entity's block is
// absent; unwritten lanes of a present block report the fill value.
func (l *Leaf[V]) Get(entity int) (V, bool) {
	block, ln := lane.Locate(entity, l.store.BlockSize())
	b, ok := l.store.TryGetBlock(block)
	if !ok {
		var zero V
		return zero, false
	}
	return b[ln], true
}

// Handle returns a direct handle into one entity's backing lane for hot
// per-entity code paths, avoiding repeated address translation. The handle
// preserves Set's identity short-circuit and staleness semantics.
//
// Obtaining a handle allocates the entity's block if absent (the lanes hold
// the fill value until written).
func (l *Leaf[V]) Handle(entity int) Handle[V] {
	block, ln := lane.Locate(entity, l.store.BlockSize())
	return Handle[V]{
		store: l.store,
		block: l.store.Block(block),
		index: block,
		ln:    ln,
	}
}

// BlockSize implements BlockNode.
func (l *Leaf[V]) BlockSize() int { return l.store.BlockSize() }

// BlockCount implements BlockNode.
func (l *Leaf[V]) BlockCount() int { return l.store.BlockCount() }

// RecalculateBlock implements BlockNode. Leaf data is always fresh, so this
// only clears the flag (set by writes purely to drive notification) and
// returns the block.
func (l *Leaf[V]) RecalculateBlock(block int) ([]V, bool) {
	l.store.ClearStale(block)
	return l.store.TryGetBlock(block)
}

// TryGetBlock implements BlockNode.
func (l *Leaf[V]) TryGetBlock(block int) ([]V, bool) {
	return l.store.TryGetBlock(block)
}

func (l *Leaf[V]) observeBlocks(fn func(block int)) {
	l.store.Observe(fn)
}

// Handle is a resolved (block, lane) address into a leaf's backing store.
// Valid for the leaf's lifetime; not safe to share across threads (nothing
// here is).
type Handle[V lane.Value] struct {
	store *lane.Store[V]
	block []V
	index int
	ln    int
}

// Get reads the lane.
func (h Handle[V]) Get() V { return h.block[h.ln] }

// Set writes the lane with the same identity short-circuit as Leaf.Set.
func (h Handle[V]) Set(v V) {
	if h.block[h.ln] == v {
		return
	}
	h.block[h.ln] = v
	h.store.MarkStale(h.index)
}
