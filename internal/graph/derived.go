package graph

import "github.com/roach88/laneflow/internal/lane"

// Kernel signatures for derived block nodes.
//
// A kernel must write exactly len(dst) lanes, read nothing outside its
// arguments, and allocate nothing. Input slices are owned by upstream nodes
// and must not be mutated or retained. A kernel that violates the length
// contract is a construction-time defect caught by the ops package tests,
// not a recoverable runtime fault.
type (
	// UnaryKernel computes dst[i] from x[i].
	UnaryKernel[V lane.Value] func(dst, x []V)

	// BinaryKernel computes dst[i] from x[i] and y[i].
	BinaryKernel[V lane.Value] func(dst, x, y []V)

	// TernaryKernel computes dst[i] from x[i], y[i], and z[i].
	TernaryKernel[V lane.Value] func(dst, x, y, z []V)

	// UnaryScalarKernel computes dst[i] from x[i] and the scalar s.
	UnaryScalarKernel[V lane.Value] func(dst, x []V, s V)

	// BinaryScalarKernel computes dst[i] from x[i], y[i], and the scalar s.
	BinaryScalarKernel[V lane.Value] func(dst, x, y []V, s V)

	// TernaryScalarKernel computes dst[i] from x[i], y[i], z[i], and the
	// scalar s.
	TernaryScalarKernel[V lane.Value] func(dst, x, y, z []V, s V)
)

// derived is the state shared by every derived block node: the node's own
// store, read-only upstream references, and the optional scalar operand.
//
// INVARIANTS:
//   - ups is 1-3 nodes, all sharing the store's block size and count.
//   - Upstream references never change after construction.
//   - in is scratch reused across pulls; entries are only valid during a
//     single RecalculateBlock call.
type derived[V lane.Value] struct {
	store  *lane.Store[V]
	ups    []BlockNode[V]
	scalar ScalarNode[V]
	in     [][]V
}

// newDerived validates upstream congruence, builds the node's store, and
// wires staleness subscriptions.
//
// Block size defaults to the first upstream's (the whole subgraph shares
// one); an explicit WithBlockSize that disagrees with any upstream is a
// configuration error. Scalar-augmented nodes start with every block stale:
// the scalar's current value has never been folded in.
func newDerived[V lane.Value](ups []BlockNode[V], scalar ScalarNode[V], opts []Option[V]) (*derived[V], error) {
	for _, up := range ups {
		if up == nil {
			return nil, ErrNilUpstream
		}
	}

	cfg := applyOptions(opts)
	if cfg.BlockSize == 0 {
		cfg.BlockSize = ups[0].BlockSize()
	}
	for _, up := range ups {
		if up.BlockSize() != cfg.BlockSize {
			return nil, ErrBlockSizeMismatch
		}
		if up.BlockCount() != ups[0].BlockCount() {
			return nil, ErrBlockCountMismatch
		}
	}

	store, err := lane.NewStore(ups[0].BlockCount()*cfg.BlockSize, cfg)
	if err != nil {
		return nil, err
	}

	d := &derived[V]{
		store:  store,
		ups:    ups,
		scalar: scalar,
		in:     make([][]V, len(ups)),
	}

	// A block-i change upstream invalidates only our block i; a scalar
	// change invalidates every block.
	for _, up := range ups {
		up.observeBlocks(store.MarkStale)
	}
	if scalar != nil {
		scalar.observeScalar(store.MarkAllStale)
		store.MarkAllStale()
	}
	return d, nil
}

// pull freshens every operand for one block (steps 1-3 of the pull
// algorithm): recursively recalculate each upstream's block bottom-up, then
// force the scalar. If any operand is absent the recompute is abandoned:
// the node's own block at that index is released to absent and false is
// returned. Absence is an expected silent state, not an error.
//
// On success the gathered input blocks are in d.in and the scalar value (or
// zero for scalar-less nodes) is returned.
func (d *derived[V]) pull(block int) (V, bool) {
	var zero V
	for i, up := range d.ups {
		in, ok := up.RecalculateBlock(block)
		if !ok {
			d.store.Drop(block)
			return zero, false
		}
		d.in[i] = in
	}
	if d.scalar == nil {
		return zero, true
	}
	s, ok := d.scalar.Recalculate()
	if !ok {
		d.store.Drop(block)
		return zero, false
	}
	return s, true
}

// BlockSize implements BlockNode.
func (d *derived[V]) BlockSize() int { return d.store.BlockSize() }

// BlockCount implements BlockNode.
func (d *derived[V]) BlockCount() int { return d.store.BlockCount() }

// TryGetBlock implements BlockNode.
func (d *derived[V]) TryGetBlock(block int) ([]V, bool) {
	return d.store.TryGetBlock(block)
}

func (d *derived[V]) observeBlocks(fn func(block int)) {
	d.store.Observe(fn)
}

// Unary recomputes each block from one upstream block.
type Unary[V lane.Value] struct {
	derived[V]
	kernel UnaryKernel[V]
}

// NewUnary creates a derived node computing kernel(x) block-wise.
func NewUnary[V lane.Value](x BlockNode[V], kernel UnaryKernel[V], opts ...Option[V]) (*Unary[V], error) {
	if kernel == nil {
		return nil, ErrNilKernel
	}
	d, err := newDerived([]BlockNode[V]{x}, nil, opts)
	if err != nil {
		return nil, err
	}
	return &Unary[V]{derived: *d, kernel: kernel}, nil
}

// RecalculateBlock implements BlockNode.
func (n *Unary[V]) RecalculateBlock(block int) ([]V, bool) {
	if !n.store.Stale(block) {
		return n.store.TryGetBlock(block)
	}
	if _, ok := n.pull(block); !ok {
		return nil, false
	}
	dst := n.store.Block(block)
	n.kernel(dst, n.in[0])
	n.store.ClearStale(block)
	return dst, true
}

// Binary recomputes each block from two upstream blocks.
type Binary[V lane.Value] struct {
	derived[V]
	kernel BinaryKernel[V]
}

// NewBinary creates a derived node computing kernel(x, y) block-wise.
func NewBinary[V lane.Value](x, y BlockNode[V], kernel BinaryKernel[V], opts ...Option[V]) (*Binary[V], error) {
	if kernel == nil {
		return nil, ErrNilKernel
	}
	d, err := newDerived([]BlockNode[V]{x, y}, nil, opts)
	if err != nil {
		return nil, err
	}
	return &Binary[V]{derived: *d, kernel: kernel}, nil
}

// RecalculateBlock implements BlockNode.
func (n *Binary[V]) RecalculateBlock(block int) ([]V, bool) {
	if !n.store.Stale(block) {
		return n.store.TryGetBlock(block)
	}
	if _, ok := n.pull(block); !ok {
		return nil, false
	}
	dst := n.store.Block(block)
	n.kernel(dst, n.in[0], n.in[1])
	n.store.ClearStale(block)
	return dst, true
}

// Ternary recomputes each block from three upstream blocks.
type Ternary[V lane.Value] struct {
	derived[V]
	kernel TernaryKernel[V]
}

// NewTernary creates a derived node computing kernel(x, y, z) block-wise.
func NewTernary[V lane.Value](x, y, z BlockNode[V], kernel TernaryKernel[V], opts ...Option[V]) (*Ternary[V], error) {
	if kernel == nil {
		return nil, ErrNilKernel
	}
	d, err := newDerived([]BlockNode[V]{x, y, z}, nil, opts)
	if err != nil {
		return nil, err
	}
	return &Ternary[V]{derived: *d, kernel: kernel}, nil
}

// RecalculateBlock implements BlockNode.
func (n *Ternary[V]) RecalculateBlock(block int) ([]V, bool) {
	if !n.store.Stale(block) {
		return n.store.TryGetBlock(block)
	}
	if _, ok := n.pull(block); !ok {
		return nil, false
	}
	dst := n.store.Block(block)
	n.kernel(dst, n.in[0], n.in[1], n.in[2])
	n.store.ClearStale(block)
	return dst, true
}

// UnaryScalar recomputes each block from one upstream block and one upstream
// scalar.
type UnaryScalar[V lane.Value] struct {
	derived[V]
	kernel UnaryScalarKernel[V]
}

// NewUnaryScalar creates a derived node computing kernel(x, s) block-wise.
func NewUnaryScalar[V lane.Value](x BlockNode[V], s ScalarNode[V], kernel UnaryScalarKernel[V], opts ...Option[V]) (*UnaryScalar[V], error) {
	if kernel == nil {
		return nil, ErrNilKernel
	}
	if s == nil {
		return nil, ErrNilScalar
	}
	d, err := newDerived([]BlockNode[V]{x}, s, opts)
	if err != nil {
		return nil, err
	}
	return &UnaryScalar[V]{derived: *d, kernel: kernel}, nil
}

// RecalculateBlock implements BlockNode.
func (n *UnaryScalar[V]) RecalculateBlock(block int) ([]V, bool) {
	if !n.store.Stale(block) {
		return n.store.TryGetBlock(block)
	}
	s, ok := n.pull(block)
	if !ok {
		return nil, false
	}
	dst := n.store.Block(block)
	n.kernel(dst, n.in[0], s)
	n.store.ClearStale(block)
	return dst, true
}

// BinaryScalar recomputes each block from two upstream blocks and one
// upstream scalar.
type BinaryScalar[V lane.Value] struct {
	derived[V]
	kernel BinaryScalarKernel[V]
}

// NewBinaryScalar creates a derived node computing kernel(x, y, s) block-wise.
func NewBinaryScalar[V lane.Value](x, y BlockNode[V], s ScalarNode[V], kernel BinaryScalarKernel[V], opts ...Option[V]) (*BinaryScalar[V], error) {
	if kernel == nil {
		return nil, ErrNilKernel
	}
	if s == nil {
		return nil, ErrNilScalar
	}
	d, err := newDerived([]BlockNode[V]{x, y}, s, opts)
	if err != nil {
		return nil, err
	}
	return &BinaryScalar[V]{derived: *d, kernel: kernel}, nil
}

// RecalculateBlock implements BlockNode.
func (n *BinaryScalar[V]) RecalculateBlock(block int) ([]V, bool) {
	if !n.store.Stale(block) {
		return n.store.TryGetBlock(block)
	}
	s, ok := n.pull(block)
	if !ok {
		return nil, false
	}
	dst := n.store.Block(block)
	n.kernel(dst, n.in[0], n.in[1], s)
	n.store.ClearStale(block)
	return dst, true
}

// TernaryScalar recomputes each block from three upstream blocks and one
// upstream scalar.
type TernaryScalar[V lane.Value] struct {
	derived[V]
	kernel TernaryScalarKernel[V]
}

// NewTernaryScalar creates a derived node computing kernel(x, y, z, s)
// block-wise.
func NewTernaryScalar[V lane.Value](x, y, z BlockNode[V], s ScalarNode[V], kernel TernaryScalarKernel[V], opts ...Option[V]) (*TernaryScalar[V], error) {
	if kernel == nil {
		return nil, ErrNilKernel
	}
	if s == nil {
		return nil, ErrNilScalar
	}
	d, err := newDerived([]BlockNode[V]{x, y, z}, s, opts)
	if err != nil {
		return nil, err
	}
	return &TernaryScalar[V]{derived: *d, kernel: kernel}, nil
}

// RecalculateBlock implements BlockNode.
func (n *TernaryScalar[V]) RecalculateBlock(block int) ([]V, bool) {
	if !n.store.Stale(block) {
		return n.store.TryGetBlock(block)
	}
	s, ok := n.pull(block)
	if !ok {
		return nil, false
	}
	dst := n.store.Block(block)
	n.kernel(dst, n.in[0], n.in[1], n.in[2], s)
	n.store.ClearStale(block)
	return dst, true
}
