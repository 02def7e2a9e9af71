package graph

import "github.com/roach88/laneflow/internal/lane"

// BlockReducer folds one present block into a single value. It must not
// mutate or retain the block.
type BlockReducer[V, R lane.Value] func(block []V) R

// Aggregator folds the per-block results of every present block into the
// final scalar. It is only called with at least one element.
type Aggregator[R lane.Value] func(parts []R) R

// Reduce is a scalar node computed by reducing a block node: each present
// upstream block folds to one value via the reducer, and the present
// per-block results aggregate into the final scalar. Absent blocks are
// skipped; if the upstream has zero present blocks the result is absent,
// never a computed zero.
//
// The result type R is independent of the lane type V, so the same shape
// covers float means and integer counts.
//
// Reduce caches one optional result per upstream block index and recomputes
// only the per-block reductions whose upstream block was invalidated since
// the last pull.
type Reduce[V, R lane.Value] struct {
	up     BlockNode[V]
	reduce BlockReducer[V, R]
	agg    Aggregator[R]

	parts []R    // cached per-block reductions
	have  []bool // parts[i] valid (upstream block i was present)
	stale []bool // parts[i] needs recomputation

	result      R
	resultOK    bool
	resultStale bool
	scratch     []R
	observers   []func()
}

// NewReduce creates a reduction over one upstream block node.
func NewReduce[V, R lane.Value](up BlockNode[V], reduce BlockReducer[V, R], agg Aggregator[R]) (*Reduce[V, R], error) {
	if up == nil {
		return nil, ErrNilUpstream
	}
	if reduce == nil || agg == nil {
		return nil, ErrNilReducer
	}

	n := up.BlockCount()
	r := &Reduce[V, R]{
		up:          up,
		reduce:      reduce,
		agg:         agg,
		parts:       make([]R, n),
		have:        make([]bool, n),
		stale:       make([]bool, n),
		resultStale: true,
		scratch:     make([]R, 0, n),
	}
	for i := range r.stale {
		r.stale[i] = true
	}

	up.observeBlocks(func(block int) {
		r.stale[block] = true
		r.resultStale = true
		for _, fn := range r.observers {
			fn()
		}
	})
	return r, nil
}

// Recalculate implements ScalarNode: pull every stale upstream block,
// re-reduce the ones that are present, drop cached parts for the ones that
// went absent, then aggregate.
func (r *Reduce[V, R]) Recalculate() (R, bool) {
	if !r.resultStale {
		return r.result, r.resultOK
	}

	for i := range r.stale {
		if !r.stale[i] {
			continue
		}
		if block, ok := r.up.RecalculateBlock(i); ok {
			r.parts[i] = r.reduce(block)
			r.have[i] = true
		} else {
			r.have[i] = false
		}
		r.stale[i] = false
	}

	r.scratch = r.scratch[:0]
	for i, ok := range r.have {
		if ok {
			r.scratch = append(r.scratch, r.parts[i])
		}
	}
	if len(r.scratch) == 0 {
		var zero R
		r.result = zero
		r.resultOK = false
	} else {
		r.result = r.agg(r.scratch)
		r.resultOK = true
	}
	r.resultStale = false
	return r.result, r.resultOK
}

// TryGet implements ScalarNode: the cached result without recomputing.
// While the reduction is stale this reports the last computed value, which
// may lag the upstream until the next Recalculate.
func (r *Reduce[V, R]) TryGet() (R, bool) {
	return r.result, r.resultOK
}

func (r *Reduce[V, R]) observeScalar(fn func()) {
	r.observers = append(r.observers, fn)
}
