package graph

import "github.com/roach88/laneflow/internal/lane"

// ScalarLeaf is a mutable scalar: one externally written optional value.
//
// A scalar feeds every lane of every block of its consumers, so a change
// notification fans out as a full-range invalidation (see derived node
// wiring). Set's identity short-circuit keeps redundant per-tick writes
// (e.g. an unchanged timestep) from invalidating anything.
type ScalarLeaf[V lane.Value] struct {
	value     V
	present   bool
	observers []func()
}

// NewScalarLeaf creates an absent scalar leaf.
func NewScalarLeaf[V lane.Value]() *ScalarLeaf[V] {
	return &ScalarLeaf[V]{}
}

// Set writes the scalar. A write equal to the present cached value is a
// no-op; otherwise the value is updated and subscribers are notified.
//
// Equality is exact (==): setting NaN always notifies, since NaN != NaN.
// That errs on the side of recomputation, never on stale caches.
func (s *ScalarLeaf[V]) Set(v V) {
	if s.present && s.value == v {
		return
	}
	s.value = v
	s.present = true
	s.notify()
}

// Clear resets the scalar to absent and notifies subscribers. Downstream
// nodes will release their cached blocks on their next pull.
func (s *ScalarLeaf[V]) Clear() {
	if !s.present {
		return
	}
	s.present = false
	var zero V
	s.value = zero
	s.notify()
}

// Recalculate implements ScalarNode. Leaf scalars are always fresh.
func (s *ScalarLeaf[V]) Recalculate() (V, bool) {
	return s.value, s.present
}

// TryGet implements ScalarNode.
func (s *ScalarLeaf[V]) TryGet() (V, bool) {
	return s.value, s.present
}

func (s *ScalarLeaf[V]) observeScalar(fn func()) {
	s.observers = append(s.observers, fn)
}

func (s *ScalarLeaf[V]) notify() {
	for _, fn := range s.observers {
		fn()
	}
}
