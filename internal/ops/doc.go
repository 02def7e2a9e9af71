// Package ops is the operator catalogue: thin constructors that plug one
// pure per-block kernel into a graph base contract.
//
// Each constructor declares only its arity (1-3 block inputs), whether it
// carries a scalar operand, and - for non-commutative operations - which
// side the scalar occupies (AddMulScalar is (x+y)*s, MulAddScalar is
// (x*s)+y, ScalarSub is s-x). No constructor contains graph logic:
// staleness, sparsity, and allocation all live in the graph package.
//
// Kernels are straight lane loops over fixed-length blocks, the shape
// compilers auto-vectorize into one batched operation per call. Float
// kernels cover arithmetic, transcendental, fused, and magnitude-based
// operations; integer kernels cover the bitwise/logical set. Reductions
// (Sum, Mean, NonZeroCount) produce scalar nodes.
package ops
