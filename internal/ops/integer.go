package ops

import "github.com/roach88/laneflow/internal/graph"

// Integer constrains the lane types the bitwise/logical catalogue operates
// on. Lanes used as booleans follow the usual convention: zero is false,
// anything else is true, and kernels operate bitwise so all-ones masks
// survive composition.
type Integer interface {
	~int32 | ~int64
}

// Not computes ^x (bitwise complement).
func Not[I Integer](x graph.BlockNode[I], opts ...graph.Option[I]) (*graph.Unary[I], error) {
	return graph.NewUnary(x, func(dst, x []I) {
		for i := range dst {
			dst[i] = ^x[i]
		}
	}, opts...)
}

// And computes x & y.
func And[I Integer](x, y graph.BlockNode[I], opts ...graph.Option[I]) (*graph.Binary[I], error) {
	return graph.NewBinary(x, y, func(dst, x, y []I) {
		for i := range dst {
			dst[i] = x[i] & y[i]
		}
	}, opts...)
}

// Or computes x | y.
func Or[I Integer](x, y graph.BlockNode[I], opts ...graph.Option[I]) (*graph.Binary[I], error) {
	return graph.NewBinary(x, y, func(dst, x, y []I) {
		for i := range dst {
			dst[i] = x[i] | y[i]
		}
	}, opts...)
}

// Xor computes x ^ y.
func Xor[I Integer](x, y graph.BlockNode[I], opts ...graph.Option[I]) (*graph.Binary[I], error) {
	return graph.NewBinary(x, y, func(dst, x, y []I) {
		for i := range dst {
			dst[i] = x[i] ^ y[i]
		}
	}, opts...)
}

// AndNot computes x &^ y (x with y's bits cleared).
func AndNot[I Integer](x, y graph.BlockNode[I], opts ...graph.Option[I]) (*graph.Binary[I], error) {
	return graph.NewBinary(x, y, func(dst, x, y []I) {
		for i := range dst {
			dst[i] = x[i] &^ y[i]
		}
	}, opts...)
}
