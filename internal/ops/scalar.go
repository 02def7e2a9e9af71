package ops

import (
	"math"

	"github.com/roach88/laneflow/internal/graph"
)

// Scalar-augmented operators. For non-commutative operations the name spells
// out which side the scalar occupies: SubScalar is x-s, ScalarSub is s-x,
// and likewise for division.

// AddScalar computes x + s.
func AddScalar[F Float](x graph.BlockNode[F], s graph.ScalarNode[F], opts ...graph.Option[F]) (*graph.UnaryScalar[F], error) {
	return graph.NewUnaryScalar(x, s, func(dst, x []F, s F) {
		for i := range dst {
			dst[i] = x[i] + s
		}
	}, opts...)
}

// SubScalar computes x - s.
func SubScalar[F Float](x graph.BlockNode[F], s graph.ScalarNode[F], opts ...graph.Option[F]) (*graph.UnaryScalar[F], error) {
	return graph.NewUnaryScalar(x, s, func(dst, x []F, s F) {
		for i := range dst {
			dst[i] = x[i] - s
		}
	}, opts...)
}

// ScalarSub computes s - x.
func ScalarSub[F Float](x graph.BlockNode[F], s graph.ScalarNode[F], opts ...graph.Option[F]) (*graph.UnaryScalar[F], error) {
	return graph.NewUnaryScalar(x, s, func(dst, x []F, s F) {
		for i := range dst {
			dst[i] = s - x[i]
		}
	}, opts...)
}

// MulScalar computes x * s.
func MulScalar[F Float](x graph.BlockNode[F], s graph.ScalarNode[F], opts ...graph.Option[F]) (*graph.UnaryScalar[F], error) {
	return graph.NewUnaryScalar(x, s, func(dst, x []F, s F) {
		for i := range dst {
			dst[i] = x[i] * s
		}
	}, opts...)
}

// DivScalar computes x / s.
func DivScalar[F Float](x graph.BlockNode[F], s graph.ScalarNode[F], opts ...graph.Option[F]) (*graph.UnaryScalar[F], error) {
	return graph.NewUnaryScalar(x, s, func(dst, x []F, s F) {
		for i := range dst {
			dst[i] = x[i] / s
		}
	}, opts...)
}

// ScalarDiv computes s / x.
func ScalarDiv[F Float](x graph.BlockNode[F], s graph.ScalarNode[F], opts ...graph.Option[F]) (*graph.UnaryScalar[F], error) {
	return graph.NewUnaryScalar(x, s, func(dst, x []F, s F) {
		for i := range dst {
			dst[i] = s / x[i]
		}
	}, opts...)
}

// PowScalar computes x ** s.
func PowScalar[F Float](x graph.BlockNode[F], s graph.ScalarNode[F], opts ...graph.Option[F]) (*graph.UnaryScalar[F], error) {
	return graph.NewUnaryScalar(x, s, func(dst, x []F, s F) {
		for i := range dst {
			dst[i] = F(math.Pow(float64(x[i]), float64(s)))
		}
	}, opts...)
}

// MinScalar computes the lane-wise minimum of x and s.
func MinScalar[F Float](x graph.BlockNode[F], s graph.ScalarNode[F], opts ...graph.Option[F]) (*graph.UnaryScalar[F], error) {
	return graph.NewUnaryScalar(x, s, func(dst, x []F, s F) {
		for i := range dst {
			if x[i] < s {
				dst[i] = x[i]
			} else {
				dst[i] = s
			}
		}
	}, opts...)
}

// MaxScalar computes the lane-wise maximum of x and s.
func MaxScalar[F Float](x graph.BlockNode[F], s graph.ScalarNode[F], opts ...graph.Option[F]) (*graph.UnaryScalar[F], error) {
	return graph.NewUnaryScalar(x, s, func(dst, x []F, s F) {
		for i := range dst {
			if x[i] > s {
				dst[i] = x[i]
			} else {
				dst[i] = s
			}
		}
	}, opts...)
}

// AddMulScalar computes (x + y) * s.
func AddMulScalar[F Float](x, y graph.BlockNode[F], s graph.ScalarNode[F], opts ...graph.Option[F]) (*graph.BinaryScalar[F], error) {
	return graph.NewBinaryScalar(x, y, s, func(dst, x, y []F, s F) {
		for i := range dst {
			dst[i] = (x[i] + y[i]) * s
		}
	}, opts...)
}

// MulAddScalar computes (x * s) + y.
func MulAddScalar[F Float](x, y graph.BlockNode[F], s graph.ScalarNode[F], opts ...graph.Option[F]) (*graph.BinaryScalar[F], error) {
	return graph.NewBinaryScalar(x, y, s, func(dst, x, y []F, s F) {
		for i := range dst {
			dst[i] = F(math.FMA(float64(x[i]), float64(s), float64(y[i])))
		}
	}, opts...)
}

// LerpScalar computes a + (b-a)*s, interpolating by a shared parameter.
func LerpScalar[F Float](a, b graph.BlockNode[F], s graph.ScalarNode[F], opts ...graph.Option[F]) (*graph.BinaryScalar[F], error) {
	return graph.NewBinaryScalar(a, b, s, func(dst, a, b []F, s F) {
		for i := range dst {
			dst[i] = a[i] + (b[i]-a[i])*s
		}
	}, opts...)
}

// MulAddMulScalar computes (x*y + z) * s, the fused ternary with a shared
// post-scale.
func MulAddMulScalar[F Float](x, y, z graph.BlockNode[F], s graph.ScalarNode[F], opts ...graph.Option[F]) (*graph.TernaryScalar[F], error) {
	return graph.NewTernaryScalar(x, y, z, s, func(dst, x, y, z []F, s F) {
		for i := range dst {
			dst[i] = F(math.FMA(float64(x[i]), float64(y[i]), float64(z[i]))) * s
		}
	}, opts...)
}
