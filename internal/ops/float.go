package ops

import (
	"math"

	"github.com/roach88/laneflow/internal/graph"
)

// Float constrains the lane types the arithmetic/transcendental catalogue
// operates on.
type Float interface {
	~float32 | ~float64
}

// mapUnary lifts a float64 function into a batched unary kernel.
// The lane loop is the whole kernel: no allocation, no state.
func mapUnary[F Float](fn func(float64) float64) graph.UnaryKernel[F] {
	return func(dst, x []F) {
		for i := range dst {
			dst[i] = F(fn(float64(x[i])))
		}
	}
}

// Neg computes -x.
func Neg[F Float](x graph.BlockNode[F], opts ...graph.Option[F]) (*graph.Unary[F], error) {
	return graph.NewUnary(x, func(dst, x []F) {
		for i := range dst {
			dst[i] = -x[i]
		}
	}, opts...)
}

// Abs computes |x|.
func Abs[F Float](x graph.BlockNode[F], opts ...graph.Option[F]) (*graph.Unary[F], error) {
	return graph.NewUnary(x, mapUnary[F](math.Abs), opts...)
}

// Sqrt computes the square root of x.
func Sqrt[F Float](x graph.BlockNode[F], opts ...graph.Option[F]) (*graph.Unary[F], error) {
	return graph.NewUnary(x, mapUnary[F](math.Sqrt), opts...)
}

// Floor rounds x toward negative infinity.
func Floor[F Float](x graph.BlockNode[F], opts ...graph.Option[F]) (*graph.Unary[F], error) {
	return graph.NewUnary(x, mapUnary[F](math.Floor), opts...)
}

// Ceil rounds x toward positive infinity.
func Ceil[F Float](x graph.BlockNode[F], opts ...graph.Option[F]) (*graph.Unary[F], error) {
	return graph.NewUnary(x, mapUnary[F](math.Ceil), opts...)
}

// Round rounds x to the nearest integer, halves away from zero.
func Round[F Float](x graph.BlockNode[F], opts ...graph.Option[F]) (*graph.Unary[F], error) {
	return graph.NewUnary(x, mapUnary[F](math.Round), opts...)
}

// Sign computes -1, 0, or +1 by the sign of x.
func Sign[F Float](x graph.BlockNode[F], opts ...graph.Option[F]) (*graph.Unary[F], error) {
	return graph.NewUnary(x, func(dst, x []F) {
		for i := range dst {
			switch {
			case x[i] > 0:
				dst[i] = 1
			case x[i] < 0:
				dst[i] = -1
			default:
				dst[i] = 0
			}
		}
	}, opts...)
}

// Exp computes e**x.
func Exp[F Float](x graph.BlockNode[F], opts ...graph.Option[F]) (*graph.Unary[F], error) {
	return graph.NewUnary(x, mapUnary[F](math.Exp), opts...)
}

// Log computes the natural logarithm of x.
func Log[F Float](x graph.BlockNode[F], opts ...graph.Option[F]) (*graph.Unary[F], error) {
	return graph.NewUnary(x, mapUnary[F](math.Log), opts...)
}

// Sin computes sin(x), x in radians.
func Sin[F Float](x graph.BlockNode[F], opts ...graph.Option[F]) (*graph.Unary[F], error) {
	return graph.NewUnary(x, mapUnary[F](math.Sin), opts...)
}

// Cos computes cos(x), x in radians.
func Cos[F Float](x graph.BlockNode[F], opts ...graph.Option[F]) (*graph.Unary[F], error) {
	return graph.NewUnary(x, mapUnary[F](math.Cos), opts...)
}

// Tan computes tan(x), x in radians.
func Tan[F Float](x graph.BlockNode[F], opts ...graph.Option[F]) (*graph.Unary[F], error) {
	return graph.NewUnary(x, mapUnary[F](math.Tan), opts...)
}

// Add computes x + y.
func Add[F Float](x, y graph.BlockNode[F], opts ...graph.Option[F]) (*graph.Binary[F], error) {
	return graph.NewBinary(x, y, func(dst, x, y []F) {
		for i := range dst {
			dst[i] = x[i] + y[i]
		}
	}, opts...)
}

// Sub computes x - y.
func Sub[F Float](x, y graph.BlockNode[F], opts ...graph.Option[F]) (*graph.Binary[F], error) {
	return graph.NewBinary(x, y, func(dst, x, y []F) {
		for i := range dst {
			dst[i] = x[i] - y[i]
		}
	}, opts...)
}

// Mul computes x * y.
func Mul[F Float](x, y graph.BlockNode[F], opts ...graph.Option[F]) (*graph.Binary[F], error) {
	return graph.NewBinary(x, y, func(dst, x, y []F) {
		for i := range dst {
			dst[i] = x[i] * y[i]
		}
	}, opts...)
}

// Div computes x / y. Division by zero follows IEEE 754 (Inf/NaN lanes);
// absence is never used to encode numeric faults.
func Div[F Float](x, y graph.BlockNode[F], opts ...graph.Option[F]) (*graph.Binary[F], error) {
	return graph.NewBinary(x, y, func(dst, x, y []F) {
		for i := range dst {
			dst[i] = x[i] / y[i]
		}
	}, opts...)
}

// Min computes the lane-wise minimum of x and y.
func Min[F Float](x, y graph.BlockNode[F], opts ...graph.Option[F]) (*graph.Binary[F], error) {
	return graph.NewBinary(x, y, func(dst, x, y []F) {
		for i := range dst {
			if x[i] < y[i] {
				dst[i] = x[i]
			} else {
				dst[i] = y[i]
			}
		}
	}, opts...)
}

// Max computes the lane-wise maximum of x and y.
func Max[F Float](x, y graph.BlockNode[F], opts ...graph.Option[F]) (*graph.Binary[F], error) {
	return graph.NewBinary(x, y, func(dst, x, y []F) {
		for i := range dst {
			if x[i] > y[i] {
				dst[i] = x[i]
			} else {
				dst[i] = y[i]
			}
		}
	}, opts...)
}

// MinMag picks the operand with the smaller magnitude, x on ties.
func MinMag[F Float](x, y graph.BlockNode[F], opts ...graph.Option[F]) (*graph.Binary[F], error) {
	return graph.NewBinary(x, y, func(dst, x, y []F) {
		for i := range dst {
			if mag(y[i]) < mag(x[i]) {
				dst[i] = y[i]
			} else {
				dst[i] = x[i]
			}
		}
	}, opts...)
}

// MaxMag picks the operand with the larger magnitude, x on ties.
func MaxMag[F Float](x, y graph.BlockNode[F], opts ...graph.Option[F]) (*graph.Binary[F], error) {
	return graph.NewBinary(x, y, func(dst, x, y []F) {
		for i := range dst {
			if mag(y[i]) > mag(x[i]) {
				dst[i] = y[i]
			} else {
				dst[i] = x[i]
			}
		}
	}, opts...)
}

// Atan2 computes atan2(y-coordinate x, x-coordinate y) lane-wise, i.e. the
// first upstream supplies the ordinate.
func Atan2[F Float](y, x graph.BlockNode[F], opts ...graph.Option[F]) (*graph.Binary[F], error) {
	return graph.NewBinary(y, x, func(dst, y, x []F) {
		for i := range dst {
			dst[i] = F(math.Atan2(float64(y[i]), float64(x[i])))
		}
	}, opts...)
}

// MulAdd computes the fused x*y + z with a single rounding per lane.
func MulAdd[F Float](x, y, z graph.BlockNode[F], opts ...graph.Option[F]) (*graph.Ternary[F], error) {
	return graph.NewTernary(x, y, z, func(dst, x, y, z []F) {
		for i := range dst {
			dst[i] = F(math.FMA(float64(x[i]), float64(y[i]), float64(z[i])))
		}
	}, opts...)
}

// Lerp computes a + (b-a)*t lane-wise.
func Lerp[F Float](a, b, t graph.BlockNode[F], opts ...graph.Option[F]) (*graph.Ternary[F], error) {
	return graph.NewTernary(a, b, t, func(dst, a, b, t []F) {
		for i := range dst {
			dst[i] = a[i] + (b[i]-a[i])*t[i]
		}
	}, opts...)
}

// Clamp limits x to [lo, hi] lane-wise. Callers are responsible for
// lo <= hi; reversed bounds clamp to hi.
func Clamp[F Float](x, lo, hi graph.BlockNode[F], opts ...graph.Option[F]) (*graph.Ternary[F], error) {
	return graph.NewTernary(x, lo, hi, func(dst, x, lo, hi []F) {
		for i := range dst {
			v := x[i]
			if v < lo[i] {
				v = lo[i]
			}
			if v > hi[i] {
				v = hi[i]
			}
			dst[i] = v
		}
	}, opts...)
}

func mag[F Float](v F) F {
	if v < 0 {
		return -v
	}
	return v
}
