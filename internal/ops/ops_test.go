package ops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/laneflow/internal/graph"
)

func leaf64(t *testing.T, values map[int]float64) *graph.Leaf[float64] {
	t.Helper()
	l, err := graph.NewLeaf[float64](32)
	require.NoError(t, err)
	for e, v := range values {
		l.Set(e, v)
	}
	return l
}

func pullLane(t *testing.T, n interface {
	RecalculateBlock(int) ([]float64, bool)
}, entity int) float64 {
	t.Helper()
	b, ok := n.RecalculateBlock(entity / 16)
	require.True(t, ok)
	return b[entity%16]
}

func TestArithmeticBinary(t *testing.T) {
	x := leaf64(t, map[int]float64{0: 6, 1: -2})
	y := leaf64(t, map[int]float64{0: 3, 1: 5})

	add, err := Add[float64](x, y)
	require.NoError(t, err)
	sub, err := Sub[float64](x, y)
	require.NoError(t, err)
	mul, err := Mul[float64](x, y)
	require.NoError(t, err)
	div, err := Div[float64](x, y)
	require.NoError(t, err)

	assert.Equal(t, 9.0, pullLane(t, add, 0))
	assert.Equal(t, 3.0, pullLane(t, sub, 0))
	assert.Equal(t, -10.0, pullLane(t, mul, 1))
	assert.Equal(t, 2.0, pullLane(t, div, 0))
}

func TestDiv_ByZeroYieldsInf(t *testing.T) {
	x := leaf64(t, map[int]float64{0: 1})
	y := leaf64(t, map[int]float64{1: 5}) // lane 0 holds fill 0

	div, err := Div[float64](x, y)
	require.NoError(t, err)

	assert.True(t, math.IsInf(pullLane(t, div, 0), 1),
		"numeric faults stay numeric; absence is never a fault channel")
}

func TestTranscendentalUnary(t *testing.T) {
	x := leaf64(t, map[int]float64{0: 4, 1: -1.5, 2: math.Pi})

	sqrt, err := Sqrt[float64](x)
	require.NoError(t, err)
	abs, err := Abs[float64](x)
	require.NoError(t, err)
	floor, err := Floor[float64](x)
	require.NoError(t, err)
	sin, err := Sin[float64](x)
	require.NoError(t, err)
	sign, err := Sign[float64](x)
	require.NoError(t, err)

	assert.Equal(t, 2.0, pullLane(t, sqrt, 0))
	assert.Equal(t, 1.5, pullLane(t, abs, 1))
	assert.Equal(t, -2.0, pullLane(t, floor, 1))
	assert.InDelta(t, 0.0, pullLane(t, sin, 2), 1e-12)
	assert.Equal(t, -1.0, pullLane(t, sign, 1))
	assert.Equal(t, 0.0, pullLane(t, sign, 5), "unwritten lane holds fill 0, sign 0")
}

func TestMinMaxByMagnitude(t *testing.T) {
	x := leaf64(t, map[int]float64{0: -8, 1: 2})
	y := leaf64(t, map[int]float64{0: 3, 1: -2})

	minMag, err := MinMag[float64](x, y)
	require.NoError(t, err)
	maxMag, err := MaxMag[float64](x, y)
	require.NoError(t, err)

	assert.Equal(t, 3.0, pullLane(t, minMag, 0), "|3| < |-8|")
	assert.Equal(t, -8.0, pullLane(t, maxMag, 0))
	assert.Equal(t, 2.0, pullLane(t, minMag, 1), "ties keep x")
	assert.Equal(t, 2.0, pullLane(t, maxMag, 1), "ties keep x")
}

func TestFusedTernary(t *testing.T) {
	x := leaf64(t, map[int]float64{0: 2})
	y := leaf64(t, map[int]float64{0: 3})
	z := leaf64(t, map[int]float64{0: 4})

	fma, err := MulAdd[float64](x, y, z)
	require.NoError(t, err)
	assert.Equal(t, 10.0, pullLane(t, fma, 0))

	lerp, err := Lerp[float64](x, y, z) // 2 + (3-2)*4
	require.NoError(t, err)
	assert.Equal(t, 6.0, pullLane(t, lerp, 0))

	clamp, err := Clamp[float64](z, x, y) // clamp 4 to [2,3]
	require.NoError(t, err)
	assert.Equal(t, 3.0, pullLane(t, clamp, 0))
}

func TestScalarSidePlacement(t *testing.T) {
	x := leaf64(t, map[int]float64{0: 10})
	s := graph.NewScalarLeaf[float64]()
	s.Set(3)

	subScalar, err := SubScalar[float64](x, s)
	require.NoError(t, err)
	scalarSub, err := ScalarSub[float64](x, s)
	require.NoError(t, err)
	divScalar, err := DivScalar[float64](x, s)
	require.NoError(t, err)
	scalarDiv, err := ScalarDiv[float64](x, s)
	require.NoError(t, err)

	assert.Equal(t, 7.0, pullLane(t, subScalar, 0), "x-s")
	assert.Equal(t, -7.0, pullLane(t, scalarSub, 0), "s-x")
	assert.InDelta(t, 10.0/3.0, pullLane(t, divScalar, 0), 1e-15)
	assert.Equal(t, 0.3, pullLane(t, scalarDiv, 0))
}

func TestBinaryScalarPlacement(t *testing.T) {
	x := leaf64(t, map[int]float64{0: 3})
	y := leaf64(t, map[int]float64{0: 4})
	s := graph.NewScalarLeaf[float64]()
	s.Set(2)

	addMul, err := AddMulScalar[float64](x, y, s)
	require.NoError(t, err)
	mulAdd, err := MulAddScalar[float64](x, y, s)
	require.NoError(t, err)

	assert.Equal(t, 14.0, pullLane(t, addMul, 0), "(x+y)*s")
	assert.Equal(t, 10.0, pullLane(t, mulAdd, 0), "(x*s)+y")
}

func TestFloat32Instantiation(t *testing.T) {
	l, err := graph.NewLeaf[float32](16)
	require.NoError(t, err)
	l.Set(0, 2)

	s := graph.NewScalarLeaf[float32]()
	s.Set(3)

	n, err := MulScalar[float32](l, s)
	require.NoError(t, err)

	b, ok := n.RecalculateBlock(0)
	require.True(t, ok)
	assert.Equal(t, float32(6), b[0])
}

func TestBitwise(t *testing.T) {
	x, err := graph.NewLeaf[int64](16)
	require.NoError(t, err)
	y, err := graph.NewLeaf[int64](16)
	require.NoError(t, err)

	x.Set(0, 0b1100)
	y.Set(0, 0b1010)

	and, err := And[int64](x, y)
	require.NoError(t, err)
	or, err := Or[int64](x, y)
	require.NoError(t, err)
	xor, err := Xor[int64](x, y)
	require.NoError(t, err)
	andNot, err := AndNot[int64](x, y)
	require.NoError(t, err)
	not, err := Not[int64](x)
	require.NoError(t, err)

	get := func(n *graph.Binary[int64]) int64 {
		b, ok := n.RecalculateBlock(0)
		require.True(t, ok)
		return b[0]
	}

	assert.Equal(t, int64(0b1000), get(and))
	assert.Equal(t, int64(0b1110), get(or))
	assert.Equal(t, int64(0b0110), get(xor))
	assert.Equal(t, int64(0b0100), get(andNot))

	b, ok := not.RecalculateBlock(0)
	require.True(t, ok)
	assert.Equal(t, int64(^0b1100), b[0])
}

func TestReductions(t *testing.T) {
	l := leaf64(t, map[int]float64{0: 10, 1: 20, 17: 30})

	sum, err := Sum[float64](l)
	require.NoError(t, err)
	got, ok := sum.Recalculate()
	require.True(t, ok)
	assert.Equal(t, 60.0, got)

	count, err := NonZeroCount[float64](l)
	require.NoError(t, err)
	n, ok := count.Recalculate()
	require.True(t, ok)
	assert.Equal(t, int64(3), n)
}

func TestMean_SinglePresentBlock(t *testing.T) {
	l, err := graph.NewLeaf[float64](32)
	require.NoError(t, err)
	for i := 0; i < 16; i++ {
		l.Set(i, float64((i+1)*10))
	}

	mean, err := Mean[float64](l)
	require.NoError(t, err)

	got, ok := mean.Recalculate()
	require.True(t, ok)
	assert.Equal(t, 85.0, got)

	// Empty upstream case: a fresh mean over an unwritten leaf is absent.
	empty, err := graph.NewLeaf[float64](32)
	require.NoError(t, err)
	m2, err := Mean[float64](empty)
	require.NoError(t, err)
	_, ok = m2.Recalculate()
	assert.False(t, ok)
}

func TestReductionAsScalarOperand(t *testing.T) {
	// Normalize a stream by its own mean: x / mean(x).
	l := leaf64(t, map[int]float64{0: 10, 1: 30})
	mean, err := Mean[float64](l)
	require.NoError(t, err)

	norm, err := DivScalar[float64](l, mean)
	require.NoError(t, err)

	// Block 0 mean over 16 lanes: (10+30)/16 = 2.5.
	assert.Equal(t, 4.0, pullLane(t, norm, 0))
	assert.Equal(t, 12.0, pullLane(t, norm, 1))
}

// Kernel length contract: every catalogue kernel writes exactly one block of
// the upstream length, no more, no less. A representative spot-check over a
// non-default block size guards the contract without a mechanical grid.
func TestKernelLengthContract(t *testing.T) {
	l, err := graph.NewLeaf[float64](24, graph.WithBlockSize[float64](8))
	require.NoError(t, err)
	l.Set(8, 9) // block 1

	exp, err := Exp[float64](l)
	require.NoError(t, err)

	b, ok := exp.RecalculateBlock(1)
	require.True(t, ok)
	assert.Len(t, b, 8)
	assert.Equal(t, 8, exp.BlockSize())
	assert.Equal(t, 3, exp.BlockCount())
}
