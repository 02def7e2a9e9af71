package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sumBlock(block []float64) float64 {
	var s float64
	for _, v := range block {
		s += v
	}
	return s
}

func meanBlock(block []float64) float64 {
	return sumBlock(block) / float64(len(block))
}

func sumParts(parts []float64) float64 {
	var s float64
	for _, v := range parts {
		s += v
	}
	return s
}

func meanParts(parts []float64) float64 {
	return sumParts(parts) / float64(len(parts))
}

func TestReduce_AbsentWithZeroPresentBlocks(t *testing.T) {
	leaf := mustLeaf(t, 32)
	r, err := NewReduce[float64, float64](leaf, meanBlock, meanParts)
	require.NoError(t, err)

	_, ok := r.Recalculate()
	assert.False(t, ok, "zero present blocks reduce to absent, never a computed zero")
}

func TestReduce_MeanOfSinglePresentBlock(t *testing.T) {
	leaf := mustLeaf(t, 32)
	r, err := NewReduce[float64, float64](leaf, meanBlock, meanParts)
	require.NoError(t, err)

	// Populate only block 0: lanes 0..15 = 10,20,...,160.
	for i := 0; i < 16; i++ {
		leaf.Set(i, float64((i+1)*10))
	}

	got, ok := r.Recalculate()
	require.True(t, ok)
	assert.Equal(t, 85.0, got, "mean of 10..160 step 10")
}

func TestReduce_SkipsAbsentBlocks(t *testing.T) {
	leaf := mustLeaf(t, 48)
	r, err := NewReduce[float64, float64](leaf, sumBlock, sumParts)
	require.NoError(t, err)

	leaf.Set(0, 5)   // block 0
	leaf.Set(33, 7)  // block 2; block 1 stays absent

	got, ok := r.Recalculate()
	require.True(t, ok)
	assert.Equal(t, 12.0, got)
}

func TestReduce_CachesPerBlockResults(t *testing.T) {
	leaf := mustLeaf(t, 32)

	var reductions int
	reducer := func(block []float64) float64 {
		reductions++
		return sumBlock(block)
	}
	r, err := NewReduce[float64, float64](leaf, reducer, sumParts)
	require.NoError(t, err)

	leaf.Set(0, 1)
	leaf.Set(16, 2)

	got, ok := r.Recalculate()
	require.True(t, ok)
	require.Equal(t, 3.0, got)
	require.Equal(t, 2, reductions)

	// Only block 1 changes; block 0's cached reduction is reused.
	leaf.Set(16, 10)
	got, ok = r.Recalculate()
	require.True(t, ok)
	assert.Equal(t, 11.0, got)
	assert.Equal(t, 3, reductions, "unchanged block must not re-reduce")

	// No changes at all: pure cache hit.
	got, ok = r.Recalculate()
	require.True(t, ok)
	assert.Equal(t, 11.0, got)
	assert.Equal(t, 3, reductions)
}

func TestReduce_OverDerivedNode(t *testing.T) {
	a := mustLeaf(t, 16)
	b := mustLeaf(t, 16)
	sum, err := NewBinary[float64](a, b, addK)
	require.NoError(t, err)
	r, err := NewReduce[float64, float64](sum, sumBlock, sumParts)
	require.NoError(t, err)

	a.Set(0, 1)
	b.Set(0, 2)

	got, ok := r.Recalculate()
	require.True(t, ok)
	assert.Equal(t, 3.0, got, "reduction pulls the derived upstream bottom-up")

	a.Set(0, 10)
	got, ok = r.Recalculate()
	require.True(t, ok)
	assert.Equal(t, 12.0, got)
}

func TestReduce_IntegerResult(t *testing.T) {
	leaf := mustLeaf(t, 32)

	nonZero := func(block []float64) int64 {
		var n int64
		for _, v := range block {
			if v != 0 {
				n++
			}
		}
		return n
	}
	total := func(parts []int64) int64 {
		var n int64
		for _, v := range parts {
			n += v
		}
		return n
	}

	r, err := NewReduce[float64, int64](leaf, nonZero, total)
	require.NoError(t, err)

	leaf.Set(0, 1)
	leaf.Set(3, 2)
	leaf.Set(17, 5)

	got, ok := r.Recalculate()
	require.True(t, ok)
	assert.Equal(t, int64(3), got)
}

func TestReduce_FeedsScalarConsumer(t *testing.T) {
	// A reduction is a ScalarNode: wire it as the scalar operand of a
	// derived node and verify staleness flows through.
	leaf := mustLeaf(t, 16)
	r, err := NewReduce[float64, float64](leaf, sumBlock, sumParts)
	require.NoError(t, err)

	other := mustLeaf(t, 16)
	n, err := NewUnaryScalar[float64](other, r, addScalarK)
	require.NoError(t, err)

	other.Set(0, 100)

	// Upstream of the reduction is empty: the scalar operand is absent.
	_, ok := n.RecalculateBlock(0)
	assert.False(t, ok)

	leaf.Set(0, 7)
	blk, ok := n.RecalculateBlock(0)
	require.True(t, ok)
	assert.Equal(t, 107.0, blk[0])

	leaf.Set(0, 9)
	blk, ok = n.RecalculateBlock(0)
	require.True(t, ok)
	assert.Equal(t, 109.0, blk[0])
}

func TestReduce_ConstructionErrors(t *testing.T) {
	leaf := mustLeaf(t, 16)

	_, err := NewReduce[float64, float64](nil, sumBlock, sumParts)
	assert.ErrorIs(t, err, ErrNilUpstream)

	_, err = NewReduce[float64, float64](leaf, nil, sumParts)
	assert.ErrorIs(t, err, ErrNilReducer)

	_, err = NewReduce[float64, float64](leaf, sumBlock, nil)
	assert.ErrorIs(t, err, ErrNilReducer)
}
