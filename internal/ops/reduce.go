package ops

import (
	"github.com/roach88/laneflow/internal/graph"
)

// Prebuilt reductions. Each follows the reduce-then-aggregate shape: every
// present upstream block folds to one part, absent blocks are skipped, and
// the parts aggregate into the final scalar. Zero present blocks reduce to
// absent.

// Sum reduces to the sum of every lane of every present block. Unwritten
// lanes of a present block contribute their fill value - presence is a
// block-granularity notion.
func Sum[F Float](up graph.BlockNode[F]) (*graph.Reduce[F, F], error) {
	return graph.NewReduce(up,
		func(block []F) F {
			var s F
			for _, v := range block {
				s += v
			}
			return s
		},
		func(parts []F) F {
			var s F
			for _, v := range parts {
				s += v
			}
			return s
		})
}

// Mean reduces to the mean over every lane of every present block. Blocks
// are uniform length, so the mean of per-block means equals the lane mean.
func Mean[F Float](up graph.BlockNode[F]) (*graph.Reduce[F, F], error) {
	return graph.NewReduce(up,
		func(block []F) F {
			var s F
			for _, v := range block {
				s += v
			}
			return s / F(len(block))
		},
		func(parts []F) F {
			var s F
			for _, v := range parts {
				s += v
			}
			return s / F(len(parts))
		})
}

// NonZeroCount reduces to the number of non-zero lanes across present
// blocks, as an integer scalar.
func NonZeroCount[F Float](up graph.BlockNode[F]) (*graph.Reduce[F, int64], error) {
	return graph.NewReduce(up,
		func(block []F) int64 {
			var n int64
			for _, v := range block {
				if v != 0 {
					n++
				}
			}
			return n
		},
		func(parts []int64) int64 {
			var n int64
			for _, v := range parts {
				n += v
			}
			return n
		})
}
