package scene

import (
	"fmt"

	"github.com/roach88/laneflow/internal/graph"
	"github.com/roach88/laneflow/internal/ops"
)

// Scene is a built graph with name-addressable nodes.
//
// Declaration order is preserved: NodeOrder/ReduceOrder drive deterministic
// pulls and dumps regardless of map iteration.
type Scene struct {
	Doc *Document

	Leaves     map[string]*graph.Leaf[float64]
	Scalars    map[string]*graph.ScalarLeaf[float64]
	Blocks     map[string]graph.BlockNode[float64]
	Reductions map[string]graph.ScalarNode[float64]

	NodeOrder   []string
	ReduceOrder []string
}

// blockBuilder adapts one ops constructor into the registry shape: fixed
// arity, scalar operand or not, no graph logic of its own.
type blockBuilder struct {
	arity  int
	scalar bool
	build  func(in []graph.BlockNode[float64], s graph.ScalarNode[float64], opts []graph.Option[float64]) (graph.BlockNode[float64], error)
}

func unary(fn func(graph.BlockNode[float64], ...graph.Option[float64]) (*graph.Unary[float64], error)) blockBuilder {
	return blockBuilder{arity: 1, build: func(in []graph.BlockNode[float64], _ graph.ScalarNode[float64], opts []graph.Option[float64]) (graph.BlockNode[float64], error) {
		return fn(in[0], opts...)
	}}
}

func binary(fn func(graph.BlockNode[float64], graph.BlockNode[float64], ...graph.Option[float64]) (*graph.Binary[float64], error)) blockBuilder {
	return blockBuilder{arity: 2, build: func(in []graph.BlockNode[float64], _ graph.ScalarNode[float64], opts []graph.Option[float64]) (graph.BlockNode[float64], error) {
		return fn(in[0], in[1], opts...)
	}}
}

func ternary(fn func(graph.BlockNode[float64], graph.BlockNode[float64], graph.BlockNode[float64], ...graph.Option[float64]) (*graph.Ternary[float64], error)) blockBuilder {
	return blockBuilder{arity: 3, build: func(in []graph.BlockNode[float64], _ graph.ScalarNode[float64], opts []graph.Option[float64]) (graph.BlockNode[float64], error) {
		return fn(in[0], in[1], in[2], opts...)
	}}
}

func unaryScalar(fn func(graph.BlockNode[float64], graph.ScalarNode[float64], ...graph.Option[float64]) (*graph.UnaryScalar[float64], error)) blockBuilder {
	return blockBuilder{arity: 1, scalar: true, build: func(in []graph.BlockNode[float64], s graph.ScalarNode[float64], opts []graph.Option[float64]) (graph.BlockNode[float64], error) {
		return fn(in[0], s, opts...)
	}}
}

func binaryScalar(fn func(graph.BlockNode[float64], graph.BlockNode[float64], graph.ScalarNode[float64], ...graph.Option[float64]) (*graph.BinaryScalar[float64], error)) blockBuilder {
	return blockBuilder{arity: 2, scalar: true, build: func(in []graph.BlockNode[float64], s graph.ScalarNode[float64], opts []graph.Option[float64]) (graph.BlockNode[float64], error) {
		return fn(in[0], in[1], s, opts...)
	}}
}

// blockOps names every float operator a scene may instantiate.
var blockOps = map[string]blockBuilder{
	"neg":   unary(ops.Neg[float64]),
	"abs":   unary(ops.Abs[float64]),
	"sqrt":  unary(ops.Sqrt[float64]),
	"floor": unary(ops.Floor[float64]),
	"ceil":  unary(ops.Ceil[float64]),
	"round": unary(ops.Round[float64]),
	"sign":  unary(ops.Sign[float64]),
	"exp":   unary(ops.Exp[float64]),
	"log":   unary(ops.Log[float64]),
	"sin":   unary(ops.Sin[float64]),
	"cos":   unary(ops.Cos[float64]),
	"tan":   unary(ops.Tan[float64]),

	"add":     binary(ops.Add[float64]),
	"sub":     binary(ops.Sub[float64]),
	"mul":     binary(ops.Mul[float64]),
	"div":     binary(ops.Div[float64]),
	"min":     binary(ops.Min[float64]),
	"max":     binary(ops.Max[float64]),
	"min_mag": binary(ops.MinMag[float64]),
	"max_mag": binary(ops.MaxMag[float64]),
	"atan2":   binary(ops.Atan2[float64]),

	"mul_add": ternary(ops.MulAdd[float64]),
	"lerp":    ternary(ops.Lerp[float64]),
	"clamp":   ternary(ops.Clamp[float64]),

	"add_scalar": unaryScalar(ops.AddScalar[float64]),
	"sub_scalar": unaryScalar(ops.SubScalar[float64]),
	"scalar_sub": unaryScalar(ops.ScalarSub[float64]),
	"mul_scalar": unaryScalar(ops.MulScalar[float64]),
	"div_scalar": unaryScalar(ops.DivScalar[float64]),
	"scalar_div": unaryScalar(ops.ScalarDiv[float64]),
	"pow_scalar": unaryScalar(ops.PowScalar[float64]),
	"min_scalar": unaryScalar(ops.MinScalar[float64]),
	"max_scalar": unaryScalar(ops.MaxScalar[float64]),

	"add_mul_scalar": binaryScalar(ops.AddMulScalar[float64]),
	"mul_add_scalar": binaryScalar(ops.MulAddScalar[float64]),
	"lerp_scalar":    binaryScalar(ops.LerpScalar[float64]),
}

// reduceOps names the scalar-producing reductions a scene may instantiate.
var reduceOps = map[string]func(graph.BlockNode[float64]) (graph.ScalarNode[float64], error){
	"sum": func(up graph.BlockNode[float64]) (graph.ScalarNode[float64], error) {
		return ops.Sum(up)
	},
	"mean": func(up graph.BlockNode[float64]) (graph.ScalarNode[float64], error) {
		return ops.Mean(up)
	},
}

// Build constructs the graph a document describes. Declarations are
// processed in order and may only reference earlier ones.
func Build(doc *Document) (*Scene, error) {
	s := &Scene{
		Doc:        doc,
		Leaves:     make(map[string]*graph.Leaf[float64]),
		Scalars:    make(map[string]*graph.ScalarLeaf[float64]),
		Blocks:     make(map[string]graph.BlockNode[float64]),
		Reductions: make(map[string]graph.ScalarNode[float64]),
	}

	opts := []graph.Option[float64]{
		graph.WithBlockSize[float64](doc.BlockSize),
		graph.WithFill(doc.Fill),
	}
	if doc.Dense {
		opts = append(opts, graph.WithDense[float64]())
	}

	for _, d := range doc.Scalars {
		if s.taken(d.Name) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, d.Name)
		}
		leaf := graph.NewScalarLeaf[float64]()
		if d.Value != nil {
			leaf.Set(*d.Value)
		}
		s.Scalars[d.Name] = leaf
	}

	for _, d := range doc.Nodes {
		if s.taken(d.Name) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, d.Name)
		}
		node, err := s.buildNode(d, opts)
		if err != nil {
			return nil, err
		}
		s.Blocks[d.Name] = node
		s.NodeOrder = append(s.NodeOrder, d.Name)
	}

	for _, d := range doc.Reductions {
		if s.taken(d.Name) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, d.Name)
		}
		up, ok := s.Blocks[d.Input]
		if !ok {
			return nil, fmt.Errorf("%w: reduction %q input %q", ErrUnknownNode, d.Name, d.Input)
		}
		build := reduceOps[d.Op] // op shape enforced by schema
		r, err := build(up)
		if err != nil {
			return nil, fmt.Errorf("scene: building reduction %q: %w", d.Name, err)
		}
		s.Reductions[d.Name] = r
		s.ReduceOrder = append(s.ReduceOrder, d.Name)
	}

	for _, w := range doc.Writes {
		if _, ok := s.Leaves[w.Node]; !ok {
			if _, isNode := s.Blocks[w.Node]; isNode {
				return nil, fmt.Errorf("%w: %q", ErrWriteTarget, w.Node)
			}
			return nil, fmt.Errorf("%w: write target %q", ErrUnknownNode, w.Node)
		}
		if w.Entity >= doc.Capacity {
			return nil, fmt.Errorf("%w: entity %d, capacity %d", ErrEntityRange, w.Entity, doc.Capacity)
		}
	}

	return s, nil
}

func (s *Scene) buildNode(d NodeDecl, opts []graph.Option[float64]) (graph.BlockNode[float64], error) {
	if d.Op == "leaf" {
		if len(d.Inputs) != 0 || d.Scalar != "" {
			return nil, fmt.Errorf("%w: leaf %q takes no operands", ErrArityMismatch, d.Name)
		}
		leaf, err := graph.NewLeaf(s.Doc.Capacity, opts...)
		if err != nil {
			return nil, fmt.Errorf("scene: building leaf %q: %w", d.Name, err)
		}
		s.Leaves[d.Name] = leaf
		return leaf, nil
	}

	b, ok := blockOps[d.Op]
	if !ok {
		return nil, fmt.Errorf("%w: %q (node %q)", ErrUnknownOp, d.Op, d.Name)
	}
	if len(d.Inputs) != b.arity {
		return nil, fmt.Errorf("%w: %q takes %d inputs, node %q has %d",
			ErrArityMismatch, d.Op, b.arity, d.Name, len(d.Inputs))
	}

	in := make([]graph.BlockNode[float64], len(d.Inputs))
	for i, ref := range d.Inputs {
		up, ok := s.Blocks[ref]
		if !ok {
			return nil, fmt.Errorf("%w: node %q input %q", ErrUnknownNode, d.Name, ref)
		}
		in[i] = up
	}

	var scalar graph.ScalarNode[float64]
	switch {
	case b.scalar && d.Scalar == "":
		return nil, fmt.Errorf("%w: %q requires a scalar (node %q)", ErrScalarOperand, d.Op, d.Name)
	case !b.scalar && d.Scalar != "":
		return nil, fmt.Errorf("%w: %q takes no scalar (node %q)", ErrScalarOperand, d.Op, d.Name)
	case b.scalar:
		leaf, ok := s.Scalars[d.Scalar]
		if !ok {
			return nil, fmt.Errorf("%w: node %q scalar %q", ErrUnknownScalar, d.Name, d.Scalar)
		}
		scalar = leaf
	}

	node, err := b.build(in, scalar, opts)
	if err != nil {
		return nil, fmt.Errorf("scene: building node %q: %w", d.Name, err)
	}
	return node, nil
}

func (s *Scene) taken(name string) bool {
	if _, ok := s.Scalars[name]; ok {
		return true
	}
	if _, ok := s.Blocks[name]; ok {
		return true
	}
	_, ok := s.Reductions[name]
	return ok
}

// ApplyWrites performs the document's initial writes. Safe to call multiple
// times: the leaves' identity short-circuit makes it idempotent.
func (s *Scene) ApplyWrites() {
	for _, w := range s.Doc.Writes {
		s.Leaves[w.Node].Set(w.Entity, w.Value)
	}
}

// PullAll freshens every derived node block and every reduction, in
// declaration order. Returns the number of present blocks pulled.
func (s *Scene) PullAll() int {
	present := 0
	for _, name := range s.NodeOrder {
		node := s.Blocks[name]
		if _, isLeaf := s.Leaves[name]; isLeaf {
			continue
		}
		for i := 0; i < node.BlockCount(); i++ {
			if _, ok := node.RecalculateBlock(i); ok {
				present++
			}
		}
	}
	for _, name := range s.ReduceOrder {
		s.Reductions[name].Recalculate()
	}
	return present
}
