package scene

import "errors"

// Sentinel errors for scene loading and graph building. Schema-shape
// violations surface as *SchemaError instead, carrying CUE's positioned
// message.
var (
	// ErrUnknownOp indicates a node declared an operator the catalogue
	// doesn't provide.
	ErrUnknownOp = errors.New("scene: unknown operator")

	// ErrUnknownNode indicates a reference to a node that has not been
	// declared yet. Forward references are rejected, which is also what
	// makes cyclic scenes unrepresentable.
	ErrUnknownNode = errors.New("scene: reference to undeclared node")

	// ErrUnknownScalar indicates a scalar operand reference that matches no
	// scalar leaf or reduction.
	ErrUnknownScalar = errors.New("scene: reference to undeclared scalar")

	// ErrDuplicateName indicates two declarations share a name.
	ErrDuplicateName = errors.New("scene: duplicate node name")

	// ErrArityMismatch indicates a node's input count doesn't match its
	// operator's arity.
	ErrArityMismatch = errors.New("scene: operator arity mismatch")

	// ErrScalarOperand indicates a scalar operand was required but missing,
	// or provided to an operator that takes none.
	ErrScalarOperand = errors.New("scene: scalar operand mismatch")

	// ErrWriteTarget indicates an initial write addressed something other
	// than a mutable leaf.
	ErrWriteTarget = errors.New("scene: write target is not a leaf")

	// ErrEntityRange indicates an initial write addressed an entity at or
	// beyond the scene capacity.
	ErrEntityRange = errors.New("scene: entity index out of range")
)
