package scene

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Document is a validated scene description. Field meanings match the graph
// package's construction parameters; see schema.cue for the accepted shapes.
type Document struct {
	Name      string  `json:"name"`
	Capacity  int     `json:"capacity"`
	BlockSize int     `json:"block_size"`
	Fill      float64 `json:"fill"`
	Dense     bool    `json:"dense"`

	Scalars    []ScalarDecl `json:"scalars"`
	Nodes      []NodeDecl   `json:"nodes"`
	Reductions []ReduceDecl `json:"reductions"`
	Writes     []WriteDecl  `json:"writes"`
}

// ScalarDecl declares a scalar leaf. Value is optional: a scalar with no
// value starts absent, and nodes consuming it stay absent until it is set.
type ScalarDecl struct {
	Name  string   `json:"name"`
	Value *float64 `json:"value"`
}

// NodeDecl declares a block node: a mutable leaf (op "leaf", no inputs) or
// an operator node wired to previously declared nodes.
type NodeDecl struct {
	Name   string   `json:"name"`
	Op     string   `json:"op"`
	Inputs []string `json:"inputs"`
	Scalar string   `json:"scalar"`
}

// ReduceDecl declares a reduction over one previously declared block node.
type ReduceDecl struct {
	Name  string `json:"name"`
	Op    string `json:"op"`
	Input string `json:"input"`
}

// WriteDecl declares one initial leaf write applied by ApplyWrites.
type WriteDecl struct {
	Node   string  `json:"node"`
	Entity int     `json:"entity"`
	Value  float64 `json:"value"`
}

// SchemaError reports a scene document that failed CUE validation.
type SchemaError struct {
	Path    string // source file, if loaded from one
	Message string
}

func (e *SchemaError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("scene: %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("scene: %s", e.Message)
}

// Load reads, validates, and decodes a scene file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: reading %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		if se, ok := err.(*SchemaError); ok {
			se.Path = path
		}
		return nil, err
	}
	return doc, nil
}

// Parse validates a YAML scene document against the embedded schema and
// decodes it. Defaults from the schema (block size, fill, allocation mode)
// are applied during decoding.
func Parse(data []byte) (*Document, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &SchemaError{Message: fmt.Sprintf("invalid YAML: %v", err)}
	}
	if raw == nil {
		return nil, &SchemaError{Message: "empty document"}
	}

	ctx := cuecontext.New()
	compiled := ctx.CompileString(schemaCUE)
	if err := compiled.Err(); err != nil {
		// The schema is embedded and covered by tests; failing to compile
		// it is a build defect, not an input error.
		panic(fmt.Sprintf("scene: embedded schema invalid: %v", err))
	}
	schema := compiled.LookupPath(cue.ParsePath("#Scene"))

	val := ctx.Encode(raw)
	if err := val.Err(); err != nil {
		return nil, &SchemaError{Message: fmt.Sprintf("encoding document: %v", err)}
	}

	unified := schema.Unify(val)
	if err := unified.Validate(cue.Final(), cue.Concrete(true)); err != nil {
		return nil, &SchemaError{Message: err.Error()}
	}

	var doc Document
	if err := unified.Decode(&doc); err != nil {
		return nil, &SchemaError{Message: fmt.Sprintf("decoding document: %v", err)}
	}
	return &doc, nil
}
