package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/roach88/laneflow/internal/scene"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Evaluation failure (replay mismatch, apply error)
	ExitCommandError = 2 // Command error (invalid paths, bad scene, missing journal)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// State snapshot types for JSON output. Ordering follows declaration order,
// so output is deterministic.

type scalarState struct {
	Name    string   `json:"name"`
	Present bool     `json:"present"`
	Value   *float64 `json:"value,omitempty"`
}

type blockState struct {
	Index   int       `json:"index"`
	Present bool      `json:"present"`
	Lanes   []float64 `json:"lanes,omitempty"`
}

type nodeState struct {
	Name   string       `json:"name"`
	Op     string       `json:"op"`
	Blocks []blockState `json:"blocks"`
}

type sceneState struct {
	Scene      string        `json:"scene"`
	Capacity   int           `json:"capacity"`
	BlockSize  int           `json:"block_size"`
	Scalars    []scalarState `json:"scalars,omitempty"`
	Nodes      []nodeState   `json:"nodes"`
	Reductions []scalarState `json:"reductions,omitempty"`
}

// snapshotScene captures a scene's current cached state without recomputing
// anything: TryGet only, so absent stays absent.
func snapshotScene(s *scene.Scene) sceneState {
	doc := s.Doc
	state := sceneState{
		Scene:     doc.Name,
		Capacity:  doc.Capacity,
		BlockSize: doc.BlockSize,
	}

	for _, d := range doc.Scalars {
		st := scalarState{Name: d.Name}
		if v, ok := s.Scalars[d.Name].TryGet(); ok {
			st.Present = true
			st.Value = &v
		}
		state.Scalars = append(state.Scalars, st)
	}

	for _, d := range doc.Nodes {
		node := s.Blocks[d.Name]
		ns := nodeState{Name: d.Name, Op: d.Op}
		for i := 0; i < node.BlockCount(); i++ {
			bs := blockState{Index: i}
			if lanes, ok := node.TryGetBlock(i); ok {
				bs.Present = true
				bs.Lanes = append([]float64(nil), lanes...)
			}
			ns.Blocks = append(ns.Blocks, bs)
		}
		state.Nodes = append(state.Nodes, ns)
	}

	for _, d := range doc.Reductions {
		st := scalarState{Name: d.Name}
		if v, ok := s.Reductions[d.Name].TryGet(); ok {
			st.Present = true
			st.Value = &v
		}
		state.Reductions = append(state.Reductions, st)
	}

	return state
}

// writeState renders a snapshot as text or indented JSON.
func writeState(w io.Writer, state sceneState, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	}
	writeText(w, state)
	return nil
}

func writeText(w io.Writer, state sceneState) {
	fmt.Fprintf(w, "scene: %s\n", state.Scene)
	fmt.Fprintf(w, "capacity: %d  block_size: %d\n", state.Capacity, state.BlockSize)

	for _, s := range state.Scalars {
		fmt.Fprintf(w, "scalar %s = %s\n", s.Name, formatOptional(s.Present, s.Value))
	}

	for _, n := range state.Nodes {
		fmt.Fprintf(w, "node %s (%s)\n", n.Name, n.Op)
		for _, b := range n.Blocks {
			if !b.Present {
				fmt.Fprintf(w, "  block %d: absent\n", b.Index)
				continue
			}
			fmt.Fprintf(w, "  block %d: [", b.Index)
			for i, v := range b.Lanes {
				if i > 0 {
					fmt.Fprint(w, " ")
				}
				fmt.Fprint(w, formatLane(v))
			}
			fmt.Fprintln(w, "]")
		}
	}

	for _, r := range state.Reductions {
		fmt.Fprintf(w, "reduction %s = %s\n", r.Name, formatOptional(r.Present, r.Value))
	}
}

func formatOptional(present bool, v *float64) string {
	if !present || v == nil {
		return "absent"
	}
	return formatLane(*v)
}

func formatLane(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
