package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/laneflow/internal/scene"
)

// NewDumpCommand creates the dump command.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <scene.yaml>",
		Short: "Print a scene's fully evaluated state",
		Long: `Build the graph a scene file describes, apply its declared writes, pull
everything, and print the state. Blocks never written to are reported as
absent rather than zero.

Output is deterministic for a given scene file, which makes dump suitable
for golden-file comparisons.

Examples:
  laneflow dump scene.yaml
  laneflow dump scene.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runDump(opts *RootOptions, path string, cmd *cobra.Command) error {
	doc, err := scene.Load(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scene", err)
	}
	s, err := scene.Build(doc)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build scene", err)
	}

	s.ApplyWrites()
	s.PullAll()

	return writeState(cmd.OutOrStdout(), snapshotScene(s), opts.Format)
}
