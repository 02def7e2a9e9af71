package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/laneflow/internal/journal"
)

// SessionsOptions holds flags for the sessions command.
type SessionsOptions struct {
	*RootOptions
	Journal string
}

// NewSessionsCommand creates the sessions command.
func NewSessionsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SessionsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List recorded sessions in a journal",
		Long: `List every session in a SQLite journal, oldest first, with its scene
name, creation time, and write count.

Examples:
  laneflow sessions --journal ./runs.db
  laneflow sessions --journal ./runs.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessions(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Journal, "journal", "", "path to SQLite journal (required)")
	_ = cmd.MarkFlagRequired("journal")

	return cmd
}

type sessionInfo struct {
	ID        string `json:"id"`
	Scene     string `json:"scene"`
	CreatedAt string `json:"created_at"`
	Writes    int64  `json:"writes"`
}

func runSessions(opts *SessionsOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	j, err := journal.Open(opts.Journal)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer j.Close()

	sessions, err := j.Sessions(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list sessions", err)
	}

	w := cmd.OutOrStdout()

	if opts.Format == "json" {
		out := make([]sessionInfo, 0, len(sessions))
		for _, s := range sessions {
			out = append(out, sessionInfo{ID: s.ID, Scene: s.Scene, CreatedAt: s.CreatedAt, Writes: s.Writes})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions recorded.")
		return nil
	}
	for _, s := range sessions {
		fmt.Fprintf(w, "%s  %s  %s  %d write(s)\n", s.ID, s.CreatedAt, s.Scene, s.Writes)
	}
	return nil
}
