package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/laneflow/internal/journal"
)

// runRecorded executes run --journal and returns the session id and stdout.
func runRecorded(t *testing.T, db string) (string, string) {
	t.Helper()

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"run", "testdata/motion.yaml", "--journal", db})
	require.NoError(t, cmd.Execute())

	var session string
	for _, line := range strings.Split(errOut.String(), "\n") {
		if s, ok := strings.CutPrefix(line, "session: "); ok {
			session = s
		}
	}
	require.NotEmpty(t, session, "run must report the recorded session id")
	return session, out.String()
}

func TestRunThenReplay_ReproducesState(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")
	session, runOut := runRecorded(t, db)

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"replay", "testdata/motion.yaml", "--journal", db, "--session", session})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, runOut, out.String(), "replayed state must match the recorded run")
}

func TestReplay_UnknownSession(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")
	runRecorded(t, db)

	cmd := NewRootCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"replay", "testdata/motion.yaml", "--journal", db, "--session", "no-such-session"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, journal.ErrSessionNotFound)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSessions_ListsRecordedRun(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")
	session, _ := runRecorded(t, db)

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"sessions", "--journal", db})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), session)
	assert.Contains(t, out.String(), "motion")
	assert.Contains(t, out.String(), "2 write(s)")
}

func TestSessions_EmptyJournal(t *testing.T) {
	db := filepath.Join(t.TempDir(), "empty.db")

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"sessions", "--journal", db})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "No sessions recorded.")
}
