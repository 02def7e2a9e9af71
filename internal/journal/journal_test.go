package journal

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestJournal(t *testing.T) (*Journal, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	j, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j, path
}

func TestRecordAndReplay_Ordered(t *testing.T) {
	j, _ := openTestJournal(t)
	ctx := context.Background()

	session, err := j.BeginSession(ctx, "motion")
	require.NoError(t, err)
	require.Len(t, session, 36, "hyphenated UUID")

	require.NoError(t, j.Record(ctx, session, 0, "pos", 0, 10))
	require.NoError(t, j.Record(ctx, session, 0, "pos", 1, 20))
	require.NoError(t, j.Record(ctx, session, 1, "pos", 0, 11))

	var got []Write
	err = j.Replay(ctx, session, func(w Write) error {
		got = append(got, w)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, int64(0), got[0].Tick)
	assert.Equal(t, 10.0, got[0].Value)
	assert.Equal(t, 20.0, got[1].Value)
	assert.Equal(t, int64(1), got[2].Tick)
	assert.Equal(t, 11.0, got[2].Value)

	// seq strictly increases across the session.
	assert.Less(t, got[0].Seq, got[1].Seq)
	assert.Less(t, got[1].Seq, got[2].Seq)
}

func TestReplay_UnknownSession(t *testing.T) {
	j, _ := openTestJournal(t)

	err := j.Replay(context.Background(), "no-such-session", func(Write) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestOpen_ResumesClock(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "resume.db")

	j, err := Open(path)
	require.NoError(t, err)
	session, err := j.BeginSession(ctx, "s")
	require.NoError(t, err)
	require.NoError(t, j.Record(ctx, session, 0, "a", 0, 1))
	require.NoError(t, j.Record(ctx, session, 0, "a", 1, 2))
	lastSeq := j.clock.Current()
	require.NoError(t, j.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, lastSeq, reopened.clock.Current(),
		"reopened journal must not reuse sequence numbers")

	require.NoError(t, reopened.Record(ctx, session, 1, "a", 0, 3))

	var seqs []int64
	err = reopened.Replay(ctx, session, func(w Write) error {
		seqs = append(seqs, w.Seq)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, seqs, 3)
	assert.Less(t, seqs[1], seqs[2])
}

func TestSessions_Listing(t *testing.T) {
	j, _ := openTestJournal(t)
	ctx := context.Background()

	s1, err := j.BeginSession(ctx, "alpha")
	require.NoError(t, err)
	s2, err := j.BeginSession(ctx, "beta")
	require.NoError(t, err)
	require.NoError(t, j.Record(ctx, s2, 0, "x", 0, 1))

	sessions, err := j.Sessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	// UUIDv7 ids sort by creation time.
	assert.Equal(t, s1, sessions[0].ID)
	assert.Equal(t, "alpha", sessions[0].Scene)
	assert.Equal(t, int64(0), sessions[0].Writes)
	assert.Equal(t, s2, sessions[1].ID)
	assert.Equal(t, int64(1), sessions[1].Writes)
}

func TestReplay_StopsOnApplyError(t *testing.T) {
	j, _ := openTestJournal(t)
	ctx := context.Background()

	session, err := j.BeginSession(ctx, "s")
	require.NoError(t, err)
	require.NoError(t, j.Record(ctx, session, 0, "a", 0, 1))
	require.NoError(t, j.Record(ctx, session, 0, "a", 1, 2))

	calls := 0
	sentinel := assert.AnError
	err = j.Replay(ctx, session, func(Write) error {
		calls++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}
