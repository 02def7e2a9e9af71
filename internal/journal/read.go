package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Write is one recorded leaf write.
type Write struct {
	Tick   int64
	Seq    int64
	Node   string
	Entity int
	Value  float64
}

// Session describes one recording.
type Session struct {
	ID        string
	Scene     string
	CreatedAt string
	Writes    int64
}

// Replay streams a session's writes in (tick, seq) order to apply. Applying
// them to a freshly built scene reproduces the recorded end state.
//
// Stops on the first apply error, which is returned unwrapped so callers can
// react to their own error types.
func (j *Journal) Replay(ctx context.Context, session string, apply func(Write) error) error {
	if err := j.sessionExists(ctx, session); err != nil {
		return err
	}

	rows, err := j.db.QueryContext(ctx,
		`SELECT tick, seq, node, entity, value
		 FROM writes
		 WHERE session_id = ?
		 ORDER BY tick, seq`, session)
	if err != nil {
		return fmt.Errorf("journal: querying writes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var w Write
		if err := rows.Scan(&w.Tick, &w.Seq, &w.Node, &w.Entity, &w.Value); err != nil {
			return fmt.Errorf("journal: scanning write: %w", err)
		}
		if err := apply(w); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("journal: iterating writes: %w", err)
	}
	return nil
}

// Sessions lists every recording, oldest first. UUIDv7 session IDs sort by
// creation time, so ordering by id is ordering by age.
func (j *Journal) Sessions(ctx context.Context) ([]Session, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT s.id, s.scene, s.created_at, COUNT(w.seq)
		 FROM sessions s
		 LEFT JOIN writes w ON w.session_id = s.id
		 GROUP BY s.id
		 ORDER BY s.id`)
	if err != nil {
		return nil, fmt.Errorf("journal: querying sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.Scene, &s.CreatedAt, &s.Writes); err != nil {
			return nil, fmt.Errorf("journal: scanning session: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: iterating sessions: %w", err)
	}
	return out, nil
}

func (j *Journal) sessionExists(ctx context.Context, session string) error {
	var one int
	err := j.db.QueryRowContext(ctx,
		`SELECT 1 FROM sessions WHERE id = ?`, session).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, session)
	}
	if err != nil {
		return fmt.Errorf("journal: checking session: %w", err)
	}
	return nil
}
