package journal

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// BeginSession registers a new recording session for the named scene and
// returns its token.
//
// Tokens are UUIDv7: the embedded timestamp makes sessions sort by creation
// time, which helps when listing or pruning journals. Ordering within a
// session still comes exclusively from the logical clock.
func (j *Journal) BeginSession(ctx context.Context, scene string) (string, error) {
	id := uuid.Must(uuid.NewV7()).String()
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO sessions (id, scene) VALUES (?, ?)`, id, scene)
	if err != nil {
		return "", fmt.Errorf("journal: creating session: %w", err)
	}
	return id, nil
}

// Record appends one leaf write to a session, stamped with the next logical
// sequence number.
func (j *Journal) Record(ctx context.Context, session string, tick int64, node string, entity int, value float64) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO writes (session_id, tick, seq, node, entity, value)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		session, tick, j.clock.Next(), node, entity, value)
	if err != nil {
		return fmt.Errorf("journal: recording write: %w", err)
	}
	return nil
}
