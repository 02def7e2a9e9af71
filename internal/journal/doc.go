// Package journal provides durable recording and deterministic replay of
// leaf writes.
//
// A laneflow graph is fully determined by its scene description plus the
// ordered sequence of leaf writes applied to it. The journal captures that
// sequence in SQLite: one session row per recording (keyed by a
// time-sortable UUIDv7 token), one row per write stamped with (tick, seq).
//
// ORDERING:
//
// seq comes from a monotonic logical clock, never from wall-clock time.
// Replay streams rows ordered by (tick, seq), so applying them to a freshly
// built scene reproduces the recorded end state exactly - including
// identity-short-circuit behavior, since redundant writes were never
// recorded as changes by the graph in the first place (the journal records
// what the caller wrote, the graph decides what was a change).
//
// The database uses WAL mode with a single writer, which matches the
// graph's single-writer-per-tick model.
package journal
