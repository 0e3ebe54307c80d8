// Package session owns the in-memory registry of live exercise sessions.
//
// Responsibilities:
//   - one tracker per session, replaced on exercise switch
//   - per-session frame, accuracy and score statistics
//   - idle eviction and end-of-session summaries
//   - reporting frames, reps and lifecycle events to metrics
//
// Key types: Registry, Snapshot, Stats, Summary.
//
// Nothing is persisted. Dependency rule: session may import exercise,
// metrics, monitoring and timeutil; it must not import api.
package session
