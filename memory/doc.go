// Package memory holds the in-memory conversation transcript threaded through a run.
//
// Model:
//   - A Transcript is an ordered, append-only list of role-tagged messages.
//   - Assistant messages may carry tool calls; tool messages answer them by ID.
//   - Nothing is persisted to disk; callers carry transcripts between runs.
package memory
