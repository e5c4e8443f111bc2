// Package records persists completed (participant, position) pairings.
//
// The List keeps records in completion order and answers the uniqueness
// probes the matcher needs. The Store serializes the whole list as one JSON
// snapshot under a fixed key in a KV collaborator; the SQLite implementation
// in this package is the default collaborator. Persistence is best-effort:
// the in-memory list stays authoritative for the session and KV failures are
// surfaced to the caller for logging only.
//
// Snapshots carry a version so incompatible formats fail loudly at load time
// instead of producing a silently truncated record set.
package records
