// Package session owns the scan-pairing state machine.
//
// A Session reconciles two sequential scans into one finish record: a bib tag
// carrying the configured prefix, then a numeric finish-position token. The
// machine has exactly two phases, Idle and AwaitingFinish, and holds at most
// one pending bib between them. Rejections recover in place and surface as
// operator notices; nothing escapes the Submit boundary as an error.
//
// The Session is the single owner of the mutable record list and pending bib
// for its lifetime: created on startup (loading persisted records), cleared
// only through Reset.
package session
