// Package logging constructs the application slog logger.
//
// Console output is a compact single-line format for the operator terminal;
// JSON output suits log shipping. Output can fan out to a session log file
// under the configured log directory in addition to stderr.
package logging
