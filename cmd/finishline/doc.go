// Package main hosts the Finishline CLI entrypoint and command graph.
//
// The Cobra-based command tree covers the interactive scan session, one-shot
// payload submission, record listing, the reset lifecycle, and configuration
// scaffolding. It centralizes configuration resolution, the device lock, and
// structured logging setup so subcommands can focus on the operator
// experience instead of wiring.
//
// Keep this package lean: the matcher, record store, and notice semantics
// live in the internal packages; commands only surface them.
package main
