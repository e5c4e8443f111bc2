// Package notices is the operator-facing notification surface.
//
// The matcher and store publish short transient messages; the surface holds
// exactly one current message at a time, and presentation (display plus
// auto-dismiss timing) belongs to whoever consumes it. The core never sleeps
// or schedules dismissal itself.
package notices
