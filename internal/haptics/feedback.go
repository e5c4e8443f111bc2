package haptics

import "io"

// Feedback is the success-pulse collaborator.
type Feedback interface {
	Pulse()
}

// Noop discards pulses.
type Noop struct{}

func (Noop) Pulse() {}

// TerminalBell writes the BEL control character so scanner rigs driven from a
// terminal still get an audible confirmation.
type TerminalBell struct {
	Out io.Writer
}

func (b TerminalBell) Pulse() {
	if b.Out == nil {
		return
	}
	_, _ = io.WriteString(b.Out, "\a")
}
