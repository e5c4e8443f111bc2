package notices

import (
	"fmt"
	"io"
	"time"
)

// Kind classifies a notice for presenters that style or tally messages.
type Kind string

const (
	KindAccepted       Kind = "accepted"
	KindRecorded       Kind = "recorded"
	KindCleared        Kind = "cleared"
	KindInvalidFormat  Kind = "invalid_format"
	KindDuplicateEntry Kind = "duplicate_entry"
)

// Rejected reports whether the notice describes a rejected scan.
func (k Kind) Rejected() bool {
	return k == KindInvalidFormat || k == KindDuplicateEntry
}

// Notice is one transient operator message.
type Notice struct {
	Kind     Kind
	Message  string
	PostedAt time.Time
}

// Publisher is the surface the matcher and store write notices to.
type Publisher interface {
	Publish(n Notice)
}

// DefaultDisplayWindow is how long presenters keep a notice visible before
// auto-dismissing it.
const DefaultDisplayWindow = 3 * time.Second

// Surface holds the single current transient message. Scans are processed
// serially by one operator, so the slot is not synchronized.
type Surface struct {
	current *Notice
	window  time.Duration
	now     func() time.Time
}

// NewSurface builds a Surface with the given display window; zero or negative
// falls back to DefaultDisplayWindow.
func NewSurface(window time.Duration) *Surface {
	if window <= 0 {
		window = DefaultDisplayWindow
	}
	return &Surface{window: window, now: time.Now}
}

// Publish replaces the current message.
func (s *Surface) Publish(n Notice) {
	if n.PostedAt.IsZero() {
		n.PostedAt = s.now()
	}
	s.current = &n
}

// Current returns the visible message, if any. A message past its display
// window is dismissed on read.
func (s *Surface) Current() (Notice, bool) {
	if s.current == nil {
		return Notice{}, false
	}
	if s.now().Sub(s.current.PostedAt) >= s.window {
		s.current = nil
		return Notice{}, false
	}
	return *s.current, true
}

// Dismiss clears the slot immediately.
func (s *Surface) Dismiss() {
	s.current = nil
}

// Tee fans one notice out to several publishers in order.
type Tee []Publisher

func (t Tee) Publish(n Notice) {
	for _, p := range t {
		p.Publish(n)
	}
}

// ConsolePresenter writes each notice to a writer as it is published. It is
// the terminal stand-in for the auto-dismissing on-screen banner.
type ConsolePresenter struct {
	Out io.Writer
}

func (c ConsolePresenter) Publish(n Notice) {
	if c.Out == nil {
		return
	}
	prefix := "--"
	if n.Kind.Rejected() {
		prefix = "!!"
	}
	fmt.Fprintf(c.Out, "%s %s\n", prefix, n.Message)
}
