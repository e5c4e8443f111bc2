package scan

import (
	"strings"

	"golang.org/x/text/width"
)

// Symbology identifies the barcode format the decoder reported.
type Symbology string

const (
	SymbologyUnknown Symbology = "unknown"
	SymbologyCode128 Symbology = "code128"
	SymbologyQR      Symbology = "qr"
)

// Event is one decoded scan as delivered by the input collaborator.
type Event struct {
	Symbology Symbology
	Payload   string
}

// NewEvent builds an Event with a normalized payload. An empty symbology is
// recorded as unknown.
func NewEvent(sym Symbology, payload string) Event {
	if sym == "" {
		sym = SymbologyUnknown
	}
	return Event{Symbology: sym, Payload: Normalize(payload)}
}

// Normalize trims surrounding whitespace and folds full-width forms to their
// narrow equivalents. Scanners in keyboard-wedge mode can emit full-width
// digits when the host has a CJK input method active.
func Normalize(payload string) string {
	return strings.TrimSpace(width.Narrow.String(payload))
}
