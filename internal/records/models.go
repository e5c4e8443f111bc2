package records

import "time"

// Record is one completed pairing of a participant bib with a finish
// position. Records are immutable once appended.
type Record struct {
	Participant string    `json:"participant"`
	Position    int       `json:"position"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// List is an ordered collection of records; insertion order is completion
// order.
type List struct {
	items []Record
}

// NewList returns a List seeded with the provided records in order.
func NewList(items ...Record) *List {
	l := &List{}
	l.items = append(l.items, items...)
	return l
}

// Len reports the number of completed records.
func (l *List) Len() int {
	return len(l.items)
}

// Items returns a copy of the records in completion order.
func (l *List) Items() []Record {
	out := make([]Record, len(l.items))
	copy(out, l.items)
	return out
}

// HasParticipant reports whether the participant already has a completed
// record.
func (l *List) HasParticipant(participant string) bool {
	for _, r := range l.items {
		if r.Participant == participant {
			return true
		}
	}
	return false
}

// HasPosition reports whether the finish position is already taken.
func (l *List) HasPosition(position int) bool {
	for _, r := range l.items {
		if r.Position == position {
			return true
		}
	}
	return false
}

// Append adds a completed record. Callers are responsible for the uniqueness
// checks; Append does not re-validate.
func (l *List) Append(r Record) {
	l.items = append(l.items, r)
}

// Clear drops every record.
func (l *List) Clear() {
	l.items = nil
}
