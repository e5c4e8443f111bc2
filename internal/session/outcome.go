package session

import (
	"errors"

	"finishline/internal/records"
)

// Phase is the matcher state. There is no third phase; a pending bib exists
// exactly when the phase is AwaitingFinish.
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseAwaitingFinish Phase = "awaiting_finish"
)

// Rejection taxonomy. These never propagate past Submit; they classify the
// Outcome for logging and notices.
var (
	ErrInvalidFormat  = errors.New("invalid format")
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// OutcomeKind classifies what a submitted scan did.
type OutcomeKind string

const (
	// OutcomeAccepted: a fresh bib tag is now pending its finish token.
	OutcomeAccepted OutcomeKind = "participant_accepted"
	// OutcomeRecorded: the pending bib was paired and appended.
	OutcomeRecorded OutcomeKind = "pair_recorded"
	// OutcomeRejectedParticipant: payload lacks the bib prefix.
	OutcomeRejectedParticipant OutcomeKind = "rejected_invalid_participant"
	// OutcomeRejectedDuplicateParticipant: bib already has a record.
	OutcomeRejectedDuplicateParticipant OutcomeKind = "rejected_duplicate_participant"
	// OutcomeRejectedFinish: finish token is not a non-negative integer.
	OutcomeRejectedFinish OutcomeKind = "rejected_invalid_finish"
	// OutcomeIgnoredDuplicateFinish: position already taken; dropped without
	// a notice. Deliberate fidelity to the observed device behavior.
	OutcomeIgnoredDuplicateFinish OutcomeKind = "ignored_duplicate_finish"
)

// Outcome reports how one submitted payload was classified.
type Outcome struct {
	Kind    OutcomeKind
	Payload string
	// Record is set only for OutcomeRecorded.
	Record *records.Record
	// Err wraps ErrInvalidFormat or ErrDuplicateEntry for rejections.
	Err error
}

// Rejected reports whether the scan was refused with a notice.
func (o Outcome) Rejected() bool {
	return o.Err != nil && o.Kind != OutcomeIgnoredDuplicateFinish
}
