package session

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"finishline/internal/haptics"
	"finishline/internal/notices"
	"finishline/internal/records"
	"finishline/internal/scan"
)

// Options configures a Session.
type Options struct {
	// ID overrides the generated session identifier.
	ID string
	// Prefix is the literal every bib tag must start with.
	Prefix string
	// Store persists the record list; required.
	Store *records.Store
	// Notices receives operator messages; optional.
	Notices notices.Publisher
	// Haptics receives success pulses; optional.
	Haptics haptics.Feedback
	// Logger defaults to slog.Default.
	Logger *slog.Logger
	// Now overrides the clock for tests.
	Now func() time.Time
}

// Session is the single owner of matcher state for one operator run.
type Session struct {
	id      string
	prefix  string
	phase   Phase
	pending string

	list     *records.List
	store    *records.Store
	notices  notices.Publisher
	feedback haptics.Feedback
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a session and loads the persisted record list.
func New(ctx context.Context, opts Options) (*Session, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("session: store is required")
	}
	if strings.TrimSpace(opts.Prefix) == "" {
		return nil, fmt.Errorf("session: bib prefix is required")
	}

	list, err := opts.Store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	id := strings.TrimSpace(opts.ID)
	if id == "" {
		id = uuid.NewString()
	}

	s := &Session{
		id:       id,
		prefix:   opts.Prefix,
		phase:    PhaseIdle,
		list:     list,
		store:    opts.Store,
		notices:  opts.Notices,
		feedback: opts.Haptics,
		logger:   opts.Logger,
		now:      opts.Now,
	}
	if s.notices == nil {
		s.notices = notices.Tee(nil)
	}
	if s.feedback == nil {
		s.feedback = haptics.Noop{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.logger = s.logger.With(slog.String("session_id", s.id))
	return s, nil
}

// ID returns the session identifier stamped into logs and snapshots.
func (s *Session) ID() string {
	return s.id
}

// Phase returns the current matcher phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Pending returns the in-flight bib tag, if any.
func (s *Session) Pending() (string, bool) {
	if s.phase != PhaseAwaitingFinish {
		return "", false
	}
	return s.pending, true
}

// Records returns the completed records in completion order.
func (s *Session) Records() []records.Record {
	return s.list.Items()
}

// Submit classifies one scan payload and advances the machine. Rejections
// leave the phase unchanged and surface as notices; persistence failures are
// logged and never block the scan flow.
func (s *Session) Submit(ctx context.Context, payload string) Outcome {
	payload = scan.Normalize(payload)

	switch s.phase {
	case PhaseAwaitingFinish:
		return s.submitFinish(ctx, payload)
	default:
		return s.submitParticipant(payload)
	}
}

func (s *Session) submitParticipant(payload string) Outcome {
	if !strings.HasPrefix(payload, s.prefix) {
		err := fmt.Errorf("%w: %q lacks bib prefix %q", ErrInvalidFormat, payload, s.prefix)
		s.logger.Warn("scan rejected", slog.String("payload", payload), slog.String("reason", "invalid participant"))
		s.notices.Publish(notices.Notice{
			Kind:    notices.KindInvalidFormat,
			Message: fmt.Sprintf("Not a bib tag (expected prefix %q)", s.prefix),
		})
		return Outcome{Kind: OutcomeRejectedParticipant, Payload: payload, Err: err}
	}

	if s.list.HasParticipant(payload) {
		err := fmt.Errorf("%w: participant %q already recorded", ErrDuplicateEntry, payload)
		s.logger.Warn("scan rejected", slog.String("payload", payload), slog.String("reason", "duplicate participant"))
		s.notices.Publish(notices.Notice{
			Kind:    notices.KindDuplicateEntry,
			Message: fmt.Sprintf("%s already has a recorded finish", payload),
		})
		return Outcome{Kind: OutcomeRejectedDuplicateParticipant, Payload: payload, Err: err}
	}

	s.pending = payload
	s.phase = PhaseAwaitingFinish
	s.logger.Info("participant accepted", slog.String("participant", payload))
	s.notices.Publish(notices.Notice{
		Kind:    notices.KindAccepted,
		Message: fmt.Sprintf("%s accepted, scan finish token", payload),
	})
	s.feedback.Pulse()
	return Outcome{Kind: OutcomeAccepted, Payload: payload}
}

func (s *Session) submitFinish(ctx context.Context, payload string) Outcome {
	position, err := strconv.Atoi(payload)
	if err != nil || position < 0 {
		rejection := fmt.Errorf("%w: %q is not a finish position", ErrInvalidFormat, payload)
		s.logger.Warn("scan rejected", slog.String("payload", payload), slog.String("reason", "invalid finish token"))
		s.notices.Publish(notices.Notice{
			Kind:    notices.KindInvalidFormat,
			Message: "Finish token must be a number",
		})
		return Outcome{Kind: OutcomeRejectedFinish, Payload: payload, Err: rejection}
	}

	if s.list.HasPosition(position) {
		// The device drops a rescanned position without telling the operator.
		// Matching behavior preserved; see the duplicate-position test.
		s.logger.Debug("duplicate position ignored", slog.Int("position", position))
		return Outcome{
			Kind:    OutcomeIgnoredDuplicateFinish,
			Payload: payload,
			Err:     fmt.Errorf("%w: position %d already taken", ErrDuplicateEntry, position),
		}
	}

	record := records.Record{
		Participant: s.pending,
		Position:    position,
		RecordedAt:  s.now().UTC(),
	}
	s.list.Append(record)
	s.pending = ""
	s.phase = PhaseIdle

	s.persist(ctx)
	s.logger.Info("pair recorded",
		slog.String("participant", record.Participant),
		slog.Int("position", record.Position),
	)
	s.notices.Publish(notices.Notice{
		Kind:    notices.KindRecorded,
		Message: fmt.Sprintf("Recorded %s at position %d", record.Participant, record.Position),
	})
	s.feedback.Pulse()
	return Outcome{Kind: OutcomeRecorded, Payload: payload, Record: &record}
}

// Reset clears every record and the pending bib, erases persisted state, and
// returns the machine to Idle.
func (s *Session) Reset(ctx context.Context) {
	s.list.Clear()
	s.pending = ""
	s.phase = PhaseIdle

	if err := s.store.Erase(ctx); err != nil {
		s.logger.Error("erase persisted records", slog.Any("error", err))
	}
	s.logger.Info("records cleared")
	s.notices.Publish(notices.Notice{Kind: notices.KindCleared, Message: "All records cleared"})
	s.feedback.Pulse()
}

// persist writes the full list; failures are logged and the in-memory list
// stays authoritative for the rest of the session.
func (s *Session) persist(ctx context.Context) {
	if err := s.store.Persist(ctx, s.list); err != nil {
		s.logger.Error("persist records", slog.Any("error", err))
	}
}
