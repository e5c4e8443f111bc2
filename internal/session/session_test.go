package session_test

import (
	"context"
	"errors"
	"testing"

	"finishline/internal/notices"
	"finishline/internal/records"
	"finishline/internal/session"
	"finishline/internal/testsupport"
)

type capturePublisher struct {
	published []notices.Notice
}

func (c *capturePublisher) Publish(n notices.Notice) {
	c.published = append(c.published, n)
}

func (c *capturePublisher) last() (notices.Notice, bool) {
	if len(c.published) == 0 {
		return notices.Notice{}, false
	}
	return c.published[len(c.published)-1], true
}

type countingFeedback struct {
	pulses int
}

func (c *countingFeedback) Pulse() {
	c.pulses++
}

type sessionFixture struct {
	session  *session.Session
	notices  *capturePublisher
	feedback *countingFeedback
	store    *records.Store
}

func newFixture(t *testing.T) *sessionFixture {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	publisher := &capturePublisher{}
	feedback := &countingFeedback{}

	sess, err := session.New(context.Background(), session.Options{
		Prefix:  cfg.Scanning.BibPrefix,
		Store:   store,
		Notices: publisher,
		Haptics: feedback,
	})
	if err != nil {
		t.Fatalf("session.New failed: %v", err)
	}
	return &sessionFixture{session: sess, notices: publisher, feedback: feedback, store: store}
}

func TestSubmitRejectsPayloadWithoutPrefix(t *testing.T) {
	tests := []string{"18", "B10k042", "g10k042", "", "G10"}
	for _, payload := range tests {
		t.Run(payload, func(t *testing.T) {
			fx := newFixture(t)

			outcome := fx.session.Submit(context.Background(), payload)

			if outcome.Kind != session.OutcomeRejectedParticipant {
				t.Fatalf("expected rejection, got %v", outcome.Kind)
			}
			if !errors.Is(outcome.Err, session.ErrInvalidFormat) {
				t.Fatalf("expected ErrInvalidFormat, got %v", outcome.Err)
			}
			if fx.session.Phase() != session.PhaseIdle {
				t.Fatalf("expected Idle, got %v", fx.session.Phase())
			}
			last, ok := fx.notices.last()
			if !ok || last.Kind != notices.KindInvalidFormat {
				t.Fatalf("expected invalid-format notice, got %+v", last)
			}
			if fx.feedback.pulses != 0 {
				t.Fatal("rejections must not pulse haptics")
			}
		})
	}
}

func TestSubmitAcceptsFreshParticipant(t *testing.T) {
	fx := newFixture(t)

	outcome := fx.session.Submit(context.Background(), "G10k042")

	if outcome.Kind != session.OutcomeAccepted {
		t.Fatalf("expected acceptance, got %v", outcome.Kind)
	}
	if fx.session.Phase() != session.PhaseAwaitingFinish {
		t.Fatalf("expected AwaitingFinish, got %v", fx.session.Phase())
	}
	pending, ok := fx.session.Pending()
	if !ok || pending != "G10k042" {
		t.Fatalf("expected pending G10k042, got %q (ok=%v)", pending, ok)
	}
	last, _ := fx.notices.last()
	if last.Kind != notices.KindAccepted {
		t.Fatalf("expected accepted notice, got %+v", last)
	}
	if fx.feedback.pulses != 1 {
		t.Fatalf("expected one pulse, got %d", fx.feedback.pulses)
	}
}

func TestSubmitRejectsDuplicateParticipant(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.session.Submit(ctx, "G10k042")
	fx.session.Submit(ctx, "17")

	outcome := fx.session.Submit(ctx, "G10k042")

	if outcome.Kind != session.OutcomeRejectedDuplicateParticipant {
		t.Fatalf("expected duplicate rejection, got %v", outcome.Kind)
	}
	if !errors.Is(outcome.Err, session.ErrDuplicateEntry) {
		t.Fatalf("expected ErrDuplicateEntry, got %v", outcome.Err)
	}
	if fx.session.Phase() != session.PhaseIdle {
		t.Fatalf("expected Idle, got %v", fx.session.Phase())
	}
	last, _ := fx.notices.last()
	if last.Kind != notices.KindDuplicateEntry {
		t.Fatalf("expected duplicate notice, got %+v", last)
	}
}

func TestSubmitRejectsNonNumericFinishToken(t *testing.T) {
	tests := []string{"abc", "17a", "1.5", "", "-3"}
	for _, payload := range tests {
		t.Run(payload, func(t *testing.T) {
			fx := newFixture(t)
			ctx := context.Background()

			fx.session.Submit(ctx, "G10k042")
			outcome := fx.session.Submit(ctx, payload)

			if outcome.Kind != session.OutcomeRejectedFinish {
				t.Fatalf("expected finish rejection, got %v", outcome.Kind)
			}
			if !errors.Is(outcome.Err, session.ErrInvalidFormat) {
				t.Fatalf("expected ErrInvalidFormat, got %v", outcome.Err)
			}
			if fx.session.Phase() != session.PhaseAwaitingFinish {
				t.Fatalf("expected machine to stay in AwaitingFinish, got %v", fx.session.Phase())
			}
			if pending, ok := fx.session.Pending(); !ok || pending != "G10k042" {
				t.Fatalf("expected pending bib to survive, got %q (ok=%v)", pending, ok)
			}
		})
	}
}

func TestSubmitRecordsPair(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.session.Submit(ctx, "G10k042")
	outcome := fx.session.Submit(ctx, "17")

	if outcome.Kind != session.OutcomeRecorded {
		t.Fatalf("expected record, got %v", outcome.Kind)
	}
	if outcome.Record == nil || outcome.Record.Participant != "G10k042" || outcome.Record.Position != 17 {
		t.Fatalf("unexpected record: %+v", outcome.Record)
	}
	if fx.session.Phase() != session.PhaseIdle {
		t.Fatalf("expected Idle after record, got %v", fx.session.Phase())
	}
	if _, ok := fx.session.Pending(); ok {
		t.Fatal("expected pending bib cleared")
	}
	recs := fx.session.Records()
	if len(recs) != 1 || recs[0].Participant != "G10k042" || recs[0].Position != 17 {
		t.Fatalf("unexpected record list: %+v", recs)
	}
	if fx.feedback.pulses != 2 {
		t.Fatalf("expected pulses on accept and record, got %d", fx.feedback.pulses)
	}

	// The snapshot is written on every mutation; a fresh load sees the pair.
	loaded, err := fx.store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Len() != 1 {
		t.Fatalf("expected persisted record, got %d", loaded.Len())
	}
}

// A rescanned finish position is dropped without any operator notice. The
// asymmetry with the duplicate-participant case is intentional fidelity to
// the observed device behavior.
func TestSubmitSilentlyIgnoresDuplicatePosition(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.session.Submit(ctx, "G10k042")
	fx.session.Submit(ctx, "17")
	fx.session.Submit(ctx, "G10k007")

	noticesBefore := len(fx.notices.published)
	outcome := fx.session.Submit(ctx, "17")

	if outcome.Kind != session.OutcomeIgnoredDuplicateFinish {
		t.Fatalf("expected silent ignore, got %v", outcome.Kind)
	}
	if len(fx.notices.published) != noticesBefore {
		t.Fatal("duplicate position must not publish a notice")
	}
	if fx.session.Phase() != session.PhaseAwaitingFinish {
		t.Fatalf("expected AwaitingFinish to persist, got %v", fx.session.Phase())
	}
	if len(fx.session.Records()) != 1 {
		t.Fatalf("expected record list unchanged, got %d records", len(fx.session.Records()))
	}
}

func TestSubmitSequenceFromSpecExample(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	if out := fx.session.Submit(ctx, "G10k042"); out.Kind != session.OutcomeAccepted {
		t.Fatalf("step 1: expected acceptance, got %v", out.Kind)
	}
	if out := fx.session.Submit(ctx, "17"); out.Kind != session.OutcomeRecorded {
		t.Fatalf("step 2: expected record, got %v", out.Kind)
	}
	if out := fx.session.Submit(ctx, "G10k042"); out.Kind != session.OutcomeRejectedDuplicateParticipant {
		t.Fatalf("step 3: expected duplicate rejection, got %v", out.Kind)
	}
	// "18" arrives while Idle, so it is judged as a participant tag.
	if out := fx.session.Submit(ctx, "18"); out.Kind != session.OutcomeRejectedParticipant {
		t.Fatalf("step 4: expected invalid-participant rejection, got %v", out.Kind)
	}
}

func TestSubmitNormalizesScannerOutput(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	if out := fx.session.Submit(ctx, " Ｇ１０ｋ０４２ "); out.Kind != session.OutcomeAccepted {
		t.Fatalf("expected fullwidth bib accepted, got %v", out.Kind)
	}
	if out := fx.session.Submit(ctx, "１７"); out.Kind != session.OutcomeRecorded {
		t.Fatalf("expected fullwidth finish recorded, got %v", out.Kind)
	}
	recs := fx.session.Records()
	if len(recs) != 1 || recs[0].Participant != "G10k042" || recs[0].Position != 17 {
		t.Fatalf("unexpected record: %+v", recs)
	}
}

func TestResetClearsEverything(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	fx.session.Submit(ctx, "G10k042")
	fx.session.Submit(ctx, "17")
	fx.session.Submit(ctx, "G10k007") // leave a pending bib

	fx.session.Reset(ctx)

	if fx.session.Phase() != session.PhaseIdle {
		t.Fatalf("expected Idle after reset, got %v", fx.session.Phase())
	}
	if _, ok := fx.session.Pending(); ok {
		t.Fatal("expected pending bib dropped by reset")
	}
	if len(fx.session.Records()) != 0 {
		t.Fatal("expected record list emptied")
	}
	last, _ := fx.notices.last()
	if last.Kind != notices.KindCleared {
		t.Fatalf("expected cleared notice, got %+v", last)
	}

	loaded, err := fx.store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Len() != 0 {
		t.Fatalf("expected persisted state erased, got %d records", loaded.Len())
	}
}

func TestSessionLoadsPersistedRecordsAtStartup(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	first, err := session.New(ctx, session.Options{Prefix: "G10k", Store: store})
	if err != nil {
		t.Fatalf("session.New failed: %v", err)
	}
	first.Submit(ctx, "G10k042")
	first.Submit(ctx, "17")

	second, err := session.New(ctx, session.Options{Prefix: "G10k", Store: store})
	if err != nil {
		t.Fatalf("second session.New failed: %v", err)
	}
	recs := second.Records()
	if len(recs) != 1 || recs[0].Participant != "G10k042" {
		t.Fatalf("expected reloaded records, got %+v", recs)
	}

	// The reloaded list still backs duplicate checks.
	if out := second.Submit(ctx, "G10k042"); out.Kind != session.OutcomeRejectedDuplicateParticipant {
		t.Fatalf("expected duplicate rejection against reloaded list, got %v", out.Kind)
	}
}

type failingKV struct {
	failSet bool
}

func (f *failingKV) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, nil
}

func (f *failingKV) Set(ctx context.Context, key, value string) error {
	if f.failSet {
		return errors.New("disk full")
	}
	return nil
}

func (f *failingKV) Clear(ctx context.Context) error {
	return nil
}

func TestPersistFailureDoesNotAlterMatcherState(t *testing.T) {
	ctx := context.Background()
	store := records.NewStore(&failingKV{failSet: true}, "test-session")

	sess, err := session.New(ctx, session.Options{Prefix: "G10k", Store: store})
	if err != nil {
		t.Fatalf("session.New failed: %v", err)
	}

	sess.Submit(ctx, "G10k042")
	outcome := sess.Submit(ctx, "17")

	if outcome.Kind != session.OutcomeRecorded {
		t.Fatalf("expected record despite persist failure, got %v", outcome.Kind)
	}
	if len(sess.Records()) != 1 {
		t.Fatal("expected in-memory list to stay authoritative")
	}
	if sess.Phase() != session.PhaseIdle {
		t.Fatalf("expected Idle, got %v", sess.Phase())
	}
}

func TestNewRequiresStoreAndPrefix(t *testing.T) {
	ctx := context.Background()
	if _, err := session.New(ctx, session.Options{Prefix: "G10k"}); err == nil {
		t.Fatal("expected error without store")
	}
	store := records.NewStore(&failingKV{}, "test-session")
	if _, err := session.New(ctx, session.Options{Store: store}); err == nil {
		t.Fatal("expected error without prefix")
	}
}
