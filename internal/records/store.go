package records

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// snapshotKey is the single fixed key the record list is persisted under.
const snapshotKey = "records"

// snapshotVersion guards the serialized format. Bump it when the snapshot
// shape changes; old snapshots are rejected rather than guessed at.
const snapshotVersion = 1

// KV is the persistence collaborator contract: a key-value store with
// whole-value reads and writes.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context) error
}

type snapshot struct {
	Version   int       `json:"version"`
	SessionID string    `json:"session_id"`
	SavedAt   time.Time `json:"saved_at"`
	Records   []Record  `json:"records"`
}

// Store reads and writes record-list snapshots through a KV collaborator.
type Store struct {
	kv        KV
	sessionID string
}

// NewStore wraps the KV collaborator. The session id is stamped into every
// snapshot envelope for traceability.
func NewStore(kv KV, sessionID string) *Store {
	return &Store{kv: kv, sessionID: sessionID}
}

// Load reads the persisted snapshot. A missing key yields an empty list.
func (s *Store) Load(ctx context.Context) (*List, error) {
	raw, ok, err := s.kv.Get(ctx, snapshotKey)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	if !ok {
		return NewList(), nil
	}

	var snap snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("decode snapshot: unsupported version %d", snap.Version)
	}
	return NewList(snap.Records...), nil
}

// Persist writes the full list under the fixed key.
func (s *Store) Persist(ctx context.Context, list *List) error {
	snap := snapshot{
		Version:   snapshotVersion,
		SessionID: s.sessionID,
		SavedAt:   time.Now().UTC(),
		Records:   list.Items(),
	}
	encoded, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.kv.Set(ctx, snapshotKey, string(encoded)); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Erase removes all persisted state.
func (s *Store) Erase(ctx context.Context) error {
	if err := s.kv.Clear(ctx); err != nil {
		return fmt.Errorf("clear store: %w", err)
	}
	return nil
}
