package testsupport

import (
	"testing"

	"finishline/internal/config"
	"finishline/internal/records"
)

// MustOpenKV opens the SQLite KV under the config's data directory and closes
// it when the test finishes.
func MustOpenKV(t testing.TB, cfg *config.Config) *records.SQLiteKV {
	t.Helper()

	kv, err := records.OpenSQLite(cfg.Paths.DataDir)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	t.Cleanup(func() {
		if err := kv.Close(); err != nil {
			t.Errorf("close kv: %v", err)
		}
	})
	return kv
}

// MustOpenStore wraps MustOpenKV in a record store with a fixed test session
// id.
func MustOpenStore(t testing.TB, cfg *config.Config) *records.Store {
	t.Helper()
	return records.NewStore(MustOpenKV(t, cfg), "test-session")
}
