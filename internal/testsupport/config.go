// Package testsupport provides shared builders for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"finishline/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	return &cfg
}

// WithBibPrefix overrides the bib prefix on the test config.
func WithBibPrefix(prefix string) ConfigOption {
	return func(c *config.Config) {
		c.Scanning.BibPrefix = prefix
	}
}
