package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"finishline/internal/config"
	"finishline/internal/haptics"
	"finishline/internal/logging"
	"finishline/internal/notices"
	"finishline/internal/records"
	"finishline/internal/session"
)

// lockFile guards against two concurrent operator sessions on one device.
const lockFile = "session.lock"

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withStore opens the SQLite collaborator for a command and closes it after.
func (c *commandContext) withStore(fn func(cfg *config.Config, store *records.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	kv, err := records.OpenSQLite(cfg.Paths.DataDir)
	if err != nil {
		return err
	}
	defer kv.Close()

	return fn(cfg, records.NewStore(kv, "cli"))
}

// sessionDeps bundles the collaborators an interactive session needs.
type sessionDeps struct {
	session  *session.Session
	surface  *notices.Surface
	releaser func()
}

// openSession acquires the device lock, opens storage, and builds the
// matcher session with its notice and haptic collaborators.
func (c *commandContext) openSession(ctx context.Context, presenter notices.Publisher, feedback haptics.Feedback) (*sessionDeps, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	lock := flock.New(filepath.Join(cfg.Paths.DataDir, lockFile))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire session lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another scan session is already running (lock %s)", lock.Path())
	}

	kv, err := records.OpenSQLite(cfg.Paths.DataDir)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	surface := notices.NewSurface(displayWindow(cfg))
	publishers := notices.Tee{surface}
	if presenter != nil {
		publishers = append(publishers, presenter)
	}
	if feedback == nil {
		feedback = haptics.Noop{}
	}

	sessionID := uuid.NewString()
	store := records.NewStore(kv, sessionID)
	sess, err := session.New(ctx, session.Options{
		ID:      sessionID,
		Prefix:  cfg.Scanning.BibPrefix,
		Store:   store,
		Notices: publishers,
		Haptics: feedback,
		Logger:  logger,
	})
	if err != nil {
		_ = kv.Close()
		_ = lock.Unlock()
		return nil, err
	}

	releaser := func() {
		_ = kv.Close()
		_ = lock.Unlock()
	}
	return &sessionDeps{session: sess, surface: surface, releaser: releaser}, nil
}
