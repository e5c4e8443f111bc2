package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateScanning(); err != nil {
		return err
	}
	if err := c.validateNotices(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateScanning() error {
	if c.Scanning.BibPrefix == "" {
		return errors.New("scanning.bib_prefix must be set")
	}
	return nil
}

func (c *Config) validateNotices() error {
	if c.Notices.DisplaySeconds <= 0 {
		return errors.New("notices.display_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
