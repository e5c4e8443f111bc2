package main

import (
	"time"

	"finishline/internal/config"
	"finishline/internal/notices"
)

func displayWindow(cfg *config.Config) time.Duration {
	if cfg == nil || cfg.Notices.DisplaySeconds <= 0 {
		return notices.DefaultDisplayWindow
	}
	return time.Duration(cfg.Notices.DisplaySeconds) * time.Second
}
