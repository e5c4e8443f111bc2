package config

const (
	defaultDataDir              = "~/.local/share/finishline"
	defaultLogDir               = "~/.local/share/finishline/logs"
	defaultBibPrefix            = "G10k"
	defaultNoticeDisplaySeconds = 3
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultHapticsEnabled       = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Scanning: Scanning{
			BibPrefix: defaultBibPrefix,
		},
		Notices: Notices{
			DisplaySeconds: defaultNoticeDisplaySeconds,
		},
		Haptics: Haptics{
			Enabled: defaultHapticsEnabled,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
