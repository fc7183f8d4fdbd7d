package config

const (
	defaultStateDir            = "~/.local/share/recsweep"
	defaultLogDir              = "~/.local/share/recsweep/logs"
	defaultLogRetentionDays    = 30
	defaultHistoryRetention    = 90
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultIntervalSeconds     = 60
	defaultGracePeriodSeconds  = 600
	defaultStabilityThreshold  = 3
	defaultSimilarityThreshold = 0.95
	defaultRecordingExtension  = ".ts"
	defaultMoveTo              = "duplicate"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Sweep: Sweep{
			IntervalSeconds:     defaultIntervalSeconds,
			GracePeriodSeconds:  defaultGracePeriodSeconds,
			StabilityThreshold:  defaultStabilityThreshold,
			SimilarityThreshold: defaultSimilarityThreshold,
			RecordingExtension:  defaultRecordingExtension,
			DefaultMoveTo:       defaultMoveTo,
		},
		History: History{
			Enabled:       true,
			RetentionDays: defaultHistoryRetention,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
