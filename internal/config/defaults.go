package config

const (
	defaultStateDir      = "~/.local/state/showsort"
	defaultLogFormat     = "console"
	defaultLogLevel      = "warn"
	defaultLogMaxSizeMB  = 10
	defaultRetentionDays = 30
)

// DefaultVideoExtensions is the allow-list used when video_extensions is unset.
var DefaultVideoExtensions = []string{
	".avi", ".mpg", ".mpeg", ".mkv", ".mp4", ".m4v", ".mov", ".wmv", ".xvid", ".ts",
}

// Default returns a Config populated with repository defaults. Directory roles
// have no defaults; they must be configured.
func Default() Config {
	exts := make([]string, len(DefaultVideoExtensions))
	copy(exts, DefaultVideoExtensions)
	return Config{
		StateDir:        defaultStateDir,
		VideoExtensions: exts,
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			File:          true,
			MaxSizeMB:     defaultLogMaxSizeMB,
			RetentionDays: defaultRetentionDays,
		},
	}
}
