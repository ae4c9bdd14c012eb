package config

const (
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	defaultLicense     = "MIT"
	defaultHistoryPath = "~/.local/share/pypeline/history.db"
)

// Default returns a configuration populated with built-in defaults.
func Default() Config {
	return Config{
		Projects: Projects{License: defaultLicense},
		History:  History{Enabled: true, Path: defaultHistoryPath},
		Logging:  Logging{Format: defaultLogFormat, Level: defaultLogLevel},
	}
}
