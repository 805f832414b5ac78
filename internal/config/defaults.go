package config

const (
	defaultNavidromeDB = "~/.local/share/navidrome/navidrome.db"
	defaultLogDir      = "~/.local/share/crossfade/logs"
	defaultMode        = "add"
	defaultSamplePaths = 5
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			NavidromeDB: defaultNavidromeDB,
			LogDir:      defaultLogDir,
		},
		Migration: Migration{
			Mode:            defaultMode,
			BackupDatabase:  true,
			ImportDateAdded: true,
			ImportPlaylists: false,
			SamplePaths:     defaultSamplePaths,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
