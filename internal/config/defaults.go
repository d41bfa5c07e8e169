package config

const (
	defaultStateDir        = "~/.local/share/texbake"
	defaultLogDir          = "~/.local/share/texbake/logs"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultMinFreeSpaceMiB = 256
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Processing: Processing{
			Workers:         0,
			DeleteArchives:  false,
			MinFreeSpaceMiB: defaultMinFreeSpaceMiB,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
