package config

// this holds the resolved configuration values from CLI
var (
	ArchiveURL     string // base URL of the session archive API
	ArchiveTimeout string // timeout for archive API requests
	LogLevel       string // sets the log level (zap log level values)
	LogFormat      string // text vs json
	LogConfig      string // path to log config file
)
