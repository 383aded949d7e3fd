package types

type RunMode string

const (
	// ModeLocal applies pending migrations on start, then serves the API
	ModeLocal RunMode = "local"
	// ModeAPI serves the API against an already migrated database
	ModeAPI RunMode = "api"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)
