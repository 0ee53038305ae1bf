package player

// Logger interface for the player package to avoid circular dependencies
type Logger interface {
	Printf(format string, v ...interface{})
	Debugf(format string, v ...interface{})
	Fatalf(format string, v ...interface{})
}
