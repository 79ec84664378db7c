package fingerprint

// Logger is the logging interface the engine depends on. It is satisfied
// by *pkg/logger.Logger, but callers may plug in anything that implements
// it — the engine package never imports pkg/logger directly.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}
func (nopLogger) Debugf(string, ...any) {}
