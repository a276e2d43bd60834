package cachestore

// Fields carries the structured context of a store log event, typically
// "op", "key", "err", "prefix" or "count".
type Fields map[string]any

// Logger receives the store's leveled events. Rejected values and
// uncacheable Wrap results go to Debug, Reset to Info, and failed round trips
// or undecodable entries to Warn. The log/zap, log/logrus and log/slog
// packages adapt common backends. A nil Options.Logger selects NopLogger.
type Logger interface {
	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)
}

// NopLogger discards every event.
type NopLogger struct{}

func (NopLogger) Debug(string, Fields) {}
func (NopLogger) Info(string, Fields)  {}
func (NopLogger) Warn(string, Fields)  {}
func (NopLogger) Error(string, Fields) {}
