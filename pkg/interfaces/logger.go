package interfaces

import "context"

// Logger defines the leveled logging contract used across the deck runtime.
// The method set matches github.com/goliatone/go-logger so hosts can hand a
// glog logger straight to the module.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider exposes named loggers. Module names are dotted
// (deck.slides, deck.tokens, ...) and providers may scope children by name.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is an optional extension for attaching persistent structured
// fields to a logger.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
