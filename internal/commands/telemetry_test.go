package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-deck/pkg/interfaces"
)

type telemetryEntry struct {
	level  string
	msg    string
	args   map[string]any
	fields map[string]any
}

type telemetryLogger struct {
	fields  map[string]any
	entries *[]telemetryEntry
}

func newTelemetryLogger() *telemetryLogger {
	return &telemetryLogger{entries: &[]telemetryEntry{}}
}

func (l *telemetryLogger) record(level, msg string, args []any) {
	kv := map[string]any{}
	for i := 0; i+1 < len(args); i += 2 {
		if key, ok := args[i].(string); ok {
			kv[key] = args[i+1]
		}
	}
	*l.entries = append(*l.entries, telemetryEntry{level: level, msg: msg, args: kv, fields: l.fields})
}

func (l *telemetryLogger) Trace(msg string, args ...any) { l.record("trace", msg, args) }
func (l *telemetryLogger) Debug(msg string, args ...any) { l.record("debug", msg, args) }
func (l *telemetryLogger) Info(msg string, args ...any)  { l.record("info", msg, args) }
func (l *telemetryLogger) Warn(msg string, args ...any)  { l.record("warn", msg, args) }
func (l *telemetryLogger) Error(msg string, args ...any) { l.record("error", msg, args) }
func (l *telemetryLogger) Fatal(msg string, args ...any) { l.record("fatal", msg, args) }

func (l *telemetryLogger) WithContext(context.Context) interfaces.Logger { return l }

func (l *telemetryLogger) WithFields(fields map[string]any) interfaces.Logger {
	return &telemetryLogger{fields: fields, entries: l.entries}
}

func TestDefaultTelemetryLevels(t *testing.T) {
	cases := []struct {
		name   string
		info   TelemetryInfo
		level  string
		msg    string
		expect map[string]any
	}{
		{
			name:   "success",
			info:   TelemetryInfo{Status: TelemetryStatusSuccess, Operation: "deck.generate", Duration: 5 * time.Millisecond},
			level:  "info",
			msg:    "command.execute.success",
			expect: map[string]any{"operation": "deck.generate", "duration_ms": int64(5)},
		},
		{
			name:   "cancelled",
			info:   TelemetryInfo{Status: TelemetryStatusContextError, Error: wrapContextError(context.Canceled)},
			level:  "warn",
			msg:    "command.execute.context_error",
			expect: map[string]any{"cause": "canceled"},
		},
		{
			name:   "deadline",
			info:   TelemetryInfo{Status: TelemetryStatusContextError, Error: wrapContextError(context.DeadlineExceeded)},
			level:  "warn",
			msg:    "command.execute.context_error",
			expect: map[string]any{"cause": "deadline"},
		},
		{
			name:   "validation failure",
			info:   TelemetryInfo{Status: TelemetryStatusFailed, Error: wrapValidationError(errors.New("bad"))},
			level:  "error",
			msg:    "command.execute.failed",
			expect: map[string]any{"error_kind": "validation"},
		},
		{
			name:   "execute failure",
			info:   TelemetryInfo{Status: TelemetryStatusFailed, Error: wrapExecuteError(errors.New("boom"))},
			level:  "error",
			msg:    "command.execute.failed",
			expect: map[string]any{"error_kind": "execute"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logger := newTelemetryLogger()
			tc.info.Fields = map[string]any{"command": "deck.test.message"}
			DefaultTelemetry[testMessage](logger)(context.Background(), testMessage{}, tc.info)

			if len(*logger.entries) != 1 {
				t.Fatalf("expected one entry, got %d", len(*logger.entries))
			}
			entry := (*logger.entries)[0]
			if entry.level != tc.level || entry.msg != tc.msg {
				t.Fatalf("unexpected entry %s %q", entry.level, entry.msg)
			}
			if entry.fields["command"] != "deck.test.message" {
				t.Fatalf("expected message fields, got %#v", entry.fields)
			}
			for key, want := range tc.expect {
				if entry.args[key] != want {
					t.Fatalf("expected %s=%v, got %v", key, want, entry.args[key])
				}
			}
		})
	}
}

func TestDefaultTelemetryOmitsEmptyOperation(t *testing.T) {
	logger := newTelemetryLogger()
	DefaultTelemetry[testMessage](logger)(context.Background(), testMessage{}, TelemetryInfo{Status: TelemetryStatusSuccess})

	entry := (*logger.entries)[0]
	if _, ok := entry.args["operation"]; ok {
		t.Fatalf("expected no operation arg, got %#v", entry.args)
	}
}

type telemetryProvider struct {
	names  []string
	logger *telemetryLogger
}

func (p *telemetryProvider) GetLogger(name string) interfaces.Logger {
	p.names = append(p.names, name)
	return p.logger
}

func TestCommandLoggerNaming(t *testing.T) {
	cases := []struct {
		group string
		name  string
	}{
		{group: "deck", name: "deck.commands.deck"},
		{group: "  ", name: "deck.commands"},
	}

	for _, tc := range cases {
		provider := &telemetryProvider{logger: newTelemetryLogger()}
		CommandLogger(provider, tc.group).Info("ready")

		if len(provider.names) != 1 || provider.names[0] != tc.name {
			t.Fatalf("group %q: expected logger %q, got %v", tc.group, tc.name, provider.names)
		}
		entry := (*provider.logger.entries)[0]
		if entry.fields["component"] != "command" {
			t.Fatalf("expected component field, got %#v", entry.fields)
		}
	}
}
