package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-deck/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "deck.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger = WithFields(logger, map[string]any{"foo": "bar"})
	logger.Debug("noop")
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	logger := TokensLogger(provider)

	if len(provider.requested) != 1 || provider.requested[0] != tokensModule {
		t.Fatalf("expected module %s, got %v", tokensModule, provider.requested)
	}
	if len(rec.fields) != 1 {
		t.Fatalf("expected module fields to be applied once, got %d", len(rec.fields))
	}
	if got := rec.fields[0]["module"]; got != tokensModule {
		t.Fatalf("expected module field %s, got %v", tokensModule, got)
	}

	logger.Info("with provider")
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	ModuleLogger(provider, "")

	if len(provider.requested) != 1 || provider.requested[0] != rootModule {
		t.Fatalf("expected root module, got %v", provider.requested)
	}
}

func TestWithGenerateContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}

	WithGenerateContext(rec, " deck-1 ", "", "pdf")

	if len(rec.fields) != 1 {
		t.Fatalf("expected a single WithFields call, got %d", len(rec.fields))
	}
	fields := rec.fields[0]
	if fields[fieldDeckID] != "deck-1" {
		t.Fatalf("expected trimmed deck id, got %v", fields[fieldDeckID])
	}
	if _, ok := fields[fieldFileKey]; ok {
		t.Fatalf("expected empty file key to be skipped, got %v", fields)
	}
	if fields[fieldFormat] != "pdf" {
		t.Fatalf("expected format field, got %v", fields[fieldFormat])
	}
}

func TestContextFieldsMerge(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"request_id": "a", "path": "/"})
	ctx = ContextWithFields(ctx, map[string]any{"request_id": "b"})

	fields := ContextFields(ctx)
	if fields["request_id"] != "b" || fields["path"] != "/" {
		t.Fatalf("unexpected merged fields: %v", fields)
	}

	fields["path"] = "/mutated"
	if ContextFields(ctx)["path"] != "/" {
		t.Fatal("expected ContextFields to return a copy")
	}
}
