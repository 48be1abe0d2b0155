package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-welcome/pkg/interfaces"
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
	r.fields = append(r.fields, fields)
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
	logger := ModuleLogger(nil, "welcome.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = HTTPLogger(provider)

	if len(provider.requested) != 1 || provider.requested[0] != httpModule {
		t.Fatalf("expected module %s, got %v", httpModule, provider.requested)
	}
	if len(rec.fields) != 1 || rec.fields[0]["module"] != httpModule {
		t.Fatalf("expected module field %s, got %v", httpModule, rec.fields)
	}
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	provider := &stubProvider{logger: &recordingLogger{}}

	_ = ModuleLogger(provider, "")

	if len(provider.requested) != 1 || provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
}

func TestNamedModuleLoggers(t *testing.T) {
	cases := map[string]func(interfaces.LoggerProvider) interfaces.Logger{
		documentsModule: DocumentsLogger,
		markdownModule:  MarkdownLogger,
	}
	for module, factory := range cases {
		provider := &stubProvider{logger: &recordingLogger{}}
		_ = factory(provider)
		if len(provider.requested) == 0 || provider.requested[0] != module {
			t.Fatalf("expected %s module request, got %v", module, provider.requested)
		}
	}
}

func TestContextWithFieldsMerges(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"a": 1})
	ctx = ContextWithFields(ctx, map[string]any{"b": 2})

	fields := ContextFields(ctx)
	if fields["a"] != 1 || fields["b"] != 2 {
		t.Fatalf("expected merged fields, got %v", fields)
	}

	fields["a"] = 99
	if ContextFields(ctx)["a"] != 1 {
		t.Fatalf("expected ContextFields to return a copy")
	}
}

func TestWithRequestContext(t *testing.T) {
	ctx := WithRequestContext(context.Background(), " req-1 ", "")
	fields := ContextFields(ctx)
	if fields[fieldRequestID] != "req-1" {
		t.Fatalf("expected request id field, got %v", fields)
	}
	if _, ok := fields[fieldDocumentID]; ok {
		t.Fatalf("did not expect empty document id to be recorded")
	}

	ctx = WithRequestContext(ctx, "", "Home")
	fields = ContextFields(ctx)
	if fields[fieldRequestID] != "req-1" || fields[fieldDocumentID] != "Home" {
		t.Fatalf("expected both fields, got %v", fields)
	}
}
