package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-welcome/pkg/interfaces"
)

const (
	rootModule      = "welcome"
	httpModule      = "welcome.http"
	documentsModule = "welcome.documents"
	markdownModule  = "welcome.markdown"
)

const (
	fieldDocumentID = "document_id"
	fieldRequestID  = "request_id"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module name is attached
// as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// HTTPLogger returns the logger namespace reserved for the HTTP layer.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// DocumentsLogger returns the logger namespace reserved for document lookups.
func DocumentsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, documentsModule)
}

// MarkdownLogger returns the logger namespace reserved for rendering.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// WithRequestContext returns ctx annotated with the request id and, when
// present, the document id so every entry logged with it can be correlated.
func WithRequestContext(ctx context.Context, requestID, documentID string) context.Context {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(requestID); trimmed != "" {
		fields[fieldRequestID] = trimmed
	}
	if documentID != "" {
		fields[fieldDocumentID] = documentID
	}
	return ContextWithFields(ctx, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
