package welcome

import (
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/goliatone/go-welcome/internal/diagnostics"
	"github.com/goliatone/go-welcome/internal/documents"
	welcomehttp "github.com/goliatone/go-welcome/internal/http"
	"github.com/goliatone/go-welcome/internal/logging"
	"github.com/goliatone/go-welcome/internal/logging/console"
	"github.com/goliatone/go-welcome/internal/logging/gologger"
	"github.com/goliatone/go-welcome/internal/markdown"
	"github.com/goliatone/go-welcome/internal/views"
	"github.com/goliatone/go-welcome/pkg/interfaces"
)

// DocumentStore exports the document store contract.
type DocumentStore = interfaces.DocumentStore

// DefaultDocumentResolver exports the default document resolver contract.
type DefaultDocumentResolver = interfaces.DefaultDocumentResolver

// MarkdownRenderer exports the Markdown renderer contract.
type MarkdownRenderer = interfaces.MarkdownRenderer

// LoggerProvider exports the logger provider contract.
type LoggerProvider = interfaces.LoggerProvider

// Module is the wiki runtime façade. It is built once from a validated
// Config and is safe for concurrent use.
type Module struct {
	config   Config
	logger   interfaces.Logger
	store    *documents.FileStore
	resolver *documents.Resolver
	renderer *markdown.Renderer
	server   *welcomehttp.Server
}

// Option customises module construction.
type Option func(*moduleOptions)

type moduleOptions struct {
	loggerProvider interfaces.LoggerProvider
	templates      fs.FS
}

// WithLoggerProvider replaces the provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *moduleOptions) {
		if provider != nil {
			o.loggerProvider = provider
		}
	}
}

// WithTemplates replaces the embedded page templates.
func WithTemplates(fsys fs.FS) Option {
	return func(o *moduleOptions) {
		if fsys != nil {
			o.templates = fsys
		}
	}
}

// New validates cfg and wires the module. Configuration failures are
// returned before anything is built.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var options moduleOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	provider := options.loggerProvider
	if provider == nil {
		built, err := newLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		provider = built
	}

	viewRenderer, err := views.New(options.templates)
	if err != nil {
		return nil, err
	}

	docLogger := logging.DocumentsLogger(provider)
	parseOptions := cfg.Markdown.ParseOptions()

	m := &Module{
		config:   cfg,
		logger:   logging.ModuleLogger(provider, ""),
		store:    documents.NewFileStore(cfg.RootDirectory, documents.WithLogger(docLogger)),
		resolver: documents.NewResolver(cfg.RootDirectory, documents.WithLogger(docLogger)),
		renderer: markdown.NewRenderer(
			markdown.NewGoldmarkParser(parseOptions),
			parseOptions,
			markdown.WithLogger(logging.MarkdownLogger(provider)),
		),
	}
	m.server = welcomehttp.NewServer(
		welcomehttp.WithDocumentStore(m.store),
		welcomehttp.WithDefaultResolver(m.resolver),
		welcomehttp.WithMarkdownRenderer(m.renderer),
		welcomehttp.WithViews(viewRenderer),
		welcomehttp.WithAbout(diagnostics.NewCollector(cfg.RootDirectory)),
		welcomehttp.WithLogger(logging.HTTPLogger(provider)),
	)

	m.logger.Info("welcome.module_ready", "root_directory", cfg.RootDirectory)
	return m, nil
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	return m.config
}

// Handler returns the HTTP handler serving the wiki.
func (m *Module) Handler() http.Handler {
	return m.server.Handler()
}

// RegisterRoutes mounts the wiki routes on an existing mux without the
// request logging middleware.
func (m *Module) RegisterRoutes(mux *http.ServeMux) {
	m.server.RegisterRoutes(mux)
}

// Store exposes the document store.
func (m *Module) Store() DocumentStore {
	return m.store
}

// Resolver exposes the default document resolver.
func (m *Module) Resolver() DefaultDocumentResolver {
	return m.resolver
}

// Renderer exposes the Markdown renderer.
func (m *Module) Renderer() MarkdownRenderer {
	return m.renderer
}

// Logger returns the root module logger.
func (m *Module) Logger() interfaces.Logger {
	return m.logger
}

func newLoggerProvider(cfg LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return nil, err
		}
		return provider, nil
	case "", "console":
		level, ok := console.ParseLevel(cfg.Level)
		if !ok {
			return nil, fmt.Errorf("welcome: logging level %q: %w", cfg.Level, ErrLoggingLevelInvalid)
		}
		return console.NewProvider(console.Options{MinLevel: &level, Color: cfg.Color}), nil
	default:
		return nil, fmt.Errorf("welcome: logging provider %q: %w", cfg.Provider, ErrLoggingProviderUnknown)
	}
}
