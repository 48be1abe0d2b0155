package http

import (
	"net/http"

	"github.com/goliatone/go-welcome/internal/diagnostics"
	"github.com/goliatone/go-welcome/internal/logging"
	"github.com/goliatone/go-welcome/pkg/interfaces"
)

// Server registers the wiki routes.
type Server struct {
	store     interfaces.DocumentStore
	resolver  interfaces.DefaultDocumentResolver
	renderer  interfaces.MarkdownRenderer
	views     interfaces.ViewRenderer
	about     *diagnostics.Collector
	logger    interfaces.Logger
	presenter *ErrorPresenter
}

// ServerOption mutates the Server configuration.
type ServerOption func(*Server)

// NewServer constructs a Server. Routes whose dependencies were not supplied
// answer 503.
func NewServer(opts ...ServerOption) *Server {
	s := &Server{logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.presenter = NewErrorPresenter(s.views, s.logger)
	return s
}

// WithDocumentStore wires the store used by document routes.
func WithDocumentStore(store interfaces.DocumentStore) ServerOption {
	return func(s *Server) {
		s.store = store
	}
}

// WithDefaultResolver wires the resolver used by the root route.
func WithDefaultResolver(resolver interfaces.DefaultDocumentResolver) ServerOption {
	return func(s *Server) {
		s.resolver = resolver
	}
}

// WithMarkdownRenderer wires the Markdown renderer.
func WithMarkdownRenderer(renderer interfaces.MarkdownRenderer) ServerOption {
	return func(s *Server) {
		s.renderer = renderer
	}
}

// WithViews wires the HTML view renderer.
func WithViews(views interfaces.ViewRenderer) ServerOption {
	return func(s *Server) {
		s.views = views
	}
}

// WithAbout wires the diagnostics collector behind /_About.
func WithAbout(about *diagnostics.Collector) ServerOption {
	return func(s *Server) {
		s.about = about
	}
}

// WithLogger sets the HTTP logger.
func WithLogger(logger interfaces.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// RegisterRoutes mounts the wiki routes on mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	if mux == nil {
		return
	}
	mux.HandleFunc("GET /{$}", s.handle(s.handleDefaultDocument))
	mux.HandleFunc("GET /_About", s.handle(s.handleAbout))
	mux.HandleFunc("GET /{id...}", s.handle(s.handleDocument))
}

// Handler returns a mux with the wiki routes wrapped in panic recovery and
// request logging. Recovery runs inside the logging layer so a recovered
// request still gets its http.request entry and request id.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return withRequestLogging(withRecovery(mux, s.presenter), s.logger)
}

type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (s *Server) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			s.presenter.Present(w, r, err)
		}
	}
}
