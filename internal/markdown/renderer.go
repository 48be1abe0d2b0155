package markdown

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-welcome/internal/logging"
	"github.com/goliatone/go-welcome/pkg/interfaces"
)

// Renderer converts Markdown to page HTML: parser output followed by the wiki
// link rewrite. It holds no per-request state.
type Renderer struct {
	parser interfaces.MarkdownParser
	logger interfaces.Logger
}

// ErrDocumentNil is returned when RenderDocument receives no document.
var ErrDocumentNil = errors.New("markdown: document is nil")

var _ interfaces.MarkdownRenderer = (*Renderer)(nil)

// RendererOption customises a Renderer.
type RendererOption func(*Renderer)

// WithLogger attaches a logger used for debug traces.
func WithLogger(logger interfaces.Logger) RendererOption {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRenderer builds a Renderer. A nil parser falls back to a goldmark parser
// configured with opts.
func NewRenderer(parser interfaces.MarkdownParser, opts interfaces.ParseOptions, options ...RendererOption) *Renderer {
	if parser == nil {
		parser = NewGoldmarkParser(opts)
	}
	r := &Renderer{
		parser: parser,
		logger: logging.NoOp(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Render parses markdown into HTML and expands wiki links in the result.
func (r *Renderer) Render(ctx context.Context, markdown []byte) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	html, err := r.parser.Parse(markdown)
	if err != nil {
		return nil, err
	}
	out := RewriteWikiLinks(html)
	r.logger.WithContext(ctx).Debug("markdown.rendered", "source_bytes", len(markdown), "html_bytes", len(out))
	return out, nil
}

// RenderDocument renders doc into the page view model.
func (r *Renderer) RenderDocument(ctx context.Context, doc *interfaces.Document) (*interfaces.RenderedPage, error) {
	if doc == nil {
		return nil, ErrDocumentNil
	}
	html, err := r.Render(ctx, []byte(doc.Content))
	if err != nil {
		return nil, fmt.Errorf("markdown render document %s: %w", doc.ID, err)
	}
	fm := doc.FrontMatter
	page := &interfaces.RenderedPage{
		ID:           doc.ID,
		Title:        doc.Title,
		Content:      string(html),
		Summary:      fm.Summary,
		Author:       fm.Author,
		Tags:         append([]string(nil), fm.Tags...),
		LastModified: doc.LastModified,
	}
	if len(fm.Custom) > 0 {
		page.Meta = cloneMap(fm.Custom)
	}
	return page, nil
}
