package interfaces

import "context"

// MarkdownParser defines how raw Markdown bytes are converted into HTML.
// Implementations should be reusable across requests without extra locking.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's configured options.
	Parse(markdown []byte) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// MarkdownRenderer turns Markdown source into the HTML served for a page,
// including post-processing such as wiki link expansion.
type MarkdownRenderer interface {
	Render(ctx context.Context, markdown []byte) ([]byte, error)
	RenderDocument(ctx context.Context, doc *Document) (*RenderedPage, error)
}
