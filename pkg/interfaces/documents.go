package interfaces

import (
	"context"
	"time"
)

// Document is a Markdown file resolved from the root directory. Content holds
// the Markdown body with any front matter block removed.
type Document struct {
	ID           string
	Title        string
	Content      string
	FrontMatter  FrontMatter
	LastModified time.Time
}

// FrontMatter models the optional YAML block at the top of a Markdown file.
type FrontMatter struct {
	Title   string         `yaml:"title" json:"title"`
	Summary string         `yaml:"summary" json:"summary"`
	Tags    []string       `yaml:"tags" json:"tags"`
	Author  string         `yaml:"author" json:"author"`
	Custom  map[string]any `yaml:",inline" json:"custom"`
}

// RenderedPage is the per-request view model produced from a Document.
// Metadata fields are copied from the front matter and are empty when the
// document has none.
type RenderedPage struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Content      string         `json:"content"`
	Summary      string         `json:"summary,omitempty"`
	Author       string         `json:"author,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
	Meta         map[string]any `json:"meta,omitempty"`
	LastModified time.Time      `json:"lastModified"`
}

// DocumentStore resolves document identifiers to Markdown documents.
type DocumentStore interface {
	GetDocument(ctx context.Context, id string) (*Document, error)
}

// DefaultDocumentResolver picks the document served for the site root.
type DefaultDocumentResolver interface {
	FindDefaultID(ctx context.Context) (string, error)
}
