package documents

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-welcome/pkg/interfaces"
)

var defaultCandidates = [...]string{
	"Index",  // wiki convention
	"Home",   // GitHub wiki
	"README", // GitHub project
}

// DefaultCandidates returns the default document names in priority order.
func DefaultCandidates() []string {
	return append([]string(nil), defaultCandidates[:]...)
}

// Resolver picks the default document for a root directory.
type Resolver struct {
	root   string
	fsys   fs.FS
	logger interfaces.Logger
}

var _ interfaces.DefaultDocumentResolver = (*Resolver)(nil)

// NewResolver returns a resolver for root.
func NewResolver(root string, opts ...Option) *Resolver {
	cfg := resolveOptions(root, opts)
	return &Resolver{
		root:   root,
		fsys:   cfg.fsys,
		logger: cfg.logger,
	}
}

// FindDefaultID returns the first candidate whose Markdown file exists.
func (r *Resolver) FindDefaultID(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	id, err := FindDefaultID(r.fsys, r.root)
	if err != nil {
		r.logger.WithContext(ctx).Warn("documents.default_not_found", "root_directory", r.root)
		return "", err
	}
	r.logger.WithContext(ctx).Debug("documents.default_resolved", "document_id", id)
	return id, nil
}

// FindDefaultID probes fsys for Index.md, Home.md and README.md in that order.
// root is only used to describe the failure.
func FindDefaultID(fsys fs.FS, root string) (string, error) {
	for _, candidate := range defaultCandidates {
		info, err := fs.Stat(fsys, FileName(candidate))
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", newDefaultNotFoundError(root, DefaultCandidates())
}
