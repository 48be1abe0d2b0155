package documents

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-welcome/internal/markdown"
	"github.com/goliatone/go-welcome/pkg/interfaces"
)

// Extension is appended to a document id to form its file name.
const Extension = ".md"

// FileStore reads documents from {root}/{id}.md. Every call hits the
// filesystem; nothing is cached.
type FileStore struct {
	root   string
	fsys   fs.FS
	logger interfaces.Logger
}

var _ interfaces.DocumentStore = (*FileStore)(nil)

// NewFileStore returns a store rooted at root.
func NewFileStore(root string, opts ...Option) *FileStore {
	cfg := resolveOptions(root, opts)
	return &FileStore{
		root:   root,
		fsys:   cfg.fsys,
		logger: cfg.logger,
	}
}

// Root returns the directory the store reads from.
func (s *FileStore) Root() string {
	return s.root
}

// GetDocument loads the document named id. A missing file yields a
// *NotFoundError carrying id; a missing directory on the way yields a
// *DirectoryNotFoundError. Ids that do not form a valid path below the root
// are reported as not found.
func (s *FileStore) GetDocument(ctx context.Context, id string) (*interfaces.Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	logger := s.logger.WithContext(ctx)
	name := FileName(id)
	if !fs.ValidPath(name) {
		logger.Warn("documents.invalid_path", "document_id", id)
		return nil, newNotFoundError(id, name, fs.ErrInvalid)
	}

	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, newReadError(name, err)
		}
		if dir := path.Dir(name); !s.dirExists(dir) {
			return nil, newDirectoryNotFoundError(filepath.Join(s.root, filepath.FromSlash(dir)), err)
		}
		logger.Debug("documents.not_found", "document_id", id)
		return nil, newNotFoundError(id, name, err)
	}

	info, err := fs.Stat(s.fsys, name)
	if err != nil {
		return nil, newReadError(name, err)
	}

	fm, body := markdown.ParseFrontMatter(data)

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = id
	}

	logger.Debug("documents.loaded", "document_id", id, "bytes", len(data))
	return &interfaces.Document{
		ID:           id,
		Title:        title,
		Content:      string(body),
		FrontMatter:  fm,
		LastModified: info.ModTime(),
	}, nil
}

func (s *FileStore) dirExists(dir string) bool {
	info, err := fs.Stat(s.fsys, dir)
	return err == nil && info.IsDir()
}

// FileName maps a document id to its file name relative to the root.
func FileName(id string) string {
	return id + Extension
}
