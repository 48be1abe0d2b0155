package documents

import (
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeDocumentNotFound        = "DOCUMENT_NOT_FOUND"
	textCodeDefaultDocumentNotFound = "DEFAULT_DOCUMENT_NOT_FOUND"
	textCodeDirectoryNotFound       = "DIRECTORY_NOT_FOUND"
	textCodeDocumentRead            = "DOCUMENT_READ_FAILED"
)

// NotFoundError reports a document whose Markdown file does not exist.
// FileName carries the requested identifier.
type NotFoundError struct {
	FileName string
	Path     string
	Err      error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("documents: could not find document '%s'", e.FileName)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// DefaultNotFoundError reports that none of the default candidates exist in
// the root directory.
type DefaultNotFoundError struct {
	RootDirectory string
	Candidates    []string
}

func (e *DefaultNotFoundError) Error() string {
	quoted := make([]string, 0, len(e.Candidates))
	for _, candidate := range e.Candidates {
		quoted = append(quoted, "'"+candidate+"'")
	}
	return fmt.Sprintf("cannot find default document in root directory '%s'. Considered %s.",
		e.RootDirectory, strings.Join(quoted, ", "))
}

// DirectoryNotFoundError reports a missing directory on the way to a
// document, including a missing root directory.
type DirectoryNotFoundError struct {
	Directory string
	Err       error
}

func (e *DirectoryNotFoundError) Error() string {
	return fmt.Sprintf("documents: could not find directory '%s'", e.Directory)
}

func (e *DirectoryNotFoundError) Unwrap() error {
	return e.Err
}

func newNotFoundError(id, path string, cause error) error {
	return goerrors.Wrap(&NotFoundError{FileName: id, Path: path, Err: cause}, goerrors.CategoryNotFound, "document not found").
		WithTextCode(textCodeDocumentNotFound).
		WithMetadata(map[string]any{"file_name": id})
}

func newDefaultNotFoundError(root string, candidates []string) error {
	return goerrors.Wrap(&DefaultNotFoundError{RootDirectory: root, Candidates: candidates}, goerrors.CategoryInternal, "default document not found").
		WithTextCode(textCodeDefaultDocumentNotFound).
		WithMetadata(map[string]any{"root_directory": root})
}

func newDirectoryNotFoundError(dir string, cause error) error {
	return goerrors.Wrap(&DirectoryNotFoundError{Directory: dir, Err: cause}, goerrors.CategoryInternal, "directory not found").
		WithTextCode(textCodeDirectoryNotFound)
}

func newReadError(path string, cause error) error {
	return goerrors.Wrap(fmt.Errorf("documents: read %s: %w", path, cause), goerrors.CategoryInternal, "document read failed").
		WithTextCode(textCodeDocumentRead)
}
