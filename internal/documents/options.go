package documents

import (
	"io/fs"
	"os"

	"github.com/goliatone/go-welcome/internal/logging"
	"github.com/goliatone/go-welcome/pkg/interfaces"
)

// Option customises a FileStore or Resolver.
type Option func(*options)

type options struct {
	fsys   fs.FS
	logger interfaces.Logger
}

// WithFS replaces the filesystem rooted at the root directory. Tests use it
// to serve fixtures from memory.
func WithFS(fsys fs.FS) Option {
	return func(o *options) {
		if fsys != nil {
			o.fsys = fsys
		}
	}
}

// WithLogger sets the logger used for lookups.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func resolveOptions(root string, opts []Option) options {
	cfg := options{logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.fsys == nil {
		cfg.fsys = os.DirFS(root)
	}
	return cfg
}
