package interfaces

import (
	"io"
)

// ViewRenderer executes a named view against a model.
type ViewRenderer interface {
	Render(out io.Writer, name string, model any) error
}
