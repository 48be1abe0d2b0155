// Package views renders the HTML pages served by the wiki. Each page is a
// template file that fills the "title" and "body" blocks of a shared layout.
package views

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/goliatone/go-welcome/pkg/interfaces"
)

// View names understood by Renderer.
const (
	Index    = "index"
	About    = "about"
	NotFound = "errors/404"
)

const layoutFile = "layout.html"

// ErrViewNotFound is returned for view names without a template.
var ErrViewNotFound = errors.New("views: view not found")

//go:embed templates
var embedded embed.FS

// Renderer executes parsed page templates. Templates are parsed once in New
// and are safe for concurrent use afterwards.
type Renderer struct {
	pages map[string]*template.Template
}

var _ interfaces.ViewRenderer = (*Renderer)(nil)

// New parses the layout and every page in fsys. A nil fsys uses the
// templates embedded in the binary. fsys must contain layout.html plus one
// <view>.html file per view name.
func New(fsys fs.FS) (*Renderer, error) {
	if fsys == nil {
		sub, err := fs.Sub(embedded, "templates")
		if err != nil {
			return nil, fmt.Errorf("views: embedded templates: %w", err)
		}
		fsys = sub
	}

	base, err := template.New("layout").Funcs(template.FuncMap{
		"safeHTML": func(value string) template.HTML { return template.HTML(value) },
	}).ParseFS(fsys, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("views: parse layout: %w", err)
	}

	pages := make(map[string]*template.Template, 3)
	for _, name := range []string{Index, About, NotFound} {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("views: clone layout for %s: %w", name, err)
		}
		page, err := clone.ParseFS(fsys, name+".html")
		if err != nil {
			return nil, fmt.Errorf("views: parse %s: %w", name, err)
		}
		pages[name] = page
	}

	return &Renderer{pages: pages}, nil
}

// Render executes view name with model into out. Output is buffered so a
// failing template writes nothing.
func (r *Renderer) Render(out io.Writer, name string, model any) error {
	page, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrViewNotFound, name)
	}
	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, "layout", model); err != nil {
		return fmt.Errorf("views: render %s: %w", name, err)
	}
	_, err := buf.WriteTo(out)
	return err
}
