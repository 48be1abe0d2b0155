package http

import (
	"errors"
	"net/http"

	"github.com/goliatone/go-welcome/internal/documents"
	"github.com/goliatone/go-welcome/internal/logging"
	"github.com/goliatone/go-welcome/internal/views"
	"github.com/goliatone/go-welcome/pkg/interfaces"
)

// NotFoundModel is the model of the 404 view.
type NotFoundModel struct {
	FileName string `json:"fileName"`
}

// ErrorPresenter turns handler errors into responses. A
// *documents.NotFoundError anywhere in the chain becomes a 404 page naming the
// missing file; everything else is a plain 500.
type ErrorPresenter struct {
	views  interfaces.ViewRenderer
	logger interfaces.Logger
}

// NewErrorPresenter returns a presenter rendering with views.
func NewErrorPresenter(views interfaces.ViewRenderer, logger interfaces.Logger) *ErrorPresenter {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &ErrorPresenter{views: views, logger: logger}
}

// Present writes the response for err.
func (p *ErrorPresenter) Present(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}
	logger := p.logger.WithContext(r.Context())

	var notFound *documents.NotFoundError
	if errors.As(err, &notFound) {
		logger.Info("http.document_not_found", "file_name", notFound.FileName)
		model := NotFoundModel{FileName: notFound.FileName}
		renderErr := respond(w, r, p.views, http.StatusNotFound, views.NotFound, model)
		if renderErr == nil {
			return
		}
		err = renderErr
	}

	logger.Error("http.unhandled_error", "error", err, "path", r.URL.Path)
	writeInternalError(w)
}

func writeInternalError(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func writeUnavailable(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
}
