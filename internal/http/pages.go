package http

import (
	"net/http"

	"github.com/goliatone/go-welcome/internal/logging"
	"github.com/goliatone/go-welcome/internal/views"
)

func (s *Server) handleDefaultDocument(w http.ResponseWriter, r *http.Request) error {
	if s.resolver == nil {
		writeUnavailable(w)
		return nil
	}
	id, err := s.resolver.FindDefaultID(r.Context())
	if err != nil {
		return err
	}
	return s.renderDocument(w, r, id)
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) error {
	return s.renderDocument(w, r, r.PathValue("id"))
}

func (s *Server) renderDocument(w http.ResponseWriter, r *http.Request, id string) error {
	if s.store == nil || s.renderer == nil {
		writeUnavailable(w)
		return nil
	}
	ctx := logging.WithRequestContext(r.Context(), "", id)

	doc, err := s.store.GetDocument(ctx, id)
	if err != nil {
		return err
	}
	page, err := s.renderer.RenderDocument(ctx, doc)
	if err != nil {
		return err
	}
	return respond(w, r, s.views, http.StatusOK, views.Index, page)
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) error {
	if s.about == nil {
		writeUnavailable(w)
		return nil
	}
	return respond(w, r, s.views, http.StatusOK, views.About, s.about.Collect())
}
