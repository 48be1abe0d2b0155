package http

import (
	"bytes"
	"encoding/json"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/goliatone/go-welcome/pkg/interfaces"
)

const (
	mediaJSON = "application/json"
	mediaHTML = "text/html"
)

// respond writes model as JSON when the client prefers it, otherwise as the
// named HTML view. Nothing is written if rendering fails.
func respond(w http.ResponseWriter, r *http.Request, views interfaces.ViewRenderer, status int, view string, model any) error {
	if views == nil || prefersJSON(r) {
		return writeJSON(w, status, model)
	}
	var buf bytes.Buffer
	if err := views.Render(&buf, view, model); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func writeJSON(w http.ResponseWriter, status int, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(append(body, '\n'))
	return err
}

// prefersJSON reports whether the Accept header ranks application/json above
// text/html. Ties go to HTML.
func prefersJSON(r *http.Request) bool {
	if r == nil {
		return false
	}
	accept := r.Header.Get("Accept")
	if accept == "" {
		return false
	}
	jsonQ, htmlQ := -1.0, -1.0
	for _, part := range strings.Split(accept, ",") {
		mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		q := 1.0
		if raw, ok := params["q"]; ok {
			if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
				q = parsed
			}
		}
		switch mediaType {
		case mediaJSON:
			jsonQ = max(jsonQ, q)
		case mediaHTML, "text/*", "*/*":
			htmlQ = max(htmlQ, q)
		}
	}
	return jsonQ > 0 && jsonQ > htmlQ
}
