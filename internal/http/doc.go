// Package http serves the wiki over net/http.
//
// Routes:
//   - GET /          default document (Index, Home or README)
//   - GET /_About    process diagnostics
//   - GET /{id...}   the document {root}/{id}.md
//
// Handlers return errors instead of writing failures themselves; the
// ErrorPresenter turns a missing document into a 404 page and lets every
// other failure through as a 500.
package http
