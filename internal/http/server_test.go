package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-welcome/internal/diagnostics"
	"github.com/goliatone/go-welcome/internal/documents"
	"github.com/goliatone/go-welcome/internal/logging/console"
	"github.com/goliatone/go-welcome/internal/markdown"
	"github.com/goliatone/go-welcome/internal/views"
	"github.com/goliatone/go-welcome/pkg/interfaces"
)

const testRoot = "/srv/wiki"

func newTestServer(t *testing.T, files fstest.MapFS, opts ...ServerOption) http.Handler {
	t.Helper()

	viewRenderer, err := views.New(nil)
	require.NoError(t, err)

	base := []ServerOption{
		WithDocumentStore(documents.NewFileStore(testRoot, documents.WithFS(files))),
		WithDefaultResolver(documents.NewResolver(testRoot, documents.WithFS(files))),
		WithMarkdownRenderer(markdown.NewRenderer(markdown.NewGoldmarkParser(interfaces.ParseOptions{}), interfaces.ParseOptions{})),
		WithViews(viewRenderer),
		WithAbout(diagnostics.NewCollector(testRoot)),
	}
	return NewServer(append(base, opts...)...).Handler()
}

func doRequest(t *testing.T, handler http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func file(body string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(body)}
}

func TestServer_DocumentRoute(t *testing.T) {
	handler := newTestServer(t, fstest.MapFS{
		"Foo.md": file("# Foo\n\nSee [[Bar]].\n"),
	})

	rec := doRequest(t, handler, "/Foo", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Foo</title>")
	assert.Contains(t, body, `<a href="/Bar">Bar</a>`)
}

func TestServer_NestedDocumentRoute(t *testing.T) {
	handler := newTestServer(t, fstest.MapFS{
		"guides/Setup.md": file("---\ntitle: Getting Set Up\n---\nSteps.\n"),
	})

	rec := doRequest(t, handler, "/guides/Setup", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>Getting Set Up</title>")
}

func TestServer_LeadingThematicBreakRendersWholePage(t *testing.T) {
	handler := newTestServer(t, fstest.MapFS{
		"Rule.md": file("---\n\n# Welcome\n\nIntro text.\n\n---\n\nRest of page.\n"),
		"Lost.md": file("---\n# Welcome\n---\nRest of page.\n"),
	})

	for _, id := range []string{"Rule", "Lost"} {
		rec := doRequest(t, handler, "/"+id, nil)

		require.Equal(t, http.StatusOK, rec.Code, id)
		body := rec.Body.String()
		assert.Contains(t, body, "<title>"+id+"</title>", id)
		assert.Contains(t, body, "Welcome</h1>", id)
		assert.Contains(t, body, "Rest of page.", id)
		assert.Contains(t, body, "<hr", id)
	}
}

func TestServer_DocumentMetadataAsJSON(t *testing.T) {
	handler := newTestServer(t, fstest.MapFS{
		"Guide.md": file("---\ntitle: The Guide\nsummary: How things work\nauthor: ops\ntags: [wiki, help]\n---\nBody\n"),
	})

	rec := doRequest(t, handler, "/Guide", map[string]string{"Accept": "application/json"})

	require.Equal(t, http.StatusOK, rec.Code)
	var page interfaces.RenderedPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, "Guide", page.ID)
	assert.Equal(t, "The Guide", page.Title)
	assert.Equal(t, "How things work", page.Summary)
	assert.Equal(t, "ops", page.Author)
	assert.Equal(t, []string{"wiki", "help"}, page.Tags)
}

func TestServer_DocumentMetadataInPage(t *testing.T) {
	handler := newTestServer(t, fstest.MapFS{
		"Guide.md": &fstest.MapFile{
			Data:    []byte("---\nsummary: How things work\nauthor: ops\ntags: [wiki]\n---\nBody\n"),
			ModTime: time.Date(2024, 3, 14, 15, 9, 26, 0, time.UTC),
		},
	})

	rec := doRequest(t, handler, "/Guide", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<p class="summary">How things work</p>`)
	assert.Contains(t, body, `<span class="author">ops</span>`)
	assert.Contains(t, body, `<span class="tag">wiki</span>`)
	assert.Contains(t, body, "Last modified 2024-03-14 15:09")
}

func TestServer_DefaultRoute(t *testing.T) {
	cases := []struct {
		name  string
		files fstest.MapFS
		title string
	}{
		{
			name:  "index wins",
			files: fstest.MapFS{"Index.md": file("index"), "Home.md": file("home"), "README.md": file("readme")},
			title: "Index",
		},
		{
			name:  "home before readme",
			files: fstest.MapFS{"Home.md": file("home"), "README.md": file("readme")},
			title: "Home",
		},
		{
			name:  "readme last",
			files: fstest.MapFS{"README.md": file("readme")},
			title: "README",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, newTestServer(t, tc.files), "/", nil)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), "<title>"+tc.title+"</title>")
		})
	}
}

func TestServer_MissingDocumentRendersNotFoundPage(t *testing.T) {
	handler := newTestServer(t, fstest.MapFS{"Index.md": file("index")})

	rec := doRequest(t, handler, "/DoesNotExist", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `<code id="file-name">DoesNotExist</code>`)
}

func TestServer_MissingDocumentAsJSON(t *testing.T) {
	handler := newTestServer(t, fstest.MapFS{"Index.md": file("index")})

	rec := doRequest(t, handler, "/Missing", map[string]string{"Accept": "application/json"})

	require.Equal(t, http.StatusNotFound, rec.Code)
	var payload NotFoundModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "Missing", payload.FileName)
}

func TestServer_TraversalIsNotFound(t *testing.T) {
	files := fstest.MapFS{"Index.md": file("index")}
	viewRenderer, err := views.New(nil)
	require.NoError(t, err)
	server := NewServer(
		WithDocumentStore(documents.NewFileStore(testRoot, documents.WithFS(files))),
		WithMarkdownRenderer(markdown.NewRenderer(markdown.NewGoldmarkParser(interfaces.ParseOptions{}), interfaces.ParseOptions{})),
		WithViews(viewRenderer),
	)

	// ServeMux cleans dot segments before routing, so call the route directly.
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.SetPathValue("id", "../secret")
	rec := httptest.NewRecorder()
	server.handle(server.handleDocument)(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "../secret")
}

func TestServer_NoDefaultDocumentIsServerError(t *testing.T) {
	handler := newTestServer(t, fstest.MapFS{"Other.md": file("other")})

	rec := doRequest(t, handler, "/", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Not Found")
}

func TestServer_MissingDirectoryIsServerError(t *testing.T) {
	handler := newTestServer(t, fstest.MapFS{"Index.md": file("index")})

	rec := doRequest(t, handler, "/nope/Page", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServer_About(t *testing.T) {
	handler := newTestServer(t, fstest.MapFS{})

	rec := doRequest(t, handler, "/_About", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<dd id="process-id">`+strconv.Itoa(os.Getpid())+`</dd>`)
	assert.Contains(t, body, `<dd id="root-directory">`+testRoot+`</dd>`)
}

func TestServer_AboutAsJSON(t *testing.T) {
	handler := newTestServer(t, fstest.MapFS{})

	rec := doRequest(t, handler, "/_About", map[string]string{"Accept": "application/json, text/html;q=0.5"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var about diagnostics.About
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &about))
	assert.Equal(t, os.Getpid(), about.ProcessID)
	assert.Equal(t, testRoot, about.RootDirectory)
	assert.NotEmpty(t, about.Version)
}

func TestServer_AboutDocumentIsNotShadowed(t *testing.T) {
	handler := newTestServer(t, fstest.MapFS{"_About.md": file("# shadow")})

	rec := doRequest(t, handler, "/_About", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="process-id"`)
}

func TestServer_RequestIDHeader(t *testing.T) {
	handler := newTestServer(t, fstest.MapFS{"Index.md": file("index")})

	rec := doRequest(t, handler, "/", map[string]string{RequestIDHeader: "req-42"})
	assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))

	rec = doRequest(t, handler, "/", nil)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestServer_RendererErrorIsServerError(t *testing.T) {
	handler := newTestServer(t, fstest.MapFS{"Index.md": file("index")},
		WithMarkdownRenderer(failingRenderer{err: errors.New("boom")}))

	rec := doRequest(t, handler, "/Index", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServer_PanicIsServerError(t *testing.T) {
	handler := newTestServer(t, fstest.MapFS{"Index.md": file("index")},
		WithMarkdownRenderer(panickingRenderer{}))

	rec := doRequest(t, handler, "/Index", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServer_PanicIsLoggedWithRequestID(t *testing.T) {
	var logs bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &logs})
	handler := newTestServer(t, fstest.MapFS{"Index.md": file("index")},
		WithMarkdownRenderer(panickingRenderer{}),
		WithLogger(provider.GetLogger("welcome.http")))

	rec := doRequest(t, handler, "/Index", map[string]string{RequestIDHeader: "req-panic"})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "req-panic", rec.Header().Get(RequestIDHeader))

	var requestLine, errorLine string
	for _, line := range strings.Split(logs.String(), "\n") {
		switch {
		case strings.Contains(line, " http.request "):
			requestLine = line
		case strings.Contains(line, " http.unhandled_error "):
			errorLine = line
		}
	}
	assert.Contains(t, requestLine, "status=500")
	assert.Contains(t, requestLine, "request_id=req-panic")
	assert.Contains(t, errorLine, "request_id=req-panic")
}

func TestServer_UnwiredDependenciesAreUnavailable(t *testing.T) {
	handler := NewServer().Handler()

	for _, path := range []string{"/", "/Page", "/_About"} {
		rec := doRequest(t, handler, path, nil)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
	}
}

func TestPrefersJSON(t *testing.T) {
	cases := map[string]bool{
		"":                                  false,
		"text/html":                         false,
		"application/json":                  true,
		"text/html, application/json":       false,
		"application/json;q=0.9, */*;q=0.1": true,
		"*/*":                               false,
		"application/json;q=0":              false,
	}
	for accept, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if accept != "" {
			req.Header.Set("Accept", accept)
		}
		assert.Equal(t, want, prefersJSON(req), accept)
	}
}

type failingRenderer struct {
	err error
}

func (f failingRenderer) Render(context.Context, []byte) ([]byte, error) {
	return nil, f.err
}

func (f failingRenderer) RenderDocument(context.Context, *interfaces.Document) (*interfaces.RenderedPage, error) {
	return nil, f.err
}

type panickingRenderer struct{}

func (panickingRenderer) Render(context.Context, []byte) ([]byte, error) {
	panic("render exploded")
}

func (panickingRenderer) RenderDocument(context.Context, *interfaces.Document) (*interfaces.RenderedPage, error) {
	panic("render document exploded")
}
