package documents

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	goerrors "github.com/goliatone/go-errors"
)

func mapFS(names ...string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for _, name := range names {
		fsys[name] = &fstest.MapFile{Data: []byte("# " + name)}
	}
	return fsys
}

func TestFindDefaultID_PrefersIndex(t *testing.T) {
	id, err := FindDefaultID(mapFS("Index.md", "Home.md", "README.md"), "/srv/wiki")
	if err != nil {
		t.Fatalf("FindDefaultID: %v", err)
	}
	if id != "Index" {
		t.Fatalf("expected Index, got %s", id)
	}
}

func TestFindDefaultID_FallsBackToHome(t *testing.T) {
	id, err := FindDefaultID(mapFS("Home.md", "README.md"), "/srv/wiki")
	if err != nil {
		t.Fatalf("FindDefaultID: %v", err)
	}
	if id != "Home" {
		t.Fatalf("expected Home, got %s", id)
	}
}

func TestFindDefaultID_FallsBackToReadme(t *testing.T) {
	id, err := FindDefaultID(mapFS("README.md", "Other.md"), "/srv/wiki")
	if err != nil {
		t.Fatalf("FindDefaultID: %v", err)
	}
	if id != "README" {
		t.Fatalf("expected README, got %s", id)
	}
}

func TestFindDefaultID_IgnoresDirectories(t *testing.T) {
	fsys := mapFS("Home.md")
	fsys["Index.md/nested.md"] = &fstest.MapFile{Data: []byte("x")}

	id, err := FindDefaultID(fsys, "/srv/wiki")
	if err != nil {
		t.Fatalf("FindDefaultID: %v", err)
	}
	if id != "Home" {
		t.Fatalf("expected Home, got %s", id)
	}
}

func TestFindDefaultID_NoneFound(t *testing.T) {
	_, err := FindDefaultID(mapFS("Other.md"), "/srv/wiki")
	if err == nil {
		t.Fatalf("expected error")
	}

	var notFound *DefaultNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected DefaultNotFoundError, got %T: %v", err, err)
	}
	if notFound.RootDirectory != "/srv/wiki" {
		t.Fatalf("expected root directory in error, got %q", notFound.RootDirectory)
	}
	if strings.Join(notFound.Candidates, ",") != "Index,Home,README" {
		t.Fatalf("unexpected candidates: %v", notFound.Candidates)
	}

	want := "cannot find default document in root directory '/srv/wiki'. Considered 'Index', 'Home', 'README'."
	if notFound.Error() != want {
		t.Fatalf("unexpected message\nwant: %s\ngot:  %s", want, notFound.Error())
	}

	var docNotFound *NotFoundError
	if errors.As(err, &docNotFound) {
		t.Fatalf("default lookup failure must not be a document not found error")
	}
	if goerrors.IsNotFound(err) {
		t.Fatalf("default lookup failure must not carry the not_found category")
	}
}

func TestResolver_FindDefaultID(t *testing.T) {
	resolver := NewResolver("/srv/wiki", WithFS(mapFS("README.md")))

	id, err := resolver.FindDefaultID(context.Background())
	if err != nil {
		t.Fatalf("FindDefaultID: %v", err)
	}
	if id != "README" {
		t.Fatalf("expected README, got %s", id)
	}
}

func TestResolver_ReadsFromDisk(t *testing.T) {
	root := writeTree(t, map[string]string{
		"Home.md":   "# Home",
		"README.md": "# Readme",
	})

	id, err := NewResolver(root).FindDefaultID(context.Background())
	if err != nil {
		t.Fatalf("FindDefaultID: %v", err)
	}
	if id != "Home" {
		t.Fatalf("expected Home, got %s", id)
	}
}

func TestDefaultCandidates_ReturnsCopy(t *testing.T) {
	candidates := DefaultCandidates()
	candidates[0] = "Mutated"

	if DefaultCandidates()[0] != "Index" {
		t.Fatalf("expected candidate list to be immutable")
	}
}
