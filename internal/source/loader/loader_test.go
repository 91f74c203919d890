package loader_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-partials/internal/source/loader"
	"github.com/goliatone/go-partials/pkg/source"
)

func TestLoader_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.md")
	if err := os.WriteFile(path, []byte("# Hi"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := loader.New(source.NewLoaderOptions()).Load(context.Background(), source.FromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != "# Hi" {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
	if doc.Format() != source.FormatMarkdown {
		t.Fatalf("expected markdown format, got %q", doc.Format())
	}
}

func TestLoader_FileRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := loader.New(source.NewLoaderOptions()).Load(context.Background(), source.FromFile(dir))
	if err == nil || !strings.Contains(err.Error(), "is a directory, not a document") {
		t.Fatalf("expected directory error, got %v", err)
	}
}

func TestLoader_FS(t *testing.T) {
	fsys := fstest.MapFS{
		"partials/card.html": {Data: []byte(`<partial name="card">x</partial>`)},
	}
	l := loader.New(source.NewLoaderOptions(source.WithFileSystem(fsys)))

	doc, err := l.Load(context.Background(), source.FromFS("partials/card.html"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.Format() != source.FormatHTML {
		t.Fatalf("expected html format, got %q", doc.Format())
	}

	doc, err = l.Load(context.Background(), source.FromFS("./partials/../partials/card.html"))
	if err != nil {
		t.Fatalf("load relative name: %v", err)
	}
	if string(doc.Raw()) != `<partial name="card">x</partial>` {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}

	_, err = l.Load(context.Background(), source.FromFS("partials"))
	if err == nil || !strings.Contains(err.Error(), "partials is a directory, not a document") {
		t.Fatalf("expected directory error, got %v", err)
	}

	_, err = loader.New(source.NewLoaderOptions()).Load(context.Background(), source.FromFS("partials/card.html"))
	if err == nil || !strings.Contains(err.Error(), "load html document partials/card.html: no document filesystem configured") {
		t.Fatalf("expected missing filesystem error, got %v", err)
	}
}

func TestLoader_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing.html":
			http.NotFound(w, r)
			return
		case "/notes":
			w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
			_, _ = w.Write([]byte("# Notes"))
			return
		}
		_, _ = w.Write([]byte(`<p>remote</p>`))
	}))
	defer server.Close()

	src, err := source.FromURL(server.URL + "/page.html")
	if err != nil {
		t.Fatalf("url source: %v", err)
	}

	if _, err := loader.New(source.NewLoaderOptions()).Load(context.Background(), src); !errors.Is(err, loader.ErrRemoteDisabled) {
		t.Fatalf("expected remote documents to be disabled by default, got %v", err)
	}

	l := loader.New(source.NewLoaderOptions(source.WithHTTPClient(server.Client())))
	doc, err := l.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != `<p>remote</p>` {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}

	notes, _ := source.FromURL(server.URL + "/notes")
	doc, err = l.Load(context.Background(), notes)
	if err != nil {
		t.Fatalf("load notes: %v", err)
	}
	if doc.Format() != source.FormatMarkdown {
		t.Fatalf("expected markdown from content type, got %q", doc.Format())
	}

	missing, _ := source.FromURL(server.URL + "/missing.html")
	if _, err := l.Load(context.Background(), missing); err == nil || !strings.Contains(err.Error(), "unexpected status 404") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestLoader_BytesAndCancelledContext(t *testing.T) {
	l := loader.New(source.NewLoaderOptions())

	doc, err := l.Load(context.Background(), source.FromBytes("tree.json", []byte(`["x"]`)))
	if err != nil {
		t.Fatalf("load bytes: %v", err)
	}
	if doc.Format() != source.FormatJSON {
		t.Fatalf("expected json format, got %q", doc.Format())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := l.Load(ctx, source.FromFile("whatever.html")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancelled context error, got %v", err)
	}
}
