package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	pkgopenapi "github.com/goliatone/go-formprinter/pkg/openapi"
)

const doc = "openapi: 3.0.0\n"

func TestLoader_Sources(t *testing.T) {
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "api.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(doc))
	}))
	defer server.Close()

	l := New(pkgopenapi.NewLoaderOptions(
		pkgopenapi.WithFileSystem(fstest.MapFS{"specs/api.yaml": {Data: []byte(doc)}}),
		pkgopenapi.WithHTTPFallback(0),
	))

	urlSrc, err := pkgopenapi.SourceFromURL(server.URL)
	if err != nil {
		t.Fatalf("url source: %v", err)
	}
	for _, src := range []pkgopenapi.Source{
		pkgopenapi.SourceFromFile(path),
		pkgopenapi.SourceFromFS("specs/api.yaml"),
		urlSrc,
	} {
		got, err := l.Load(ctx, src)
		if err != nil {
			t.Fatalf("load %s %s: %v", src.Kind(), src.Location(), err)
		}
		if string(got.Raw()) != doc {
			t.Fatalf("%s: unexpected payload %q", src.Kind(), got.Raw())
		}
	}
}

func TestLoader_HTTPDisabledByDefault(t *testing.T) {
	src, err := pkgopenapi.SourceFromURL("http://example.invalid/api.yaml")
	if err != nil {
		t.Fatalf("url source: %v", err)
	}
	if _, err := New(pkgopenapi.NewLoaderOptions()).Load(context.Background(), src); err == nil {
		t.Fatalf("expected http sources to be disabled")
	}
}

func TestLoader_HTTPStatus(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	src, _ := pkgopenapi.SourceFromURL(server.URL)
	l := New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithHTTPClient(server.Client())))
	if _, err := l.Load(context.Background(), src); err == nil {
		t.Fatalf("expected status error")
	}
}
