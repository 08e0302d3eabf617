package page

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"
)

func acmeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":   "#123456",
			"surface": "#ffffff",
		},
		Templates: map[string]string{
			"forms.input": "themes/acme/input.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files: map[string]string{
				StylesheetAsset: "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"brand": "#654321",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						StylesheetAsset: "theme.dark.css",
					},
				},
			},
		},
	}
}

func TestConfigFromManifest(t *testing.T) {
	cfg, err := ConfigFromManifest(acmeManifest(), "dark")
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	wantVars := map[string]string{"--brand": "#654321", "--surface": "#ffffff"}
	if diff := cmp.Diff(wantVars, cfg.CSSVars); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.AssetURL(StylesheetAsset); got != "/assets/themes/acme/theme.dark.css" {
		t.Fatalf("stylesheet: got %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("missing asset: got %q", got)
	}
	if cfg.Partials["forms.input"] != "themes/acme/input.tmpl" {
		t.Fatalf("partials: %v", cfg.Partials)
	}

	if _, err := ConfigFromManifest(acmeManifest(), "sepia"); err == nil {
		t.Fatalf("expected unknown variant error")
	}
	if _, err := ConfigFromManifest(nil, ""); err == nil {
		t.Fatalf("expected nil manifest error")
	}
}

func TestConfigFromManifest_RegistryAccepted(t *testing.T) {
	if err := theme.NewRegistry().Register(acmeManifest()); err != nil {
		t.Fatalf("register manifest: %v", err)
	}
}

func TestCSSVarsStyle(t *testing.T) {
	got := CSSVarsStyle(map[string]string{"--b": "2", "--a": "1"})
	if got != "--a: 1; --b: 2;" {
		t.Fatalf("style: got %q", got)
	}
	if CSSVarsStyle(nil) != "" {
		t.Fatalf("expected empty style")
	}
}

func TestEngine_Render(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	cfg, err := ConfigFromManifest(acmeManifest(), "")
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	out, err := engine.Render(context.Background(), Page{
		Title: "Sign <up>",
		Form:  `<form method="post"></form>`,
		Theme: cfg,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{
		`<html lang="en">`,
		`<title>Sign &lt;up&gt;</title>`,
		`<link rel="stylesheet" href="/assets/themes/acme/theme.css">`,
		`<style>:root { --brand: #123456; --surface: #ffffff; }</style>`,
		`<body data-theme="acme">`,
		`<form method="post"></form>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestEngine_RenderWithoutTheme(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	out, err := engine.Render(context.Background(), Page{Form: "<form></form>", Lang: "de"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "<style>") || strings.Contains(out, "<link") || strings.Contains(out, "<h1>") {
		t.Fatalf("unexpected theme output:\n%s", out)
	}
	if !strings.Contains(out, `<html lang="de">`) {
		t.Fatalf("lang missing:\n%s", out)
	}
}

func TestEngine_CustomTemplate(t *testing.T) {
	files := fstest.MapFS{
		"bare.tpl": {Data: []byte(`[{{ site }}] {{ title }}: {{ form|safe }}`)},
	}
	engine, err := New(WithFS(files), WithTemplate("bare.tpl"), WithGlobals(map[string]any{"site": "acme"}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	out, err := engine.Render(context.Background(), Page{Title: "Hi", Form: "<b>x</b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff("[acme] Hi: <b>x</b>", out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_Errors(t *testing.T) {
	engine, err := New(WithTemplate("missing.tpl"))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if _, err := engine.Render(context.Background(), Page{}); err == nil {
		t.Fatalf("expected missing template error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := engine.Render(ctx, Page{}); err == nil {
		t.Fatalf("expected context error")
	}
}
