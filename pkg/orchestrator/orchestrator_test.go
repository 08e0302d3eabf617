package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formprinter/pkg/config"
	"github.com/goliatone/go-formprinter/pkg/labels"
	pkgopenapi "github.com/goliatone/go-formprinter/pkg/openapi"
	"github.com/goliatone/go-formprinter/pkg/orchestrator"
	"github.com/goliatone/go-formprinter/pkg/printer"
)

const petstore = `openapi: 3.0.0
info: { title: Pets, version: "1.0.0" }
paths:
  /pets:
    post:
      operationId: createPet
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [name]
              properties:
                name: { type: string }
      responses:
        "201": { description: created }
`

func petDocument() *pkgopenapi.Document {
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFile("pets.yaml"), []byte(petstore))
	return &doc
}

func mailTree() *config.Node {
	return config.MustFromMap(map[string]any{
		"content": []any{
			map[string]any{"type": "text", "name": "mail", "maxlength": "40"},
			map[string]any{"type": "text", "name": "nick"},
		},
	})
}

func TestGenerate_Tree(t *testing.T) {
	orch := orchestrator.New()
	tree := mailTree()

	out, err := orch.Generate(context.Background(), orchestrator.Request{
		Tree:  tree,
		State: printer.State{Values: map[string]any{"mail": "a@example.com"}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	if !strings.HasPrefix(html, `<form method="post">`) {
		t.Fatalf("unexpected form: %s", html)
	}
	if !strings.Contains(html, `value="a@example.com"`) {
		t.Fatalf("state not bound: %s", html)
	}
	if tree.Has("validator") {
		t.Fatalf("request tree was mutated")
	}
}

func TestGenerate_Operation(t *testing.T) {
	orch := orchestrator.New()
	out, err := orch.Generate(context.Background(), orchestrator.Request{
		Document:    petDocument(),
		OperationID: "createPet",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, want := range []string{`action="/pets"`, `name="name"`, `required`, `type="submit"`} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in:\n%s", want, html)
		}
	}
}

func TestGenerate_Page(t *testing.T) {
	cfg := &theme.RendererConfig{
		Theme:   "acme",
		CSSVars: map[string]string{"--brand": "#123456"},
	}
	orch := orchestrator.New(orchestrator.WithTheme(cfg))
	out, err := orch.Generate(context.Background(), orchestrator.Request{Tree: mailTree(), Page: true, Title: "Join"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, want := range []string{"<!DOCTYPE html>", "<title>Join</title>", "--brand: #123456;", `data-theme="acme"`, `<form method="post">`} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in:\n%s", want, html)
		}
	}
}

func TestGenerate_AppliesTransformers(t *testing.T) {
	var seen []string
	record := func(tag string) orchestrator.Transformer {
		return orchestrator.TransformerFunc(func(_ context.Context, tree *config.Node) error {
			seen = append(seen, tag)
			tree.Set("class", tag)
			return nil
		})
	}
	orch := orchestrator.New(orchestrator.WithTransformers(record("first"), nil, record("second")))

	out, err := orch.Generate(context.Background(), orchestrator.Request{Tree: mailTree()})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if diff := cmp.Diff([]string{"first", "second"}, seen); diff != "" {
		t.Fatalf("transformer order mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(string(out), `class="second"`) {
		t.Fatalf("transformer mutation missing: %s", out)
	}

	failing := orchestrator.New(orchestrator.WithTransformers(orchestrator.TransformerFunc(func(context.Context, *config.Node) error {
		return errors.New("boom")
	})))
	if _, err := failing.Generate(context.Background(), orchestrator.Request{Tree: mailTree()}); err == nil {
		t.Fatalf("expected transformer error")
	}
}

func TestGenerate_Errors(t *testing.T) {
	orch := orchestrator.New()
	cases := []struct {
		name string
		req  orchestrator.Request
	}{
		{name: "nothing to render", req: orchestrator.Request{}},
		{name: "missing source", req: orchestrator.Request{OperationID: "createPet"}},
		{name: "unknown operation", req: orchestrator.Request{Document: petDocument(), OperationID: "deletePet"}},
		{name: "untyped child", req: orchestrator.Request{Tree: config.MustFromMap(map[string]any{
			"content": []any{map[string]any{"name": "x"}},
		})}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := orch.Generate(context.Background(), tc.req); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestPresetTransformer(t *testing.T) {
	files := fstest.MapFS{"preset.yaml": {Data: []byte(`
root:
  class: signup
fields:
  mail:
    label: E-Mail
    type: textarea
    set: {placeholder: you@example.com}
    unset: [maxlength]
  nick:
    remove: true
`)}}
	preset, err := orchestrator.NewPresetTransformerFromFS(files, "preset.yaml")
	if err != nil {
		t.Fatalf("load preset: %v", err)
	}

	tree := mailTree()
	if err := preset.Transform(context.Background(), tree); err != nil {
		t.Fatalf("transform: %v", err)
	}

	if got := tree.String("class"); got != "signup" {
		t.Fatalf("root class: got %q", got)
	}
	nodes := tree.Children().Nodes()
	if len(nodes) != 1 {
		t.Fatalf("expected nick removed, got %d nodes", len(nodes))
	}
	want := map[string]any{"type": "textarea", "name": "mail", "label": "E-Mail", "placeholder": "you@example.com"}
	if diff := cmp.Diff(want, nodes[0].Map()); diff != "" {
		t.Fatalf("patched field mismatch (-want +got):\n%s", diff)
	}

	missing, err := orchestrator.NewPresetTransformer([]byte("fields:\n  ghost: {label: x}\n"))
	if err != nil {
		t.Fatalf("parse preset: %v", err)
	}
	if err := missing.Transform(context.Background(), mailTree()); !errors.Is(err, config.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := orchestrator.NewPresetTransformer(nil); err == nil {
		t.Fatalf("expected empty document error")
	}
}

func TestGenerate_Submission(t *testing.T) {
	orch := orchestrator.New(orchestrator.WithValidationMessages(labels.NewCatalog(map[string]string{
		"error.length": "Too long",
	})))

	out, err := orch.Generate(context.Background(), orchestrator.Request{
		Tree:       mailTree(),
		Submission: map[string]any{"mail": strings.Repeat("x", 41), "nick": "ann"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, `<span class="error">Too long</span>`) {
		t.Fatalf("length message missing: %s", html)
	}
	if !strings.Contains(html, `value="ann"`) {
		t.Fatalf("submitted value not bound: %s", html)
	}
}

func TestGenerate_ServerErrors(t *testing.T) {
	orch := orchestrator.New()
	out, err := orch.Generate(context.Background(), orchestrator.Request{
		Tree:         mailTree(),
		State:        printer.State{Values: map[string]any{"nick": "ann"}},
		ServerErrors: map[string][]string{"/body/nick": {"already taken"}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, `<span class="error">already taken</span>`) {
		t.Fatalf("server error missing: %s", html)
	}
	if !strings.Contains(html, `value="ann"`) {
		t.Fatalf("state values lost: %s", html)
	}
}

func TestGenerate_FormLevelServerErrors(t *testing.T) {
	orch := orchestrator.New()
	out, err := orch.Generate(context.Background(), orchestrator.Request{
		Tree: mailTree(),
		ServerErrors: map[string][]string{
			"__all__":          {"try again later"},
			"non_field_errors": {"try again later"},
		},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	want := `<ul class="errors"><li>try again later</li></ul>`
	if !strings.Contains(html, want) {
		t.Fatalf("expected %q in:\n%s", want, html)
	}
	if strings.Index(html, want) > strings.Index(html, `name="mail"`) {
		t.Fatalf("form errors must precede the fields:\n%s", html)
	}
	if strings.Contains(html, `class="error"`) {
		t.Fatalf("form-level messages leaked onto a field:\n%s", html)
	}
}

func TestCheck(t *testing.T) {
	orch := orchestrator.New()
	state, ok, err := orch.Check(context.Background(), orchestrator.Request{Tree: mailTree()}, map[string]any{"mail": "short"})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !ok {
		t.Fatalf("expected valid submission, errors: %v", state.Errors)
	}
	if diff := cmp.Diff(map[string]bool{"mail": true, "nick": true}, state.Valid); diff != "" {
		t.Fatalf("validity mismatch (-want +got):\n%s", diff)
	}
}
