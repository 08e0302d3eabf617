package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	tree := writeFile(t, dir, "form.yaml", "content:\n  - type: text\n    name: mail\n")
	state := writeFile(t, dir, "state.yaml", "values:\n  mail: a@example.com\nerrors:\n  mail: taken\nvalid:\n  mail: false\n")

	out, _, err := run(t, "render", "--config", tree, "--values", state)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{`<form method="post">`, `value="a@example.com"`, `<span class="error">taken</span>`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}

func TestRenderCommand_PageWithTheme(t *testing.T) {
	dir := t.TempDir()
	tree := writeFile(t, dir, "form.yaml", "content:\n  - type: text\n    name: mail\n")
	manifest := writeFile(t, dir, "theme.yaml", `name: acme
version: 1.0.0
tokens:
  brand: "#123456"
assets:
  prefix: /assets/acme
  files:
    stylesheet: theme.css
`)
	target := filepath.Join(dir, "out.html")

	if _, _, err := run(t, "render", "-c", tree, "--page", "--title", "Join", "--theme", manifest, "-o", target); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	for _, want := range []string{"<title>Join</title>", "--brand: #123456;", `href="/assets/acme/theme.css"`} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("expected %q in:\n%s", want, data)
		}
	}
}

func TestRenderCommand_VerboseLogsAndMetrics(t *testing.T) {
	dir := t.TempDir()
	tree := writeFile(t, dir, "form.yaml", "content:\n  - type: password\n    name: secret\n")

	_, logs, err := run(t, "render", "-c", tree, "--verbose", "--metrics")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(logs, "formprinter_renders_total") {
		t.Fatalf("expected render counter in logs:\n%s", logs)
	}
}

func TestOpenAPICommand_ListsOperations(t *testing.T) {
	dir := t.TempDir()
	spec := writeFile(t, dir, "api.yaml", `openapi: 3.0.0
info: { title: Pets, version: "1.0.0" }
paths:
  /pets:
    post:
      operationId: createPet
      summary: Add a pet
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                name: { type: string }
      responses:
        "201": { description: created }
`)

	out, _, err := run(t, "openapi", "--spec", spec)
	if err != nil {
		t.Fatalf("openapi: %v", err)
	}
	if !strings.Contains(out, "createPet\tPOST /pets\tAdd a pet") {
		t.Fatalf("unexpected listing:\n%s", out)
	}

	out, _, err = run(t, "openapi", "--spec", spec, "--operation", "createPet")
	if err != nil {
		t.Fatalf("openapi render: %v", err)
	}
	if !strings.Contains(out, `action="/pets"`) || !strings.Contains(out, `name="name"`) {
		t.Fatalf("unexpected form:\n%s", out)
	}
}

func TestCommands_RequireInput(t *testing.T) {
	for _, args := range [][]string{{"render"}, {"openapi"}, {"prompt"}} {
		if _, _, err := run(t, args...); err == nil {
			t.Fatalf("%v: expected error", args)
		}
	}
}

func TestRenderCommand_CheckSubmission(t *testing.T) {
	dir := t.TempDir()
	tree := writeFile(t, dir, "form.yaml", "content:\n  - type: text\n    name: mail\n    required: true\n  - type: text\n    name: nick\n")
	submission := writeFile(t, dir, "submission.yaml", "nick: ann\n")
	serverErrors := writeFile(t, dir, "errors.yaml", "/body/nick:\n  - already taken\n")
	catalog := writeFile(t, dir, "labels.yaml", "error:\n  missing: Bitte ausfüllen\n")

	out, _, err := run(t, "render", "-c", tree, "--check", submission, "--server-errors", serverErrors, "--labels", catalog)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		`<span class="error">Bitte ausfüllen</span>`,
		`<span class="error">already taken</span>`,
		`value="ann"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}
