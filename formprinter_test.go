package formprinter_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formprinter"
	"github.com/goliatone/go-formprinter/pkg/printer"
	"github.com/goliatone/go-formprinter/pkg/testsupport"
)

func TestRender_Golden(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "text.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	got, err := formprinter.Render(context.Background(), data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	testsupport.AssertGolden(t, filepath.Join("testdata", "golden", "text.html"), got)
}

func TestRenderTree_Structure(t *testing.T) {
	tree := testsupport.LoadTree(t, filepath.Join("testdata", "signup.yaml"))
	got, err := formprinter.RenderTree(context.Background(), tree,
		printer.WithValidator(formprinter.State{Values: map[string]any{"plan": "free"}}))
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	nodes := testsupport.ParseFragment(t, got)
	forms := testsupport.FindAll(nodes, "form")
	if len(forms) != 1 {
		t.Fatalf("expected one form, got %d", len(forms))
	}
	if class, _ := testsupport.Attr(forms[0], "class"); class != "signup" {
		t.Fatalf("form class: got %q", class)
	}

	legends := testsupport.FindAll(nodes, "legend")
	if len(legends) != 1 || testsupport.Text(legends[0]) != "Account" {
		t.Fatalf("unexpected legends: %d", len(legends))
	}

	var selected []string
	for _, option := range testsupport.FindAll(nodes, "option") {
		if _, ok := testsupport.Attr(option, "selected"); ok {
			value, _ := testsupport.Attr(option, "value")
			selected = append(selected, value)
		}
	}
	if diff := cmp.Diff([]string{"free"}, selected); diff != "" {
		t.Fatalf("selected options mismatch (-want +got):\n%s", diff)
	}

	inputs := testsupport.FindAll(nodes, "input")
	values := make(map[string]string, len(inputs))
	for _, input := range inputs {
		typ, _ := testsupport.Attr(input, "type")
		value, _ := testsupport.Attr(input, "value")
		values[typ] = value
	}
	want := map[string]string{"text": "a@example.com", "submit": "Save"}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("inputs mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_RejectsEmptyDocument(t *testing.T) {
	if _, err := formprinter.Render(context.Background(), []byte("  ")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestCheck_BindsMessages(t *testing.T) {
	tree := testsupport.LoadTree(t, filepath.Join("testdata", "signup.yaml"))
	state, ok, err := formprinter.Check(tree, map[string]any{"mail": "a@example.com", "plan": "gold"})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if ok {
		t.Fatalf("expected unknown plan to be rejected")
	}
	if diff := cmp.Diff(map[string]bool{"mail": true, "plan": false}, state.Valid); diff != "" {
		t.Fatalf("validity mismatch (-want +got):\n%s", diff)
	}

	html, err := formprinter.RenderTree(context.Background(), tree, printer.WithValidator(state))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	spans := testsupport.FindAll(testsupport.ParseFragment(t, html), "span")
	if len(spans) != 1 || testsupport.Text(spans[0]) != "Please choose one of the offered values." {
		t.Fatalf("expected one error span, got %d in:\n%s", len(spans), html)
	}
}
