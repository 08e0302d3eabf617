package config

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formprinter/pkg/markup"
)

const sampleYAML = `
type: printer
accept-charset: UTF-8
values:
  field1: value
content:
  - type: hidden
    name: Id
  - type: fieldset
    name: group
    label: Example Group
    content:
      - type: text
        name: field1
        maxlength: 40
      - type: select
        name: select1
        selection:
          c: third
          a: first
          b: second
  - html: '<hr class="sep"><script>x()</script>'
  - some text
  - type: buttonbox
    buttons:
      submit: Send
      reset: Reset
`

func TestLoad_PreservesOrder(t *testing.T) {
	root, err := Load([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if diff := cmp.Diff([]string{"type", "accept-charset", "values"}, root.Keys()); diff != "" {
		t.Fatalf("root keys mismatch (-want +got):\n%s", diff)
	}

	sel := root.Children().Find("select1").Node()
	pairs, _ := sel.Get("selection")
	if diff := cmp.Diff([]string{"c", "a", "b"}, pairs.(Pairs).Keys()); diff != "" {
		t.Fatalf("selection order mismatch (-want +got):\n%s", diff)
	}

	field := root.Children().Find("field1").Node()
	if v, _ := field.Get("maxlength"); v != 40 {
		t.Fatalf("expected decoded int maxlength, got %#v", v)
	}

	items := root.Children().Content()
	if len(items) != 5 {
		t.Fatalf("expected 5 content items, got %d", len(items))
	}
	m, ok := items[2].(Markup)
	if !ok {
		t.Fatalf("expected markup entry, got %T", items[2])
	}
	raw := string(m.Node.(markup.Raw))
	if strings.Contains(raw, "script") || !strings.Contains(raw, "hr") {
		t.Fatalf("expected sanitized markup, got %q", raw)
	}
	if items[3] != Text("some text") {
		t.Fatalf("expected text entry, got %#v", items[3])
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load([]byte("  ")); err == nil {
		t.Fatalf("expected error for empty document")
	}
	if _, err := Load([]byte("- a\n- b\n")); !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput for sequence root, got %v", err)
	}
	if _, err := Load([]byte("type: x\n0: y\n")); !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput for numeric key, got %v", err)
	}
}

func TestLoad_JSON(t *testing.T) {
	root, err := Load([]byte(`{"type":"printer","content":[{"type":"text","name":"a"}]}`))
	if err != nil {
		t.Fatalf("load json: %v", err)
	}
	if !root.Children().Find("a").Valid() {
		t.Fatalf("expected json content parsed")
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{"forms/a.yaml": {Data: []byte(sampleYAML)}}
	root, err := LoadFS(fsys, "forms/a.yaml", WithSanitizer(nil))
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	m := root.Children().Content()[2].(Markup)
	if !strings.Contains(string(m.Node.(markup.Raw)), "script") {
		t.Fatalf("expected markup kept verbatim without sanitizer")
	}
	if _, err := LoadFS(fsys, "missing.yaml"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
