package testsupport

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseFragment(t *testing.T) {
	nodes := ParseFragment(t, `<form method="post"><p id="Boxa"><label for="Inputa">A &amp; B</label><input name="a" required></p></form>`)

	inputs := FindAll(nodes, "input")
	if len(inputs) != 1 {
		t.Fatalf("expected one input, got %d", len(inputs))
	}
	if name, _ := Attr(inputs[0], "name"); name != "a" {
		t.Fatalf("name: got %q", name)
	}
	if _, ok := Attr(inputs[0], "required"); !ok {
		t.Fatalf("expected required attribute")
	}
	if _, ok := Attr(inputs[0], "disabled"); ok {
		t.Fatalf("unexpected disabled attribute")
	}

	labels := FindAll(nodes, "label")
	if diff := cmp.Diff("A & B", Text(labels[0])); diff != "" {
		t.Fatalf("label text mismatch (-want +got):\n%s", diff)
	}
}
