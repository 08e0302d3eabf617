package ids

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCreateID_PlainNames(t *testing.T) {
	m := New()
	got := []string{m.CreateID("Inputf"), m.CreateID("Inputf"), m.CreateID("Inputf"), m.CreateID("Other")}
	want := []string{"Inputf", "Inputf1", "Inputf2", "Other"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if m.Len() != 2 || m.Collisions() != 2 {
		t.Fatalf("unexpected stats: len=%d collisions=%d", m.Len(), m.Collisions())
	}
}

func TestCreateID_ArrayNames(t *testing.T) {
	m := New()
	got := []string{m.CreateID("Entryrow[]"), m.CreateID("Entryrow[]"), m.CreateID("Entryrow[]")}
	want := []string{"Entryrow0", "Entryrow1", "Entryrow2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateID_PairwiseDistinct(t *testing.T) {
	m := New()
	inputs := []string{"a", "a", "a[]", "a", "b c", "bc", "1a", "a", "x[]", "x"}
	seen := make(map[string]bool)
	for _, in := range inputs {
		id := m.CreateID(in)
		if seen[id] {
			t.Fatalf("duplicate id %q for input %q", id, in)
		}
		seen[id] = true
	}
}

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"Input field":      "Inputfield",
		"12abc":            "abc",
		"_-x.y:z":          "x.y:z",
		"Fs<script>":       "Fsscript",
		"Box\u00e9t\u00e9": "Boxt",
		"":                 "",
	}
	for in, want := range cases {
		if got := Sanitize(in); got != want {
			t.Fatalf("Sanitize(%q): want %q, got %q", in, want, got)
		}
	}
}
