package markup

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRender_InlinesSingleText(t *testing.T) {
	el := NewElement("p", Text("hello & bye"))
	el.Set("class", "note")

	want := `<p class="note">hello &amp; bye</p>`
	if diff := cmp.Diff(want, el.String()); diff != "" {
		t.Fatalf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_VoidElementIgnoresContent(t *testing.T) {
	el := NewElement("input", Text("ignored"))
	el.Set("value", "x").Set("type", "text").Set("name", "f")

	want := `<input type="text" name="f" value="x">`
	if diff := cmp.Diff(want, el.String()); diff != "" {
		t.Fatalf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_InlinesSingleSimpleChild(t *testing.T) {
	el := NewElement("li", NewElement("a", Text("Go")).Set("href", "#x"))

	want := `<li><a href="#x">Go</a></li>`
	if diff := cmp.Diff(want, el.String()); diff != "" {
		t.Fatalf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_MultipleChildrenOnOwnLines(t *testing.T) {
	el := NewElement("div",
		NewElement("label", Text("Name")),
		NewElement("input").Set("name", "n"),
	)

	want := strings.Join([]string{
		"<div>",
		"  <label>Name</label>",
		`  <input name="n">`,
		"</div>",
	}, "\n")
	if diff := cmp.Diff(want, el.String()); diff != "" {
		t.Fatalf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_NestedIndentation(t *testing.T) {
	inner := NewElement("ul",
		NewElement("li", Text("a")),
		NewElement("li", Text("b")),
	)
	outer := NewElement("form", inner, Text("tail"))

	want := strings.Join([]string{
		"<form>",
		"  <ul>",
		"    <li>a</li>",
		"    <li>b</li>",
		"  </ul>",
		"  tail",
		"</form>",
	}, "\n")
	if diff := cmp.Diff(want, outer.String()); diff != "" {
		t.Fatalf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_SingleComplexChildIsNotInlined(t *testing.T) {
	el := NewElement("tbody", NewElement("tr",
		NewElement("td", Text("1")),
		NewElement("td", Text("2")),
	))

	want := strings.Join([]string{
		"<tbody>",
		"  <tr>",
		"    <td>1</td>",
		"    <td>2</td>",
		"  </tr>",
		"</tbody>",
	}, "\n")
	if diff := cmp.Diff(want, el.String()); diff != "" {
		t.Fatalf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_SkipWhitespace(t *testing.T) {
	el := NewElement("div",
		NewElement("input").Set("type", "submit"),
		NewElement("input").Set("type", "reset"),
	)
	el.SkipWhitespace = true

	want := `<div><input type="submit"><input type="reset"></div>`
	if diff := cmp.Diff(want, el.String()); diff != "" {
		t.Fatalf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_OmitWhenEmptyAndTransparent(t *testing.T) {
	empty := NewElement("p")
	empty.OmitWhenEmpty = true
	if got := empty.String(); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}

	wrapper := NewElement("div", NewElement("span", Text("a")), NewElement("span", Text("b")))
	wrapper.Transparent = true
	if diff := cmp.Diff(`<span>a</span><span>b</span>`, wrapper.String()); diff != "" {
		t.Fatalf("transparent mismatch (-want +got):\n%s", diff)
	}

	parent := NewElement("form", empty, NewElement("hr"))
	want := "<form>\n  <hr>\n</form>"
	if diff := cmp.Diff(want, parent.String()); diff != "" {
		t.Fatalf("suppressed child left a blank line (-want +got):\n%s", diff)
	}
}

func TestRender_RawIsNotEscaped(t *testing.T) {
	el := NewElement("div", Raw("<b>x</b>"))
	if diff := cmp.Diff(`<div><b>x</b></div>`, el.String()); diff != "" {
		t.Fatalf("render mismatch (-want +got):\n%s", diff)
	}
}

func TestAttrs_OrderAndBooleans(t *testing.T) {
	attrs := NewAttrs()
	attrs.Set("size", "1")
	attrs.Set("disabled", true)
	attrs.Set("hidden", false)
	attrs.Set("value", `a"b`)
	attrs.Set("id", "Self")
	attrs.Set("type", "text")
	attrs.Set("data-x", nil)

	want := `type="text" id="Self" value="a&#34;b" size="1" disabled`
	if diff := cmp.Diff(want, attrs.String()); diff != "" {
		t.Fatalf("attrs mismatch (-want +got):\n%s", diff)
	}

	attrs.Delete("size")
	if attrs.Has("size") {
		t.Fatalf("expected size removed")
	}
	if diff := cmp.Diff([]string{"type", "id", "value", "disabled", "hidden", "data-x"}, attrs.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestStringify(t *testing.T) {
	cases := map[string]any{
		"":      nil,
		"abc":   "abc",
		"3":     3,
		"1.5":   1.5,
		"a,b":   []any{"a", "b"},
		"x,y":   []string{"x", "y"},
		"1":     true,
		"false": fmtStringer("false"),
	}
	for want, in := range cases {
		if got := Stringify(in); got != want {
			t.Fatalf("Stringify(%v): want %q, got %q", in, want, got)
		}
	}
}

type fmtStringer string

func (s fmtStringer) String() string { return string(s) }

func TestSanitize_StripsScripts(t *testing.T) {
	got := Sanitize(`<em class="hint">ok</em><script>alert(1)</script>`)
	if strings.Contains(string(got), "script") {
		t.Fatalf("expected script removed, got %q", got)
	}
	if !strings.Contains(string(got), `<em class="hint">ok</em>`) {
		t.Fatalf("expected em preserved, got %q", got)
	}
	if Sanitize("   ") != "" {
		t.Fatalf("expected blank input to sanitize to empty")
	}
}
