package validation

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formprinter/pkg/config"
	"github.com/goliatone/go-formprinter/pkg/labels"
)

const signupTree = `
content:
  - type: fieldset
    name: account
    content:
      - type: email
        name: mail
        required: true
      - type: text
        name: nick
        minlength: 3
        maxlength: 8
      - type: text
        name: zip
        pattern: "[0-9]{5}"
      - type: number
        name: age
        min: 18
        inputmode: numeric
      - type: select
        name: plan
        selection:
          free: Free
          pro: Pro
      - type: checkbox
        name: terms
        value: accept
  - type: arraygroup
    content:
      - type: text
        name: phone[]
        required: true
      - type: text
        name: kind[]
  - type: buttonbox
    buttons:
      submit: Save
`

func loadTree(t *testing.T, src string) *config.Node {
	t.Helper()
	tree, err := config.Load([]byte(src))
	if err != nil {
		t.Fatalf("load tree: %v", err)
	}
	return tree
}

func TestProfileFromTree(t *testing.T) {
	profile, err := ProfileFromTree(loadTree(t, signupTree))
	if err != nil {
		t.Fatalf("profile: %v", err)
	}

	type summary struct {
		Name        string
		Required    bool
		Array       bool
		Constraints []string
	}
	var got []summary
	for _, f := range profile.Fields {
		s := summary{Name: f.Name, Required: f.Required, Array: f.Array}
		for _, c := range f.Constraints {
			s.Constraints = append(s.Constraints, c.Name())
		}
		got = append(got, s)
	}
	want := []summary{
		{Name: "mail", Required: true, Constraints: []string{"email"}},
		{Name: "nick", Constraints: []string{"length"}},
		{Name: "zip", Constraints: []string{"pattern"}},
		{Name: "age", Constraints: []string{"integer"}},
		{Name: "plan", Constraints: []string{"set"}},
		{Name: "terms", Constraints: []string{"set"}},
		{Name: "phone", Required: true, Array: true},
		{Name: "kind", Array: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]string{{"phone", "kind"}}, profile.Dependencies); diff != "" {
		t.Fatalf("dependencies mismatch (-want +got):\n%s", diff)
	}
}

func TestProfileFromTreeRejectsBadPattern(t *testing.T) {
	tree := loadTree(t, "content:\n  - type: text\n    name: x\n    pattern: \"[\"\n")
	if _, err := ProfileFromTree(tree); err == nil {
		t.Fatalf("expected pattern compile error")
	}
}

func TestCheckValid(t *testing.T) {
	v, err := FromTree(loadTree(t, signupTree))
	if err != nil {
		t.Fatalf("validator: %v", err)
	}
	state, ok := v.Check(map[string]any{
		"mail":  "ann@example.com",
		"nick":  "annie",
		"zip":   "12345",
		"age":   "30",
		"plan":  "pro",
		"terms": "accept",
		"phone": []any{"555-1", "555-2", ""},
		"kind":  []any{"home", "work"},
	})
	if !ok {
		t.Fatalf("expected valid submission, errors: %v", state.Errors)
	}
	if len(state.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", state.Errors)
	}
	if diff := cmp.Diff([]any{"555-1", "555-2"}, state.Values["phone"]); diff != "" {
		t.Fatalf("trailing empty entries not trimmed (-want +got):\n%s", diff)
	}
	for name, valid := range state.Valid {
		if !valid {
			t.Fatalf("field %q marked invalid", name)
		}
	}
}

func TestCheckReportsFirstFailure(t *testing.T) {
	v, err := FromTree(loadTree(t, signupTree))
	if err != nil {
		t.Fatalf("validator: %v", err)
	}
	state, ok := v.Check(map[string]any{
		"mail":  "",
		"nick":  "ab",
		"zip":   "1234x",
		"age":   "17",
		"plan":  "gold",
		"terms": "no",
		"phone": []any{"555-1"},
		"kind":  []any{"home"},
	})
	if ok {
		t.Fatalf("expected invalid submission")
	}
	want := map[string]any{
		"mail":  DefaultMessages[MsgMissing],
		"nick":  DefaultMessages["length"],
		"zip":   DefaultMessages["pattern"],
		"age":   DefaultMessages["integer"],
		"plan":  DefaultMessages["set"],
		"terms": DefaultMessages["set"],
	}
	if diff := cmp.Diff(want, state.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if state.Valid["mail"] || !state.Valid["phone"] {
		t.Fatalf("unexpected validity: %v", state.Valid)
	}
}

func TestCheckArrayAndMissing(t *testing.T) {
	v, err := FromTree(loadTree(t, signupTree))
	if err != nil {
		t.Fatalf("validator: %v", err)
	}
	state, _ := v.Check(map[string]any{
		"mail":  []any{"a@example.com"},
		"phone": []any{""},
	})
	if got := state.Errors["mail"]; got != DefaultMessages[MsgArray] {
		t.Fatalf("mail error = %v, want array message", got)
	}
	if got := state.Errors["phone"]; got != DefaultMessages[MsgMissing] {
		t.Fatalf("phone error = %v, want missing message", got)
	}
}

func TestCheckDependencies(t *testing.T) {
	v, err := FromTree(loadTree(t, signupTree))
	if err != nil {
		t.Fatalf("validator: %v", err)
	}
	state, ok := v.Check(map[string]any{
		"mail":  "a@example.com",
		"phone": []any{"1", "2"},
		"kind":  []any{"home"},
	})
	if ok {
		t.Fatalf("expected dependency mismatch")
	}
	if diff := cmp.Diff(map[string]any{"kind": DefaultMessages[MsgDependencies]}, state.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestWithMessages(t *testing.T) {
	profile := &Profile{}
	profile.Add(Field{Name: "a", Required: true})
	profile.Constrain("b", Func("even", func(s string) bool { return len(s)%2 == 0 }))
	profile.Constrain("c", Set("x"))

	catalog := labels.NewCatalog(map[string]string{
		"error.missing": "Pflichtfeld",
		"error.invalid": "Ungültig",
	})
	state, _ := New(profile, WithMessages(catalog)).Check(map[string]any{"b": "y", "c": "y"})
	want := map[string]any{"a": "Pflichtfeld", "b": "Ungültig", "c": DefaultMessages["set"]}
	if diff := cmp.Diff(want, state.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestConstraints(t *testing.T) {
	lo, hi := 1.5, 3.0
	cases := []struct {
		name  string
		c     Constraint
		value string
		want  bool
	}{
		{"email ok", Email(), "a.b@example.org", true},
		{"email bad", Email(), "a@b", false},
		{"length runes", Length(2, 2), "äö", true},
		{"length short", Length(3, -1), "ab", false},
		{"number in range", Number(&lo, &hi), "2.25", true},
		{"number above", Number(&lo, &hi), "3.5", false},
		{"number text", Number(nil, nil), "abc", false},
		{"integer", Integer(nil, nil), "42", true},
		{"integer fraction", Integer(nil, nil), "4.2", false},
		{"set", Set("a", "b"), "b", true},
		{"set miss", Set("a", "b"), "c", false},
		{"func", Func("even", func(s string) bool { return len(s)%2 == 0 }), "ab", true},
	}
	for _, tc := range cases {
		if got := tc.c.Validate(tc.value); got != tc.want {
			t.Errorf("%s: Validate(%q) = %v, want %v", tc.name, tc.value, got, tc.want)
		}
	}
}

func TestMapErrors(t *testing.T) {
	tree := loadTree(t, signupTree)
	mapping := MapErrors(tree, map[string][]string{
		"/body/mail":    {" invalid address ", "invalid address"},
		"data.phone[1]": {"bad number"},
		"account.nick":  {"taken"},
		"__all__":       {"try again"},
		"unknown.path":  {"lost"},
		"zip":           {"  "},
	})

	wantFields := map[string][]string{
		"mail":  {"invalid address"},
		"phone": {"bad number"},
		"nick":  {"taken"},
	}
	if diff := cmp.Diff(wantFields, mapping.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	form := map[string]bool{}
	for _, msg := range mapping.Form {
		form[msg] = true
	}
	if diff := cmp.Diff(map[string]bool{"try again": true, "lost": true}, form); diff != "" {
		t.Fatalf("form messages mismatch (-want +got):\n%s", diff)
	}

	state := mapping.State()
	if state.Errors["mail"] != "invalid address" || state.Valid["mail"] {
		t.Fatalf("unexpected state: %+v", state)
	}
}

func TestMapErrorsEmpty(t *testing.T) {
	mapping := MapErrors(nil, nil)
	if len(mapping.Fields) != 0 || len(mapping.Form) != 0 {
		t.Fatalf("expected empty mapping, got %+v", mapping)
	}
}
