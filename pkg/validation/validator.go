package validation

import (
	"github.com/goliatone/go-formprinter/pkg/config"
	"github.com/goliatone/go-formprinter/pkg/labels"
	"github.com/goliatone/go-formprinter/pkg/markup"
	"github.com/goliatone/go-formprinter/pkg/printer"
)

// CategoryError is the label category of validation messages.
const CategoryError = "error"

// Message keys reported besides constraint names.
const (
	MsgMissing      = "missing"
	MsgArray        = "array"
	MsgDependencies = "dependencies"
	MsgInvalid      = "invalid"
)

// DefaultMessages are used when no message labeler is configured.
var DefaultMessages = map[string]string{
	MsgMissing:      "This field is required.",
	MsgArray:        "A single value is expected.",
	MsgDependencies: "The rows of this group are incomplete.",
	MsgInvalid:      "The value is invalid.",
	"length":        "The length is out of range.",
	"pattern":       "The value has an invalid format.",
	"email":         "Please enter a valid e-mail address.",
	"number":        "Please enter a number in range.",
	"integer":       "Please enter a whole number in range.",
	"set":           "Please choose one of the offered values.",
}

// Option configures a Validator.
type Option func(*Validator)

// WithMessages resolves message keys in CategoryError. Keys the labeler
// resolves to themselves fall back to DefaultMessages.
func WithMessages(l labels.Labeler) Option {
	return func(v *Validator) {
		if l != nil {
			v.messages = l
		}
	}
}

// Validator checks submitted data against a Profile.
type Validator struct {
	profile  *Profile
	messages labels.Labeler
}

// New returns a Validator for profile.
func New(profile *Profile, opts ...Option) *Validator {
	if profile == nil {
		profile = &Profile{}
	}
	v := &Validator{profile: profile}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// FromTree derives the profile from tree and returns its Validator.
func FromTree(tree *config.Node, opts ...Option) (*Validator, error) {
	profile, err := ProfileFromTree(tree)
	if err != nil {
		return nil, err
	}
	return New(profile, opts...), nil
}

// Check validates data and reports whether every field passed. The returned
// state carries the submitted values with trailing empty array entries
// removed, a message per failed field and the validity of every profiled
// field. Checking stops at the first mismatched dependency group.
func (v *Validator) Check(data map[string]any) (printer.State, bool) {
	state := printer.State{
		Values: make(map[string]any, len(data)),
		Errors: make(map[string]any),
		Valid:  make(map[string]bool, len(v.profile.Fields)),
	}
	for key, value := range data {
		state.Values[key] = trimTrailing(value)
	}

	ok := true
	for _, field := range v.profile.Fields {
		if key := v.checkField(field, state.Values[field.Name]); key != "" {
			state.Errors[field.Name] = v.message(key)
			state.Valid[field.Name] = false
			ok = false
			continue
		}
		state.Valid[field.Name] = true
	}

	for _, group := range v.profile.Dependencies {
		if name, mismatch := v.checkGroup(group, state.Values); mismatch {
			state.Errors[name] = v.message(MsgDependencies)
			state.Valid[name] = false
			ok = false
			break
		}
	}
	return state, ok
}

func (v *Validator) checkField(field Field, value any) string {
	items, isArray := asSlice(value)
	if isArray && !field.Array {
		return MsgArray
	}
	if !isArray {
		items = []any{value}
	}
	if len(items) == 0 && field.Required {
		return MsgMissing
	}
	for _, item := range items {
		s := markup.Stringify(item)
		if s == "" {
			if field.Required {
				return MsgMissing
			}
			continue
		}
		for _, c := range field.Constraints {
			if !c.Validate(s) {
				return c.Name()
			}
		}
	}
	return ""
}

// checkGroup returns the first field whose value count differs from the
// first field of the group.
func (v *Validator) checkGroup(group []string, values map[string]any) (string, bool) {
	want := -1
	for _, name := range group {
		n := count(values[name])
		if want < 0 {
			want = n
			continue
		}
		if n != want {
			return name, true
		}
	}
	return "", false
}

// message resolves key, then MsgInvalid, in the configured labeler and then
// in the defaults.
func (v *Validator) message(key string) string {
	for _, k := range []string{key, MsgInvalid} {
		if v.messages != nil {
			if msg := v.messages.Get(k, CategoryError); msg != "" && msg != k {
				return msg
			}
		}
		if msg, ok := DefaultMessages[k]; ok {
			return msg
		}
	}
	return key
}

func count(value any) int {
	if items, ok := asSlice(value); ok {
		return len(items)
	}
	if markup.Stringify(value) == "" {
		return 0
	}
	return 1
}

func trimTrailing(value any) any {
	items, ok := asSlice(value)
	if !ok {
		return value
	}
	end := len(items)
	for end > 0 && markup.Stringify(items[end-1]) == "" {
		end--
	}
	return items[:end]
}

func asSlice(v any) ([]any, bool) {
	switch val := v.(type) {
	case []any:
		return val, true
	case []string:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}
