package markup

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans untrusted markup fragments before they are inserted as Raw.
type Sanitizer interface {
	Sanitize(raw string) string
}

// SanitizerFunc adapts a function to Sanitizer.
type SanitizerFunc func(raw string) string

// Sanitize implements Sanitizer.
func (f SanitizerFunc) Sanitize(raw string) string { return f(raw) }

var (
	fragmentPolicyOnce sync.Once
	fragmentPolicy     *bluemonday.Policy
)

// DefaultSanitizer returns the shared policy used for configuration-supplied
// markup: user generated content plus class and id attributes.
func DefaultSanitizer() Sanitizer {
	return SanitizerFunc(func(raw string) string {
		return strings.TrimSpace(fragmentSanitizer().Sanitize(raw))
	})
}

// Sanitize cleans raw with the default policy and returns it as Raw markup.
func Sanitize(raw string) Raw {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return Raw(DefaultSanitizer().Sanitize(trimmed))
}

func fragmentSanitizer() *bluemonday.Policy {
	fragmentPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class", "id").Globally()
		policy.AllowElements("span", "div", "small", "strong", "em")
		fragmentPolicy = policy
	})
	return fragmentPolicy
}
