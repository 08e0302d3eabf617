package labels

import (
	"errors"
	"strings"
)

// ErrMissingTranslator is passed to the missing handler when no translator is
// configured.
var ErrMissingTranslator = errors.New("labels: translator not configured")

// Translator resolves localized strings.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingHandler decides the caption when a translation is unavailable.
type MissingHandler func(locale, key string, err error) string

// Translated adapts a Translator into a Labeler for one locale.
type Translated struct {
	Translator Translator
	Locale     string
	OnMissing  MissingHandler
}

// Get implements Labeler.
func (t Translated) Get(key, category string) string {
	qualified := Key(key, category)
	if strings.TrimSpace(key) == "" {
		return key
	}
	if t.Translator == nil {
		return t.missing(qualified, key, ErrMissingTranslator)
	}
	msg, err := t.Translator.Translate(t.Locale, qualified)
	if err == nil && strings.TrimSpace(msg) != "" {
		return msg
	}
	return t.missing(qualified, key, err)
}

func (t Translated) missing(qualified, key string, err error) string {
	if t.OnMissing != nil {
		return t.OnMissing(t.Locale, qualified, err)
	}
	return key
}
