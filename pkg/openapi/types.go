package openapi

import (
	"sort"
	"strings"
	"sync"
)

// Control types produced by the built-in matchers.
const (
	TypeFieldset   = "fieldset"
	TypeArrayGroup = "arraygroup"
	TypeSelect     = "select"
	TypeCheckbox   = "checkbox"
	TypeTextarea   = "textarea"
	TypePassword   = "password"
	TypeHidden     = "hidden"
	TypeFile       = "file"
	TypeText       = "text"
)

// TypeExtension overrides the resolved control type of a property.
const TypeExtension = "x-formprinter-type"

// Field is a property under consideration by the TypeRegistry.
type Field struct {
	Name     string
	Schema   Schema
	Required bool
}

// Matcher decides whether a control type applies to field.
type Matcher func(field Field) bool

type rule struct {
	typ      string
	priority int
	match    Matcher
	order    int
}

// TypeRegistry selects a printer type for each schema property. Higher
// priority wins; ties fall back to registration order.
type TypeRegistry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewTypeRegistry returns a registry with the built-in matchers.
func NewTypeRegistry() *TypeRegistry {
	r := &TypeRegistry{}
	r.registerBuiltins()
	return r
}

// Register adds a matcher for typ.
func (r *TypeRegistry) Register(typ string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{typ: typ, priority: priority, match: matcher, order: len(r.rules)})
}

// Resolve returns the control type for field. An x-formprinter-type extension
// is honoured before any matcher runs.
func (r *TypeRegistry) Resolve(field Field) (string, bool) {
	if explicit, ok := field.Schema.Extensions[TypeExtension].(string); ok && explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.typ, true
		}
	}
	return "", false
}

func (r *TypeRegistry) registerBuiltins() {
	r.Register(TypeFieldset, 100, func(f Field) bool {
		return f.Schema.Type == "object" && len(f.Schema.Properties) > 0
	})
	r.Register(TypeArrayGroup, 90, func(f Field) bool {
		return f.Schema.Type == "array" && f.Schema.Items != nil && isScalar(*f.Schema.Items)
	})
	r.Register(TypeHidden, 85, func(f Field) bool {
		return f.Schema.ReadOnly && isScalar(f.Schema)
	})
	r.Register(TypeSelect, 80, func(f Field) bool {
		return len(f.Schema.Enum) > 0
	})
	r.Register(TypeCheckbox, 70, func(f Field) bool {
		return f.Schema.Type == "boolean"
	})
	r.Register(TypeFile, 65, func(f Field) bool {
		return f.Schema.Type == "string" && f.Schema.Format == "binary"
	})
	r.Register(TypeTextarea, 60, func(f Field) bool {
		if f.Schema.Type != "string" {
			return false
		}
		return f.Schema.Format == "textarea" || (f.Schema.MaxLength != nil && *f.Schema.MaxLength > 255)
	})
	r.Register(TypePassword, 50, func(f Field) bool {
		return f.Schema.Format == "password"
	})
	r.Register(TypeText, 0, func(f Field) bool {
		return isScalar(f.Schema)
	})
}

func isScalar(s Schema) bool {
	switch s.Type {
	case "string", "integer", "number", "boolean":
		return true
	}
	return false
}
