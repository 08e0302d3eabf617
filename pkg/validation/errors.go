package validation

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formprinter/pkg/config"
	"github.com/goliatone/go-formprinter/pkg/printer"
)

// ErrorMapping splits a server error payload into per-field and form-level
// messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// State returns the mapping as printer state: the field messages joined by
// a space, each such field marked invalid.
func (m ErrorMapping) State() printer.State {
	state := printer.State{
		Errors: make(map[string]any, len(m.Fields)),
		Valid:  make(map[string]bool, len(m.Fields)),
	}
	for name, messages := range m.Fields {
		state.Errors[name] = strings.Join(messages, " ")
		state.Valid[name] = false
	}
	return state
}

// MapErrors normalises error paths (JSON pointers, dotted or bracketed paths,
// optionally wrapped in body/data/payload) onto the canonical field names of
// tree. Paths matching no field become form-level messages.
func MapErrors(tree *config.Node, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	if len(payload) == 0 {
		return mapping
	}

	names := make(map[string]struct{})
	if tree != nil {
		collectNames(tree.Children(), names)
	}

	for rawPath, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		name, formLevel := mapErrorPath(rawPath, names)
		if formLevel {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[name] = append(mapping.Fields[name], normalized...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func collectNames(list *config.List, dest map[string]struct{}) {
	for _, node := range list.Nodes() {
		typ := strings.ToLower(node.Type())
		if name, ok := node.Name(); ok && name != "" && !isContainer(typ) && !passive[typ] {
			dest[printer.CanonicalName(name)] = struct{}{}
		}
		collectNames(node.Children(), dest)
	}
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func mapErrorPath(raw string, names map[string]struct{}) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", true
	}
	segments := pathSegments(trimmed)
	if len(segments) == 0 {
		return "", true
	}

	best := ""
	for _, variant := range segmentVariants(segments) {
		for start := range variant {
			if name := longestMatch(variant[start:], names); len(name) > len(best) {
				best = name
			}
		}
	}
	if best == "" {
		return "", true
	}
	return best, false
}

func pathSegments(path string) []string {
	clean := strings.TrimLeft(path, "#$/.")
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)
	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

var wrappers = map[string]bool{
	"body":       true,
	"request":    true,
	"payload":    true,
	"data":       true,
	"attributes": true,
}

func segmentVariants(segments []string) [][]string {
	unwrapped := segments
	for len(unwrapped) > 0 && wrappers[strings.ToLower(unwrapped[0])] {
		unwrapped = unwrapped[1:]
	}
	return [][]string{
		segments,
		unwrapped,
		withoutIndexes(segments),
		withoutIndexes(unwrapped),
	}
}

func withoutIndexes(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func longestMatch(segments []string, names map[string]struct{}) string {
	for end := len(segments); end > 0; end-- {
		candidate := strings.Join(segments[:end], ".")
		if _, ok := names[candidate]; ok {
			return candidate
		}
	}
	return ""
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(key) {
	case "", ".", "/", "#", "$", "form", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
