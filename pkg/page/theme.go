package page

import (
	"fmt"
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ConfigFromManifest flattens a manifest and one of its variants into the
// renderer configuration a page consumes. Variant tokens, templates and
// asset files override the base ones. Every token also becomes a "--name"
// CSS variable.
func ConfigFromManifest(m *theme.Manifest, variant string) (*theme.RendererConfig, error) {
	if m == nil {
		return nil, fmt.Errorf("page: theme manifest is nil")
	}

	tokens := copyStrings(m.Tokens)
	partials := copyStrings(m.Templates)
	files := copyStrings(m.Assets.Files)
	prefix := m.Assets.Prefix

	if variant != "" {
		v, ok := m.Variants[variant]
		if !ok {
			return nil, fmt.Errorf("page: theme %q has no variant %q", m.Name, variant)
		}
		merge(tokens, v.Tokens)
		merge(partials, v.Templates)
		merge(files, v.Assets.Files)
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	}

	vars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		vars["--"+key] = value
	}

	return &theme.RendererConfig{
		Theme:    m.Name,
		Variant:  variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  vars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok {
				return ""
			}
			if strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
				return file
			}
			return path.Join(prefix, file)
		},
	}, nil
}

// CSSVarsStyle renders vars as sorted "name: value;" declarations.
func CSSVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+vars[key]+";")
	}
	return strings.Join(parts, " ")
}

func copyStrings(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func merge(dst, src map[string]string) {
	for k, v := range src {
		dst[k] = v
	}
}
