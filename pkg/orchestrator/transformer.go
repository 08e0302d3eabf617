package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formprinter/pkg/config"
)

// Transformer mutates a configuration tree before it is rendered.
type Transformer interface {
	Transform(ctx context.Context, tree *config.Node) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, tree *config.Node) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, tree *config.Node) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, tree)
}

// PresetTransformer applies declarative overrides loaded from YAML. Root
// attributes are set on the form and fields are patched by name:
//
//	root:
//	  class: signup
//	fields:
//	  mail:
//	    label: E-Mail
//	    type: textarea
//	    set: {placeholder: you@example.com}
//	    unset: [maxlength]
//	    remove: false
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Root   map[string]any         `yaml:"root"`
	Fields map[string]fieldPatch `yaml:"fields"`
}

type fieldPatch struct {
	Label  string         `yaml:"label"`
	Type   string         `yaml:"type"`
	Rename string         `yaml:"rename"`
	Set    map[string]any `yaml:"set"`
	Unset  []string       `yaml:"unset"`
	Remove bool           `yaml:"remove"`
}

// NewPresetTransformer constructs a transformer from raw YAML (or JSON) bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the patches. A patch naming a missing field fails.
func (t *PresetTransformer) Transform(ctx context.Context, tree *config.Node) error {
	if tree == nil {
		return errors.New("preset transformer: tree is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, key := range sortedKeys(t.document.Root) {
		tree.Set(key, t.document.Root[key])
	}

	names := make([]string, 0, len(t.document.Fields))
	for name := range t.document.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		pos := tree.Children().Find(name)
		if !pos.Valid() || pos.Node() == nil {
			return fmt.Errorf("preset transformer: field %q: %w", name, config.ErrNotFound)
		}
		patch := t.document.Fields[name]
		if patch.Remove {
			if _, err := tree.Children().Remove(pos); err != nil {
				return fmt.Errorf("preset transformer: remove %q: %w", name, err)
			}
			continue
		}
		applyPatch(pos.Node(), patch)
	}
	return nil
}

func applyPatch(field *config.Node, patch fieldPatch) {
	if patch.Label != "" {
		field.Set("label", patch.Label)
	}
	if patch.Type != "" {
		field.Set("type", patch.Type)
	}
	for _, key := range sortedKeys(patch.Set) {
		field.Set(key, patch.Set[key])
	}
	for _, key := range patch.Unset {
		field.Delete(key)
	}
	if rename := strings.TrimSpace(patch.Rename); rename != "" {
		field.Set("name", rename)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
