package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formprinter/pkg/markup"
)

// MarkupKey marks a content item holding pre-built HTML, e.g. `- html: "<hr>"`.
const MarkupKey = "html"

// LoadOption configures Load.
type LoadOption func(*loadConfig)

type loadConfig struct {
	sanitizer markup.Sanitizer
}

// WithSanitizer overrides the sanitizer applied to html content items. A nil
// sanitizer keeps the markup verbatim.
func WithSanitizer(s markup.Sanitizer) LoadOption {
	return func(cfg *loadConfig) {
		cfg.sanitizer = s
	}
}

// Load parses a YAML or JSON document into a node, keeping mapping order.
func Load(data []byte, opts ...LoadOption) (*Node, error) {
	cfg := &loadConfig{sanitizer: markup.DefaultSanitizer()}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, errors.New("config: document is empty")
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: document root must be a mapping", ErrMalformedInput)
	}
	return cfg.node(root)
}

// LoadFile reads and parses a configuration file from disk.
func LoadFile(path string, opts ...LoadOption) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	node, err := Load(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	return node, nil
}

// LoadFS reads and parses a configuration file from fsys.
func LoadFS(fsys fs.FS, name string, opts ...LoadOption) (*Node, error) {
	if fsys == nil {
		return nil, errors.New("config: filesystem is not configured")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", name, err)
	}
	node, err := Load(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", name, err)
	}
	return node, nil
}

func (c *loadConfig) node(m *yaml.Node) (*Node, error) {
	node := NewNode()
	for i := 0; i+1 < len(m.Content); i += 2 {
		key := m.Content[i].Value
		value := m.Content[i+1]
		if isNumericKey(key) {
			return nil, fmt.Errorf("%w: numeric key %q (line %d)", ErrMalformedInput, key, m.Content[i].Line)
		}
		switch {
		case key == ContentKey:
			list, err := c.list(value)
			if err != nil {
				return nil, err
			}
			node.SetChildren(list)
		case orderedKeys[key]:
			pairs, err := c.pairs(value)
			if err != nil {
				return nil, err
			}
			node.Set(key, pairs)
		default:
			var decoded any
			if err := value.Decode(&decoded); err != nil {
				return nil, fmt.Errorf("config: decode %q (line %d): %w", key, value.Line, err)
			}
			node.Set(key, decoded)
		}
	}
	return node, nil
}

func (c *loadConfig) list(v *yaml.Node) (*List, error) {
	switch v.Kind {
	case yaml.ScalarNode:
		if v.Tag == "!!null" {
			return NewList(), nil
		}
		return NewList(Text(v.Value)), nil
	case yaml.MappingNode:
		entry, err := c.entry(v)
		if err != nil {
			return nil, err
		}
		return NewList(entry), nil
	case yaml.SequenceNode:
		list := NewList()
		for _, item := range v.Content {
			var entry Entry
			switch item.Kind {
			case yaml.ScalarNode:
				entry = Text(item.Value)
			case yaml.MappingNode:
				e, err := c.entry(item)
				if err != nil {
					return nil, err
				}
				entry = e
			default:
				return nil, fmt.Errorf("%w: content item at line %d", ErrMalformedInput, item.Line)
			}
			list.items = append(list.items, entry)
		}
		return list, nil
	default:
		return nil, fmt.Errorf("%w: content at line %d", ErrMalformedInput, v.Line)
	}
}

func (c *loadConfig) entry(m *yaml.Node) (Entry, error) {
	if len(m.Content) == 2 && m.Content[0].Value == MarkupKey && m.Content[1].Kind == yaml.ScalarNode {
		raw := m.Content[1].Value
		if c.sanitizer != nil {
			raw = c.sanitizer.Sanitize(raw)
		}
		return Markup{Node: markup.Raw(raw)}, nil
	}
	return c.node(m)
}

func (c *loadConfig) pairs(v *yaml.Node) (Pairs, error) {
	switch v.Kind {
	case yaml.MappingNode:
		out := make(Pairs, 0, len(v.Content)/2)
		for i := 0; i+1 < len(v.Content); i += 2 {
			key := v.Content[i].Value
			item := v.Content[i+1]
			if item.Kind == yaml.MappingNode {
				nested, err := c.pairs(item)
				if err != nil {
					return nil, err
				}
				out = append(out, Pair{Key: key, Value: nested})
				continue
			}
			var decoded any
			if err := item.Decode(&decoded); err != nil {
				return nil, fmt.Errorf("config: decode %q (line %d): %w", key, item.Line, err)
			}
			out = append(out, Pair{Key: key, Value: decoded})
		}
		return out, nil
	case yaml.SequenceNode:
		out := make(Pairs, 0, len(v.Content))
		for i, item := range v.Content {
			var decoded any
			if err := item.Decode(&decoded); err != nil {
				return nil, fmt.Errorf("config: decode item %d (line %d): %w", i, item.Line, err)
			}
			out = append(out, Pair{Key: strconv.Itoa(i), Value: decoded})
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: expected mapping or sequence at line %d", ErrMalformedInput, v.Line)
	}
}
