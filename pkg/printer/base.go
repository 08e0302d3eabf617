package printer

import (
	"fmt"

	"github.com/goliatone/go-formprinter/pkg/config"
	"github.com/goliatone/go-formprinter/pkg/ids"
	"github.com/goliatone/go-formprinter/pkg/labels"
	"github.com/goliatone/go-formprinter/pkg/markup"
)

// info is the per-variant metadata every node must resolve.
type info struct {
	tag       string
	prefix    string
	hasPrefix bool
}

func withPrefix(tag, prefix string) info {
	return info{tag: tag, prefix: prefix, hasPrefix: true}
}

// node is the shared state of a variant under construction: the element being
// built and the recognized parameters split off the configuration.
type node struct {
	b      *Builder
	el     *markup.Element
	params map[string]any
}

// parse splits cfg into parameters and markup attributes on top of defaults,
// resolves the variant metadata, assigns the id and the default label. Leaf
// content entries of cfg become element content.
func (b *Builder) parse(cfg *config.Node, defaults []attr, resolve func(params map[string]any) info) (*node, error) {
	n := &node{b: b, el: markup.NewElement(""), params: make(map[string]any)}
	for _, d := range defaults {
		n.el.Set(d.key, d.value)
	}
	for _, key := range cfg.Keys() {
		value, _ := cfg.Get(key)
		if paramSet[key] {
			n.params[key] = value
			continue
		}
		n.el.Set(key, value)
	}

	content, err := b.entries(cfg.Children(), false)
	if err != nil {
		return nil, err
	}
	n.el.Append(content...)

	meta := resolve(n.params)
	if meta.tag == "" {
		name, _ := n.rawName()
		return nil, fmt.Errorf("%w: no tag for type %q (name %q)", ErrMissingMetadata, cfg.Type(), name)
	}
	n.el.Tag = meta.tag

	if name, ok := n.rawName(); ok {
		if mgr := n.ids(); mgr != nil && meta.hasPrefix {
			n.el.Set("id", mgr.CreateID(meta.prefix+name))
		}
		if _, ok := n.params[ParamLabel]; !ok {
			n.params[ParamLabel] = b.labels.Get(CanonicalName(name), labels.CategoryField)
		}
	}
	return n, nil
}

// rawName returns the declared name including any array marker.
func (n *node) rawName() (string, bool) {
	v, ok := n.params[ParamName]
	if !ok || v == nil {
		return "", false
	}
	return markup.Stringify(v), true
}

// name returns the canonical field name.
func (n *node) name() string {
	raw, _ := n.rawName()
	return CanonicalName(raw)
}

func (n *node) ids() *ids.Manager {
	return idManager(n.params[ParamIDs])
}

func (n *node) label() string {
	return markup.Stringify(n.params[ParamLabel])
}

func (n *node) param(key string) string {
	return markup.Stringify(n.params[key])
}

// value looks the field up in the per-field map stored under key. Single
// element arrays are unwrapped.
func (n *node) value(key string) any {
	m, ok := asMap(n.params[key])
	if !ok {
		return nil
	}
	v, ok := m[n.name()]
	if !ok {
		return nil
	}
	if s, ok := asSlice(v); ok && len(s) == 1 {
		return s[0]
	}
	return v
}

func (n *node) id() string {
	return n.el.ID()
}

func appendClass(el *markup.Element, class string) {
	existing, _ := el.Attr("class")
	if s := markup.Stringify(existing); s != "" {
		class = s + " " + class
	}
	el.Set("class", class)
}
