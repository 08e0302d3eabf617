package printer

import (
	"fmt"

	"github.com/goliatone/go-formprinter/pkg/config"
	"github.com/goliatone/go-formprinter/pkg/labels"
	"github.com/goliatone/go-formprinter/pkg/markup"
)

// template is one child of an array group, prepared for per-row cloning.
type template struct {
	cfg     *config.Node
	factory Factory
	split   map[string][]any
}

// arrayGroup repeats its child templates once per bound array index, plus one
// empty row when addempty is set. Every row is wrapped in an <li>.
func (b *Builder) arrayGroup(cfg *config.Node, resolve func(map[string]any) info) (*node, error) {
	addEmpty := true
	if v, ok := cfg.Take(keyAddEmpty); ok {
		addEmpty = truthy(v)
	}
	children := cfg.Detach()
	if !cfg.Has(ParamName) {
		cfg.Set(ParamName, nil)
	}

	n, err := b.parse(cfg, nil, resolve)
	if err != nil {
		return nil, err
	}

	ctx := make(map[string]any, len(containerInherit))
	for _, key := range containerInherit {
		v := n.params[key]
		if m, ok := asMap(v); ok {
			v = cloneLookup(m)
		}
		ctx[key] = v
	}

	names := newFieldNames()
	length := 0
	collectNames(children, names, func(canonical string) {
		for _, key := range boundKeys {
			m, _ := ctx[key].(map[string]any)
			if s, ok := asSlice(m[canonical]); ok && len(s) > length {
				length = len(s)
			}
		}
	})
	for _, canonical := range names.padded {
		for _, key := range boundKeys {
			m, _ := ctx[key].(map[string]any)
			if s, ok := asSlice(m[canonical]); ok && len(s) < length {
				padded := make([]any, length)
				copy(padded, s)
				for i := len(s); i < length; i++ {
					padded[i] = ""
				}
				m[canonical] = padded
			}
		}
	}

	templates, err := b.templates(children)
	if err != nil {
		return nil, err
	}

	rows := length
	if addEmpty {
		rows++
	}
	groupName, _ := n.rawName()
	for idx := 0; idx < rows; idx++ {
		li := markup.NewElement("li")
		if mgr := n.ids(); mgr != nil {
			li.Set("id", mgr.CreateID("Entry"+groupName+"[]"))
		}
		for _, tpl := range templates {
			sub, ok := tpl.row(idx)
			if !ok {
				continue
			}
			for _, key := range containerInherit {
				sub.Set(key, rowValue(sub, ctx[key], names, idx))
			}
			el, err := tpl.factory(b, sub)
			if err != nil {
				return nil, err
			}
			li.Append(el)
		}
		n.el.Append(li)
	}

	b.recorder.ObserveRows(b.ctx, groupName, rows)
	b.logger.Debug("printer: array group expanded", "name", groupName, "rows", rows, "fields", len(names.all))
	return n, nil
}

// templates validates the group children and resolves their factories. Array
// valued split properties are taken off the template.
func (b *Builder) templates(children *config.List) ([]template, error) {
	out := make([]template, 0, children.Len())
	for _, entry := range children.Content() {
		cfg, ok := entry.(*config.Node)
		if !ok {
			return nil, fmt.Errorf("%w: array group content must be element descriptions", ErrMalformedInput)
		}
		tpl := template{cfg: cfg, split: make(map[string][]any)}
		for _, key := range splitKeys {
			v, ok := cfg.Get(key)
			if !ok {
				continue
			}
			if s, ok := asSlice(v); ok {
				cfg.Delete(key)
				tpl.split[key] = s
			}
		}
		typ := cfg.Type()
		if typ == "" {
			name, _ := cfg.Name()
			return nil, fmt.Errorf("%w (name %q)", ErrMissingType, name)
		}
		factory, err := b.resolve(typ)
		if err != nil {
			return nil, err
		}
		tpl.factory = factory
		out = append(out, tpl)
	}
	return out, nil
}

// row clones the template for index idx. It reports false once a split
// property has no entry left for idx.
func (t template) row(idx int) (*config.Node, bool) {
	sub := t.cfg.Clone()
	for _, key := range splitKeys {
		values, ok := t.split[key]
		if !ok {
			continue
		}
		if idx >= len(values) {
			return nil, false
		}
		sub.Set(key, values[idx])
	}
	return sub, true
}

// rowValue selects the slice of a per-field lookup that belongs to row idx.
func rowValue(sub *config.Node, v any, names *fieldNames, idx int) any {
	lookup, ok := v.(map[string]any)
	if !ok {
		return v
	}
	out := make(map[string]any, len(names.all))
	checkbox := sub.Type() == "checkbox"
	for _, name := range names.all {
		value, ok := lookup[name]
		switch s, isSlice := asSlice(value); {
		case !ok || value == nil:
			out[name] = nil
		case !isSlice || checkbox:
			out[name] = value
		case idx >= len(s):
			out[name] = ""
		default:
			out[name] = s[idx]
		}
	}
	return out
}

type fieldNames struct {
	seen   map[string]bool
	all    []string
	padded []string
}

func newFieldNames() *fieldNames {
	return &fieldNames{seen: make(map[string]bool)}
}

func (f *fieldNames) add(canonical string, pad bool) {
	if f.seen[canonical] {
		return
	}
	f.seen[canonical] = true
	f.all = append(f.all, canonical)
	if pad {
		f.padded = append(f.padded, canonical)
	}
}

// collectNames walks the templates recursively and records every field name.
// Checkboxes do not take part in length alignment and are not descended into.
func collectNames(list *config.List, names *fieldNames, measure func(canonical string)) {
	for _, sub := range list.Nodes() {
		if raw, ok := sub.Name(); ok {
			canonical := CanonicalName(raw)
			if sub.Type() == "checkbox" {
				names.add(canonical, false)
				continue
			}
			names.add(canonical, true)
			measure(canonical)
		}
		collectNames(sub.Children(), names, measure)
	}
}

func cloneLookup(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = config.CloneValue(v)
	}
	return out
}

func buildArrayGroup(b *Builder, cfg *config.Node) (markup.Node, error) {
	n, err := b.arrayGroup(cfg, func(map[string]any) info { return withPrefix("ul", "Group") })
	if err != nil {
		return nil, err
	}
	return n.el, nil
}

// buildTable prints an array group as a table: one header cell per template
// and one row per index, without the trailing empty row.
func buildTable(b *Builder, cfg *config.Node) (markup.Node, error) {
	head := markup.NewElement("tr")
	for _, tpl := range cfg.Children().Nodes() {
		caption, ok := tpl.Get(ParamLabel)
		if !ok || caption == nil {
			raw, _ := tpl.Name()
			caption = b.labels.Get(CanonicalName(raw), labels.CategoryField)
		}
		head.Append(markup.NewElement("th", markup.Text(markup.Stringify(caption))))
	}
	cfg.Set(keyAddEmpty, false)

	n, err := b.arrayGroup(cfg, func(map[string]any) info { return withPrefix("table", "view") })
	if err != nil {
		return nil, err
	}
	body := markup.NewElement("tbody")
	for _, row := range n.el.Content {
		if el, ok := row.(*markup.Element); ok {
			el.Tag = "tr"
		}
		body.Append(row)
	}
	n.el.Content = []markup.Node{markup.NewElement("thead", head), body}
	return n.el, nil
}
