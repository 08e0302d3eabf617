package printer

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formprinter/pkg/config"
	"github.com/goliatone/go-formprinter/pkg/markup"
)

func elementInfo(params map[string]any) info {
	tag := markup.Stringify(params[ParamTag])
	if tag == "" {
		tag = "p"
	}
	return withPrefix(tag, "Box")
}

// element builds the composite wrapper: label, optional error span, the inner
// control and, when the control is disabled, a hidden copy of its value.
func (b *Builder) element(cfg *config.Node) (*node, error) {
	selection, _ := cfg.Take(keySelection)
	children := cfg.Detach()

	n, err := b.parse(cfg, nil, elementInfo)
	if err != nil {
		return nil, err
	}

	inner := config.NewNode()
	n.el.Attrs.Range(func(key string, value any) {
		if key == "id" {
			return
		}
		inner.Set(key, value)
	})
	for _, key := range elementInherit {
		if v, ok := n.params[key]; ok && v != nil {
			inner.Set(key, v)
		}
	}
	inner.SetChildren(children)

	var control *node
	if pairs, ok := config.ToPairs(selection); ok && len(pairs) > 0 {
		inner.Set(keySelection, pairs)
		control, err = b.atomicContainer(inner)
	} else {
		control, err = b.atomic(inner, atomicOptions{})
	}
	if err != nil {
		return nil, err
	}

	label := markup.NewElement("label", markup.Text(n.label()))
	if id := control.id(); id != "" {
		label.Set("for", id)
	}

	wrapperID := n.id()
	existing, _ := n.el.Attr("class")
	n.el.Attrs = markup.NewAttrs()
	if wrapperID != "" {
		n.el.Set("id", wrapperID)
	}
	if class := joinClass(n.param(ParamType), markup.Stringify(existing)); class != "" {
		n.el.Set("class", class)
	}

	n.el.Append(label)
	if truthy(n.value(ParamInvalid)) {
		msg := markup.NewElement("span", markup.Text(markup.Stringify(n.value(ParamErrMsg))))
		msg.Set("class", "error")
		n.el.Append(msg)
	}
	n.el.Append(control.el)

	if disabled, _ := control.el.Attr("disabled"); truthy(disabled) {
		hidden := config.NewNode().
			Set(ParamType, "hidden").
			Set(ParamName, n.params[ParamName]).
			Set(ParamValues, n.params[ParamValues])
		h, err := b.atomic(hidden, atomicOptions{})
		if err != nil {
			return nil, err
		}
		n.el.Append(h.el)
	}

	n.el.OmitWhenEmpty = true
	return n, nil
}

func buildElement(b *Builder, cfg *config.Node) (markup.Node, error) {
	n, err := b.element(cfg)
	if err != nil {
		return nil, err
	}
	return n.el, nil
}

// buildCheckbox marks the box checked when its declared value matches the
// bound value (or any element of a bound array) and then builds an element
// without value binding.
func buildCheckbox(b *Builder, cfg *config.Node) (markup.Node, error) {
	name := CanonicalName(cfg.String(ParamName))
	declared, hasDeclared := cfg.Get("value")
	values, _ := cfg.Get(ParamValues)

	if hasDeclared && declared != nil {
		if m, ok := asMap(values); ok {
			if bound, ok := m[name]; ok && bound != nil {
				want := markup.Stringify(declared)
				checked := false
				if items, ok := asSlice(bound); ok {
					checked = stringSet(items)[want]
				} else {
					checked = markup.Stringify(bound) == want
				}
				if checked {
					cfg.Set("checked", "checked")
				}
			}
		}
	}
	cfg.Set(ParamValues, map[string]any{})
	return buildElement(b, cfg)
}

// buildFile renders a file input. A bound path travels along as a hidden
// field; a fixed field shows only that hidden field.
func buildFile(b *Builder, cfg *config.Node) (markup.Node, error) {
	values, _ := cfg.Take(ParamValues)
	cfg.Set(ParamType, "file")

	n, err := b.element(cfg)
	if err != nil {
		return nil, err
	}

	raw, _ := n.rawName()
	var current any
	if m, ok := asMap(values); ok {
		current = m[CanonicalName(raw)]
	}
	if items, ok := asSlice(current); ok {
		current = nil
		if len(items) > 0 {
			current = items[0]
		}
	}

	switch {
	case truthy(n.params[ParamFixed]) && truthy(current):
		hidden, err := b.hiddenControl(raw, current)
		if err != nil {
			return nil, err
		}
		n.el.Content = []markup.Node{hidden}
	case current != nil:
		hidden, err := b.hiddenControl(raw, current)
		if err != nil {
			return nil, err
		}
		n.el.Append(hidden)
	}
	n.el.Append(displayNodes(n.params[ParamDisplay])...)
	return n.el, nil
}

// buildButtonbox renders buttons back to back. A string value yields one
// button of that type; a mapping yields one named button per entry.
func buildButtonbox(b *Builder, cfg *config.Node) (markup.Node, error) {
	buttons, _ := cfg.Take(keyButtons)
	n, err := b.parse(cfg, nil, func(map[string]any) info { return withPrefix("div", "Box") })
	if err != nil {
		return nil, err
	}

	pairs, _ := config.ToPairs(buttons)
	for _, pair := range pairs {
		if caption, ok := pair.Value.(string); ok {
			btn, err := b.button(pair.Key, "", caption)
			if err != nil {
				return nil, err
			}
			n.el.Append(btn)
			continue
		}
		named, ok := config.ToPairs(pair.Value)
		if !ok {
			return nil, fmt.Errorf("%w: invalid value for %q in buttonbox", ErrMalformedInput, pair.Key)
		}
		for _, item := range named {
			btn, err := b.button(pair.Key, item.Key, markup.Stringify(item.Value))
			if err != nil {
				return nil, err
			}
			n.el.Append(btn)
		}
	}
	n.el.SkipWhitespace = true
	return n.el, nil
}

func joinClass(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
