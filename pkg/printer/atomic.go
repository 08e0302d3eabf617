package printer

import (
	"github.com/goliatone/go-formprinter/pkg/config"
	"github.com/goliatone/go-formprinter/pkg/labels"
	"github.com/goliatone/go-formprinter/pkg/markup"
)

type atomicOptions struct {
	// ignoreValues skips value binding; buttons carry their caption instead.
	ignoreValues bool
	// resolve overrides the default tag/prefix resolution.
	resolve func(params map[string]any) info
}

func atomicInfo(params map[string]any) info {
	tag := markup.Stringify(params[ParamTag])
	if v, ok := params[ParamPrefix]; ok && v != nil {
		return withPrefix(tag, markup.Stringify(v))
	}
	if prefix, ok := prefixByType[markup.Stringify(params[ParamType])]; ok {
		return withPrefix(tag, prefix)
	}
	return info{tag: tag}
}

// atomic builds a single control: it resolves the tag, applies the default
// attributes for the type or tag, copies the tag's parameter attributes and
// binds the current value.
func (b *Builder) atomic(cfg *config.Node, opts atomicOptions) (*node, error) {
	typ := cfg.Type()
	if v, ok := cfg.Get(ParamTag); !ok || v == nil {
		tag := "input"
		if tagFromType[typ] {
			tag = typ
		}
		cfg.Set(ParamTag, tag)
	}
	tag := cfg.String(ParamTag)

	defaults, ok := defaultAttrs[typ]
	if !ok {
		defaults = defaultAttrs[tag]
	}

	resolve := opts.resolve
	if resolve == nil {
		resolve = atomicInfo
	}
	n, err := b.parse(cfg, defaults, resolve)
	if err != nil {
		return nil, err
	}

	for _, key := range attrsByTag[n.el.Tag] {
		if v, ok := n.params[key]; ok && v != nil {
			n.el.Set(key, v)
		}
	}

	var value any
	if !opts.ignoreValues {
		value = n.value(ParamValues)
	}

	switch {
	case value != nil:
		if textContainers[n.el.Tag] {
			n.el.Append(markup.Text(markup.Stringify(value)))
		} else if n.el.Attrs.Has("value") {
			n.el.Set("value", markup.Stringify(value))
		}
		if truthy(n.params[ParamFixed]) && truthy(value) {
			n.el.Set("disabled", true)
			appendClass(n.el, "fixed")
		}
	case textContainers[n.el.Tag]:
		n.el.Append(markup.Text(""))
	}
	return n, nil
}

// atomicContainer builds a control with an option list. The option matching
// the bound value is always emitted, even when disabled.
func (b *Builder) atomicContainer(cfg *config.Node) (*node, error) {
	selection, _ := cfg.Take(keySelection)
	disabledKeys, _ := cfg.Take(keyDisabled)
	cfg.Set(ParamTag, cfg.Type())

	n, err := b.atomic(cfg, atomicOptions{})
	if err != nil {
		return nil, err
	}

	selected := markup.Stringify(n.value(ParamValues))
	excluded := stringSet(disabledKeys)
	disabled, _ := n.el.Attr("disabled")
	allDisabled := truthy(disabled)

	pairs, _ := config.ToPairs(selection)
	for _, pair := range pairs {
		isSelected := pair.Key == selected
		if (allDisabled || excluded[pair.Key]) && !isSelected {
			continue
		}
		option := markup.NewElement("option", markup.Text(markup.Stringify(pair.Value)))
		option.Set("value", pair.Key)
		if isSelected {
			option.Set("selected", true)
		}
		n.el.Append(option)
	}
	return n, nil
}

func buildAtomicNode(b *Builder, cfg *config.Node) (markup.Node, error) {
	n, err := b.atomic(cfg, atomicOptions{})
	if err != nil {
		return nil, err
	}
	return n.el, nil
}

func buildAtomicContainerNode(b *Builder, cfg *config.Node) (markup.Node, error) {
	n, err := b.atomicContainer(cfg)
	if err != nil {
		return nil, err
	}
	return n.el, nil
}

func buildHidden(b *Builder, cfg *config.Node) (markup.Node, error) {
	cfg.Set(ParamType, "hidden")
	return buildAtomicNode(b, cfg)
}

// buildSubmit prints a submit or reset button. An explicit label becomes the
// value attribute, looked up as a button caption.
func buildSubmit(b *Builder, cfg *config.Node) (markup.Node, error) {
	caption, hasCaption := cfg.Get(ParamLabel)
	n, err := b.atomic(cfg, atomicOptions{ignoreValues: true})
	if err != nil {
		return nil, err
	}
	if hasCaption && caption != nil {
		n.el.Set("value", b.labels.Get(markup.Stringify(caption), labels.CategoryButton))
	}
	return n.el, nil
}

func buildCell(b *Builder, cfg *config.Node) (markup.Node, error) {
	cfg.Set(ParamTag, "td")
	return buildAtomicNode(b, cfg)
}

// buildLabel prints read-only text: an optional "caption: " span, the bound
// value and the text parameter.
func buildLabel(b *Builder, cfg *config.Node) (markup.Node, error) {
	caption, hasCaption := cfg.Get(ParamLabel)
	if v, ok := cfg.Get(ParamTag); !ok || v == nil {
		cfg.Set(ParamTag, "p")
	}
	n, err := b.atomic(cfg, atomicOptions{
		resolve: func(params map[string]any) info {
			return withPrefix(markup.Stringify(params[ParamTag]), "Lbl")
		},
	})
	if err != nil {
		return nil, err
	}
	if hasCaption && caption != nil {
		span := markup.NewElement("span", markup.Text(markup.Stringify(caption)+": ")).Set("class", "label")
		n.el.Prepend(span)
	}
	if text, ok := n.params[ParamText]; ok && text != nil {
		n.el.Append(markup.Text(markup.Stringify(text)))
	}
	dropEmptyText(n.el)
	return n.el, nil
}

// hiddenControl builds an <input type="hidden"> carrying value under name.
func (b *Builder) hiddenControl(name string, value any) (*markup.Element, error) {
	cfg := config.NewNode().
		Set(ParamType, "hidden").
		Set(ParamName, name).
		Set("value", markup.Stringify(value))
	n, err := b.atomic(cfg, atomicOptions{})
	if err != nil {
		return nil, err
	}
	return n.el, nil
}

// button builds a bare input button for a button box.
func (b *Builder) button(typ, name, caption string) (*markup.Element, error) {
	cfg := config.NewNode().Set(ParamType, typ)
	if name != "" {
		cfg.Set(ParamName, name)
	}
	cfg.Set("value", b.labels.Get(caption, labels.CategoryButton))
	n, err := b.atomic(cfg, atomicOptions{ignoreValues: true})
	if err != nil {
		return nil, err
	}
	return n.el, nil
}

// dropEmptyText removes empty text placeholders once other content exists.
func dropEmptyText(el *markup.Element) {
	if len(el.Content) < 2 {
		return
	}
	kept := el.Content[:0]
	for _, c := range el.Content {
		if t, ok := c.(markup.Text); ok && t == "" {
			continue
		}
		kept = append(kept, c)
	}
	el.Content = kept
}
