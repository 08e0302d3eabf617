package printer

import (
	"fmt"

	"github.com/goliatone/go-formprinter/pkg/config"
	"github.com/goliatone/go-formprinter/pkg/markup"
)

func containerInfo(params map[string]any) info {
	tag := markup.Stringify(params[ParamTag])
	return withPrefix(tag, tag)
}

// container builds a node that renders its content list in order, handing the
// shared context down to every child that does not set it itself.
func (b *Builder) container(cfg *config.Node, defaults []attr, resolve func(map[string]any) info) (*node, error) {
	children := cfg.Detach()
	n, err := b.parse(cfg, defaults, resolve)
	if err != nil {
		return nil, err
	}
	if err := b.appendChildren(n, children); err != nil {
		return nil, err
	}
	return n, nil
}

func (b *Builder) appendChildren(n *node, children *config.List) error {
	for _, entry := range children.Content() {
		switch e := entry.(type) {
		case config.Text:
			n.el.Append(markup.Text(e))
		case config.Markup:
			n.el.Append(e.Node)
		case *config.Node:
			if e.Type() == "" {
				name, _ := e.Name()
				return fmt.Errorf("%w (name %q)", ErrMissingType, name)
			}
			for _, key := range containerInherit {
				if v, ok := n.params[key]; ok && !e.Has(key) {
					e.Set(key, v)
				}
			}
			child, err := b.Build(e)
			if err != nil {
				return err
			}
			n.el.Append(child)
		default:
			return fmt.Errorf("%w: unsupported content %T", ErrMalformedInput, entry)
		}
	}
	return nil
}

func buildContainer(b *Builder, cfg *config.Node) (markup.Node, error) {
	n, err := b.container(cfg, nil, containerInfo)
	if err != nil {
		return nil, err
	}
	return n.el, nil
}

// buildFieldset adds a legend from the label and registers the fieldset as a
// navigation target.
func buildFieldset(b *Builder, cfg *config.Node) (markup.Node, error) {
	n, err := b.container(cfg, nil, func(map[string]any) info { return withPrefix("fieldset", "Fs") })
	if err != nil {
		return nil, err
	}
	caption := n.label()
	n.el.Prepend(markup.NewElement("legend", markup.Text(caption)))
	if id := n.id(); id != "" {
		if collector := navCollector(n.params[ParamNav]); collector != nil {
			collector.Add(caption, id)
		}
	}
	return n.el, nil
}

// buildDiv groups content in a div. A truthy transparent attribute prints the
// content without the surrounding tag.
func buildDiv(b *Builder, cfg *config.Node) (markup.Node, error) {
	transparent, _ := cfg.Take(keyTransparent)
	n, err := b.container(cfg, nil, func(map[string]any) info { return withPrefix("div", "div") })
	if err != nil {
		return nil, err
	}
	n.el.Transparent = truthy(transparent)
	return n.el, nil
}
