package printer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-formprinter/pkg/config"
	"github.com/goliatone/go-formprinter/pkg/labels"
	"github.com/goliatone/go-formprinter/pkg/markup"
	"github.com/goliatone/go-formprinter/pkg/telemetry"
)

// Builder carries the collaborators shared by every factory in one pass.
type Builder struct {
	ctx      context.Context
	registry *Registry
	labels   labels.Labeler
	logger   *slog.Logger
	recorder telemetry.Recorder
}

// Build dispatches cfg to the factory registered for its type, falling back to
// the generic element.
func (b *Builder) Build(cfg *config.Node) (markup.Node, error) {
	typ := cfg.Type()
	if typ == "" {
		name, _ := cfg.Name()
		return nil, fmt.Errorf("%w (name %q)", ErrMissingType, name)
	}
	factory, err := b.resolve(typ)
	if err != nil {
		return nil, err
	}
	return factory(b, cfg)
}

func (b *Builder) resolve(typ string) (Factory, error) {
	if factory, ok := b.registry.Lookup(typ); ok {
		return factory, nil
	}
	b.logger.Debug("printer: no variant registered, using element", "type", typ)
	if factory, ok := b.registry.Lookup(FallbackType); ok {
		return factory, nil
	}
	return buildElement, nil
}

// Context returns the context of the render pass.
func (b *Builder) Context() context.Context { return b.ctx }

// Labels returns the caption lookup.
func (b *Builder) Labels() labels.Labeler { return b.labels }

// Logger returns the pass logger.
func (b *Builder) Logger() *slog.Logger { return b.logger }

// entries converts opaque list entries into markup. Nodes are rejected unless
// allowNodes is set, in which case they are dispatched through Build.
func (b *Builder) entries(list *config.List, allowNodes bool) ([]markup.Node, error) {
	out := make([]markup.Node, 0, list.Len())
	for _, entry := range list.Content() {
		switch e := entry.(type) {
		case config.Text:
			out = append(out, markup.Text(e))
		case config.Markup:
			if e.Node != nil {
				out = append(out, e.Node)
			}
		case *config.Node:
			if !allowNodes {
				return nil, fmt.Errorf("%w: nested node inside a leaf element", ErrMalformedInput)
			}
			n, err := b.Build(e)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		default:
			return nil, fmt.Errorf("%w: unsupported content %T", ErrMalformedInput, entry)
		}
	}
	return out, nil
}

// displayNodes converts a free-form display parameter into markup.
func displayNodes(v any) []markup.Node {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return []markup.Node{markup.Text(val)}
	case markup.Node:
		return []markup.Node{val}
	case config.Text:
		return []markup.Node{markup.Text(val)}
	case config.Markup:
		return []markup.Node{val.Node}
	case []markup.Node:
		return val
	}
	if items, ok := asSlice(v); ok {
		var out []markup.Node
		for _, item := range items {
			out = append(out, displayNodes(item)...)
		}
		return out
	}
	return []markup.Node{markup.Text(markup.Stringify(v))}
}
