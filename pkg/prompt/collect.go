package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goliatone/go-formprinter/pkg/config"
	"github.com/goliatone/go-formprinter/pkg/labels"
	"github.com/goliatone/go-formprinter/pkg/markup"
)

// Option configures Collect.
type Option func(*collector)

// WithLabeler resolves captions for fields without a label attribute.
func WithLabeler(l labels.Labeler) Option {
	return func(c *collector) {
		if l != nil {
			c.labels = l
		}
	}
}

// WithDefaults seeds answers offered as defaults, keyed by field name.
// Values found under the root "values" key are used when this is unset.
func WithDefaults(values map[string]any) Option {
	return func(c *collector) {
		c.defaults = values
	}
}

// WithLogger sets the logger for skipped fields.
func WithLogger(logger *slog.Logger) Option {
	return func(c *collector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// skipped types never hold user input.
var skipped = map[string]bool{
	"hidden":    true,
	"submit":    true,
	"reset":     true,
	"label":     true,
	"cell":      true,
	"buttonbox": true,
	"table":     true,
}

// containers are walked without being asked for.
var containers = map[string]bool{
	"container":       true,
	"fieldset":        true,
	"div":             true,
	"atomiccontainer": true,
}

type collector struct {
	driver   Driver
	labels   labels.Labeler
	defaults map[string]any
	logger   *slog.Logger
	answers  map[string]any
}

// Collect asks for every named input field of root and returns the answers
// keyed by field name. Fixed and disabled fields, array groups and button
// rows are skipped. Fieldset captions are shown through Driver.Info.
func Collect(ctx context.Context, root *config.Node, driver Driver, opts ...Option) (map[string]any, error) {
	if root == nil {
		return nil, fmt.Errorf("prompt: %w", config.ErrMalformedInput)
	}
	if driver == nil {
		return nil, ErrNilDriver
	}

	c := &collector{
		driver:  driver,
		labels:  labels.Identity{},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		answers: make(map[string]any),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.defaults == nil {
		if values, ok := root.Get("values"); ok {
			c.defaults, _ = values.(map[string]any)
		}
	}

	if err := c.walk(ctx, root.Children()); err != nil {
		return nil, err
	}
	return c.answers, nil
}

func (c *collector) walk(ctx context.Context, list *config.List) error {
	for _, node := range list.Nodes() {
		if err := ctx.Err(); err != nil {
			return aborted(err)
		}
		if err := c.visit(ctx, node); err != nil {
			return err
		}
	}
	return nil
}

func (c *collector) visit(ctx context.Context, node *config.Node) error {
	typ := strings.ToLower(node.Type())
	switch {
	case skipped[typ]:
		return nil
	case typ == "arraygroup":
		c.logger.Debug("prompt: skipping array group", "name", node.String("name"))
		return nil
	case containers[typ]:
		if typ == "fieldset" {
			if legend := c.legend(node); legend != "" {
				if err := c.driver.Info(ctx, legend); err != nil {
					return wrap(err)
				}
			}
		}
		return c.walk(ctx, node.Children())
	}

	name, ok := node.Name()
	if !ok || name == "" {
		return c.walk(ctx, node.Children())
	}
	if truthy(node, "fixed") || truthy(node, "disabled") {
		c.logger.Debug("prompt: skipping read-only field", "name", name)
		return nil
	}

	answer, keep, err := c.ask(ctx, typ, name, node)
	if err != nil {
		return wrap(err)
	}
	if keep {
		c.answers[strings.TrimSuffix(name, "[]")] = answer
	}
	return nil
}

func (c *collector) ask(ctx context.Context, typ, name string, node *config.Node) (any, bool, error) {
	message := c.caption(name, node)
	current := markup.Stringify(c.defaults[strings.TrimSuffix(name, "[]")])
	validator := requiredValidator(truthy(node, "required"))

	if selection, ok := node.Get("selection"); ok {
		if pairs, ok := config.ToPairs(selection); ok && len(pairs) > 0 {
			return c.choose(ctx, message, current, pairs)
		}
	}

	switch typ {
	case "checkbox":
		declared := node.String("value")
		if declared == "" {
			declared = "on"
		}
		yes, err := c.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: current == declared})
		if err != nil || !yes {
			return nil, false, err
		}
		return declared, true, nil
	case "textarea":
		text, err := c.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: current})
		return text, err == nil, err
	case "password":
		text, err := c.driver.Password(ctx, InputConfig{Message: message, Default: current, Validator: validator})
		return text, err == nil, err
	default:
		text, err := c.driver.Input(ctx, InputConfig{Message: message, Default: current, Validator: validator})
		return text, err == nil, err
	}
}

// choose asks over the selection captions and answers with the key.
func (c *collector) choose(ctx context.Context, message, current string, pairs config.Pairs) (any, bool, error) {
	options := make([]string, len(pairs))
	def := -1
	for i, pair := range pairs {
		options[i] = markup.Stringify(pair.Value)
		if pair.Key == current {
			def = i
		}
	}
	idx, err := c.driver.Select(ctx, SelectConfig{Message: message, Options: options, DefaultIndex: def})
	if err != nil {
		return nil, false, err
	}
	if idx < 0 || idx >= len(pairs) {
		return nil, false, fmt.Errorf("prompt: selection index %d out of range", idx)
	}
	return pairs[idx].Key, true, nil
}

func (c *collector) caption(name string, node *config.Node) string {
	if label := node.String("label"); label != "" {
		return label
	}
	return c.labels.Get(strings.TrimSuffix(name, "[]"), labels.CategoryField)
}

func (c *collector) legend(node *config.Node) string {
	if label := node.String("label"); label != "" {
		return label
	}
	if name, ok := node.Name(); ok && name != "" {
		return c.labels.Get(name, labels.CategoryField)
	}
	return ""
}

func requiredValidator(required bool) func(string) error {
	if !required {
		return nil
	}
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return ErrRequired
		}
		return nil
	}
}

func truthy(node *config.Node, key string) bool {
	v, ok := node.Get(key)
	if !ok || v == nil {
		return false
	}
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val != "" && val != "0" && !strings.EqualFold(val, "false")
	default:
		return markup.Stringify(val) != "" && markup.Stringify(val) != "0"
	}
}

func wrap(err error) error {
	if errors.Is(err, ErrAborted) {
		return err
	}
	return fmt.Errorf("prompt: %w", err)
}
