package openapi

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formprinter/pkg/config"
	"github.com/goliatone/go-formprinter/pkg/markup"
)

// OrderExtension sets the position of a property within its object.
const OrderExtension = "x-order"

// LabelExtension overrides the caption of a property.
const LabelExtension = "x-formprinter-label"

// MethodField carries the HTTP method for operations HTML forms cannot send.
const MethodField = "_method"

// ErrNoRequestBody reports an operation without an object request body.
var ErrNoRequestBody = errors.New("openapi: operation has no object request body")

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithTypeRegistry replaces the property type matchers.
func WithTypeRegistry(r *TypeRegistry) BuilderOption {
	return func(b *Builder) {
		if r != nil {
			b.types = r
		}
	}
}

// WithSubmitCaption sets the caption key of the generated submit button.
func WithSubmitCaption(caption string) BuilderOption {
	return func(b *Builder) {
		b.submit = caption
	}
}

// WithLogger sets the builder logger.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Builder converts an operation's request body into a configuration tree
// for the printer.
type Builder struct {
	types  *TypeRegistry
	submit string
	logger *slog.Logger
}

// NewBuilder returns a Builder with the built-in type matchers.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		types:  NewTypeRegistry(),
		submit: "submit",
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Build returns the form root for op. Schema defaults become the root's
// bound values.
func (b *Builder) Build(op Operation) (*config.Node, error) {
	body := op.RequestBody
	if body.Type != "object" || len(body.Properties) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRequestBody, op.ID)
	}

	root := config.NewNode().
		Set("name", op.ID).
		Set("action", op.Path)

	method := strings.ToUpper(op.Method)
	switch method {
	case "GET", "POST":
		root.Set("method", strings.ToLower(method))
	default:
		root.Set("method", "post")
		root.Children().Add(config.NewNode().
			Set("type", TypeHidden).
			Set("name", MethodField).
			Set("value", method))
	}

	defaults := make(map[string]any)
	if err := b.properties(root.Children(), "", body, defaults); err != nil {
		return nil, err
	}
	if len(defaults) > 0 {
		root.Set("values", defaults)
	}

	root.Children().Add(config.NewNode().
		Set("type", "buttonbox").
		Set("buttons", config.Pairs{{Key: "submit", Value: b.submit}}))

	b.logger.Debug("openapi: form built", "operation", op.ID, "schema", body.DebugString())
	return root, nil
}

func (b *Builder) properties(list *config.List, prefix string, obj Schema, defaults map[string]any) error {
	for _, name := range orderedProperties(obj.Properties) {
		prop := obj.Properties[name]
		if prop.Type == "" && prop.Ref != "" {
			b.logger.Debug("openapi: skipping unresolved property", "name", name, "ref", prop.Ref)
			continue
		}
		field := Field{Name: joinName(prefix, name), Schema: prop, Required: obj.IsRequired(name)}
		node, err := b.field(field, defaults)
		if err != nil {
			return err
		}
		if node == nil {
			continue
		}
		if _, err := list.Add(node); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) field(f Field, defaults map[string]any) (*config.Node, error) {
	typ, ok := b.types.Resolve(f)
	if !ok {
		b.logger.Debug("openapi: no control type for property", "name", f.Name, "schema", f.Schema.DebugString())
		return nil, nil
	}

	node := config.NewNode().Set("type", typ).Set("name", f.Name)
	if caption := caption(f.Schema); caption != "" {
		node.Set("label", caption)
	}

	switch typ {
	case TypeFieldset:
		if err := b.properties(node.Children(), f.Name, f.Schema, defaults); err != nil {
			return nil, err
		}
		return node, nil
	case TypeArrayGroup:
		item := Field{Name: f.Name + "[]", Schema: *f.Schema.Items, Required: f.Required}
		itemType, ok := b.types.Resolve(item)
		if !ok {
			itemType = TypeText
		}
		child := config.NewNode().Set("type", itemType).Set("name", item.Name)
		if caption := caption(item.Schema); caption != "" {
			child.Set("label", caption)
		}
		constrain(child, itemType, item)
		node.Children().Add(child)
		if f.Schema.Default != nil {
			defaults[f.Name] = f.Schema.Default
		}
		return node, nil
	}

	constrain(node, typ, f)
	if f.Schema.Default != nil {
		defaults[f.Name] = f.Schema.Default
	}
	return node, nil
}

// constrain copies validation keywords onto the control.
func constrain(node *config.Node, typ string, f Field) {
	s := f.Schema
	switch typ {
	case TypeSelect:
		pairs := make(config.Pairs, 0, len(s.Enum))
		for _, v := range s.Enum {
			key := markup.Stringify(v)
			pairs = append(pairs, config.Pair{Key: key, Value: key})
		}
		node.Set("selection", pairs)
	case TypeCheckbox:
		node.Set("value", "1")
	}
	if f.Required && typ != TypeCheckbox && typ != TypeHidden {
		node.Set("required", true)
	}
	if s.MaxLength != nil && typ != TypeSelect {
		node.Set("maxlength", strconv.Itoa(*s.MaxLength))
	}
	if s.MinLength != nil && *s.MinLength > 0 {
		node.Set("minlength", strconv.Itoa(*s.MinLength))
	}
	if s.Pattern != "" {
		node.Set("pattern", s.Pattern)
	}
	switch s.Type {
	case "integer":
		node.Set("inputmode", "numeric")
	case "number":
		node.Set("inputmode", "decimal")
	}
	if s.Minimum != nil {
		node.Set("min", strconv.FormatFloat(*s.Minimum, 'f', -1, 64))
	}
	if s.Maximum != nil {
		node.Set("max", strconv.FormatFloat(*s.Maximum, 'f', -1, 64))
	}
	if s.Description != "" {
		node.Set("title", s.Description)
	}
}

func caption(s Schema) string {
	if v, ok := s.Extensions[LabelExtension].(string); ok && v != "" {
		return v
	}
	return s.Title
}

func joinName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// orderedProperties sorts by x-order, then by name. Properties without an
// order come last.
func orderedProperties(props map[string]Schema) []string {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		oi, iok := order(props[names[i]])
		oj, jok := order(props[names[j]])
		switch {
		case iok && jok && oi != oj:
			return oi < oj
		case iok != jok:
			return iok
		}
		return names[i] < names[j]
	})
	return names
}

func order(s Schema) (int, bool) {
	switch v := s.Extensions[OrderExtension].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n, true
		}
	}
	return 0, false
}
