package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	theme "github.com/goliatone/go-theme"

	internalLoader "github.com/goliatone/go-formprinter/internal/openapi/loader"
	internalParser "github.com/goliatone/go-formprinter/internal/openapi/parser"
	"github.com/goliatone/go-formprinter/pkg/config"
	"github.com/goliatone/go-formprinter/pkg/labels"
	"github.com/goliatone/go-formprinter/pkg/markup"
	pkgopenapi "github.com/goliatone/go-formprinter/pkg/openapi"
	"github.com/goliatone/go-formprinter/pkg/page"
	"github.com/goliatone/go-formprinter/pkg/printer"
	"github.com/goliatone/go-formprinter/pkg/validation"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader pkgopenapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithFormBuilder injects the operation to tree builder.
func WithFormBuilder(builder *pkgopenapi.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithPrinter injects a configured printer.
func WithPrinter(p *printer.Printer) Option {
	return func(o *Orchestrator) {
		o.printer = p
	}
}

// WithPageEngine injects the engine used when a request asks for a page.
func WithPageEngine(engine *page.Engine) Option {
	return func(o *Orchestrator) {
		o.pages = engine
	}
}

// WithTheme applies a renderer configuration to every page.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(o *Orchestrator) {
		o.theme = cfg
	}
}

// WithTransformers registers transformers run against the tree before
// rendering, in order.
func WithTransformers(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		for _, t := range transformers {
			if t != nil {
				o.transformers = append(o.transformers, t)
			}
		}
	}
}

// WithValidationMessages resolves the messages of submission checks.
func WithValidationMessages(l labels.Labeler) Option {
	return func(o *Orchestrator) {
		o.messages = l
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the pipeline from tree or OpenAPI document to
// rendered output. Missing collaborators are filled with the built-in
// implementations.
type Orchestrator struct {
	loader       pkgopenapi.Loader
	parser       pkgopenapi.Parser
	builder      *pkgopenapi.Builder
	printer      *printer.Printer
	pages        *page.Engine
	theme        *theme.RendererConfig
	transformers []Transformer
	messages     labels.Labeler
	logger       *slog.Logger
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.loader == nil {
		o.loader = internalLoader.New(pkgopenapi.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	if o.builder == nil {
		o.builder = pkgopenapi.NewBuilder(pkgopenapi.WithLogger(o.logger))
	}
	if o.printer == nil {
		o.printer = printer.New(printer.WithLogger(o.logger))
	}
	return o
}

// Request describes one render.
type Request struct {
	// Tree is rendered as is when set. Source, Document and OperationID are
	// ignored then.
	Tree *config.Node

	// Source identifies where the OpenAPI document lives. Optional when
	// Document is supplied.
	Source pkgopenapi.Source

	// Document bypasses the loader.
	Document *pkgopenapi.Document

	// OperationID selects the OpenAPI operation to build the tree from.
	OperationID string

	// State binds submitted values, messages and validity.
	State printer.Validator

	// Submission is checked against the constraints declared on the tree.
	// The outcome replaces State.
	Submission map[string]any

	// ServerErrors are error messages keyed by field path, as returned by a
	// backend. They are mapped onto the tree fields and merged into the
	// state. Messages matching no field are printed as a
	// <ul class="errors"> list at the top of the form.
	ServerErrors map[string][]string

	// Page wraps the form in a full document titled Title.
	Page  bool
	Title string
}

// Generate resolves the tree, renders it and returns the markup.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	tree, err := o.Tree(ctx, req)
	if err != nil {
		return nil, err
	}
	state, formErrors, err := o.state(tree, req)
	if err != nil {
		return nil, err
	}
	if state != nil {
		tree.Set("validator", state)
	}
	if len(formErrors) > 0 {
		if _, err := tree.Children().AddAt(0, []config.Entry{config.Markup{Node: errorList(formErrors)}}); err != nil {
			return nil, fmt.Errorf("orchestrator: form errors: %w", err)
		}
	}

	form, err := o.printer.Render(ctx, tree)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render form: %w", err)
	}
	if !req.Page {
		return []byte(form), nil
	}

	engine, err := o.pageEngine()
	if err != nil {
		return nil, err
	}
	doc, err := engine.Render(ctx, page.Page{Title: req.Title, Form: form, Theme: o.theme})
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render page: %w", err)
	}
	return []byte(doc), nil
}

// Tree resolves and transforms the configuration tree for req without
// rendering it. The returned tree is owned by the caller.
func (o *Orchestrator) Tree(ctx context.Context, req Request) (*config.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var tree *config.Node
	if req.Tree != nil {
		tree = req.Tree.Clone()
	} else {
		built, err := o.treeFromOperation(ctx, req)
		if err != nil {
			return nil, err
		}
		tree = built
	}

	for _, t := range o.transformers {
		if err := t.Transform(ctx, tree); err != nil {
			return nil, fmt.Errorf("orchestrator: transform tree: %w", err)
		}
	}
	return tree, nil
}

// Check validates submission against the constraints of the tree req
// resolves to.
func (o *Orchestrator) Check(ctx context.Context, req Request, submission map[string]any) (printer.State, bool, error) {
	tree, err := o.Tree(ctx, req)
	if err != nil {
		return printer.State{}, false, err
	}
	return o.check(tree, submission)
}

func (o *Orchestrator) check(tree *config.Node, submission map[string]any) (printer.State, bool, error) {
	var opts []validation.Option
	if o.messages != nil {
		opts = append(opts, validation.WithMessages(o.messages))
	}
	v, err := validation.FromTree(tree, opts...)
	if err != nil {
		return printer.State{}, false, fmt.Errorf("orchestrator: validation profile: %w", err)
	}
	state, ok := v.Check(submission)
	o.logger.Debug("orchestrator: submission checked", "valid", ok, "errors", len(state.Errors))
	return state, ok, nil
}

// state combines the request state, the submission check and the mapped
// server errors into the validator bound to the tree. Server messages that
// match no field are returned separately.
func (o *Orchestrator) state(tree *config.Node, req Request) (printer.Validator, []string, error) {
	current := req.State
	if req.Submission != nil {
		checked, _, err := o.check(tree, req.Submission)
		if err != nil {
			return nil, nil, err
		}
		current = checked
	}
	if len(req.ServerErrors) == 0 {
		return current, nil, nil
	}

	mapping := validation.MapErrors(tree, req.ServerErrors)
	if len(mapping.Form) > 0 {
		o.logger.Debug("orchestrator: form-level errors", "messages", mapping.Form)
	}
	merged := mapping.State()
	if current != nil {
		merged.Values = current.Data()
		for name, msg := range current.Messages() {
			if _, ok := merged.Errors[name]; !ok {
				merged.Errors[name] = msg
			}
		}
		for name, valid := range current.Validity() {
			if _, ok := merged.Valid[name]; !ok {
				merged.Valid[name] = valid
			}
		}
	}
	return merged, mapping.Form, nil
}

// errorList prints form-level messages as <ul class="errors">.
func errorList(messages []string) *markup.Element {
	list := markup.NewElement("ul").Set("class", "errors")
	for _, msg := range messages {
		list.Append(markup.NewElement("li", markup.Text(msg)))
	}
	return list
}

// Operations lists the operations of the document req points to.
func (o *Orchestrator) Operations(ctx context.Context, req Request) (map[string]pkgopenapi.Operation, error) {
	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}
	operations, err := o.parser.Operations(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse operations: %w", err)
	}
	return operations, nil
}

func (o *Orchestrator) treeFromOperation(ctx context.Context, req Request) (*config.Node, error) {
	if req.OperationID == "" {
		return nil, errors.New("orchestrator: tree or operation id is required")
	}
	operations, err := o.Operations(ctx, req)
	if err != nil {
		return nil, err
	}
	op, ok := operations[req.OperationID]
	if !ok {
		return nil, fmt.Errorf("orchestrator: operation %q not found", req.OperationID)
	}
	tree, err := o.builder.Build(op)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build tree: %w", err)
	}
	o.logger.Debug("orchestrator: tree built from operation", "operation", op.ID, "method", op.Method, "path", op.Path)
	return tree, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (pkgopenapi.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return pkgopenapi.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) pageEngine() (*page.Engine, error) {
	if o.pages != nil {
		return o.pages, nil
	}
	engine, err := page.New()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: page engine: %w", err)
	}
	o.pages = engine
	return engine, nil
}
