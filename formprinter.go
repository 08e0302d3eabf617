// Package formprinter renders declarative configuration trees as HTML forms.
//
// The helpers here cover the common entry points; the packages under pkg/
// expose every stage of the pipeline for callers that need more control.
package formprinter

import (
	"context"
	"fmt"

	internalLoader "github.com/goliatone/go-formprinter/internal/openapi/loader"
	internalParser "github.com/goliatone/go-formprinter/internal/openapi/parser"
	"github.com/goliatone/go-formprinter/pkg/config"
	pkgopenapi "github.com/goliatone/go-formprinter/pkg/openapi"
	"github.com/goliatone/go-formprinter/pkg/orchestrator"
	"github.com/goliatone/go-formprinter/pkg/printer"
	"github.com/goliatone/go-formprinter/pkg/validation"
)

// State aliases printer.State so callers can bind submitted values without
// importing the printer package.
type State = printer.State

// NewLoader constructs an OpenAPI loader while keeping the concrete type
// hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	return internalLoader.New(pkgopenapi.NewLoaderOptions(options...))
}

// NewParser constructs an OpenAPI parser.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	return internalParser.New(pkgopenapi.NewParserOptions(options...))
}

// NewGenerator exposes the orchestrator constructor from the top-level module.
func NewGenerator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Render loads a YAML or JSON configuration tree and returns the form markup.
func Render(ctx context.Context, data []byte, options ...printer.Option) (string, error) {
	tree, err := config.Load(data)
	if err != nil {
		return "", fmt.Errorf("formprinter: load tree: %w", err)
	}
	return RenderTree(ctx, tree, options...)
}

// RenderTree renders an already built configuration tree.
func RenderTree(ctx context.Context, tree *config.Node, options ...printer.Option) (string, error) {
	return printer.New(options...).Render(ctx, tree)
}

// GenerateHTML loads the OpenAPI source, builds the tree for the requested
// operation and renders it.
func GenerateHTML(ctx context.Context, source pkgopenapi.Source, operationID string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Source:      source,
		OperationID: operationID,
	})
}

// Check validates submitted values against the constraints declared on tree.
// The returned state can be bound to the next render of the same tree.
func Check(tree *config.Node, data map[string]any, options ...validation.Option) (State, bool, error) {
	v, err := validation.FromTree(tree, options...)
	if err != nil {
		return State{}, false, fmt.Errorf("formprinter: validation profile: %w", err)
	}
	state, ok := v.Check(data)
	return state, ok, nil
}
