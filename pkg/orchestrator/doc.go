// Package orchestrator runs the full pipeline: a configuration tree, given
// directly or built from an OpenAPI operation, is patched by transformers,
// bound to a submission check or server errors, rendered by the printer and
// optionally wrapped in a themed page.
package orchestrator
