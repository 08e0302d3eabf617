// Package openapi turns OpenAPI request bodies into configuration trees.
//
// Loader and Parser are contracts; the kin-openapi backed implementations
// live under internal/openapi and are constructed through the root
// formprinter package. Builder maps a parsed Operation onto a printer root
// node, choosing a control type per property through a TypeRegistry.
package openapi
