// Package printer compiles a configuration tree into a form markup tree.
//
// Each configuration node is dispatched on its type attribute to a Factory
// from a Registry; unknown types fall back to the generic Element variant,
// which wraps a control with its label and error indicator. Values, error
// messages and validity are bound by canonical field name (the name without a
// trailing "[]"). Array groups expand parallel value arrays into one row per
// index, padding shorter arrays so sibling fields stay aligned.
//
// Every node receives a DOM id from a pass-wide ids.Manager, and fieldsets
// register themselves with a nav.Collector so the root can prepend a
// navigation menu once enough of them exist.
package printer
