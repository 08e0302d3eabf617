// Package validation checks submitted values against constraints declared on
// a configuration tree and maps server error payloads onto its fields. Both
// produce a printer.State, so a failed submission can be rendered again with
// inline messages.
package validation
