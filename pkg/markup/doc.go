// Package markup models the HTML element tree produced by the printer and
// serializes it into indented, deterministic markup. Elements with a single
// simple child are written inline; everything else is laid out one child per
// line. Void elements never carry content or a closing tag.
package markup
