// Package labels defines the caption lookup used by the printer. Lookups never
// fail: a missing key resolves to a fallback derived from the key itself.
package labels
