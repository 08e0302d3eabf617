// Package config holds the declarative configuration tree consumed by the
// printer. A Node is an ordered attribute map plus an ordered List of child
// entries; entries are either nested nodes or opaque Text/Markup leaves.
// Lists support depth-first search by name and position-addressed insert,
// remove and replace anywhere in the tree.
package config
