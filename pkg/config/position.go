package config

import "fmt"

// Position addresses one entry of a List. It is valid while its index is
// inside the list.
type Position struct {
	list  *List
	index int
}

// Valid reports whether the position addresses an entry.
func (p *Position) Valid() bool {
	return p != nil && p.list != nil && p.index >= 0 && p.index < p.list.Len()
}

// Index returns the entry index within its list.
func (p *Position) Index() int { return p.index }

// List returns the list the position belongs to.
func (p *Position) List() *List { return p.list }

// Entry returns the addressed entry, or nil when invalid.
func (p *Position) Entry() Entry {
	if !p.Valid() {
		return nil
	}
	return p.list.items[p.index]
}

// Node returns the addressed entry as a node, or nil.
func (p *Position) Node() *Node {
	n, _ := AsNode(p.Entry())
	return n
}

// Next advances to the following sibling.
func (p *Position) Next() { p.index++ }

// Seek moves to index i of the same list.
func (p *Position) Seek(i int) error {
	if p.list == nil || i < 0 || i >= p.list.Len() {
		return fmt.Errorf("%w: index %d", ErrInvalidPosition, i)
	}
	p.index = i
	return nil
}

// HasChildren reports whether the addressed entry is a node with children.
func (p *Position) HasChildren() bool {
	n := p.Node()
	return n != nil && n.Children().Len() > 0
}

// Children returns a position at the first child of the addressed node. For
// leaves it is a position over an empty list.
func (p *Position) Children() *Position {
	if n := p.Node(); n != nil {
		return n.Children().Begin()
	}
	return NewList().Begin()
}
