package config

import (
	"fmt"

	"github.com/goliatone/go-formprinter/pkg/markup"
)

// List is an ordered, mutable sequence of entries.
type List struct {
	items []Entry
}

// NewList returns a list holding entries.
func NewList(entries ...Entry) *List {
	l := &List{}
	for _, e := range entries {
		if e != nil {
			l.items = append(l.items, e)
		}
	}
	return l
}

// NewListFrom converts v into a list. Accepted inputs are nil, *Node, *List,
// Text, Markup, string, markup.Node, map[string]any and slices of those.
func NewListFrom(v any) (*List, error) {
	entries, err := normalize(v)
	if err != nil {
		return nil, err
	}
	return &List{items: entries}, nil
}

// Len returns the number of entries.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// At returns the entry at index i, or nil when out of range.
func (l *List) At(i int) Entry {
	if l == nil || i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

// Content exposes the underlying sequence. Changes to the elements are
// visible to the list; use SetContent to change its length.
func (l *List) Content() []Entry {
	return l.items
}

// SetContent replaces the underlying sequence.
func (l *List) SetContent(entries []Entry) {
	l.items = entries
}

// Nodes returns the node entries, skipping opaque leaves.
func (l *List) Nodes() []*Node {
	var out []*Node
	for _, e := range l.items {
		if n, ok := AsNode(e); ok {
			out = append(out, n)
		}
	}
	return out
}

// Front returns the first entry or nil.
func (l *List) Front() Entry { return l.At(0) }

// Back returns the last entry or nil.
func (l *List) Back() Entry { return l.At(l.Len() - 1) }

// Clone deep copies the list and every node in it.
func (l *List) Clone() *List {
	out := &List{}
	if l == nil {
		return out
	}
	out.items = make([]Entry, len(l.items))
	for i, e := range l.items {
		if n, ok := AsNode(e); ok {
			out.items[i] = n.Clone()
			continue
		}
		out.items[i] = e
	}
	return out
}

// Begin returns a position at the first entry.
func (l *List) Begin() *Position {
	return &Position{list: l}
}

// Find searches the tree depth first, pre-order, for the first node whose name
// equals name. The returned position is invalid when nothing matches.
func (l *List) Find(name string) *Position {
	stack := []*Position{l.Begin()}
	for {
		top := stack[len(stack)-1]
		if top.Valid() {
			if n := top.Node(); n != nil {
				if got, ok := n.Name(); ok && got == name {
					return top
				}
			}
			if top.HasChildren() {
				stack = append(stack, top.Children())
			} else {
				top.Next()
			}
			continue
		}
		if len(stack) == 1 {
			return top
		}
		stack = stack[:len(stack)-1]
		stack[len(stack)-1].Next()
	}
}

// Add appends content to the list and returns a position at the last
// inserted entry.
func (l *List) Add(content any) (*Position, error) {
	entries, err := normalize(content)
	if err != nil {
		return nil, err
	}
	l.items = append(l.items, entries...)
	return &Position{list: l, index: len(l.items) - 1}, nil
}

// AddAt splices content into this list at index.
func (l *List) AddAt(index int, content any) (*Position, error) {
	if index < 0 || index > len(l.items) {
		return nil, fmt.Errorf("%w: index %d", ErrInvalidPosition, index)
	}
	entries, err := normalize(content)
	if err != nil {
		return nil, err
	}
	l.items = splice(l.items, index, 0, entries)
	return &Position{list: l, index: index + len(entries) - 1}, nil
}

// AddAfter inserts content right after target, which is a name searched in the
// whole tree or a *Position. The insert happens in the target's own list.
func (l *List) AddAfter(target any, content any) (*Position, error) {
	pos, err := l.locate(target)
	if err != nil {
		return nil, err
	}
	entries, err := normalize(content)
	if err != nil {
		return nil, err
	}
	owner := pos.list
	owner.items = splice(owner.items, pos.index+1, 0, entries)
	return &Position{list: owner, index: pos.index + len(entries)}, nil
}

// Remove removes the single entry at target and returns it.
func (l *List) Remove(target any) (Entry, error) {
	pos, err := l.locate(target)
	if err != nil {
		return nil, err
	}
	owner := pos.list
	removed := owner.items[pos.index]
	owner.items = splice(owner.items, pos.index, 1, nil)
	return removed, nil
}

// RemoveN removes count entries starting at target and returns them as a list.
func (l *List) RemoveN(target any, count int) (*List, error) {
	pos, err := l.locate(target)
	if err != nil {
		return nil, err
	}
	owner := pos.list
	end := pos.index + count
	if count < 0 || end > len(owner.items) {
		end = len(owner.items)
	}
	cut := append([]Entry(nil), owner.items[pos.index:end]...)
	owner.items = splice(owner.items, pos.index, end-pos.index, nil)
	return &List{items: cut}, nil
}

// Replace swaps the entry at target for replacement.
func (l *List) Replace(target any, replacement any) (*Position, error) {
	return l.ReplaceN(target, replacement, 1)
}

// ReplaceN swaps count entries starting at target for replacement and returns
// a position at the last inserted entry.
func (l *List) ReplaceN(target any, replacement any, count int) (*Position, error) {
	pos, err := l.locate(target)
	if err != nil {
		return nil, err
	}
	entries, err := normalize(replacement)
	if err != nil {
		return nil, err
	}
	owner := pos.list
	if count < 0 || pos.index+count > len(owner.items) {
		count = len(owner.items) - pos.index
	}
	owner.items = splice(owner.items, pos.index, count, entries)
	return &Position{list: owner, index: pos.index + len(entries) - 1}, nil
}

func (l *List) locate(target any) (*Position, error) {
	switch t := target.(type) {
	case string:
		pos := l.Find(t)
		if !pos.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, t)
		}
		return pos, nil
	case *Position:
		if t == nil || !t.Valid() {
			return nil, fmt.Errorf("%w: position does not address an entry", ErrInvalidPosition)
		}
		return t, nil
	default:
		return nil, fmt.Errorf("%w: unsupported target %T", ErrInvalidPosition, target)
	}
}

func splice(items []Entry, at, remove int, insert []Entry) []Entry {
	out := make([]Entry, 0, len(items)-remove+len(insert))
	out = append(out, items[:at]...)
	out = append(out, insert...)
	out = append(out, items[at+remove:]...)
	return out
}

func normalize(v any) ([]Entry, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case *Node:
		if val == nil {
			return nil, nil
		}
		return []Entry{val}, nil
	case *List:
		if val == nil {
			return nil, nil
		}
		return val.items, nil
	case []Entry:
		out := make([]Entry, 0, len(val))
		for _, e := range val {
			if e != nil {
				out = append(out, e)
			}
		}
		return out, nil
	case []*Node:
		out := make([]Entry, 0, len(val))
		for _, n := range val {
			if n != nil {
				out = append(out, n)
			}
		}
		return out, nil
	case []map[string]any:
		out := make([]Entry, 0, len(val))
		for _, m := range val {
			entry, err := normalizeValue(m)
			if err != nil {
				return nil, err
			}
			out = append(out, entry)
		}
		return out, nil
	case []any:
		out := make([]Entry, 0, len(val))
		for _, item := range val {
			entry, err := normalizeValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, entry)
		}
		return out, nil
	default:
		entry, err := normalizeValue(v)
		if err != nil {
			return nil, err
		}
		return []Entry{entry}, nil
	}
}

func normalizeValue(v any) (Entry, error) {
	switch val := v.(type) {
	case *Node:
		if val == nil {
			return nil, fmt.Errorf("%w: nil node", ErrMalformedInput)
		}
		return val, nil
	case Text:
		return val, nil
	case Markup:
		return val, nil
	case string:
		return Text(val), nil
	case map[string]any:
		return FromMap(val)
	case markup.Node:
		return Markup{Node: val}, nil
	default:
		return nil, fmt.Errorf("%w: cannot use %T as list entry", ErrMalformedInput, v)
	}
}
