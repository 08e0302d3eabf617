package config

import (
	"fmt"
	"sort"
	"strconv"
)

// ContentKey is the attribute holding a node's children in map input.
const ContentKey = "content"

// orderedKeys name attributes whose map values keep their order as Pairs.
var orderedKeys = map[string]bool{
	"selection": true,
	"buttons":   true,
}

// Node is an ordered attribute map with an ordered child list.
type Node struct {
	keys     []string
	attrs    map[string]any
	children *List
}

// NewNode returns an empty node.
func NewNode() *Node {
	return &Node{attrs: make(map[string]any), children: NewList()}
}

// FromMap builds a node from a map. The "content" key becomes the child list;
// "selection" and "buttons" maps become Pairs. Go maps carry no order, so keys
// are sorted; use Load for order-preserving input.
func FromMap(in map[string]any) (*Node, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: nil map", ErrMalformedInput)
	}
	keys := make([]string, 0, len(in))
	for key := range in {
		if isNumericKey(key) {
			return nil, fmt.Errorf("%w: numeric key %q", ErrMalformedInput, key)
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	node := NewNode()
	for _, key := range keys {
		value := in[key]
		if key == ContentKey {
			list, err := NewListFrom(value)
			if err != nil {
				return nil, err
			}
			node.children = list
			continue
		}
		if orderedKeys[key] {
			if pairs, ok := ToPairs(value); ok {
				value = pairs
			}
		}
		node.Set(key, value)
	}
	return node, nil
}

// MustFromMap panics when FromMap fails. Useful for tests and fixtures.
func MustFromMap(in map[string]any) *Node {
	node, err := FromMap(in)
	if err != nil {
		panic(err)
	}
	return node
}

// Get returns the attribute stored under key.
func (n *Node) Get(key string) (any, bool) {
	if n == nil {
		return nil, false
	}
	v, ok := n.attrs[key]
	return v, ok
}

// String returns the attribute under key formatted as text, "" when unset.
func (n *Node) String(key string) string {
	v, ok := n.Get(key)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Set stores an attribute, keeping the position of an existing key.
func (n *Node) Set(key string, value any) *Node {
	if n.attrs == nil {
		n.attrs = make(map[string]any)
	}
	if _, ok := n.attrs[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.attrs[key] = value
	return n
}

// Delete removes an attribute.
func (n *Node) Delete(key string) {
	if _, ok := n.attrs[key]; !ok {
		return
	}
	delete(n.attrs, key)
	for i, k := range n.keys {
		if k == key {
			n.keys = append(n.keys[:i], n.keys[i+1:]...)
			return
		}
	}
}

// Take removes key and returns its previous value.
func (n *Node) Take(key string) (any, bool) {
	v, ok := n.Get(key)
	if ok {
		n.Delete(key)
	}
	return v, ok
}

// Has reports whether key is set.
func (n *Node) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// Keys returns attribute names in insertion order.
func (n *Node) Keys() []string {
	if n == nil {
		return nil
	}
	return append([]string(nil), n.keys...)
}

// Len returns the number of attributes.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.keys)
}

// Name returns the name attribute and whether it is set.
func (n *Node) Name() (string, bool) {
	v, ok := n.Get("name")
	if !ok || v == nil {
		return "", false
	}
	return n.String("name"), true
}

// Type returns the type attribute, "" when unset.
func (n *Node) Type() string {
	return n.String("type")
}

// Children returns the child list. It is never nil.
func (n *Node) Children() *List {
	if n.children == nil {
		n.children = NewList()
	}
	return n.children
}

// SetChildren replaces the child list.
func (n *Node) SetChildren(list *List) {
	if list == nil {
		list = NewList()
	}
	n.children = list
}

// Detach hands the current child list to the caller and leaves the node with
// an empty one.
func (n *Node) Detach() *List {
	out := n.Children()
	n.children = NewList()
	return out
}

// Clone returns a deep copy of the node, its attribute values and children.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := NewNode()
	for _, key := range n.keys {
		out.Set(key, CloneValue(n.attrs[key]))
	}
	out.children = n.Children().Clone()
	return out
}

// Map returns a shallow copy of the attributes.
func (n *Node) Map() map[string]any {
	out := make(map[string]any, n.Len())
	for _, key := range n.keys {
		out[key] = n.attrs[key]
	}
	return out
}

// CloneValue deep copies maps, slices, nodes and lists. Other values are
// returned as is.
func CloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = CloneValue(item)
		}
		return out
	case map[string]bool:
		out := make(map[string]bool, len(val))
		for k, item := range val {
			out[k] = item
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = CloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), val...)
	case Pairs:
		out := make(Pairs, len(val))
		for i, pair := range val {
			out[i] = Pair{Key: pair.Key, Value: CloneValue(pair.Value)}
		}
		return out
	case *Node:
		return val.Clone()
	case *List:
		return val.Clone()
	default:
		return v
	}
}

func isNumericKey(key string) bool {
	if key == "" {
		return false
	}
	_, err := strconv.Atoi(key)
	return err == nil
}

// ToPairs converts ordered-mapping input into Pairs. Maps are sorted by key,
// sequences are keyed by index. It reports false for any other input.
func ToPairs(v any) (Pairs, bool) {
	switch val := v.(type) {
	case Pairs:
		return val, true
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(Pairs, 0, len(val))
		for _, k := range keys {
			item := val[k]
			if nested, ok := item.(map[string]any); ok {
				item, _ = ToPairs(nested)
			}
			out = append(out, Pair{Key: k, Value: item})
		}
		return out, true
	case map[string]string:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(Pairs, 0, len(val))
		for _, k := range keys {
			out = append(out, Pair{Key: k, Value: val[k]})
		}
		return out, true
	case []any:
		out := make(Pairs, 0, len(val))
		for i, item := range val {
			out = append(out, Pair{Key: strconv.Itoa(i), Value: item})
		}
		return out, true
	case []string:
		out := make(Pairs, 0, len(val))
		for i, item := range val {
			out = append(out, Pair{Key: strconv.Itoa(i), Value: item})
		}
		return out, true
	default:
		return nil, false
	}
}
