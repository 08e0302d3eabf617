package config

import "github.com/goliatone/go-formprinter/pkg/markup"

// Entry is one item of a List: a *Node, Text or Markup.
type Entry interface {
	isEntry()
}

// Text is a plain text leaf inserted verbatim into the rendered output.
type Text string

func (Text) isEntry() {}

// Markup wraps a pre-built markup node.
type Markup struct {
	Node markup.Node
}

func (Markup) isEntry() {}

func (*Node) isEntry() {}

// AsNode returns the entry as a node when it is one.
func AsNode(e Entry) (*Node, bool) {
	n, ok := e.(*Node)
	return n, ok && n != nil
}

// Pair is one key/value item of an ordered mapping.
type Pair struct {
	Key   string
	Value any
}

// Pairs is an ordered mapping used for option lists and button definitions.
type Pairs []Pair

// Get returns the value for key.
func (p Pairs) Get(key string) (any, bool) {
	for _, pair := range p {
		if pair.Key == key {
			return pair.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys in order.
func (p Pairs) Keys() []string {
	out := make([]string, len(p))
	for i, pair := range p {
		out[i] = pair.Key
	}
	return out
}
