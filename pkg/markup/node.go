package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// Node is any item that can appear as element content.
type Node interface {
	// Render writes the node at the given indentation, using shift spaces per
	// nesting level for children laid out on their own lines.
	Render(indent, shift int) string
	// Complex reports whether the node holds more than one content item.
	Complex() bool
}

// Text is plain character data. It is escaped on output.
type Text string

// Render implements Node.
func (t Text) Render(_, _ int) string { return html.EscapeString(string(t)) }

// Complex implements Node.
func (Text) Complex() bool { return false }

// Raw is pre-escaped markup inserted verbatim.
type Raw string

// Render implements Node.
func (r Raw) Render(_, _ int) string { return string(r) }

// Complex implements Node.
func (Raw) Complex() bool { return false }

// IsText reports whether n is character data rather than an element.
func IsText(n Node) bool {
	switch n.(type) {
	case Text, Raw:
		return true
	}
	return false
}

var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {},
	"img": {}, "input": {}, "keygen": {}, "link": {}, "meta": {}, "param": {},
	"source": {}, "track": {}, "wbr": {},
}

// IsVoid reports whether tag is an HTML void element.
func IsVoid(tag string) bool {
	_, ok := voidElements[strings.ToLower(tag)]
	return ok
}

// Element is a tag with attributes and ordered content.
type Element struct {
	Tag     string
	Attrs   *Attrs
	Content []Node

	// SkipWhitespace concatenates all children without newlines or indentation.
	SkipWhitespace bool
	// OmitWhenEmpty suppresses the element entirely when it has no content.
	OmitWhenEmpty bool
	// Transparent drops the wrapping tag and emits the children back to back.
	Transparent bool
}

// NewElement builds an element with the given tag and optional content.
func NewElement(tag string, content ...Node) *Element {
	el := &Element{Tag: tag, Attrs: NewAttrs()}
	el.Append(content...)
	return el
}

// Append adds nodes at the end of the content list. Nil nodes are ignored.
func (e *Element) Append(nodes ...Node) *Element {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		e.Content = append(e.Content, n)
	}
	return e
}

// Prepend inserts a node in front of the existing content.
func (e *Element) Prepend(n Node) *Element {
	if n == nil {
		return e
	}
	e.Content = append([]Node{n}, e.Content...)
	return e
}

// Set assigns an attribute and returns the element for chaining.
func (e *Element) Set(key string, value any) *Element {
	e.attrs().Set(key, value)
	return e
}

// Attr returns the attribute value for key.
func (e *Element) Attr(key string) (any, bool) {
	if e.Attrs == nil {
		return nil, false
	}
	return e.Attrs.Get(key)
}

// ID returns the id attribute as a string, or "" when unset.
func (e *Element) ID() string {
	v, ok := e.Attr("id")
	if !ok {
		return ""
	}
	return Stringify(v)
}

// Empty reports whether the element has no content.
func (e *Element) Empty() bool { return len(e.Content) == 0 }

// Complex implements Node.
func (e *Element) Complex() bool { return len(e.Content) > 1 }

// Render implements Node.
func (e *Element) Render(indent, shift int) string {
	return render(e, indent, shift)
}

// String renders the element with the default two-space shift.
func (e *Element) String() string {
	return render(e, 0, DefaultShift)
}

func (e *Element) attrs() *Attrs {
	if e.Attrs == nil {
		e.Attrs = NewAttrs()
	}
	return e.Attrs
}
