package markup

import (
	"io"
	"strings"
)

// DefaultShift is the indentation added per nesting level.
const DefaultShift = 2

// Render serializes n starting at indent.
func Render(n Node, indent, shift int) string {
	if n == nil {
		return ""
	}
	return n.Render(indent, shift)
}

// Write serializes n into w with the default shift.
func Write(w io.Writer, n Node) error {
	_, err := io.WriteString(w, Render(n, 0, DefaultShift))
	return err
}

func render(e *Element, indent, shift int) string {
	if e.OmitWhenEmpty && e.Empty() {
		return ""
	}
	if e.Transparent {
		var b strings.Builder
		for _, child := range e.Content {
			b.WriteString(child.Render(indent, shift))
		}
		return b.String()
	}

	pad := strings.Repeat(" ", indent)

	var b strings.Builder
	b.WriteString(pad)
	b.WriteByte('<')
	b.WriteString(e.Tag)
	if attrs := e.Attrs.String(); attrs != "" {
		b.WriteByte(' ')
		b.WriteString(attrs)
	}
	b.WriteByte('>')

	if IsVoid(e.Tag) {
		return b.String()
	}

	switch {
	case len(e.Content) == 0:
	case len(e.Content) == 1 && IsText(e.Content[0]):
		b.WriteString(e.Content[0].Render(0, shift))
	case len(e.Content) == 1 && !e.Content[0].Complex():
		b.WriteString(e.Content[0].Render(0, shift))
	case e.SkipWhitespace:
		for _, child := range e.Content {
			b.WriteString(child.Render(0, 0))
		}
	default:
		b.WriteByte('\n')
		inner := strings.Repeat(" ", indent+shift)
		for _, child := range e.Content {
			var line string
			if IsText(child) {
				line = inner + child.Render(0, shift)
			} else {
				line = child.Render(indent+shift, shift)
				if line == "" {
					continue
				}
			}
			b.WriteString(line)
			b.WriteByte('\n')
		}
		b.WriteString(pad)
	}

	b.WriteString("</")
	b.WriteString(e.Tag)
	b.WriteByte('>')
	return b.String()
}
