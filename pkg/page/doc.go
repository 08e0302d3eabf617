// Package page wraps a rendered form in a standalone HTML document. Pages
// are rendered with pongo2 from an embedded template that can be replaced
// through an fs.FS; a go-theme renderer configuration contributes CSS
// variables and the stylesheet URL.
package page
