package page

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"
)

// DefaultTemplate names the embedded page template.
const DefaultTemplate = "page.tpl"

// StylesheetAsset is the theme asset key linked as the page stylesheet.
const StylesheetAsset = "stylesheet"

//go:embed templates/*.tpl
var embedded embed.FS

// Page is one document to render.
type Page struct {
	Title string
	// Lang is the document language. Defaults to "en".
	Lang string
	// Form is serialized form markup, inserted unescaped.
	Form  string
	Theme *theme.RendererConfig
}

// Option configures an Engine.
type Option func(*config)

type config struct {
	templates fs.FS
	name      string
	globals   map[string]any
}

// WithFS loads templates from files instead of the embedded set.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// WithTemplate selects the template rendered for each page.
func WithTemplate(name string) Option {
	return func(cfg *config) {
		if name = strings.TrimSpace(name); name != "" {
			cfg.name = name
		}
	}
}

// WithGlobals seeds values visible to every render.
func WithGlobals(data map[string]any) Option {
	return func(cfg *config) {
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globals[strings.TrimSpace(key)] = value
		}
	}
}

// Engine renders pages from a pongo2 template set.
type Engine struct {
	mu   sync.Mutex
	set  *pongo2.TemplateSet
	name string
	tpl  *pongo2.Template
}

// New constructs an Engine. The template is parsed lazily on first render.
func New(opts ...Option) (*Engine, error) {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		return nil, fmt.Errorf("page: embedded templates: %w", err)
	}
	cfg := &config{templates: sub, name: DefaultTemplate}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	set := pongo2.NewSet("formprinter-page", pongo2.NewFSLoader(cfg.templates))
	if len(cfg.globals) > 0 {
		if set.Globals == nil {
			set.Globals = make(pongo2.Context)
		}
		set.Globals.Update(pongo2.Context(cfg.globals))
	}
	return &Engine{set: set, name: cfg.name}, nil
}

// Render returns the full document for p.
func (e *Engine) Render(ctx context.Context, p Page) (string, error) {
	var buf bytes.Buffer
	if err := e.RenderTo(ctx, &buf, p); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderTo writes the document for p to w.
func (e *Engine) RenderTo(ctx context.Context, w io.Writer, p Page) error {
	if e == nil || e.set == nil {
		return errors.New("page: engine is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	tpl, err := e.template()
	if err != nil {
		return err
	}
	if err := tpl.ExecuteWriter(pageContext(p), w); err != nil {
		return fmt.Errorf("page: execute %q: %w", e.name, err)
	}
	return nil
}

func (e *Engine) template() (*pongo2.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.tpl != nil {
		return e.tpl, nil
	}
	tpl, err := e.set.FromFile(e.name)
	if err != nil {
		return nil, fmt.Errorf("page: load template %q: %w", e.name, err)
	}
	e.tpl = tpl
	return tpl, nil
}

func pageContext(p Page) pongo2.Context {
	lang := p.Lang
	if lang == "" {
		lang = "en"
	}
	ctx := pongo2.Context{
		"title": p.Title,
		"lang":  lang,
		"form":  p.Form,
	}
	if cfg := p.Theme; cfg != nil {
		ctx["theme"] = cfg.Theme
		ctx["variant"] = cfg.Variant
		ctx["tokens"] = cfg.Tokens
		ctx["css_vars"] = CSSVarsStyle(cfg.CSSVars)
		if cfg.AssetURL != nil {
			ctx["stylesheet"] = cfg.AssetURL(StylesheetAsset)
		}
	}
	return ctx
}
