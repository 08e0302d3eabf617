package printer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/goliatone/go-formprinter/pkg/config"
	"github.com/goliatone/go-formprinter/pkg/ids"
	"github.com/goliatone/go-formprinter/pkg/labels"
	"github.com/goliatone/go-formprinter/pkg/markup"
	"github.com/goliatone/go-formprinter/pkg/nav"
	"github.com/goliatone/go-formprinter/pkg/telemetry"
)

// DefaultNavThreshold is the number of fieldsets from which the navigation
// menu is printed.
const DefaultNavThreshold = 5

const keyValidator = "validator"

// Hook post-processes a finished render pass. The first error aborts it.
type Hook func(*Result) error

// Option configures a Printer.
type Option func(*Printer)

// WithLabeler sets the caption lookup. Defaults to labels.Identity.
func WithLabeler(l labels.Labeler) Option {
	return func(p *Printer) {
		if l != nil {
			p.labels = l
		}
	}
}

// WithLogger sets the logger used during render passes.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Printer) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithValidator binds field values, messages and validity to every pass.
func WithValidator(v Validator) Option {
	return func(p *Printer) {
		p.validator = v
	}
}

// WithRequestURI pins the form action to uri, fragment removed, when the
// navigation menu is printed. Without it the action attribute is left unset
// and the browser posts to the current document URL.
func WithRequestURI(uri string) Option {
	return func(p *Printer) {
		p.requestURI = uri
	}
}

// WithNavThreshold overrides DefaultNavThreshold. Zero disables the menu.
func WithNavThreshold(n int) Option {
	return func(p *Printer) {
		p.navThreshold = n
	}
}

// WithRegistry replaces the variant registry.
func WithRegistry(r *Registry) Option {
	return func(p *Printer) {
		if r != nil {
			p.registry = r
		}
	}
}

// WithHooks appends post-processing hooks.
func WithHooks(hooks ...Hook) Option {
	return func(p *Printer) {
		for _, h := range hooks {
			if h != nil {
				p.hooks = append(p.hooks, h)
			}
		}
	}
}

// WithRecorder sets the telemetry recorder.
func WithRecorder(r telemetry.Recorder) Option {
	return func(p *Printer) {
		if r != nil {
			p.recorder = r
		}
	}
}

// Printer turns a configuration tree into a <form> markup tree.
type Printer struct {
	registry     *Registry
	labels       labels.Labeler
	logger       *slog.Logger
	recorder     telemetry.Recorder
	validator    Validator
	requestURI   string
	navThreshold int
	hooks        []Hook
}

// New creates a Printer with the default variant registry.
func New(opts ...Option) *Printer {
	p := &Printer{
		registry:     NewDefaultRegistry(),
		labels:       labels.Identity{},
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		recorder:     telemetry.Nop(),
		navThreshold: DefaultNavThreshold,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Registry exposes the variant registry so callers can add types.
func (p *Printer) Registry() *Registry { return p.registry }

// Result is the outcome of one render pass.
type Result struct {
	Root *markup.Element
	IDs  *ids.Manager
	Nav  *nav.Collector
}

// HTML serializes the form.
func (r *Result) HTML() string {
	return markup.Render(r.Root, 0, markup.DefaultShift)
}

// Build renders cfg into a form element. cfg itself is left untouched.
func (p *Printer) Build(ctx context.Context, cfg *config.Node) (res *Result, err error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, finish := p.recorder.Start(ctx, "printer.build")
	defer func() { finish(err) }()

	root := cfg.Clone()
	mgr := ids.New()
	collector := nav.NewCollector()
	root.Set(ParamIDs, mgr)
	root.Set(ParamNav, collector)

	validator := p.validator
	if v, ok := root.Take(keyValidator); ok {
		if typed, ok := v.(Validator); ok {
			validator = typed
		}
	}
	bind(root, validator)

	threshold := p.navThreshold
	if v, ok := root.Take(keyThreshold); ok {
		threshold, err = toInt(v)
		if err != nil {
			return nil, err
		}
	}

	b := &Builder{ctx: ctx, registry: p.registry, labels: p.labels, logger: p.logger, recorder: p.recorder}
	n, err := b.container(root, []attr{{"method", "post"}}, func(map[string]any) info {
		return withPrefix("form", "Form")
	})
	if err != nil {
		return nil, err
	}

	if threshold > 0 && collector.Len() >= threshold {
		n.el.Prepend(navMenu(collector))
		if p.requestURI != "" {
			n.el.Set("action", stripFragment(p.requestURI))
		}
		p.logger.Debug("printer: navigation menu added", "entries", collector.Len(), "threshold", threshold)
	}

	res = &Result{Root: n.el, IDs: mgr, Nav: collector}
	for _, hook := range p.hooks {
		if err := hook(res); err != nil {
			return nil, fmt.Errorf("printer: hook: %w", err)
		}
	}
	p.recorder.ObserveIDs(ctx, mgr.Len(), mgr.Collisions())
	return res, nil
}

// Render builds cfg and serializes the form.
func (p *Printer) Render(ctx context.Context, cfg *config.Node) (string, error) {
	res, err := p.Build(ctx, cfg)
	if err != nil {
		return "", err
	}
	return res.HTML(), nil
}

// bind presets the per-field lookups and merges the validator state into them.
func bind(root *config.Node, v Validator) {
	values := lookupOf(root, ParamValues)
	messages := lookupOf(root, ParamErrMsg)
	invalid := lookupOf(root, ParamInvalid)
	if v != nil {
		for k, val := range v.Data() {
			values[k] = val
		}
		for k, val := range v.Messages() {
			messages[k] = val
		}
		for k, valid := range v.Validity() {
			invalid[k] = !valid
		}
	}
	root.Set(ParamValues, values)
	root.Set(ParamErrMsg, messages)
	root.Set(ParamInvalid, invalid)
}

func lookupOf(root *config.Node, key string) map[string]any {
	v, _ := root.Get(key)
	if m, ok := asMap(v); ok {
		return cloneLookup(m)
	}
	if pairs, ok := v.(config.Pairs); ok {
		out := make(map[string]any, len(pairs))
		for _, p := range pairs {
			out[p.Key] = p.Value
		}
		return out
	}
	return make(map[string]any)
}

func navMenu(c *nav.Collector) *markup.Element {
	menu := markup.NewElement("ul").Set("class", "nav")
	for _, entry := range c.Entries() {
		link := markup.NewElement("a", markup.Text(entry.Caption)).Set("href", "#"+entry.Anchor)
		menu.Append(markup.NewElement("li", link))
	}
	return menu
}

func stripFragment(uri string) string {
	if i := strings.IndexByte(uri, '#'); i >= 0 {
		return uri[:i]
	}
	return uri
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("%w: nav_threshold %q is not a number", ErrMalformedInput, n)
		}
		return i, nil
	}
	return 0, fmt.Errorf("%w: nav_threshold has unsupported type %T", ErrMalformedInput, v)
}
