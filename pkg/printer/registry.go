package printer

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formprinter/pkg/config"
	"github.com/goliatone/go-formprinter/pkg/markup"
)

// Factory builds the markup for one configuration node.
type Factory func(b *Builder, cfg *config.Node) (markup.Node, error)

// FallbackType names the variant used for unregistered types.
const FallbackType = "element"

// Registry maps type tags to factories. Type lookups ignore case.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// NewDefaultRegistry returns a registry holding every built-in variant.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister("container", buildContainer)
	r.MustRegister("fieldset", buildFieldset)
	r.MustRegister("div", buildDiv)
	r.MustRegister("element", buildElement)
	r.MustRegister("atomic", buildAtomicNode)
	r.MustRegister("atomiccontainer", buildAtomicContainerNode)
	r.MustRegister("hidden", buildHidden)
	r.MustRegister("submit", buildSubmit)
	r.MustRegister("reset", buildSubmit)
	r.MustRegister("label", buildLabel)
	r.MustRegister("cell", buildCell)
	r.MustRegister("checkbox", buildCheckbox)
	r.MustRegister("file", buildFile)
	r.MustRegister("buttonbox", buildButtonbox)
	r.MustRegister("arraygroup", buildArrayGroup)
	r.MustRegister("table", buildTable)
	return r
}

// Register adds a factory for typ. Duplicate types return an error.
func (r *Registry) Register(typ string, factory Factory) error {
	key := normalizeType(typ)
	if key == "" {
		return fmt.Errorf("printer: variant type is required")
	}
	if factory == nil {
		return fmt.Errorf("printer: factory for %q is required", typ)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[key]; exists {
		return fmt.Errorf("printer: variant %q already registered", key)
	}
	r.factories[key] = factory
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(typ string, factory Factory) {
	if err := r.Register(typ, factory); err != nil {
		panic(err)
	}
}

// Lookup returns the factory registered for typ.
func (r *Registry) Lookup(typ string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.factories[normalizeType(typ)]
	return f, ok
}

// Has reports whether typ has a registered factory.
func (r *Registry) Has(typ string) bool {
	_, ok := r.Lookup(typ)
	return ok
}

// Names returns the registered types, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeType(typ string) string {
	return strings.ToLower(strings.TrimSpace(typ))
}
