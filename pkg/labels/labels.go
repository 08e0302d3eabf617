package labels

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Category names used by the printer.
const (
	CategoryField  = "field"
	CategoryButton = "button"
	CategoryGroup  = "group"
)

// Labeler resolves a human readable caption for key within category.
type Labeler interface {
	Get(key, category string) string
}

// LabelerFunc adapts a function to Labeler.
type LabelerFunc func(key, category string) string

// Get implements Labeler.
func (f LabelerFunc) Get(key, category string) string { return f(key, category) }

// Identity returns keys unchanged.
type Identity struct{}

// Get implements Labeler.
func (Identity) Get(key, _ string) string { return key }

// Key joins category and key the way catalogs store them.
func Key(key, category string) string {
	if category == "" {
		return key
	}
	return category + "." + key
}

// Catalog is a static lookup table keyed by "category.key" or plain "key".
// Misses are recorded so callers can report untranslated captions.
type Catalog struct {
	mu      sync.Mutex
	entries map[string]string
	missing []string
	seen    map[string]bool

	// NotFound formats the fallback for a miss; it receives the key.
	NotFound string
}

// NewCatalog builds a catalog from entries.
func NewCatalog(entries map[string]string) *Catalog {
	c := &Catalog{entries: make(map[string]string, len(entries)), seen: make(map[string]bool), NotFound: "%s"}
	for k, v := range entries {
		c.entries[k] = v
	}
	return c
}

// Get implements Labeler. The category-qualified key is tried first, then the
// bare key.
func (c *Catalog) Get(key, category string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	qualified := Key(key, category)
	if v, ok := c.entries[qualified]; ok && v != "" {
		return v
	}
	if v, ok := c.entries[key]; ok && v != "" {
		return v
	}
	if !c.seen[qualified] {
		c.seen[qualified] = true
		c.missing = append(c.missing, qualified)
	}
	tpl := c.NotFound
	if tpl == "" {
		tpl = "%s"
	}
	return fmt.Sprintf(tpl, key)
}

// Missing returns, in lookup order, the qualified keys for which neither the
// qualified nor the bare key had an entry. A bare-key hit is not a miss.
func (c *Catalog) Missing() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.missing...)
}

// LoadCatalog parses a YAML mapping. Nested mappings are flattened with dots,
// so `field: {name: Name}` yields "field.name".
func LoadCatalog(data []byte) (*Catalog, error) {
	if strings.TrimSpace(string(data)) == "" {
		return NewCatalog(nil), nil
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("labels: parse catalog: %w", err)
	}
	entries := make(map[string]string)
	flatten("", raw, entries)
	return NewCatalog(entries), nil
}

// LoadCatalogFile reads a catalog from disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("labels: read %s: %w", path, err)
	}
	return LoadCatalog(data)
}

// LoadCatalogFS reads a catalog from fsys.
func LoadCatalogFS(fsys fs.FS, name string) (*Catalog, error) {
	if fsys == nil {
		return nil, errors.New("labels: filesystem is not configured")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("labels: read %s: %w", name, err)
	}
	return LoadCatalog(data)
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case nil:
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}
