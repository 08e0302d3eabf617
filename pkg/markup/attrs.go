package markup

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// priorityKeys are always written first, in this order.
var priorityKeys = []string{"type", "name", "id", "class", "value"}

// Attrs is an insertion-ordered attribute set.
type Attrs struct {
	keys   []string
	values map[string]any
}

// NewAttrs returns an empty attribute set.
func NewAttrs() *Attrs {
	return &Attrs{values: make(map[string]any)}
}

// Set stores value under key, keeping the original position of an existing key.
func (a *Attrs) Set(key string, value any) {
	if a.values == nil {
		a.values = make(map[string]any)
	}
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

// Get returns the value stored for key.
func (a *Attrs) Get(key string) (any, bool) {
	if a == nil || a.values == nil {
		return nil, false
	}
	v, ok := a.values[key]
	return v, ok
}

// Has reports whether key is present.
func (a *Attrs) Has(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// Delete removes key.
func (a *Attrs) Delete(key string) {
	if a == nil {
		return
	}
	if _, ok := a.values[key]; !ok {
		return
	}
	delete(a.values, key)
	for i, k := range a.keys {
		if k == key {
			a.keys = append(a.keys[:i], a.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of attributes.
func (a *Attrs) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}

// Keys returns the attribute names in output order: type, name, id, class
// and value first, the rest in insertion order.
func (a *Attrs) Keys() []string {
	if a == nil {
		return nil
	}
	out := make([]string, 0, len(a.keys))
	for _, key := range priorityKeys {
		if _, ok := a.values[key]; ok {
			out = append(out, key)
		}
	}
	for _, key := range a.keys {
		if isPriority(key) {
			continue
		}
		out = append(out, key)
	}
	return out
}

// Range calls fn for every attribute in insertion order.
func (a *Attrs) Range(fn func(key string, value any)) {
	if a == nil {
		return
	}
	for _, key := range a.keys {
		fn(key, a.values[key])
	}
}

// Clone returns an independent copy.
func (a *Attrs) Clone() *Attrs {
	out := NewAttrs()
	if a == nil {
		return out
	}
	for _, key := range a.keys {
		out.Set(key, a.values[key])
	}
	return out
}

// String renders the attributes as they appear inside a start tag, without a
// leading space. True booleans render as bare keys, false and nil are dropped.
func (a *Attrs) String() string {
	if a.Len() == 0 {
		return ""
	}
	parts := make([]string, 0, a.Len())
	for _, key := range a.Keys() {
		switch v := a.values[key].(type) {
		case nil:
			continue
		case bool:
			if v {
				parts = append(parts, key)
			}
		default:
			parts = append(parts, fmt.Sprintf(`%s="%s"`, key, html.EscapeString(Stringify(v))))
		}
	}
	return strings.Join(parts, " ")
}

func isPriority(key string) bool {
	for _, k := range priorityKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Stringify converts a bound value into its textual form. Slices are joined
// with a comma.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "1"
		}
		return ""
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []string:
		return strings.Join(val, ",")
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, ",")
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
