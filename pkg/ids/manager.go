// Package ids hands out DOM identifiers that are unique for one render pass.
package ids

import (
	"strconv"
	"strings"
	"unicode"
)

// ArraySuffix marks a field name as array backed.
const ArraySuffix = "[]"

// Manager registers sanitized ids and appends a counter on reuse. The zero
// value is not usable; call New.
type Manager struct {
	seen       map[string]int
	collisions int
}

// New returns an empty manager.
func New() *Manager {
	return &Manager{seen: make(map[string]int)}
}

// CreateID returns a unique id for raw. The first request for a base returns
// it unchanged, later ones append 1, 2, ... Array-marked names ("x[]") start
// at x0.
func (m *Manager) CreateID(raw string) string {
	count := ""
	if strings.HasSuffix(raw, ArraySuffix) {
		raw = strings.TrimSuffix(raw, ArraySuffix)
		count = "0"
	}
	base := Sanitize(raw)
	if n, ok := m.seen[base]; ok {
		n++
		m.seen[base] = n
		m.collisions++
		count = strconv.Itoa(n)
	} else {
		m.seen[base] = 0
	}
	return base + count
}

// Len returns the number of distinct bases registered.
func (m *Manager) Len() int { return len(m.seen) }

// Collisions returns how many requests hit an already registered base.
func (m *Manager) Collisions() int { return m.collisions }

// Sanitize drops characters outside [A-Za-z0-9_:.-] and any leading
// characters that are not ASCII letters.
func Sanitize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r > unicode.MaxASCII {
			continue
		}
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_' || r == ':' || r == '.' || r == '-':
		default:
			continue
		}
		if b.Len() == 0 && !isLetter(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
