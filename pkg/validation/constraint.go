package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Constraint checks one non-empty submitted value. Name doubles as the
// message key reported when the check fails.
type Constraint interface {
	Name() string
	Validate(value string) bool
}

type pattern struct {
	name string
	re   *regexp.Regexp
}

func (p pattern) Name() string               { return p.name }
func (p pattern) Validate(value string) bool { return p.re.MatchString(value) }

// Pattern matches the whole value against expr, the way the HTML pattern
// attribute does.
func Pattern(expr string) (Constraint, error) {
	re, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		return nil, fmt.Errorf("validation: pattern %q: %w", expr, err)
	}
	return pattern{name: "pattern", re: re}, nil
}

var emailPattern = regexp.MustCompile(`(?i)^\s*[a-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+(?:\.[a-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+)*@(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\s*$`)

// Email accepts addresses of the form local@domain.tld.
func Email() Constraint {
	return pattern{name: "email", re: emailPattern}
}

type length struct {
	min, max int
}

// Length bounds the rune count. A negative bound is ignored.
func Length(min, max int) Constraint { return length{min: min, max: max} }

func (length) Name() string { return "length" }

func (l length) Validate(value string) bool {
	n := utf8.RuneCountInString(value)
	if l.min >= 0 && n < l.min {
		return false
	}
	if l.max >= 0 && n > l.max {
		return false
	}
	return true
}

type number struct {
	min, max *float64
	integer  bool
}

// Number accepts decimal values within the optional bounds.
func Number(min, max *float64) Constraint { return number{min: min, max: max} }

// Integer accepts whole numbers within the optional bounds.
func Integer(min, max *float64) Constraint { return number{min: min, max: max, integer: true} }

func (n number) Name() string {
	if n.integer {
		return "integer"
	}
	return "number"
}

func (n number) Validate(value string) bool {
	value = strings.TrimSpace(value)
	var f float64
	if n.integer {
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return false
		}
		f = float64(i)
	} else {
		parsed, err := strconv.ParseFloat(strings.Replace(value, ",", ".", 1), 64)
		if err != nil {
			return false
		}
		f = parsed
	}
	if n.min != nil && f < *n.min {
		return false
	}
	if n.max != nil && f > *n.max {
		return false
	}
	return true
}

type set map[string]bool

// Set accepts only the listed values.
func Set(values ...string) Constraint {
	s := make(set, len(values))
	for _, v := range values {
		s[v] = true
	}
	return s
}

func (set) Name() string                 { return "set" }
func (s set) Validate(value string) bool { return s[value] }

type funcConstraint struct {
	name string
	fn   func(string) bool
}

// Func wraps a custom check reported under name.
func Func(name string, fn func(string) bool) Constraint {
	return funcConstraint{name: name, fn: fn}
}

func (f funcConstraint) Name() string               { return f.name }
func (f funcConstraint) Validate(value string) bool { return f.fn(value) }
