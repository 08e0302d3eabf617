package validation

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formprinter/pkg/config"
	"github.com/goliatone/go-formprinter/pkg/markup"
	"github.com/goliatone/go-formprinter/pkg/printer"
)

// Field lists the checks for one canonical field name.
type Field struct {
	Name        string
	Required    bool
	Array       bool
	Constraints []Constraint
}

// Profile is the set of fields a Validator checks. Dependencies group array
// fields whose value counts must agree.
type Profile struct {
	Fields       []Field
	Dependencies [][]string
	index        map[string]int
}

// Add appends f, or merges it into an existing field of the same name.
func (p *Profile) Add(f Field) {
	if p.index == nil {
		p.index = make(map[string]int)
		for i, existing := range p.Fields {
			p.index[existing.Name] = i
		}
	}
	if i, ok := p.index[f.Name]; ok {
		cur := &p.Fields[i]
		cur.Required = cur.Required || f.Required
		cur.Array = cur.Array || f.Array
		cur.Constraints = append(cur.Constraints, f.Constraints...)
		return
	}
	p.index[f.Name] = len(p.Fields)
	p.Fields = append(p.Fields, f)
}

// Constrain attaches extra constraints to the named field, adding it when
// missing.
func (p *Profile) Constrain(name string, constraints ...Constraint) {
	p.Add(Field{Name: name, Constraints: constraints})
}

// passive types never carry user input.
var passive = map[string]bool{
	"submit":    true,
	"reset":     true,
	"label":     true,
	"cell":      true,
	"buttonbox": true,
	"table":     true,
}

// ProfileFromTree derives a profile from the constraint attributes of the
// named fields in tree: required, minlength, maxlength, pattern, min, max,
// inputmode, selection, a checkbox value and the email and number types.
// Fields of an array group are array fields sharing one dependency group.
func ProfileFromTree(tree *config.Node) (*Profile, error) {
	p := &Profile{}
	if tree == nil {
		return p, nil
	}
	if err := p.walk(tree.Children(), nil); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Profile) walk(list *config.List, group *[]string) error {
	for _, node := range list.Nodes() {
		typ := strings.ToLower(node.Type())
		if passive[typ] {
			continue
		}
		if typ == "arraygroup" {
			var names []string
			if err := p.walk(node.Children(), &names); err != nil {
				return err
			}
			if len(names) > 1 {
				p.Dependencies = append(p.Dependencies, names)
			}
			continue
		}

		if raw, ok := node.Name(); ok && raw != "" && !isContainer(typ) {
			field, err := fieldOf(node, typ, raw)
			if err != nil {
				return err
			}
			if group != nil {
				field.Array = true
				if typ != "checkbox" {
					*group = append(*group, field.Name)
				}
			}
			p.Add(field)
		}
		if err := p.walk(node.Children(), group); err != nil {
			return err
		}
	}
	return nil
}

func isContainer(typ string) bool {
	switch typ {
	case "container", "fieldset", "div", "atomiccontainer":
		return true
	}
	return false
}

func fieldOf(node *config.Node, typ, raw string) (Field, error) {
	f := Field{
		Name:     printer.CanonicalName(raw),
		Required: flag(node, "required"),
		Array:    strings.HasSuffix(raw, "[]"),
	}

	minLen, hasMin := intAttr(node, "minlength")
	maxLen, hasMax := intAttr(node, "maxlength")
	if hasMin || hasMax {
		if !hasMin {
			minLen = -1
		}
		if !hasMax {
			maxLen = -1
		}
		f.Constraints = append(f.Constraints, Length(minLen, maxLen))
	}

	if expr := node.String("pattern"); expr != "" {
		c, err := Pattern(expr)
		if err != nil {
			return Field{}, err
		}
		f.Constraints = append(f.Constraints, c)
	}

	if typ == "email" {
		f.Constraints = append(f.Constraints, Email())
	}

	lower, hasLower := floatAttr(node, "min")
	upper, hasUpper := floatAttr(node, "max")
	mode := node.String("inputmode")
	if typ == "number" || mode == "numeric" || mode == "decimal" || hasLower || hasUpper {
		var lo, hi *float64
		if hasLower {
			lo = &lower
		}
		if hasUpper {
			hi = &upper
		}
		if mode == "numeric" {
			f.Constraints = append(f.Constraints, Integer(lo, hi))
		} else {
			f.Constraints = append(f.Constraints, Number(lo, hi))
		}
	}

	if selection, ok := node.Get("selection"); ok {
		if pairs, ok := config.ToPairs(selection); ok && len(pairs) > 0 {
			f.Constraints = append(f.Constraints, Set(pairs.Keys()...))
		}
	}
	if typ == "checkbox" {
		if declared := node.String("value"); declared != "" {
			f.Constraints = append(f.Constraints, Set(declared))
		}
	}
	return f, nil
}

func flag(node *config.Node, key string) bool {
	v, ok := node.Get(key)
	if !ok || v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	s := markup.Stringify(v)
	return s != "" && s != "0" && !strings.EqualFold(s, "false")
}

func intAttr(node *config.Node, key string) (int, bool) {
	s := strings.TrimSpace(node.String(key))
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

func floatAttr(node *config.Node, key string) (float64, bool) {
	s := strings.TrimSpace(node.String(key))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}
