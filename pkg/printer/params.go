package printer

import (
	"strings"

	"github.com/goliatone/go-formprinter/pkg/ids"
	"github.com/goliatone/go-formprinter/pkg/markup"
	"github.com/goliatone/go-formprinter/pkg/nav"
)

// Recognized parameter keys. Everything else on a node is a markup attribute.
const (
	ParamName      = "name"
	ParamType      = "type"
	ParamValues    = "values"
	ParamInvalid   = "invalid"
	ParamErrMsg    = "errmsg"
	ParamLabel     = "label"
	ParamIDs       = "idmanager"
	ParamNav       = "fscollect"
	ParamTag       = "tag"
	ParamPrefix    = "prefix"
	ParamFixed     = "fixed"
	ParamText      = "text"
	ParamDisplay   = "display"
	keySelection   = "selection"
	keyDisabled    = "disabled_keys"
	keyButtons     = "buttons"
	keyAddEmpty    = "addempty"
	keyTransparent = "transparent"
	keyThreshold   = "nav_threshold"
)

var paramSet = map[string]bool{
	ParamName: true, ParamType: true, ParamValues: true, ParamInvalid: true,
	ParamErrMsg: true, ParamLabel: true, ParamIDs: true, ParamNav: true,
	ParamTag: true, ParamPrefix: true, ParamFixed: true, ParamText: true,
	ParamDisplay: true,
}

// containerInherit lists the context a container hands down to its children.
var containerInherit = []string{ParamValues, ParamInvalid, ParamErrMsg, ParamIDs, ParamNav}

// elementInherit lists what a composite element passes to its inner control.
var elementInherit = []string{ParamValues, ParamInvalid, ParamErrMsg, ParamIDs, ParamNav, ParamType, ParamName, ParamFixed}

// boundKeys are the per-field lookups that array groups align.
var boundKeys = []string{ParamValues, ParamInvalid, ParamErrMsg}

// splitKeys are per-row template properties in array groups.
var splitKeys = []string{"value", ParamText}

var prefixByType = map[string]string{
	"text":     "Input",
	"checkbox": "Check",
	"submit":   "Button",
	"reset":    "Button",
	"textarea": "Input",
	"file":     "File",
	"select":   "Sel",
}

// tagFromType lists types whose name is also their tag.
var tagFromType = map[string]bool{"textarea": true}

var attrsByTag = map[string][]string{
	"input":    {ParamType, ParamName},
	"textarea": {ParamName},
	"select":   {ParamName},
}

type attr struct {
	key   string
	value any
}

var defaultAttrs = map[string][]attr{
	"input":    {{"value", ""}},
	"hidden":   {{"value", ""}},
	"password": nil,
	"textarea": {{"cols", "30"}, {"rows", "5"}},
	"file":     nil,
	"select":   {{"size", "1"}},
}

var textContainers = map[string]bool{"textarea": true, "p": true, "td": true, "th": true}

// CanonicalName strips the array marker from a field name.
func CanonicalName(name string) string {
	return strings.TrimSuffix(name, ids.ArraySuffix)
}

func isArrayName(name string) bool {
	return strings.HasSuffix(name, ids.ArraySuffix)
}

func idManager(v any) *ids.Manager {
	m, _ := v.(*ids.Manager)
	return m
}

func navCollector(v any) *nav.Collector {
	c, _ := v.(*nav.Collector)
	return c
}

// asMap converts the supported per-field lookup shapes into map[string]any.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, item := range m {
			out[k] = item
		}
		return out, true
	case map[string]bool:
		out := make(map[string]any, len(m))
		for k, item := range m {
			out[k] = item
		}
		return out, true
	case map[string][]string:
		out := make(map[string]any, len(m))
		for k, item := range m {
			out[k] = toAnySlice(item)
		}
		return out, true
	}
	return nil, false
}

func asSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		return toAnySlice(s), true
	case []int:
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = item
		}
		return out, true
	case []bool:
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = item
		}
		return out, true
	}
	return nil, false
}

func toAnySlice(s []string) []any {
	out := make([]any, len(s))
	for i, item := range s {
		out[i] = item
	}
	return out
}

// truthy mirrors loose boolean evaluation of bound values.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != "" && val != "0"
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	}
	if s, ok := asSlice(v); ok {
		return len(s) > 0
	}
	if m, ok := asMap(v); ok {
		return len(m) > 0
	}
	return true
}

func stringSet(v any) map[string]bool {
	out := make(map[string]bool)
	if s, ok := asSlice(v); ok {
		for _, item := range s {
			out[markup.Stringify(item)] = true
		}
		return out
	}
	if v != nil {
		out[markup.Stringify(v)] = true
	}
	return out
}
