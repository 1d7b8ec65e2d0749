package core

import (
	"fmt"
	"strings"
)

// NormalizeClass turns a class field into a CSS class clause. A value that
// already starts with "." passes through unchanged; otherwise each
// whitespace-separated token becomes one class in a compound clause.
func NormalizeClass(class string) string {
	s := strings.TrimSpace(class)
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, ".") {
		return s
	}
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return ""
	}
	return "." + strings.Join(parts, ".")
}

// BuildSelector assembles a compound CSS selector from a step's selector
// fields. Tag defaults to the universal wildcard; attribute with a value
// emits an exact match, attribute alone a presence check.
func BuildSelector(tag, class, attribute, value string) string {
	t := strings.TrimSpace(tag)
	if t == "" {
		t = "*"
	}

	c := NormalizeClass(class)

	var a string
	switch {
	case attribute != "" && value != "":
		a = fmt.Sprintf("[%s=%q]", attribute, value)
	case attribute != "":
		a = fmt.Sprintf("[%s]", attribute)
	}

	return t + c + a
}

// SelectorFor is BuildSelector over a decoded step selector.
func SelectorFor(s Selector) string {
	return BuildSelector(s.Tag, s.Class, s.Attribute, s.Value)
}
