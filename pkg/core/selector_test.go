package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stepdriver/stepdriver/pkg/core"
)

func TestNormalizeClass(t *testing.T) {
	tests := []struct {
		name  string
		class string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"single class", "clsQuestion", ".clsQuestion"},
		{"space separated classes", "btn btn-primary", ".btn.btn-primary"},
		{"already css form passes through", ".btn.btn-primary", ".btn.btn-primary"},
		{"leading and trailing space", "  row  ", ".row"},
		{"multiple internal spaces", "a   b", ".a.b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, core.NormalizeClass(tt.class))
		})
	}
}

func TestBuildSelector(t *testing.T) {
	tests := []struct {
		name      string
		tag       string
		class     string
		attribute string
		value     string
		want      string
	}{
		{"all empty is wildcard", "", "", "", "", "*"},
		{"tag only", "div", "", "", "", "div"},
		{"tag with classes", "div", "a b", "", "", "div.a.b"},
		{"attribute with value", "div", "a b", "data-x", "1", `div.a.b[data-x="1"]`},
		{"attribute presence only", "input", "", "required", "", "input[required]"},
		{"value without attribute is ignored", "a", "", "", "ignored", "a"},
		{"class without tag keeps wildcard", "", "row", "", "", "*.row"},
		{"attribute value with quotes is escaped", "a", "", "title", `say "hi"`, `a[title="say \"hi\""]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, core.BuildSelector(tt.tag, tt.class, tt.attribute, tt.value))
		})
	}
}

func TestSelectorFor(t *testing.T) {
	sel := core.Selector{Tag: "section", Class: "clsQuestion", Attribute: "data-id", Value: "42"}
	assert.Equal(t, `section.clsQuestion[data-id="42"]`, core.SelectorFor(sel))
}
