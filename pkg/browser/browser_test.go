package browser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stepdriver/stepdriver/pkg/browser"
)

type namedScope struct{ name string }

func (n *namedScope) Locator(selector string) browser.ElementSet { return nil }

func TestRootPrecedence(t *testing.T) {
	page := &namedScope{"page"}
	frame := &namedScope{"frame"}
	parent := &namedScope{"parent"}

	assert.Same(t, browser.Scope(page), browser.Root(page, nil, nil))
	assert.Same(t, browser.Scope(frame), browser.Root(page, frame, nil))
	assert.Same(t, browser.Scope(parent), browser.Root(page, frame, parent))
	assert.Same(t, browser.Scope(parent), browser.Root(page, nil, parent))
}
