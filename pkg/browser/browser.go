// Package browser wraps the page-automation capability the interpreter
// drives. The engine and step runners only ever see the interfaces below;
// the Playwright-backed implementation lives in session.go.
package browser

import "time"

// Scope is any context a selector can be evaluated against: the root page,
// a frame, or a previously matched parent element.
type Scope interface {
	// Locator resolves a CSS selector inside this scope into a lazy,
	// countable element set.
	Locator(selector string) ElementSet
}

// ElementSet is the lazily-counted result of resolving a selector within a
// scope.
type ElementSet interface {
	Count() (int, error)
	Nth(index int) Element
	FilterByText(text string) ElementSet
}

// Element is one addressable element. It is itself a Scope, which is what
// lets group iterations narrow resolution to a matched parent.
type Element interface {
	Scope

	WaitVisible(timeout time.Duration) error
	ScrollIntoView() error
	Click(timeout time.Duration) error
	TypeSequence(text string) error
	Clear() error
	// GetAttribute returns the attribute value, or "" when absent.
	GetAttribute(name string) (string, error)
}

// Download is a captured browser download ready to be persisted.
type Download interface {
	SuggestedFilename() string
	SaveAs(path string) error
}

// Session is the automation surface a workflow run owns exclusively for
// its lifetime.
type Session interface {
	Navigate(url string) error
	Page() Scope

	FrameBySelector(selector string) Scope
	FrameByName(name string) (Scope, error)
	FrameByURL(urlSubstring string) (Scope, error)
	FrameByIndex(index int) (Scope, error)

	// UseLastTab foregrounds the most recently opened tab when more than
	// one is open; otherwise it is a no-op.
	UseLastTab() error

	// WaitForQuiescence blocks until in-flight page activity settles or
	// the timeout elapses.
	WaitForQuiescence(timeout time.Duration) error

	ScrollTo(x, y int) error

	// ExpectDownload arms a bounded wait for a download event, invokes
	// trigger, and returns the captured download.
	ExpectDownload(timeout time.Duration, trigger func() error) (Download, error)

	PageHTML() (string, error)
	PageText() (string, error)
	CurrentURL() string
}

// Root decides which scope selectors are evaluated against. Priority:
// parent element (set only inside a group iteration), then current frame
// (set only inside an active frame switch), then the page. This single
// precedence rule is what lets nested groups and frame switches compose
// without restating context on every nested step.
func Root(page, frame, parent Scope) Scope {
	if parent != nil {
		return parent
	}
	if frame != nil {
		return frame
	}
	return page
}
