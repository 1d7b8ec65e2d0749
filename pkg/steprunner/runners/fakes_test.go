package runners_test

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/stepdriver/stepdriver/pkg/browser"
	"github.com/stepdriver/stepdriver/pkg/log"
	"github.com/stepdriver/stepdriver/pkg/steprunner"
	"github.com/stepdriver/stepdriver/pkg/types"
)

// The fakes below give the runners an in-memory DOM: scopes map selector
// strings to element slices, and elements nest further scopes, which is
// enough to exercise resolution, filtering, and the parent/frame/page
// precedence without a browser.

type fakeElement struct {
	children map[string][]*fakeElement
	text     string
	href     string

	clicks  int
	typed   string
	cleared bool

	// When both are set, every click appends id to the shared log so
	// tests can assert execution order across elements.
	id       string
	clickLog *[]string

	visibleErr error
	clickErr   error
}

func (e *fakeElement) Locator(selector string) browser.ElementSet {
	return &fakeSet{els: e.children[selector]}
}

func (e *fakeElement) WaitVisible(timeout time.Duration) error { return e.visibleErr }
func (e *fakeElement) ScrollIntoView() error                   { return nil }

func (e *fakeElement) Click(timeout time.Duration) error {
	if e.clickErr != nil {
		return e.clickErr
	}
	e.clicks++
	if e.clickLog != nil {
		*e.clickLog = append(*e.clickLog, e.id)
	}
	return nil
}

func (e *fakeElement) TypeSequence(text string) error {
	e.typed += text
	return nil
}

func (e *fakeElement) Clear() error {
	e.cleared = true
	return nil
}

func (e *fakeElement) GetAttribute(name string) (string, error) {
	if name == "href" {
		return e.href, nil
	}
	return "", nil
}

type fakeSet struct {
	els []*fakeElement
}

func (s *fakeSet) Count() (int, error) { return len(s.els), nil }

func (s *fakeSet) Nth(index int) browser.Element { return s.els[index] }

func (s *fakeSet) FilterByText(text string) browser.ElementSet {
	var kept []*fakeElement
	for _, el := range s.els {
		if strings.Contains(el.text, text) {
			kept = append(kept, el)
		}
	}
	return &fakeSet{els: kept}
}

type fakeScope struct {
	children map[string][]*fakeElement
}

func (s *fakeScope) Locator(selector string) browser.ElementSet {
	return &fakeSet{els: s.children[selector]}
}

type fakeDownload struct {
	name    string
	savedTo string
}

func (d *fakeDownload) SuggestedFilename() string { return d.name }

func (d *fakeDownload) SaveAs(path string) error {
	d.savedTo = path
	return nil
}

type fakeSession struct {
	page         *fakeScope
	framesByName map[string]*fakeScope
	framesByURL  map[string]*fakeScope
	frameList    []*fakeScope

	navigations []string
	navErr      error

	scrollX, scrollY int

	lastTabCalls int
	settleCalls  int

	download    *fakeDownload
	downloadErr error

	html    string
	text    string
	textErr error
	url     string
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		page:         &fakeScope{children: map[string][]*fakeElement{}},
		framesByName: map[string]*fakeScope{},
		framesByURL:  map[string]*fakeScope{},
	}
}

func (s *fakeSession) Navigate(url string) error {
	if s.navErr != nil {
		return s.navErr
	}
	s.navigations = append(s.navigations, url)
	return nil
}

func (s *fakeSession) Page() browser.Scope { return s.page }

func (s *fakeSession) FrameBySelector(selector string) browser.Scope {
	return &fakeScope{children: map[string][]*fakeElement{}}
}

func (s *fakeSession) FrameByName(name string) (browser.Scope, error) {
	if f, ok := s.framesByName[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("no frame named %q", name)
}

func (s *fakeSession) FrameByURL(urlSubstring string) (browser.Scope, error) {
	if f, ok := s.framesByURL[urlSubstring]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("no frame with URL containing %q", urlSubstring)
}

func (s *fakeSession) FrameByIndex(index int) (browser.Scope, error) {
	if index < 0 || index >= len(s.frameList) {
		return nil, fmt.Errorf("frame index %d out of range", index)
	}
	return s.frameList[index], nil
}

func (s *fakeSession) UseLastTab() error {
	s.lastTabCalls++
	return nil
}

func (s *fakeSession) WaitForQuiescence(timeout time.Duration) error {
	s.settleCalls++
	return nil
}

func (s *fakeSession) ScrollTo(x, y int) error {
	s.scrollX, s.scrollY = x, y
	return nil
}

func (s *fakeSession) ExpectDownload(timeout time.Duration, trigger func() error) (browser.Download, error) {
	if err := trigger(); err != nil {
		return nil, err
	}
	if s.downloadErr != nil {
		return nil, s.downloadErr
	}
	return s.download, nil
}

func (s *fakeSession) PageHTML() (string, error) { return s.html, nil }

func (s *fakeSession) PageText() (string, error) {
	if s.textErr != nil {
		return "", s.textErr
	}
	return s.text, nil
}

func (s *fakeSession) CurrentURL() string { return s.url }

func quietLogger() types.Logger {
	return log.NewZerologAdapter(zerolog.New(io.Discard))
}

func newEngine(session *fakeSession) *steprunner.WorkflowEngine {
	return steprunner.NewWorkflowEngine(quietLogger(), session)
}
