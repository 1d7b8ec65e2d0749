package browser

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/stepdriver/stepdriver/pkg/types"
)

// LaunchOptions configures the Chromium session a run owns.
type LaunchOptions struct {
	ProfileDir   string
	Headless     bool
	WindowWidth  int
	WindowHeight int
}

// PlaywrightSession drives a persistent Chromium context through the
// playwright-go driver. It implements Session.
type PlaywrightSession struct {
	pw      *playwright.Playwright
	context playwright.BrowserContext
	page    playwright.Page
	logger  types.Logger
}

// Launch installs the driver if needed, starts Playwright, and opens a
// persistent Chromium context with downloads enabled.
func Launch(opts LaunchOptions, logger types.Logger) (*PlaywrightSession, error) {
	if err := playwright.Install(); err != nil {
		return nil, fmt.Errorf("installing playwright driver: %w", err)
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("starting playwright: %w", err)
	}

	width := opts.WindowWidth
	height := opts.WindowHeight
	if width <= 0 {
		width = 1366
	}
	if height <= 0 {
		height = 768
	}

	context, err := pw.Chromium.LaunchPersistentContext(opts.ProfileDir, playwright.BrowserTypeLaunchPersistentContextOptions{
		Headless:        playwright.Bool(opts.Headless),
		AcceptDownloads: playwright.Bool(true),
		Viewport:        &playwright.Size{Width: width, Height: height},
		Args: []string{
			fmt.Sprintf("--window-size=%d,%d", width, height),
			"--start-maximized",
		},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("launching persistent browser context: %w", err)
	}

	var page playwright.Page
	if pages := context.Pages(); len(pages) > 0 {
		page = pages[0]
	} else {
		page, err = context.NewPage()
		if err != nil {
			context.Close()
			pw.Stop()
			return nil, fmt.Errorf("opening page: %w", err)
		}
	}

	logger.Info().Str("profile_dir", opts.ProfileDir).Msgf("Browser session started (%dx%d)", width, height)

	return &PlaywrightSession{
		pw:      pw,
		context: context,
		page:    page,
		logger:  logger,
	}, nil
}

// Close shuts down the browser context and the driver.
func (s *PlaywrightSession) Close() error {
	if s.context != nil {
		if err := s.context.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to close browser context")
		}
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			return fmt.Errorf("stopping playwright: %w", err)
		}
	}
	return nil
}

func (s *PlaywrightSession) Navigate(url string) error {
	if _, err := s.page.Goto(url); err != nil {
		return fmt.Errorf("navigating to %q: %w", url, err)
	}
	return nil
}

func (s *PlaywrightSession) Page() Scope {
	return pageScope{page: s.page}
}

func (s *PlaywrightSession) FrameBySelector(selector string) Scope {
	return frameLocatorScope{frame: s.page.FrameLocator(selector)}
}

func (s *PlaywrightSession) FrameByName(name string) (Scope, error) {
	for _, frame := range s.page.Frames() {
		if frame.Name() == name {
			return frameScope{frame: frame}, nil
		}
	}
	return nil, fmt.Errorf("frame with name %q not found", name)
}

func (s *PlaywrightSession) FrameByURL(urlSubstring string) (Scope, error) {
	for _, frame := range s.page.Frames() {
		if strings.Contains(frame.URL(), urlSubstring) {
			return frameScope{frame: frame}, nil
		}
	}
	return nil, fmt.Errorf("frame with URL containing %q not found", urlSubstring)
}

func (s *PlaywrightSession) FrameByIndex(index int) (Scope, error) {
	frames := s.page.Frames()
	if index < 0 || index >= len(frames) {
		return nil, fmt.Errorf("frame index %d out of range (0-%d)", index, len(frames)-1)
	}
	return frameScope{frame: frames[index]}, nil
}

func (s *PlaywrightSession) UseLastTab() error {
	pages := s.context.Pages()
	if len(pages) <= 1 {
		s.logger.Info().Msg("Only one tab open, no switch needed")
		return nil
	}
	last := pages[len(pages)-1]
	if err := last.BringToFront(); err != nil {
		return fmt.Errorf("bringing last tab to front: %w", err)
	}
	s.page = last
	s.logger.Info().Str("url", last.URL()).Msg("Switched to last tab")
	return nil
}

func (s *PlaywrightSession) WaitForQuiescence(timeout time.Duration) error {
	return s.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

func (s *PlaywrightSession) ScrollTo(x, y int) error {
	_, err := s.page.Evaluate(fmt.Sprintf("window.scrollTo(%d, %d)", x, y))
	return err
}

func (s *PlaywrightSession) ExpectDownload(timeout time.Duration, trigger func() error) (Download, error) {
	download, err := s.page.ExpectDownload(trigger, playwright.PageExpectDownloadOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return nil, err
	}
	return download, nil
}

func (s *PlaywrightSession) PageHTML() (string, error) {
	return s.page.Content()
}

func (s *PlaywrightSession) PageText() (string, error) {
	return s.page.Locator("body").InnerText()
}

func (s *PlaywrightSession) CurrentURL() string {
	return s.page.URL()
}

// pageScope evaluates selectors against the root page.
type pageScope struct {
	page playwright.Page
}

func (p pageScope) Locator(selector string) ElementSet {
	return locatorSet{locator: p.page.Locator(selector)}
}

// frameScope evaluates selectors against a resolved frame (by name, URL,
// or index).
type frameScope struct {
	frame playwright.Frame
}

func (f frameScope) Locator(selector string) ElementSet {
	return locatorSet{locator: f.frame.Locator(selector)}
}

// frameLocatorScope evaluates selectors against a deferred frame locator
// (frame switch by CSS selector).
type frameLocatorScope struct {
	frame playwright.FrameLocator
}

func (f frameLocatorScope) Locator(selector string) ElementSet {
	return locatorSet{locator: f.frame.Locator(selector)}
}

// locatorSet adapts a playwright Locator to ElementSet.
type locatorSet struct {
	locator playwright.Locator
}

func (l locatorSet) Count() (int, error) {
	return l.locator.Count()
}

func (l locatorSet) Nth(index int) Element {
	return element{locator: l.locator.Nth(index)}
}

func (l locatorSet) FilterByText(text string) ElementSet {
	return locatorSet{locator: l.locator.Filter(playwright.LocatorFilterOptions{HasText: text})}
}

// element adapts a single playwright Locator to Element. Narrowing through
// Locator is what scopes child resolution to a group's matched parent.
type element struct {
	locator playwright.Locator
}

func (e element) Locator(selector string) ElementSet {
	return locatorSet{locator: e.locator.Locator(selector)}
}

func (e element) WaitVisible(timeout time.Duration) error {
	return e.locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

func (e element) ScrollIntoView() error {
	return e.locator.ScrollIntoViewIfNeeded()
}

func (e element) Click(timeout time.Duration) error {
	return e.locator.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

func (e element) TypeSequence(text string) error {
	return e.locator.PressSequentially(text)
}

func (e element) Clear() error {
	return e.locator.Clear()
}

func (e element) GetAttribute(name string) (string, error) {
	value, err := e.locator.GetAttribute(name)
	if err != nil {
		return "", err
	}
	return value, nil
}
