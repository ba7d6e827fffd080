// Package editor drives the pwappy visual application editor through
// Playwright. A Session bundles the multi-step interaction sequences the
// scenario tests share: adding and editing event scripts, manipulating the
// edited DOM tree, switching preview modes, and verifying generated output.
//
// Every state-changing action is followed by an explicit wait for its
// observable effect (row text appears, busy icon clears, modal hides)
// before the next action runs. Helpers never retry; a missed wait fails the
// calling test immediately.
package editor

import (
	"fmt"
	"testing"

	"github.com/playwright-community/playwright-go"
)

// DefaultTimeoutMS is the per-wait budget. Scenarios with unusually long
// interaction chains may construct their Session with a larger budget.
// Never introduce a larger timeout value anywhere else in the suite.
const DefaultTimeoutMS = 10000

// Session is bound to one editor page for the lifetime of a test.
type Session struct {
	t       *testing.T
	page    playwright.Page
	timeout float64
}

// NewSession binds a helper session to an editor page.
func NewSession(t *testing.T, page playwright.Page) *Session {
	return NewSessionWithTimeout(t, page, DefaultTimeoutMS)
}

// NewSessionWithTimeout binds a session with an explicit per-wait budget in
// milliseconds.
func NewSessionWithTimeout(t *testing.T, page playwright.Page, timeoutMS float64) *Session {
	page.SetDefaultTimeout(timeoutMS)
	page.SetDefaultNavigationTimeout(timeoutMS)
	return &Session{t: t, page: page, timeout: timeoutMS}
}

// Page exposes the underlying Playwright page for scenario-specific steps.
func (s *Session) Page() playwright.Page { return s.page }

// Open navigates to the editor and waits for the DOM tree panel, the signal
// that the editor finished loading the application.
func (s *Session) Open(editorURL string) {
	s.t.Helper()
	if _, err := s.page.Goto(editorURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(s.timeout),
	}); err != nil {
		s.t.Fatalf("failed to open editor at %s: %v", editorURL, err)
	}
	s.waitVisible(s.page.Locator(domTreeSel), "editor DOM tree panel")
}

// SwitchTab activates the editor tab with the given visible label and waits
// for its panel.
func (s *Session) SwitchTab(label string) {
	s.t.Helper()
	s.ClickTab(label)
	s.waitVisible(s.tabPanel(label), fmt.Sprintf("panel for tab %q", label))
}

// ClickTab clicks a tab without waiting for its panel. Scenarios that
// expect the editor to block the switch (script error modal) use this and
// then check the modal themselves.
func (s *Session) ClickTab(label string) {
	s.t.Helper()
	tab := s.waitVisible(
		s.page.Locator(tabItemSel+":text-is("+cssString(label)+")"),
		fmt.Sprintf("tab %q", label),
	)
	s.click(tab, fmt.Sprintf("tab %q", label))
}

// RequireTabHidden asserts the tab's panel is not currently shown.
func (s *Session) RequireTabHidden(label string) {
	s.t.Helper()
	visible, err := s.tabPanel(label).IsVisible()
	if err != nil {
		s.t.Fatalf("failed to check panel for tab %q: %v", label, err)
	}
	if visible {
		s.t.Fatalf("panel for tab %q is visible but should be hidden", label)
	}
}

func (s *Session) tabPanel(label string) playwright.Locator {
	return s.page.Locator(tabContentSel + attrSelector("data-tab", label))
}

// waitVisible waits for the first match to become visible and returns it.
// On timeout it logs the page state before failing, so the test output
// shows where the editor actually was.
func (s *Session) waitVisible(locator playwright.Locator, what string) playwright.Locator {
	s.t.Helper()
	first := locator.First()
	err := first.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(s.timeout),
	})
	if err != nil {
		s.logPageState()
		s.t.Fatalf("%s never became visible: %v", what, err)
	}
	return first
}

// waitHidden waits for the locator to leave the visible state.
func (s *Session) waitHidden(locator playwright.Locator, what string) {
	s.t.Helper()
	err := locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateHidden,
		Timeout: playwright.Float(s.timeout),
	})
	if err != nil {
		s.logPageState()
		s.t.Fatalf("%s never became hidden: %v", what, err)
	}
}

func (s *Session) click(locator playwright.Locator, what string) {
	s.t.Helper()
	err := locator.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(s.timeout),
	})
	if err != nil {
		s.logPageState()
		s.t.Fatalf("failed to click %s: %v", what, err)
	}
}

func (s *Session) fill(locator playwright.Locator, value, what string) {
	s.t.Helper()
	err := locator.Fill(value, playwright.LocatorFillOptions{
		Timeout: playwright.Float(s.timeout),
	})
	if err != nil {
		s.t.Fatalf("failed to fill %s: %v", what, err)
	}
}

func (s *Session) logPageState() {
	s.t.Helper()
	title, _ := s.page.Title()
	content, _ := s.page.Content()
	if len(content) > 500 {
		content = content[:500] + "..."
	}
	s.t.Logf("Current URL: %s", s.page.URL())
	s.t.Logf("Current title: %s", title)
	s.t.Logf("Content preview: %s", content)
}
